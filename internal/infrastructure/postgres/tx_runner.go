package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/prestamos-pro/internal/application/lending"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ lending.LedgerTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. El caso de
// uso de pagos toma el préstamo con FOR UPDATE dentro del callback, así que
// las mutaciones a un mismo préstamo quedan serializadas por la fila, y el
// insert del pago más el update del saldo confirman en el mismo commit.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	loanRepo := NewLoanRepository(tx)
	paymentRepo := NewPaymentRepository(tx)

	if err := fn(loanRepo, paymentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
