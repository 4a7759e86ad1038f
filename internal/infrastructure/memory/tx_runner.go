package memory

import (
	"context"

	"github.com/tu-usuario/prestamos-pro/internal/application/lending"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ lending.LedgerTxRunner = (*TxRunner)(nil)

// TxRunner serializa las mutaciones del libro: retiene el write lock del
// store durante todo el callback, así dos pagos al mismo préstamo nunca se
// entrelazan y el insert del pago más el update del préstamo se observan
// como una sola operación. Los repos que recibe fn no toman locks propios.
//
// No hay rollback físico: los casos de uso mutan el store solo después de
// que todas las reglas pasaron (trabajan sobre copias), así que un error de
// fn no deja efectos parciales.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store compartido.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn bajo el write lock con repos atados al store.
func (r *TxRunner) Run(_ context.Context, fn func(
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	loanRepo := &LoanRepo{store: r.store, noLock: true}
	paymentRepo := &PaymentRepo{store: r.store, noLock: true}

	return fn(loanRepo, paymentRepo)
}
