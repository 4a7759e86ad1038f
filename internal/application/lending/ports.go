package lending

import (
	"context"
	"time"

	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

// LedgerTxRunner ejecuta fn con repos de préstamos y pagos atados a una misma
// unidad atómica: el insert del pago y el update del préstamo se confirman
// juntos o no se confirma ninguno. Las mutaciones sobre un mismo préstamo se
// serializan (una en vuelo a la vez) para preservar
// AmountPaid + Balance == TotalAmount ante pagos concurrentes.
type LedgerTxRunner interface {
	Run(ctx context.Context, fn func(
		loanRepo repository.LoanRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// LedgerCache cache opcional de lectura para ledger y overview.
// Get retorna (nil, false) en miss; las escrituras invalidan por clave.
type LedgerCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// StatementPDFGenerator genera el estado de cuenta imprimible de un préstamo.
type StatementPDFGenerator interface {
	GenerateStatementPDF(
		ctx context.Context,
		loan *entity.Loan,
		customer *entity.Customer,
		payments []*entity.Payment,
	) ([]byte, error)
}

func ledgerCacheKey(loanID string) string { return "ledger:" + loanID }

func overviewCacheKey(customerID string) string { return "overview:" + customerID }
