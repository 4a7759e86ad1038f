package memory

import (
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación en memoria de PaymentRepository. Con noLock=true
// los métodos asumen que el TxRunner ya sostiene el write lock del store.
type PaymentRepo struct {
	store  *Store
	noLock bool
}

// NewPaymentRepository construye el adaptador sobre el store compartido.
func NewPaymentRepository(store *Store) *PaymentRepo {
	return &PaymentRepo{store: store}
}

// Create agrega el pago al historial del préstamo (orden de inserción).
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	if !r.noLock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	r.store.appendPaymentLocked(*payment)
	return nil
}

// ListByLoan retorna copias de los pagos en orden de aplicación.
func (r *PaymentRepo) ListByLoan(loanID string) ([]*entity.Payment, error) {
	if !r.noLock {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	payments := r.store.listPaymentsLocked(loanID)
	out := make([]*entity.Payment, 0, len(payments))
	for i := range payments {
		out = append(out, &payments[i])
	}
	return out, nil
}
