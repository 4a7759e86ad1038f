package memory

import (
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ repository.LoanRepository = (*LoanRepo)(nil)

// LoanRepo implementación en memoria de LoanRepository. Con noLock=true los
// métodos asumen que el TxRunner ya sostiene el write lock del store.
type LoanRepo struct {
	store  *Store
	noLock bool
}

// NewLoanRepository construye el adaptador sobre el store compartido.
func NewLoanRepository(store *Store) *LoanRepo {
	return &LoanRepo{store: store}
}

// Create guarda un préstamo nuevo; ErrDuplicate si el ID ya existe.
func (r *LoanRepo) Create(loan *entity.Loan) error {
	if !r.noLock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if !r.store.createLoanLocked(*loan) {
		return domain.ErrDuplicate
	}
	return nil
}

// GetByID obtiene un snapshot del préstamo; (nil, nil) si no existe.
func (r *LoanRepo) GetByID(id string) (*entity.Loan, error) {
	if !r.noLock {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	l, ok := r.store.getLoanLocked(id)
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// GetByIDForUpdate en memoria equivale a GetByID: la exclusión la da el
// write lock que el TxRunner sostiene durante toda la mutación.
func (r *LoanRepo) GetByIDForUpdate(id string) (*entity.Loan, error) {
	return r.GetByID(id)
}

// ListByCustomer lista los préstamos del cliente en orden de emisión.
func (r *LoanRepo) ListByCustomer(customerID string) ([]*entity.Loan, error) {
	if !r.noLock {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	loans := r.store.listLoansByCustomerLocked(customerID)
	out := make([]*entity.Loan, 0, len(loans))
	for i := range loans {
		out = append(out, &loans[i])
	}
	return out, nil
}

// Update reemplaza el préstamo almacenado.
func (r *LoanRepo) Update(loan *entity.Loan) error {
	if !r.noLock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if !r.store.updateLoanLocked(*loan) {
		return domain.ErrLoanNotFound
	}
	return nil
}
