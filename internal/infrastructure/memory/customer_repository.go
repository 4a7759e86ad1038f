package memory

import (
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct {
	store *Store
}

// NewCustomerRepository construye el adaptador sobre el store compartido.
func NewCustomerRepository(store *Store) *CustomerRepo {
	return &CustomerRepo{store: store}
}

// Create registra un cliente nuevo.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.createCustomerLocked(*customer) {
		return domain.ErrDuplicate
	}
	return nil
}

// GetByID obtiene un cliente por ID; (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.getCustomerLocked(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// List lista clientes en orden de alta con paginación.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if offset >= len(r.store.customerOrder) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.store.customerOrder) {
		end = len(r.store.customerOrder)
	}
	var list []*entity.Customer
	for _, id := range r.store.customerOrder[offset:end] {
		c := r.store.customers[id]
		list = append(list, &c)
	}
	return list, nil
}
