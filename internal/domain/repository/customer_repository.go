package repository

import "github.com/tu-usuario/prestamos-pro/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para el directorio de clientes.
// GetByID retorna (nil, nil) si el cliente no existe.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
}
