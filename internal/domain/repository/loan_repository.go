package repository

import "github.com/tu-usuario/prestamos-pro/internal/domain/entity"

// LoanRepository define el puerto de persistencia para Loan.
// GetByID retorna (nil, nil) si el préstamo no existe. Create retorna
// domain.ErrDuplicate si el ID ya está ocupado (colisión del generador).
type LoanRepository interface {
	Create(loan *entity.Loan) error
	GetByID(id string) (*entity.Loan, error)
	// GetByIDForUpdate obtiene el préstamo reteniendo su fila/registro para
	// mutación exclusiva; solo tiene sentido dentro de un LedgerTxRunner.
	GetByIDForUpdate(id string) (*entity.Loan, error)
	ListByCustomer(customerID string) ([]*entity.Loan, error)
	Update(loan *entity.Loan) error
}
