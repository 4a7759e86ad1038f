package repository

import "github.com/tu-usuario/prestamos-pro/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para Payment.
// ListByLoan retorna los pagos en orden de aplicación (paid_at ascendente,
// orden de inserción); la consulta del ledger es O(pagos del préstamo).
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListByLoan(loanID string) ([]*entity.Payment, error)
}
