package domain

import "errors"

// Errores de dominio (sin dependencias externas). Todos son de cara al
// cliente y no reintetables; los handlers HTTP los traducen a status codes.
var (
	ErrCustomerNotFound = errors.New("cliente no encontrado")
	ErrLoanNotFound     = errors.New("préstamo no encontrado")
	ErrNoLoans          = errors.New("el cliente no tiene préstamos")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidAmount    = errors.New("monto de pago inválido")
	ErrOverpayment      = errors.New("el monto excede el saldo pendiente")
	ErrLoanNotActive    = errors.New("el préstamo no está activo")
	ErrDuplicate        = errors.New("recurso duplicado")
)
