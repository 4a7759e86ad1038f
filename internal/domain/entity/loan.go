package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del préstamo. La transición ACTIVE -> PAID_OFF es de una sola vía
// y terminal: un préstamo saldado no acepta más pagos.
const (
	LoanStatusActive  = "ACTIVE"
	LoanStatusPaidOff = "PAID_OFF"
)

// Loan representa un préstamo con interés simple. Los términos
// (Principal, InterestRate, TermYears, TotalAmount, MonthlyInstallment)
// quedan fijos en la emisión; solo AmountPaid, Balance, InstallmentsLeft y
// Status mutan, y únicamente al aplicar un pago.
//
// Invariante: AmountPaid + Balance == TotalAmount (dentro de la tolerancia
// de redondeo a 2 decimales aplicada al almacenar).
type Loan struct {
	ID                 string
	CustomerID         string
	Principal          decimal.Decimal
	InterestRate       decimal.Decimal // % anual, >= 0
	TermYears          int
	TotalInterest      decimal.Decimal
	TotalAmount        decimal.Decimal
	MonthlyInstallment decimal.Decimal // EMI fija, nunca se recalcula
	AmountPaid         decimal.Decimal
	Balance            decimal.Decimal
	InstallmentsLeft   int
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
