package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago. EMI consume una cuota del calendario; LUMP_SUM abona
// directo al saldo y recalcula cuántas cuotas quedan con la misma EMI.
const (
	PaymentTypeEMI     = "EMI"
	PaymentTypeLumpSum = "LUMP_SUM"
)

// Payment representa un pago aplicado a un préstamo. Inmutable; el orden por
// PaidAt (orden de inserción, no decreciente) define el orden del ledger.
type Payment struct {
	ID     string
	LoanID string
	Amount decimal.Decimal
	Type   string
	PaidAt time.Time
}
