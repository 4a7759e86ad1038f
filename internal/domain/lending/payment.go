package lending

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// ApplyPayment aplica un pago sobre el préstamo y muta sus campos variables.
// Todas las reglas se validan antes de tocar el préstamo: un pago rechazado
// lo deja byte a byte igual. Reglas:
//   - El préstamo debe estar ACTIVE (ErrLoanNotActive).
//   - amount > 0 (ErrInvalidAmount) y amount <= Balance (ErrOverpayment):
//     un pago nunca puede superar el saldo, se rechaza sin recortar.
//   - El tipo debe ser EMI o LUMP_SUM (ErrInvalidInput).
//   - EMI: InstallmentsLeft -= 1 (mínimo 0).
//   - LUMP_SUM: InstallmentsLeft = ceil(nuevoSaldo / MonthlyInstallment),
//     recalculado contra la EMI original fija: menos cuotas, misma cuota.
//   - Si el saldo llega a 0 el préstamo pasa a PAID_OFF y las cuotas
//     restantes se fuerzan a 0.
func ApplyPayment(loan *entity.Loan, amount decimal.Decimal, paymentType string, now time.Time) error {
	if loan.Status != entity.LoanStatusActive {
		return domain.ErrLoanNotActive
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if amount.GreaterThan(loan.Balance) {
		return domain.ErrOverpayment
	}
	if paymentType != entity.PaymentTypeEMI && paymentType != entity.PaymentTypeLumpSum {
		return domain.ErrInvalidInput
	}

	loan.AmountPaid = loan.AmountPaid.Add(amount).Round(2)
	loan.Balance = loan.Balance.Sub(amount).Round(2)
	if loan.Balance.IsNegative() {
		loan.Balance = decimal.Zero
	}

	switch paymentType {
	case entity.PaymentTypeEMI:
		if loan.InstallmentsLeft > 0 {
			loan.InstallmentsLeft--
		}
	case entity.PaymentTypeLumpSum:
		loan.InstallmentsLeft = remainingInstallments(loan.Balance, loan.MonthlyInstallment)
	}

	if loan.Balance.IsZero() {
		loan.Status = entity.LoanStatusPaidOff
		loan.InstallmentsLeft = 0
	}
	loan.UpdatedAt = now
	return nil
}

// remainingInstallments cuenta cuántas EMIs completas cubren el saldo:
// ceil(balance / installment).
func remainingInstallments(balance, installment decimal.Decimal) int {
	if installment.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	n := balance.Div(installment).Ceil().IntPart()
	if n < 0 {
		return 0
	}
	return int(n)
}
