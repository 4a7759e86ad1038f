package lending

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// Schedule resultado del cálculo de interés simple (servicio de dominio).
type Schedule struct {
	TotalInterest      decimal.Decimal
	TotalAmount        decimal.Decimal
	MonthlyInstallment decimal.Decimal
}

// ComputeSchedule calcula interés simple (no compuesto) sobre el plazo completo:
//
//	TotalInterest      = Principal * TermYears * (Rate/100)
//	TotalAmount        = Principal + TotalInterest
//	MonthlyInstallment = TotalAmount / (TermYears * 12)
//
// Función pura y exacta: no redondea. El redondeo a 2 decimales se aplica una
// sola vez, al almacenar (ver Issue), para no acumular error entre lecturas.
// Precondiciones (las valida el caso de uso): principal > 0, termYears > 0,
// annualRatePercent >= 0.
func ComputeSchedule(principal decimal.Decimal, termYears int, annualRatePercent decimal.Decimal) Schedule {
	years := decimal.NewFromInt(int64(termYears))
	interest := principal.Mul(years).Mul(annualRatePercent.Div(decimal.NewFromInt(100)))
	total := principal.Add(interest)
	installment := total.Div(years.Mul(decimal.NewFromInt(12)))
	return Schedule{
		TotalInterest:      interest,
		TotalAmount:        total,
		MonthlyInstallment: installment,
	}
}

// Issue construye un préstamo nuevo a partir del calendario calculado.
// Los montos se redondean a 2 decimales aquí (frontera de almacenamiento);
// el saldo inicial es el total y quedan TermYears*12 cuotas.
func Issue(id, customerID string, principal decimal.Decimal, termYears int, annualRatePercent decimal.Decimal, now time.Time) *entity.Loan {
	s := ComputeSchedule(principal, termYears, annualRatePercent)
	totalAmount := s.TotalAmount.Round(2)
	return &entity.Loan{
		ID:                 id,
		CustomerID:         customerID,
		Principal:          principal.Round(2),
		InterestRate:       annualRatePercent,
		TermYears:          termYears,
		TotalInterest:      s.TotalInterest.Round(2),
		TotalAmount:        totalAmount,
		MonthlyInstallment: s.MonthlyInstallment.Round(2),
		AmountPaid:         decimal.Zero,
		Balance:            totalAmount,
		InstallmentsLeft:   termYears * 12,
		Status:             entity.LoanStatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
