package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLoanRequest entrada para emitir un préstamo. Los campos numéricos son
// punteros para distinguir "ausente" de "cero": los cuatro son obligatorios.
type CreateLoanRequest struct {
	CustomerID         string           `json:"customer_id" validate:"required"`
	LoanAmount         *decimal.Decimal `json:"loan_amount" validate:"required"`
	LoanPeriodYears    *int             `json:"loan_period_years" validate:"required,min=1"`
	InterestRateYearly *decimal.Decimal `json:"interest_rate_yearly" validate:"required,min=0"`
}

// CreateLoanResponse salida de la emisión.
type CreateLoanResponse struct {
	LoanID             string          `json:"loan_id"`
	CustomerID         string          `json:"customer_id"`
	TotalAmountPayable decimal.Decimal `json:"total_amount_payable"`
	MonthlyEMI         decimal.Decimal `json:"monthly_emi"`
}

// RecordPaymentRequest entrada para registrar un pago. PaymentType vacío
// equivale a EMI.
type RecordPaymentRequest struct {
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	PaymentType string           `json:"payment_type" validate:"omitempty,oneof=EMI LUMP_SUM"`
}

// RecordPaymentResponse salida del registro de pago.
type RecordPaymentResponse struct {
	PaymentID        string          `json:"payment_id"`
	LoanID           string          `json:"loan_id"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	InstallmentsLeft int             `json:"installments_left"`
}

// TransactionResponse un movimiento del ledger.
type TransactionResponse struct {
	TransactionID string          `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
}

// LedgerResponse snapshot del préstamo más su historial ordenado de pagos.
type LedgerResponse struct {
	LoanID        string                `json:"loan_id"`
	CustomerID    string                `json:"customer_id"`
	Principal     decimal.Decimal       `json:"principal"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	MonthlyEMI    decimal.Decimal       `json:"monthly_emi"`
	AmountPaid    decimal.Decimal       `json:"amount_paid"`
	BalanceAmount decimal.Decimal       `json:"balance_amount"`
	EMIsLeft      int                   `json:"emis_left"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// LoanSummary resumen de un préstamo dentro del overview del cliente.
type LoanSummary struct {
	LoanID        string          `json:"loan_id"`
	Principal     decimal.Decimal `json:"principal"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	EMIAmount     decimal.Decimal `json:"emi_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	EMIsLeft      int             `json:"emis_left"`
	Status        string          `json:"status"`
}

// OverviewResponse agregado de todos los préstamos de un cliente.
type OverviewResponse struct {
	CustomerID string        `json:"customer_id"`
	TotalLoans int           `json:"total_loans"`
	Loans      []LoanSummary `json:"loans"`
}
