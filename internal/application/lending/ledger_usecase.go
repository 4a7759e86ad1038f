package lending

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// GetLedger retorna el snapshot del préstamo más su historial de pagos en
// orden de aplicación. Lectura pura con cache-aside: primero el cache, en
// miss se arma desde los repos y se guarda con TTL.
func (uc *LoanUseCase) GetLedger(ctx context.Context, loanID string) (*dto.LedgerResponse, error) {
	if loanID == "" {
		return nil, domain.ErrInvalidInput
	}

	if cached, ok := uc.cacheGet(ctx, ledgerCacheKey(loanID)); ok {
		var out dto.LedgerResponse
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
		// Entrada corrupta: seguir al store
	}

	loan, err := uc.loanRepo.GetByID(loanID)
	if err != nil {
		return nil, fmt.Errorf("obtener préstamo: %w", err)
	}
	if loan == nil {
		return nil, domain.ErrLoanNotFound
	}
	payments, err := uc.paymentRepo.ListByLoan(loanID)
	if err != nil {
		return nil, fmt.Errorf("listar pagos: %w", err)
	}

	out := toLedgerResponse(loan, payments)
	uc.cacheSet(ctx, ledgerCacheKey(loanID), out)
	return out, nil
}

// GetOverview retorna el agregado de todos los préstamos del cliente,
// cualquiera sea su estado. Cliente inexistente o sin préstamos es NotFound.
func (uc *LoanUseCase) GetOverview(ctx context.Context, customerID string) (*dto.OverviewResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	if cached, ok := uc.cacheGet(ctx, overviewCacheKey(customerID)); ok {
		var out dto.OverviewResponse
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	loans, err := uc.loanRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("listar préstamos: %w", err)
	}
	if len(loans) == 0 {
		return nil, domain.ErrNoLoans
	}

	summaries := make([]dto.LoanSummary, 0, len(loans))
	for _, l := range loans {
		summaries = append(summaries, dto.LoanSummary{
			LoanID:        l.ID,
			Principal:     l.Principal,
			TotalAmount:   l.TotalAmount,
			TotalInterest: l.TotalInterest,
			EMIAmount:     l.MonthlyInstallment,
			AmountPaid:    l.AmountPaid,
			EMIsLeft:      l.InstallmentsLeft,
			Status:        l.Status,
		})
	}
	out := &dto.OverviewResponse{
		CustomerID: customerID,
		TotalLoans: len(summaries),
		Loans:      summaries,
	}
	uc.cacheSet(ctx, overviewCacheKey(customerID), out)
	return out, nil
}

func toLedgerResponse(loan *entity.Loan, payments []*entity.Payment) *dto.LedgerResponse {
	txs := make([]dto.TransactionResponse, 0, len(payments))
	for _, p := range payments {
		txs = append(txs, dto.TransactionResponse{
			TransactionID: p.ID,
			Date:          p.PaidAt,
			Amount:        p.Amount,
			Type:          p.Type,
		})
	}
	return &dto.LedgerResponse{
		LoanID:        loan.ID,
		CustomerID:    loan.CustomerID,
		Principal:     loan.Principal,
		TotalAmount:   loan.TotalAmount,
		MonthlyEMI:    loan.MonthlyInstallment,
		AmountPaid:    loan.AmountPaid,
		BalanceAmount: loan.Balance,
		EMIsLeft:      loan.InstallmentsLeft,
		Transactions:  txs,
	}
}

func (uc *LoanUseCase) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if uc.cache == nil {
		return nil, false
	}
	return uc.cache.Get(ctx, key)
}

// cacheSet serializa y guarda; un fallo de cache no afecta la lectura.
func (uc *LoanUseCase) cacheSet(ctx context.Context, key string, v any) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = uc.cache.Set(ctx, key, raw, cacheTTL)
}
