package lending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	domlending "github.com/tu-usuario/prestamos-pro/internal/domain/lending"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
	"github.com/tu-usuario/prestamos-pro/pkg/idgen"
)

// maxIDAttempts reintentos del generador ante colisión de ID al emitir.
const maxIDAttempts = 3

// cacheTTL vigencia de las entradas de ledger/overview en cache.
const cacheTTL = 5 * time.Minute

// LoanUseCase orquesta las operaciones del libro de préstamos: emisión,
// aplicación de pagos, ledger y overview. Toda mutación pasa por el
// LedgerTxRunner; las lecturas van directo a los repos (snapshots).
type LoanUseCase struct {
	customerRepo repository.CustomerRepository
	loanRepo     repository.LoanRepository
	paymentRepo  repository.PaymentRepository
	tx           LedgerTxRunner
	cache        LedgerCache // opcional, nil desactiva el cache
	ids          idgen.Generator
}

// NewLoanUseCase construye el caso de uso. cache puede ser nil.
func NewLoanUseCase(
	customerRepo repository.CustomerRepository,
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	tx LedgerTxRunner,
	cache LedgerCache,
	ids idgen.Generator,
) *LoanUseCase {
	return &LoanUseCase{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		paymentRepo:  paymentRepo,
		tx:           tx,
		cache:        cache,
		ids:          ids,
	}
}

// CreateLoan valida la entrada, verifica que el cliente exista y emite el
// préstamo con el calendario de interés simple. Los términos quedan fijos.
func (uc *LoanUseCase) CreateLoan(ctx context.Context, in dto.CreateLoanRequest) (*dto.CreateLoanResponse, error) {
	if in.CustomerID == "" || in.LoanAmount == nil || in.LoanPeriodYears == nil || in.InterestRateYearly == nil {
		return nil, domain.ErrInvalidInput
	}
	principal := *in.LoanAmount
	years := *in.LoanPeriodYears
	rate := *in.InterestRateYearly
	if principal.LessThanOrEqual(decimal.Zero) || years <= 0 || rate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	var loan *entity.Loan
	err = uc.tx.Run(ctx, func(loanRepo repository.LoanRepository, _ repository.PaymentRepository) error {
		for attempt := 0; attempt < maxIDAttempts; attempt++ {
			candidate := domlending.Issue(
				uc.ids.NewID(idgen.PrefixLoan), in.CustomerID, principal, years, rate, time.Now(),
			)
			createErr := loanRepo.Create(candidate)
			if createErr == nil {
				loan = candidate
				return nil
			}
			if !errors.Is(createErr, domain.ErrDuplicate) {
				return createErr
			}
			// Colisión de ID: regenerar
		}
		return fmt.Errorf("emitir préstamo: colisión de ID tras %d intentos", maxIDAttempts)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, overviewCacheKey(in.CustomerID))

	return &dto.CreateLoanResponse{
		LoanID:             loan.ID,
		CustomerID:         loan.CustomerID,
		TotalAmountPayable: loan.TotalAmount,
		MonthlyEMI:         loan.MonthlyInstallment,
	}, nil
}

// invalidate borra claves del cache; un fallo de cache no afecta la operación.
func (uc *LoanUseCase) invalidate(ctx context.Context, keys ...string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, keys...)
}
