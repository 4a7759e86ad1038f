package lending

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	domlending "github.com/tu-usuario/prestamos-pro/internal/domain/lending"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
	"github.com/tu-usuario/prestamos-pro/pkg/idgen"
)

// RecordPayment aplica un pago EMI o LUMP_SUM sobre el préstamo. El tipo vacío
// equivale a EMI. Dentro de la transacción se trabaja sobre una copia del
// préstamo: un rechazo (monto inválido, sobrepago, préstamo no activo) deja
// el registro almacenado byte a byte igual y no crea ningún Payment.
func (uc *LoanUseCase) RecordPayment(ctx context.Context, loanID string, in dto.RecordPaymentRequest) (*dto.RecordPaymentResponse, error) {
	if loanID == "" || in.Amount == nil {
		return nil, domain.ErrInvalidInput
	}
	paymentType := in.PaymentType
	if paymentType == "" {
		paymentType = entity.PaymentTypeEMI
	}
	if paymentType != entity.PaymentTypeEMI && paymentType != entity.PaymentTypeLumpSum {
		return nil, domain.ErrInvalidInput
	}

	var (
		payment *entity.Payment
		updated entity.Loan
	)
	err := uc.tx.Run(ctx, func(loanRepo repository.LoanRepository, paymentRepo repository.PaymentRepository) error {
		stored, err := loanRepo.GetByIDForUpdate(loanID)
		if err != nil {
			return fmt.Errorf("obtener préstamo: %w", err)
		}
		if stored == nil {
			return domain.ErrLoanNotFound
		}

		loan := *stored // copia de trabajo
		now := time.Now()
		if err := domlending.ApplyPayment(&loan, *in.Amount, paymentType, now); err != nil {
			return err
		}

		p := &entity.Payment{
			ID:     uc.ids.NewID(idgen.PrefixPayment),
			LoanID: loanID,
			Amount: in.Amount.Round(2),
			Type:   paymentType,
			PaidAt: now,
		}
		if err := paymentRepo.Create(p); err != nil {
			return fmt.Errorf("registrar pago: %w", err)
		}
		if err := loanRepo.Update(&loan); err != nil {
			return fmt.Errorf("actualizar préstamo: %w", err)
		}

		payment = p
		updated = loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, ledgerCacheKey(loanID), overviewCacheKey(updated.CustomerID))

	return &dto.RecordPaymentResponse{
		PaymentID:        payment.ID,
		LoanID:           loanID,
		RemainingBalance: updated.Balance,
		InstallmentsLeft: updated.InstallmentsLeft,
	}, nil
}
