package lending

import (
	"context"
	"fmt"

	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

// StatementUseCase genera el estado de cuenta (PDF) de un préstamo: términos,
// historial de pagos y saldo al corte.
type StatementUseCase struct {
	customerRepo repository.CustomerRepository
	loanRepo     repository.LoanRepository
	paymentRepo  repository.PaymentRepository
	generator    StatementPDFGenerator
}

// NewStatementUseCase construye el caso de uso inyectando sus dependencias.
func NewStatementUseCase(
	customerRepo repository.CustomerRepository,
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	generator StatementPDFGenerator,
) *StatementUseCase {
	return &StatementUseCase{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		paymentRepo:  paymentRepo,
		generator:    generator,
	}
}

// DownloadStatementPDF recupera préstamo, cliente y pagos, y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)   si todo sale bien.
//   - domain.ErrLoanNotFound      si el préstamo no existe.
func (uc *StatementUseCase) DownloadStatementPDF(ctx context.Context, loanID string) (pdfBytes []byte, filename string, err error) {
	loan, err := uc.loanRepo.GetByID(loanID)
	if err != nil {
		return nil, "", fmt.Errorf("statement: obtener préstamo: %w", err)
	}
	if loan == nil {
		return nil, "", domain.ErrLoanNotFound
	}

	customer, err := uc.customerRepo.GetByID(loan.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("statement: obtener cliente: %w", err)
	}
	if customer == nil {
		// Préstamo huérfano: el directorio perdió al titular
		customer = &entity.Customer{ID: loan.CustomerID, Name: loan.CustomerID}
	}

	payments, err := uc.paymentRepo.ListByLoan(loanID)
	if err != nil {
		return nil, "", fmt.Errorf("statement: listar pagos: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateStatementPDF(ctx, loan, customer, payments)
	if err != nil {
		return nil, "", fmt.Errorf("statement: generar PDF: %w", err)
	}

	return pdfBytes, fmt.Sprintf("estado-cuenta-%s.pdf", loan.ID), nil
}
