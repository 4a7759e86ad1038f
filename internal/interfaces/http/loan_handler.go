package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/application/lending"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
)

// LoanHandler maneja las peticiones HTTP de préstamos y pagos.
type LoanHandler struct {
	uc          *lending.LoanUseCase
	statementUC *lending.StatementUseCase
}

// NewLoanHandler construye el handler.
func NewLoanHandler(uc *lending.LoanUseCase, statementUC *lending.StatementUseCase) *LoanHandler {
	return &LoanHandler{uc: uc, statementUC: statementUC}
}

// Create godoc
// @Summary      Emitir préstamo
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLoanRequest  true  "Términos del préstamo"
// @Success      201   {object}  dto.CreateLoanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateLoan(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "customer_id, loan_amount (>0), loan_period_years (>0) e interest_rate_yearly (>=0) son requeridos",
			})
		case errors.Is(err, domain.ErrCustomerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CUSTOMER_NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordPayment godoc
// @Summary      Registrar pago (EMI o LUMP_SUM)
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del préstamo"
// @Param        body  body  dto.RecordPaymentRequest  true  "Pago"
// @Success      201   {object}  dto.RecordPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/loans/{id}/payments [post]
func (h *LoanHandler) RecordPayment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordPayment(c.UserContext(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LOAN_NOT_FOUND", Message: "préstamo no encontrado"})
		case errors.Is(err, domain.ErrLoanNotActive):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOAN_NOT_ACTIVE", Message: "el préstamo no está activo"})
		case errors.Is(err, domain.ErrOverpayment):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OVERPAYMENT", Message: "el monto excede el saldo pendiente"})
		case errors.Is(err, domain.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "amount debe ser mayor a 0"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount es requerido y payment_type debe ser EMI o LUMP_SUM"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetLedger godoc
// @Summary      Ledger del préstamo
// @Tags         loans
// @Produce      json
// @Param        id   path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.LedgerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans/{id}/ledger [get]
func (h *LoanHandler) GetLedger(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetLedger(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LOAN_NOT_FOUND", Message: "préstamo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DownloadStatement godoc
// @Summary      Estado de cuenta en PDF
// @Tags         loans
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del préstamo"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans/{id}/statement [get]
func (h *LoanHandler) DownloadStatement(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, filename, err := h.statementUC.DownloadStatementPDF(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LOAN_NOT_FOUND", Message: "préstamo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
