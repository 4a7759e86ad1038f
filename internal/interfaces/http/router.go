package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/lending"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC  *usecase.CustomerUseCase
	LoanUC      *lending.LoanUseCase
	StatementUC *lending.StatementUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Customers (directorio)
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.LoanUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id/overview", customerHandler.GetOverview)

	// Loans (emisión, pagos, ledger, estado de cuenta)
	loans := api.Group("/loans")
	loanHandler := NewLoanHandler(deps.LoanUC, deps.StatementUC)
	loans.Post("/", loanHandler.Create)
	loans.Post("/:id/payments", loanHandler.RecordPayment)
	loans.Get("/:id/ledger", loanHandler.GetLedger)
	loans.Get("/:id/statement", loanHandler.DownloadStatement)
}
