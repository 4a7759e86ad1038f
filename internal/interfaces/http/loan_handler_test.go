package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/prestamos-pro/internal/application/lending"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/infrastructure/memory"
	infrapdf "github.com/tu-usuario/prestamos-pro/internal/infrastructure/pdf"
	apphttp "github.com/tu-usuario/prestamos-pro/internal/interfaces/http"
	"github.com/tu-usuario/prestamos-pro/pkg/idgen"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la app completa sobre el driver de memoria, con el
// cliente CUST_SEED pre-cargado e IDs deterministas.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	customerRepo := memory.NewCustomerRepository(store)
	require.NoError(t, customerRepo.Create(&entity.Customer{
		ID: "CUST_SEED", Name: "Cliente Semilla", CreatedAt: time.Now(),
	}))

	ids := idgen.NewSequential()
	loanRepo := memory.NewLoanRepository(store)
	paymentRepo := memory.NewPaymentRepository(store)
	loanUC := lending.NewLoanUseCase(
		customerRepo, loanRepo, paymentRepo, memory.NewTxRunner(store), nil, ids,
	)
	statementUC := lending.NewStatementUseCase(
		customerRepo, loanRepo, paymentRepo, infrapdf.NewMarotoStatementGenerator(),
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC:  usecase.NewCustomerUseCase(customerRepo, ids),
		LoanUC:      loanUC,
		StatementUC: statementUC,
	})
	return app
}

// doJSON lanza una petición con cuerpo JSON y decodifica la respuesta en out.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
		resp.Body.Close()
	}
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: emisión → pago → ledger → overview
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoCompletoDePrestamo(t *testing.T) {
	app := buildTestApp(t)

	// Emitir
	var created map[string]any
	resp := doJSON(t, app, http.MethodPost, "/api/loans", map[string]any{
		"customer_id":          "CUST_SEED",
		"loan_amount":          120000,
		"loan_period_years":    1,
		"interest_rate_yearly": 10,
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	loanID, _ := created["loan_id"].(string)
	require.NotEmpty(t, loanID)
	assert.Equal(t, "CUST_SEED", created["customer_id"])

	// Pagar una EMI (tipo por defecto)
	var payment map[string]any
	resp = doJSON(t, app, http.MethodPost, "/api/loans/"+loanID+"/payments", map[string]any{
		"amount": 11000,
	}, &payment)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, loanID, payment["loan_id"])
	assert.EqualValues(t, 11, payment["installments_left"])

	// Ledger
	var ledger map[string]any
	resp = doJSON(t, app, http.MethodGet, "/api/loans/"+loanID+"/ledger", nil, &ledger)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	txs, ok := ledger["transactions"].([]any)
	require.True(t, ok)
	assert.Len(t, txs, 1)

	// Overview
	var overview map[string]any
	resp = doJSON(t, app, http.MethodGet, "/api/customers/CUST_SEED/overview", nil, &overview)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, overview["total_loans"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de errores a status codes
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_MapeoDeErrores(t *testing.T) {
	app := buildTestApp(t)

	// 404: cliente desconocido al emitir
	resp := doJSON(t, app, http.MethodPost, "/api/loans", map[string]any{
		"customer_id":          "CUST_NADIE",
		"loan_amount":          1000,
		"loan_period_years":    1,
		"interest_rate_yearly": 10,
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// 400: falta un campo obligatorio
	resp = doJSON(t, app, http.MethodPost, "/api/loans", map[string]any{
		"customer_id":       "CUST_SEED",
		"loan_period_years": 1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// 404: ledger de préstamo inexistente
	resp = doJSON(t, app, http.MethodGet, "/api/loans/LOAN_NADA/ledger", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// 404: overview de cliente sin préstamos
	var errBody map[string]any
	resp = doJSON(t, app, http.MethodGet, "/api/customers/CUST_SEED/overview", nil, &errBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NO_LOANS", errBody["code"])
}

func TestAPI_PagosInvalidos(t *testing.T) {
	app := buildTestApp(t)

	var created map[string]any
	resp := doJSON(t, app, http.MethodPost, "/api/loans", map[string]any{
		"customer_id":          "CUST_SEED",
		"loan_amount":          1000,
		"loan_period_years":    1,
		"interest_rate_yearly": 20,
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	loanID := created["loan_id"].(string)

	// 400: sobrepago (total es 1200)
	var errBody map[string]any
	resp = doJSON(t, app, http.MethodPost, "/api/loans/"+loanID+"/payments", map[string]any{
		"amount": 5000,
	}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "OVERPAYMENT", errBody["code"])

	// 400: tipo inválido
	resp = doJSON(t, app, http.MethodPost, "/api/loans/"+loanID+"/payments", map[string]any{
		"amount":       100,
		"payment_type": "SEMANAL",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Saldar y verificar 409 en el siguiente pago
	resp = doJSON(t, app, http.MethodPost, "/api/loans/"+loanID+"/payments", map[string]any{
		"amount":       1200,
		"payment_type": "LUMP_SUM",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/loans/"+loanID+"/payments", map[string]any{
		"amount": 100,
	}, &errBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "LOAN_NOT_ACTIVE", errBody["code"])
}

// El estado de cuenta responde PDF con Content-Disposition de descarga.
func TestAPI_StatementPDF(t *testing.T) {
	app := buildTestApp(t)

	var created map[string]any
	resp := doJSON(t, app, http.MethodPost, "/api/loans", map[string]any{
		"customer_id":          "CUST_SEED",
		"loan_amount":          120000,
		"loan_period_years":    1,
		"interest_rate_yearly": 10,
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	loanID := created["loan_id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/loans/"+loanID+"/statement", nil)
	pdfResp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer pdfResp.Body.Close()

	assert.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Equal(t, "application/pdf", pdfResp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, pdfResp.Header.Get(fiber.HeaderContentDisposition), loanID)
}
