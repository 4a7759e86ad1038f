package lending_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/prestamos-pro/internal/application/dto"
	"github.com/tu-usuario/prestamos-pro/internal/application/lending"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/infrastructure/memory"
	"github.com/tu-usuario/prestamos-pro/pkg/idgen"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc    *lending.LoanUseCase
	store *memory.Store
	cache *fakeCache
}

// newFixture arma el caso de uso sobre el driver de memoria con IDs
// deterministas (LOAN_1, PAY_1, ...) y un cache falso para observar
// invalidaciones.
func newFixture(t *testing.T, customers ...string) *fixture {
	t.Helper()
	store := memory.NewStore()
	customerRepo := memory.NewCustomerRepository(store)
	for _, id := range customers {
		require.NoError(t, customerRepo.Create(&entity.Customer{
			ID: id, Name: "Cliente " + id, CreatedAt: time.Now(),
		}))
	}
	cache := newFakeCache()
	uc := lending.NewLoanUseCase(
		customerRepo,
		memory.NewLoanRepository(store),
		memory.NewPaymentRepository(store),
		memory.NewTxRunner(store),
		cache,
		idgen.NewSequential(),
	)
	return &fixture{uc: uc, store: store, cache: cache}
}

func createLoanReq(customerID string, amount int64, years int, rate string) dto.CreateLoanRequest {
	a := decimal.NewFromInt(amount)
	r := decimal.RequireFromString(rate)
	return dto.CreateLoanRequest{
		CustomerID:         customerID,
		LoanAmount:         &a,
		LoanPeriodYears:    &years,
		InterestRateYearly: &r,
	}
}

func paymentReq(amount int64, ptype string) dto.RecordPaymentRequest {
	a := decimal.NewFromInt(amount)
	return dto.RecordPaymentRequest{Amount: &a, PaymentType: ptype}
}

// fakeCache cache en memoria para verificar el comportamiento cache-aside.
type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string][]byte)} }

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateLoan
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateLoan_Exitoso(t *testing.T) {
	f := newFixture(t, "CUST_A")

	out, err := f.uc.CreateLoan(context.Background(), createLoanReq("CUST_A", 120000, 1, "10"))
	require.NoError(t, err)

	assert.Equal(t, "LOAN_1", out.LoanID)
	assert.Equal(t, "CUST_A", out.CustomerID)
	assert.True(t, out.TotalAmountPayable.Equal(decimal.NewFromInt(132000)),
		"total fue %s", out.TotalAmountPayable)
	assert.True(t, out.MonthlyEMI.Equal(decimal.NewFromInt(11000)),
		"EMI fue %s", out.MonthlyEMI)
}

func TestCreateLoan_Validaciones(t *testing.T) {
	f := newFixture(t, "CUST_A")
	ctx := context.Background()

	cases := []struct {
		name    string
		in      dto.CreateLoanRequest
		wantErr error
	}{
		{"customer_id vacío", createLoanReq("", 1000, 1, "10"), domain.ErrInvalidInput},
		{"monto cero", createLoanReq("CUST_A", 0, 1, "10"), domain.ErrInvalidInput},
		{"monto negativo", createLoanReq("CUST_A", -10, 1, "10"), domain.ErrInvalidInput},
		{"plazo cero", createLoanReq("CUST_A", 1000, 0, "10"), domain.ErrInvalidInput},
		{"tasa negativa", createLoanReq("CUST_A", 1000, 1, "-1"), domain.ErrInvalidInput},
		{"cliente desconocido", createLoanReq("CUST_Z", 1000, 1, "10"), domain.ErrCustomerNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.CreateLoan(ctx, tc.in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// Campo ausente (puntero nil)
	in := createLoanReq("CUST_A", 1000, 1, "10")
	in.LoanAmount = nil
	_, err := f.uc.CreateLoan(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Tasa 0% es válida: préstamo sin interés.
func TestCreateLoan_TasaCeroEsValida(t *testing.T) {
	f := newFixture(t, "CUST_A")

	out, err := f.uc.CreateLoan(context.Background(), createLoanReq("CUST_A", 12000, 1, "0"))
	require.NoError(t, err)
	assert.True(t, out.TotalAmountPayable.Equal(decimal.NewFromInt(12000)))
	assert.True(t, out.MonthlyEMI.Equal(decimal.NewFromInt(1000)))
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordPayment
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPayment_EMIPorDefecto(t *testing.T) {
	f := newFixture(t, "CUST_A")
	ctx := context.Background()
	loan, err := f.uc.CreateLoan(ctx, createLoanReq("CUST_A", 120000, 1, "10"))
	require.NoError(t, err)

	// payment_type vacío → EMI
	out, err := f.uc.RecordPayment(ctx, loan.LoanID, paymentReq(11000, ""))
	require.NoError(t, err)

	assert.Equal(t, "PAY_2", out.PaymentID, "el generador secuencial ya emitió LOAN_1")
	assert.Equal(t, loan.LoanID, out.LoanID)
	assert.True(t, out.RemainingBalance.Equal(decimal.NewFromInt(121000)))
	assert.Equal(t, 11, out.InstallmentsLeft)
}

func TestRecordPayment_Errores(t *testing.T) {
	f := newFixture(t, "CUST_A")
	ctx := context.Background()
	loan, err := f.uc.CreateLoan(ctx, createLoanReq("CUST_A", 120000, 1, "10"))
	require.NoError(t, err)

	_, err = f.uc.RecordPayment(ctx, "LOAN_NO_EXISTE", paymentReq(100, "EMI"))
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)

	_, err = f.uc.RecordPayment(ctx, loan.LoanID, paymentReq(100, "SEMANAL"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RecordPayment(ctx, loan.LoanID, paymentReq(0, "EMI"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.uc.RecordPayment(ctx, loan.LoanID, paymentReq(999999, "EMI"))
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	in := paymentReq(100, "EMI")
	in.Amount = nil
	_, err = f.uc.RecordPayment(ctx, loan.LoanID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un pago rechazado no deja efectos parciales: ni pago fantasma en el ledger
// ni cambio de saldo.
func TestRecordPayment_RechazoEsAtomico(t *testing.T) {
	f := newFixture(t, "CUST_A")
	ctx := context.Background()
	loan, err := f.uc.CreateLoan(ctx, createLoanReq("CUST_A", 120000, 1, "10"))
	require.NoError(t, err)

	before, err := f.uc.GetLedger(ctx, loan.LoanID)
	require.NoError(t, err)

	_, err = f.uc.RecordPayment(ctx, loan.LoanID, paymentReq(500000, "EMI"))
	require.ErrorIs(t, err, domain.ErrOverpayment)

	after, err := f.uc.GetLedger(ctx, loan.LoanID)
	require.NoError(t, err)

	assert.Equal(t, len(before.Transactions), len(after.Transactions), "no debe quedar pago fantasma")
	assert.True(t, after.BalanceAmount.Equal(before.BalanceAmount))
	assert.True(t, after.AmountPaid.Equal(before.AmountPaid))
	assert.Equal(t, before.EMIsLeft, after.EMIsLeft)
}

// Pagos concurrentes al mismo préstamo: el runner los serializa y el
// invariante AmountPaid+Balance == TotalAmount se preserva.
func TestRecordPayment_ConcurrenciaPreservaInvariante(t *testing.T) {
	f := newFixture(t, "CUST_A")
	ctx := context.Background()
	loan, err := f.uc.CreateLoan(ctx, createLoanReq("CUST_A", 120000, 1, "10"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Todas deben aplicar: 12 EMIs de 11000 saldan exacto
			_, err := f.uc.RecordPayment(ctx, loan.LoanID, paymentReq(11000, "EMI"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	ledger, err := f.uc.GetLedger(ctx, loan.LoanID)
	require.NoError(t, err)
	assert.True(t, ledger.BalanceAmount.IsZero())
	assert.True(t, ledger.AmountPaid.Equal(decimal.NewFromInt(132000)))
	assert.Len(t, ledger.Transactions, 12)
	assert.Equal(t, 0, ledger.EMIsLeft)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetLedger
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLedger_TransaccionesEnOrden(t *testing.T) {
	f := newFixture(t, "CUST_A")
	ctx := context.Background()
	loan, err := f.uc.CreateLoan(ctx, createLoanReq("CUST_A", 1000, 1, "20"))
	require.NoError(t, err)

	_, err = f.uc.RecordPayment(ctx, loan.LoanID, paymentReq(100, "EMI"))
	require.NoError(t, err)
	_, err = f.uc.RecordPayment(ctx, loan.LoanID, paymentReq(300, "LUMP_SUM"))
	require.NoError(t, err)

	out, err := f.uc.GetLedger(ctx, loan.LoanID)
	require.NoError(t, err)

	assert.Equal(t, loan.LoanID, out.LoanID)
	assert.Equal(t, "CUST_A", out.CustomerID)
	require.Len(t, out.Transactions, 2)
	assert.Equal(t, "EMI", out.Transactions[0].Type)
	assert.Equal(t, "LUMP_SUM", out.Transactions[1].Type)
	assert.True(t, out.Transactions[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.AmountPaid.Equal(decimal.NewFromInt(400)))
	assert.True(t, out.BalanceAmount.Equal(decimal.NewFromInt(800)))

	_, err = f.uc.GetLedger(ctx, "LOAN_NO_EXISTE")
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

// El pago invalida las entradas de cache del ledger y del overview.
func TestRecordPayment_InvalidaCache(t *testing.T) {
	f := newFixture(t, "CUST_A")
	ctx := context.Background()
	loan, err := f.uc.CreateLoan(ctx, createLoanReq("CUST_A", 120000, 1, "10"))
	require.NoError(t, err)

	// Poblar el cache
	_, err = f.uc.GetLedger(ctx, loan.LoanID)
	require.NoError(t, err)
	_, err = f.uc.GetOverview(ctx, "CUST_A")
	require.NoError(t, err)

	_, err = f.uc.RecordPayment(ctx, loan.LoanID, paymentReq(11000, "EMI"))
	require.NoError(t, err)

	assert.Contains(t, f.cache.deleted, "ledger:"+loan.LoanID)
	assert.Contains(t, f.cache.deleted, "overview:CUST_A")

	// La siguiente lectura ve el estado nuevo, no el cacheado
	out, err := f.uc.GetLedger(ctx, loan.LoanID)
	require.NoError(t, err)
	assert.True(t, out.BalanceAmount.Equal(decimal.NewFromInt(121000)))
}

// ──────────────────────────────────────────────────────────────────────────────
// GetOverview
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOverview_ListaTodosLosPrestamos(t *testing.T) {
	f := newFixture(t, "CUST_A")
	ctx := context.Background()

	first, err := f.uc.CreateLoan(ctx, createLoanReq("CUST_A", 1000, 1, "20"))
	require.NoError(t, err)
	_, err = f.uc.CreateLoan(ctx, createLoanReq("CUST_A", 120000, 1, "10"))
	require.NoError(t, err)

	// Saldar el primero: el overview lo lista igual
	_, err = f.uc.RecordPayment(ctx, first.LoanID, paymentReq(1200, "LUMP_SUM"))
	require.NoError(t, err)

	out, err := f.uc.GetOverview(ctx, "CUST_A")
	require.NoError(t, err)

	assert.Equal(t, "CUST_A", out.CustomerID)
	assert.Equal(t, 2, out.TotalLoans)
	require.Len(t, out.Loans, 2)
	assert.Equal(t, entity.LoanStatusPaidOff, out.Loans[0].Status)
	assert.Equal(t, entity.LoanStatusActive, out.Loans[1].Status)
	assert.True(t, out.Loans[0].TotalInterest.Equal(decimal.NewFromInt(200)))
	assert.True(t, out.Loans[1].EMIAmount.Equal(decimal.NewFromInt(11000)))
}

func TestGetOverview_NotFound(t *testing.T) {
	f := newFixture(t, "CUST_SIN_PRESTAMOS")
	ctx := context.Background()

	_, err := f.uc.GetOverview(ctx, "CUST_DESCONOCIDO")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	// Cliente existente sin préstamos también es NotFound
	_, err = f.uc.GetOverview(ctx, "CUST_SIN_PRESTAMOS")
	assert.ErrorIs(t, err, domain.ErrNoLoans)
}
