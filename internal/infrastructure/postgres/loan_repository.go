package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/prestamos-pro/internal/domain"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/internal/domain/repository"
)

var _ repository.LoanRepository = (*LoanRepo)(nil)

const loanColumns = `id, customer_id, principal, interest_rate, term_years,
	total_interest, total_amount, monthly_installment,
	amount_paid, balance, installments_left, status, created_at, updated_at`

// LoanRepo implementación de LoanRepository sobre PostgreSQL (usable con pool o tx).
type LoanRepo struct {
	q Querier
}

// NewLoanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoanRepository(q Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

// Create persiste un préstamo nuevo; ErrDuplicate si el ID ya existe.
func (r *LoanRepo) Create(loan *entity.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		loan.ID, loan.CustomerID, loan.Principal, loan.InterestRate, loan.TermYears,
		loan.TotalInterest, loan.TotalAmount, loan.MonthlyInstallment,
		loan.AmountPaid, loan.Balance, loan.InstallmentsLeft, loan.Status,
		loan.CreatedAt, loan.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo por ID; (nil, nil) si no existe.
func (r *LoanRepo) GetByID(id string) (*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene el préstamo bloqueando su fila (FOR UPDATE).
// Dentro de una transacción serializa los pagos concurrentes al mismo préstamo.
func (r *LoanRepo) GetByIDForUpdate(id string) (*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListByCustomer lista los préstamos del cliente en orden de emisión.
func (r *LoanRepo) ListByCustomer(customerID string) ([]*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Loan
	for rows.Next() {
		var l entity.Loan
		if err := scanLoan(rows, &l); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update persiste los campos mutables del préstamo (los términos no cambian).
func (r *LoanRepo) Update(loan *entity.Loan) error {
	query := `
		UPDATE loans
		SET amount_paid = $2, balance = $3, installments_left = $4, status = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		loan.ID, loan.AmountPaid, loan.Balance, loan.InstallmentsLeft, loan.Status, loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}

func (r *LoanRepo) scanOne(row pgx.Row) (*entity.Loan, error) {
	var l entity.Loan
	if err := scanLoan(row, &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return &l, nil
}

func scanLoan(row pgx.Row, l *entity.Loan) error {
	return row.Scan(
		&l.ID, &l.CustomerID, &l.Principal, &l.InterestRate, &l.TermYears,
		&l.TotalInterest, &l.TotalAmount, &l.MonthlyInstallment,
		&l.AmountPaid, &l.Balance, &l.InstallmentsLeft, &l.Status,
		&l.CreatedAt, &l.UpdatedAt,
	)
}
