// Package memory implementa el driver de almacenamiento por defecto: registros
// transitorios en el proceso, sin durabilidad. Un RWMutex único protege los
// tres conjuntos; las lecturas retornan copias (snapshots) y el TxRunner
// retiene el write lock durante toda la mutación, de modo que los pagos sobre
// un mismo préstamo quedan serializados.
package memory

import (
	"sync"

	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// Store conjunto en memoria de clientes, préstamos y pagos.
type Store struct {
	mu sync.RWMutex

	customers     map[string]entity.Customer
	customerOrder []string // orden de alta, para List estable

	loans           map[string]entity.Loan
	loansByCustomer map[string][]string // orden de emisión

	payments map[string][]entity.Payment // por loanID, orden de aplicación
}

// NewStore construye el store vacío.
func NewStore() *Store {
	return &Store{
		customers:       make(map[string]entity.Customer),
		loans:           make(map[string]entity.Loan),
		loansByCustomer: make(map[string][]string),
		payments:        make(map[string][]entity.Payment),
	}
}

// ── Operaciones sin lock (el caller debe sostener s.mu) ──────────────────────

func (s *Store) createCustomerLocked(c entity.Customer) bool {
	if _, ok := s.customers[c.ID]; ok {
		return false
	}
	s.customers[c.ID] = c
	s.customerOrder = append(s.customerOrder, c.ID)
	return true
}

func (s *Store) getCustomerLocked(id string) (entity.Customer, bool) {
	c, ok := s.customers[id]
	return c, ok
}

func (s *Store) createLoanLocked(l entity.Loan) bool {
	if _, ok := s.loans[l.ID]; ok {
		return false
	}
	s.loans[l.ID] = l
	s.loansByCustomer[l.CustomerID] = append(s.loansByCustomer[l.CustomerID], l.ID)
	return true
}

func (s *Store) getLoanLocked(id string) (entity.Loan, bool) {
	l, ok := s.loans[id]
	return l, ok
}

func (s *Store) updateLoanLocked(l entity.Loan) bool {
	if _, ok := s.loans[l.ID]; !ok {
		return false
	}
	s.loans[l.ID] = l
	return true
}

func (s *Store) listLoansByCustomerLocked(customerID string) []entity.Loan {
	ids := s.loansByCustomer[customerID]
	out := make([]entity.Loan, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.loans[id])
	}
	return out
}

func (s *Store) appendPaymentLocked(p entity.Payment) {
	s.payments[p.LoanID] = append(s.payments[p.LoanID], p)
}

func (s *Store) listPaymentsLocked(loanID string) []entity.Payment {
	src := s.payments[loanID]
	out := make([]entity.Payment, len(src))
	copy(out, src)
	return out
}
