package idgen

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Prefijos cosméticos de los identificadores. Los IDs son strings opacos;
// el prefijo solo facilita leer logs y respuestas.
const (
	PrefixCustomer = "CUST"
	PrefixLoan     = "LOAN"
	PrefixPayment  = "PAY"
)

// Generator genera identificadores únicos y opacos. Se inyecta en los casos
// de uso para poder usar IDs deterministas en tests.
type Generator interface {
	NewID(prefix string) string
}

// UUIDGenerator implementación por defecto: prefijo + UUID v4 sin guiones.
type UUIDGenerator struct{}

// NewUUIDGenerator construye el generador.
func NewUUIDGenerator() *UUIDGenerator { return &UUIDGenerator{} }

// NewID genera un ID con la forma PREFIX_32hex.
func (g *UUIDGenerator) NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s_%s", prefix, raw)
}

// Sequential genera IDs PREFIX_1, PREFIX_2, ... Para tests.
type Sequential struct {
	n atomic.Uint64
}

// NewSequential construye el generador determinista.
func NewSequential() *Sequential { return &Sequential{} }

// NewID genera el siguiente ID de la secuencia.
func (g *Sequential) NewID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, g.n.Add(1))
}
