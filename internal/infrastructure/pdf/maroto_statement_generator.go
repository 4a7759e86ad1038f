// Package pdf implementa la generación del estado de cuenta de un préstamo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Estado de cuenta  │  N° Préstamo + Fecha emisión    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TITULAR: Nombre + ID                                        │
//	│  TÉRMINOS: Principal | Tasa | Plazo | EMI                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Transacción | Tipo | Monto                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Pagado / Saldo / Cuotas restantes / Estado         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	applending "github.com/tu-usuario/prestamos-pro/internal/application/lending"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ applending.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// MarotoStatementGenerator implementa lending.StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct{}

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator { return &MarotoStatementGenerator{} }

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(
	_ context.Context,
	loan *entity.Loan,
	customer *entity.Customer,
	payments []*entity.Payment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de Cuenta de Préstamo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(loan))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(holderRow(customer))
	m.AddRows(termsRow(loan))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(payments) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("Sin pagos registrados.", props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: colorGray,
			}),
		)))
	}
	for _, r := range paymentRows(payments) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(loan))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° de préstamo + fecha de emisión (der).
func headerRow(loan *entity.Loan) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Préstamo a interés simple", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(loan.ID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Emitido: "+loan.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// holderRow: datos del titular.
func holderRow(customer *entity.Customer) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("TITULAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   ID: %s", customer.Name, customer.ID), props.Text{
				Size: 9, Top: 7,
			}),
		),
	)
}

// termsRow: términos fijos del préstamo.
func termsRow(loan *entity.Loan) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("TÉRMINOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf(
				"Principal: $%s   |   Tasa: %s%% anual   |   Plazo: %d años   |   EMI: $%s",
				loan.Principal.StringFixed(2),
				loan.InterestRate.String(),
				loan.TermYears,
				loan.MonthlyInstallment.StringFixed(2),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de pagos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Transacción", 6, align.Left),
		h("Tipo", 2, align.Center),
		h("Monto", 2, align.Right),
	)
}

// paymentRows: una fila por pago, en orden de aplicación.
func paymentRows(payments []*entity.Payment) []core.Row {
	result := make([]core.Row, 0, len(payments))
	for _, p := range payments {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				p.PaidAt.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(6).Add(text.New(
				p.ID,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				p.Type,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+p.Amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de cierre con pagado, saldo, cuotas y estado.
func totalsRow(loan *entity.Loan) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grandLabel := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: top,
		})
	}
	grandValue := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	return row.New(30).Add(
		col.New(4), // espacio izquierdo
		col.New(4).Add(
			label("Total a pagar:", 1),
			label("Pagado:", 8),
			label("Cuotas restantes:", 15),
			grandLabel("SALDO PENDIENTE:", 23),
		),
		col.New(4).Add(
			value("$"+loan.TotalAmount.StringFixed(2), 1),
			value("$"+loan.AmountPaid.StringFixed(2), 8),
			value(fmt.Sprintf("%d (%s)", loan.InstallmentsLeft, loan.Status), 15),
			grandValue("$"+loan.Balance.StringFixed(2), 23),
		),
	)
}
