// Package pdf genera la hoja imprimible de una orden de trabajo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: ORDEN DE TRABAJO     │  N° OT + Fecha + Estado      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UNIDAD / TÉCNICO ASIGNADO / REVISOR                         │
//	│  DESCRIPCIÓN                                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cant. | Unidad | Costo Unit. | Total      │
//	│  TOTAL                                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OBSERVACIONES + QR  │  Firmas técnico / revisor             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/operaciones-api/internal/application/workorder"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
)

var _ workorder.PDFGenerator = (*WorkOrderPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// statusLabels texto impreso para cada estado.
var statusLabels = map[string]string{
	entity.WorkOrderPending:    "PENDIENTE",
	entity.WorkOrderInProgress: "EN PROCESO",
	entity.WorkOrderCompleted:  "COMPLETADA",
	entity.WorkOrderCancelled:  "CANCELADA",
}

var upperES = cases.Upper(language.Spanish)

// ── Generator ─────────────────────────────────────────────────────────────────

// WorkOrderPDFGenerator implementa workorder.PDFGenerator usando Maroto v2.
type WorkOrderPDFGenerator struct {
	company string
}

// NewWorkOrderPDFGenerator construye el generador; company se imprime en el encabezado.
func NewWorkOrderPDFGenerator(company string) *WorkOrderPDFGenerator {
	return &WorkOrderPDFGenerator{company: company}
}

// GenerateWorkOrderPDF genera el PDF de la orden (con usuarios y líneas cargados) y devuelve sus bytes.
func (g *WorkOrderPDFGenerator) GenerateWorkOrderPDF(_ context.Context, o *entity.WorkOrder) ([]byte, error) {
	if o == nil {
		return nil, fmt.Errorf("pdf: orden nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de trabajo "+o.Number, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(assignmentRow(o))
	m.AddRows(descriptionRow(o.Description))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(o.Products)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(o.Total()))

	m.AddRows(line.NewRow(4))
	m.AddRows(footerRow(o))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *WorkOrderPDFGenerator) headerRow(o *entity.WorkOrder) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.company, "Operaciones"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ORDEN DE TRABAJO", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(o.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+o.OrderDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+statusLabel(o.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 13, Color: colorPrimary,
			}),
		),
	)
}

func assignmentRow(o *entity.WorkOrder) core.Row {
	block := func(title, value string) core.Col {
		return col.New(4).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 9, Top: 6}),
		)
	}
	return row.New(13).Add(
		block("UNIDAD", nonEmpty(o.UnitNumber, "—")),
		block("TÉCNICO ASIGNADO", userName(o.AssignedUser)),
		block("REVISOR", userName(o.ReviewerUser)),
	)
}

func descriptionRow(desc string) core.Row {
	return row.New(16).Add(col.New(12).Add(
		text.New("DESCRIPCIÓN DEL TRABAJO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(nonEmpty(desc, "—"), props.Text{Size: 9, Top: 6}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 5, align.Left),
		h("Cant.", 1, align.Center),
		h("Unidad", 2, align.Center),
		h("Costo Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableLineRows una fila por producto consumido.
func tableLineRows(lines []entity.WorkOrderProduct) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(l.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New("$"+formatMoney(l.UnitCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(l.TotalCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(4).Add(text.New("$"+formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// footerRow observaciones con QR del número de orden y espacio para firmas.
func footerRow(o *entity.WorkOrder) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(o.Number, props.Rect{Percent: 90, Center: true})),
		col.New(5).Add(
			text.New("OBSERVACIONES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Left: 2}),
			text.New(nonEmpty(o.Notes, "—"), props.Text{Size: 8, Top: 6, Left: 2, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("______________________", props.Text{Size: 8, Align: align.Center, Top: 12}),
			text.New("Firma técnico", props.Text{Size: 7, Align: align.Center, Top: 16, Color: colorGray}),
			text.New("______________________", props.Text{Size: 8, Align: align.Center, Top: 30}),
			text.New("Firma revisor", props.Text{Size: 7, Align: align.Center, Top: 34, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(s string) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return upperES.String(s)
}

func userName(u *entity.User) string {
	if u == nil {
		return "—"
	}
	return u.FullName()
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney dos decimales con puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}
