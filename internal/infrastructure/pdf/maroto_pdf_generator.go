// Package pdf genera la orden de compra sugerida en PDF, agrupada por proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR PROVEEDOR:                                             │
//	│    Nombre del proveedor                                     │
//	│    TABLA: SKU | Producto | Actual | Reorden | Sugerido |    │
//	│           P.Unit | Estimado                                 │
//	│    Subtotal del proveedor                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL ESTIMADO DE LA ORDEN                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jortega/stock-management-api/internal/application/dto"
	appstock "github.com/jortega/stock-management-api/internal/application/stock"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appstock.PurchaseOrderPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa stock.PurchaseOrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Render genera el PDF de la orden de compra sugerida y devuelve sus bytes.
func (g *MarotoPDFGenerator) Render(groups []dto.PurchaseSuggestionGroup, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra Sugerida", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	grandTotal := decimal.Zero
	for _, group := range groups {
		m.AddRows(supplierRow(group))
		m.AddRows(tableHeaderRow())
		for _, r := range tableDetailRows(group.Products) {
			m.AddRows(r)
		}
		m.AddRows(subtotalRow(group.EstimatedTotal))
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
		grandTotal = grandTotal.Add(group.EstimatedTotal)
	}

	if len(groups) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin productos bajo punto de reorden.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	} else {
		m.AddRows(grandTotalRow(grandTotal))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("ORDEN DE COMPRA SUGERIDA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Productos en o bajo punto de reorden, agrupados por proveedor", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generada: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// supplierRow: nombre del proveedor como cabecera de su sección.
func supplierRow(group dto.PurchaseSuggestionGroup) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(group.SupplierName, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
		}),
	))
}

// tableHeaderRow: cabecera de la tabla de productos sugeridos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Actual", 1, align.Right),
		h("Reorden", 1, align.Right),
		h("Sugerido", 2, align.Right),
		h("P.Unit", 1, align.Right),
		h("Estimado", 2, align.Right),
	)
}

// tableDetailRows: una fila por producto sugerido.
func tableDetailRows(products []dto.PurchaseSuggestionProduct) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(6).Add(
			cell(p.SKU, 2, align.Left),
			cell(p.ProductName, 3, align.Left),
			cell(fmt.Sprintf("%d", p.CurrentQuantity), 1, align.Right),
			cell(fmt.Sprintf("%d", p.ReorderPoint), 1, align.Right),
			cell(fmt.Sprintf("%d", p.SuggestedQuantity), 2, align.Right),
			cell("$"+p.UnitPrice.StringFixed(2), 1, align.Right),
			cell("$"+p.EstimatedCost.StringFixed(2), 2, align.Right),
		))
	}
	return result
}

// subtotalRow: subtotal estimado del proveedor.
func subtotalRow(total decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(9).Add(text.New("Subtotal proveedor:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 2,
		})),
		col.New(3).Add(text.New("$"+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

// grandTotalRow: total estimado de toda la orden.
func grandTotalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New("TOTAL ESTIMADO:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}
