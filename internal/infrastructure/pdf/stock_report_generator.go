// Package pdf implementa la versión imprimible del reporte de stock de
// medicamentos usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de referencia                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total / con stock / sin stock / vencidos / próx.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Medicamento | Lote | Categoría | Vence | Saldo | Est.│
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/mariaalvez/vetclinic-api/internal/application/reports"
	"github.com/mariaalvez/vetclinic-api/internal/domain/stock"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 74}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWarn    = &props.Color{Red: 190, Green: 130, Blue: 0}
)

// StockReportGenerator produce la versión PDF del reporte de stock.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) Generate(rep *reports.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock de medicamentos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range rep.Rows {
		m.AddRows(lotRow(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(rep *reports.StockReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de stock de medicamentos", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Fecha de referencia: "+rep.AsOf.Format("02/01/2006"), props.Text{
				Size: 9, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func summaryRow(s reports.StockSummary) core.Row {
	cell := func(label string, value int, color *props.Color) core.Col {
		return col.New(2).Add(
			text.New(fmt.Sprintf("%d", value), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: color, Top: 1,
			}),
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 7}),
		)
	}
	return row.New(13).Add(
		cell("Lotes", s.Total, colorPrimary),
		cell("Con stock", s.WithStock, colorPrimary),
		cell("Sin stock", s.OutOfStock, colorGray),
		cell("Vencidos", s.Expired, colorDanger),
		cell("Por vencer", s.ExpiringSoon, colorWarn),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8}))
	}
	return row.New(7).Add(
		header(4, "Medicamento"),
		header(2, "Lote"),
		header(2, "Categoría"),
		header(2, "Vencimiento"),
		header(1, "Saldo"),
		header(1, "Estado"),
	)
}

func lotRow(r reports.StockRow) core.Row {
	statusColor := colorGray
	switch r.Status {
	case stock.StatusExpired:
		statusColor = colorDanger
	case stock.StatusExpiringSoon:
		statusColor = colorWarn
	}
	cell := func(size int, value string) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8}))
	}
	return row.New(6).Add(
		cell(4, r.Lot.Medication),
		cell(2, r.Lot.LotCode),
		cell(2, categoryLabel(r.Lot.Category)),
		cell(2, r.Lot.ExpiryDate.Format("02/01/2006")),
		col.New(1).Add(text.New(fmt.Sprintf("%d", r.Lot.Quantity), props.Text{Size: 8, Align: align.Right})),
		col.New(1).Add(text.New(statusLabel(r.Status), props.Text{Size: 8, Color: statusColor})),
	)
}

func categoryLabel(category string) string {
	switch category {
	case "VACCINE":
		return "Vacuna"
	case "DEWORMER":
		return "Vermífugo"
	default:
		return "Medicamento"
	}
}

func statusLabel(status string) string {
	switch status {
	case stock.StatusExpired:
		return "Vencido"
	case stock.StatusExpiringSoon:
		return "Por vencer"
	default:
		return "OK"
	}
}
