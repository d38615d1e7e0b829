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

	"github.com/mariaalvez/vetclinic-api/internal/application/reports"
)

// ServiceReportGenerator produce la versión PDF del reporte de servicios
// tercerizados.
type ServiceReportGenerator struct{}

// NewServiceReportGenerator construye el generador.
func NewServiceReportGenerator() *ServiceReportGenerator { return &ServiceReportGenerator{} }

// Generate genera el PDF y devuelve sus bytes. Además de la tabla suma el
// valor total de los servicios con precio informado.
func (g *ServiceReportGenerator) Generate(rows []reports.ServiceRow, asOf time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de servicios tercerizados", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(reportTitleRow("Reporte de servicios tercerizados", asOf, len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(serviceTableHeader())
	total := decimal.Zero
	for _, r := range rows {
		m.AddRows(serviceRow(r))
		if r.Record.Price != nil {
			total = total.Add(*r.Record.Price)
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(7).Add(
		col.New(9).Add(text.New("Total facturado", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right})),
		col.New(3).Add(text.New("R$ "+total.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func serviceTableHeader() core.Row {
	header := func(size int, label string) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8}))
	}
	return row.New(7).Add(
		header(2, "Fecha"),
		header(3, "Empresa"),
		header(2, "Animal"),
		header(3, "Procedimientos"),
		header(2, "Valor"),
	)
}

func serviceRow(r reports.ServiceRow) core.Row {
	cell := func(size int, value string) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8}))
	}
	companyName := r.Record.CompanyID
	if r.Company != nil {
		companyName = r.Company.Name
	}
	animalName := r.Record.AnimalID
	if r.Animal != nil {
		animalName = r.Animal.Name
	}
	price := "-"
	if r.Record.Price != nil {
		price = "R$ " + r.Record.Price.StringFixed(2)
	}
	notes := r.Record.ProceduresNote
	if notes == "" {
		notes = r.Record.MedicationsNote
	}
	return row.New(6).Add(
		cell(2, r.Record.PerformedAt.Format("02/01/2006 15:04")),
		cell(3, companyName),
		cell(2, animalName),
		cell(3, notes),
		col.New(2).Add(text.New(price, props.Text{Size: 8, Align: align.Right})),
	)
}
