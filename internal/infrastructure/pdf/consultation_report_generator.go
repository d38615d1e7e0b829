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

	"github.com/mariaalvez/vetclinic-api/internal/application/reports"
)

// ConsultationReportGenerator produce la versión PDF del reporte de consultas.
type ConsultationReportGenerator struct{}

// NewConsultationReportGenerator construye el generador.
func NewConsultationReportGenerator() *ConsultationReportGenerator {
	return &ConsultationReportGenerator{}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *ConsultationReportGenerator) Generate(rows []reports.ConsultationRow, asOf time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de consultas clínicas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(reportTitleRow("Reporte de consultas clínicas", asOf, len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(consultationTableHeader())
	for _, r := range rows {
		m.AddRows(consultationRow(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// reportTitleRow encabezado común de los reportes tabulares: título, fecha
// de emisión y cantidad de filas.
func reportTitleRow(title string, asOf time.Time, total int) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d registros", total), props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Emitido: "+asOf.Format("02/01/2006"), props.Text{
				Size: 9, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func consultationTableHeader() core.Row {
	header := func(size int, label string) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8}))
	}
	return row.New(7).Add(
		header(2, "Fecha"),
		header(2, "Animal"),
		header(3, "Veterinario"),
		header(2, "Tipo"),
		header(3, "Diagnóstico"),
	)
}

func consultationRow(r reports.ConsultationRow) core.Row {
	cell := func(size int, value string) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8}))
	}
	animalName := r.Consultation.AnimalID
	if r.Animal != nil {
		animalName = r.Animal.Name
	}
	vetName := ""
	if r.Veterinarian != nil {
		vetName = r.Veterinarian.Name
	}
	return row.New(6).Add(
		cell(2, r.Consultation.AttendedAt.Format("02/01/2006 15:04")),
		cell(2, animalName),
		cell(3, vetName),
		cell(2, r.Consultation.Type),
		cell(3, r.Consultation.Diagnosis),
	)
}
