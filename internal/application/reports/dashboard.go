package reports

import (
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/stock"
)

// Dashboard es la foto del panel gerencial a una fecha de referencia:
// agenda del día y de la semana, lotes en situación crítica y próximas
// dosis pendientes.
type Dashboard struct {
	AsOf              time.Time
	AppointmentsToday []*entity.Appointment
	AppointmentsWeek  []*entity.Appointment
	Stock             StockSummary
	// CriticalLots lotes vencidos o por vencer que aún tienen saldo.
	CriticalLots []StockRow
	// PendingVaccinations revacunaciones vencidas o dentro de la ventana de aviso.
	PendingVaccinations []VaccinationRow
	// PendingDewormings readministraciones vencidas o dentro de la ventana de aviso.
	PendingDewormings []DewormingRow
}

// BuildDashboard arma el panel gerencial a la fecha de referencia dada.
func (uc *UseCase) BuildDashboard(asOf time.Time) (*Dashboard, error) {
	dayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekEnd := dayStart.AddDate(0, 0, 7)

	today, err := uc.appointments.ListBetween(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	week, err := uc.appointments.ListBetween(dayStart, weekEnd)
	if err != nil {
		return nil, err
	}

	stockReport, err := uc.Stock(StockFilter{}, asOf)
	if err != nil {
		return nil, err
	}
	var critical []StockRow
	for _, row := range stockReport.Rows {
		if row.Status != stock.StatusOK && row.Lot.Quantity > 0 {
			critical = append(critical, row)
		}
	}

	window := asOf.AddDate(0, 0, stock.ExpiryWarningDays)
	pendingVacc, err := uc.pendingVaccinations(asOf, window)
	if err != nil {
		return nil, err
	}
	pendingDew, err := uc.pendingDewormings(asOf, window)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		AsOf:                asOf,
		AppointmentsToday:   today,
		AppointmentsWeek:    week,
		Stock:               stockReport.Summary,
		CriticalLots:        critical,
		PendingVaccinations: pendingVacc,
		PendingDewormings:   pendingDew,
	}, nil
}

func (uc *UseCase) pendingVaccinations(asOf, window time.Time) ([]VaccinationRow, error) {
	due, err := uc.vaccinations.ListDueBefore(window)
	if err != nil {
		return nil, err
	}
	rows := make([]VaccinationRow, 0, len(due))
	for _, v := range due {
		animal, err := uc.animals.GetByID(v.AnimalID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, VaccinationRow{
			Vaccination: v,
			Animal:      animal,
			Status:      scheduleStatus(v.RevaccinationDate, asOf),
			DaysToNext:  stock.DaysUntil(*v.RevaccinationDate, asOf),
		})
	}
	return rows, nil
}

func (uc *UseCase) pendingDewormings(asOf, window time.Time) ([]DewormingRow, error) {
	due, err := uc.dewormings.ListDueBefore(window)
	if err != nil {
		return nil, err
	}
	rows := make([]DewormingRow, 0, len(due))
	for _, d := range due {
		animal, err := uc.animals.GetByID(d.AnimalID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, DewormingRow{
			Deworming:  d,
			Animal:     animal,
			Status:     scheduleStatus(d.ReadministerBefore, asOf),
			DaysToNext: stock.DaysUntil(*d.ReadministerBefore, asOf),
		})
	}
	return rows, nil
}
