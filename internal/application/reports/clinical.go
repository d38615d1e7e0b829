package reports

import (
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
	"github.com/mariaalvez/vetclinic-api/internal/domain/stock"
)

// Estados de la próxima dosis (revacunación o readministración).
const (
	ScheduleOK           = "OK"            // falta más que la ventana de aviso
	ScheduleDueSoon      = "DUE_SOON"      // vence dentro de la ventana
	ScheduleOverdue      = "OVERDUE"       // la fecha ya pasó
	ScheduleNotScheduled = "NOT_SCHEDULED" // sin próxima dosis definida
)

// scheduleStatus proyecta el estado de una próxima dosis contra una fecha de
// referencia, con la misma ventana de aviso que la vigencia de lotes.
func scheduleStatus(due *time.Time, today time.Time) string {
	if due == nil {
		return ScheduleNotScheduled
	}
	days := stock.DaysUntil(*due, today)
	switch {
	case days < 0:
		return ScheduleOverdue
	case days <= stock.ExpiryWarningDays:
		return ScheduleDueSoon
	default:
		return ScheduleOK
	}
}

// VaccinationRow un registro del reporte de vacunación.
type VaccinationRow struct {
	Vaccination *entity.Vaccination
	Animal      *entity.Animal
	Lot         *entity.Lot
	Status      string
	// DaysToNext días hasta la revacunación; negativo si está atrasada.
	// Solo tiene sentido cuando Status != ScheduleNotScheduled.
	DaysToNext int
}

// Vaccinations genera el reporte de vacunación con el estado de revacunación
// proyectado a la fecha de referencia.
func (uc *UseCase) Vaccinations(filter repository.VaccinationFilter, asOf time.Time, limit, offset int) ([]VaccinationRow, error) {
	regs, err := uc.vaccinations.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	rows := make([]VaccinationRow, 0, len(regs))
	for _, v := range regs {
		animal, err := uc.animals.GetByID(v.AnimalID)
		if err != nil {
			return nil, err
		}
		lot, err := uc.lots.GetByID(v.LotID)
		if err != nil {
			return nil, err
		}
		row := VaccinationRow{
			Vaccination: v,
			Animal:      animal,
			Lot:         lot,
			Status:      scheduleStatus(v.RevaccinationDate, asOf),
		}
		if v.RevaccinationDate != nil {
			row.DaysToNext = stock.DaysUntil(*v.RevaccinationDate, asOf)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DewormingRow un registro del reporte de vermifugación.
type DewormingRow struct {
	Deworming  *entity.Deworming
	Animal     *entity.Animal
	Lot        *entity.Lot
	Status     string
	DaysToNext int
}

// Dewormings genera el reporte de vermifugación con el estado de
// readministración proyectado a la fecha de referencia.
func (uc *UseCase) Dewormings(filter repository.DewormingFilter, asOf time.Time, limit, offset int) ([]DewormingRow, error) {
	regs, err := uc.dewormings.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	rows := make([]DewormingRow, 0, len(regs))
	for _, d := range regs {
		animal, err := uc.animals.GetByID(d.AnimalID)
		if err != nil {
			return nil, err
		}
		lot, err := uc.lots.GetByID(d.LotID)
		if err != nil {
			return nil, err
		}
		row := DewormingRow{
			Deworming: d,
			Animal:    animal,
			Lot:       lot,
			Status:    scheduleStatus(d.ReadministerBefore, asOf),
		}
		if d.ReadministerBefore != nil {
			row.DaysToNext = stock.DaysUntil(*d.ReadministerBefore, asOf)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
