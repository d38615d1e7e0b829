package dto

import (
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/application/reports"
)

// StockReportRequest filtros del reporte de stock (query params).
type StockReportRequest struct {
	Medication string `query:"medication"`
	LotCode    string `query:"lot_code"`
	Category   string `query:"category" validate:"omitempty,oneof=VACCINE DEWORMER MEDICATION"`
	Status     string `query:"status" validate:"omitempty,oneof=OK EXPIRING_SOON EXPIRED"`
	ExpiryFrom string `query:"expiry_from" validate:"omitempty,datetime=2006-01-02"`
	ExpiryTo   string `query:"expiry_to" validate:"omitempty,datetime=2006-01-02"`
}

// StockSummaryResponse totales del reporte de stock.
type StockSummaryResponse struct {
	Total        int `json:"total"`
	WithStock    int `json:"with_stock"`
	OutOfStock   int `json:"out_of_stock"`
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiring_soon"`
}

// StockReportResponse reporte de stock con proyección de vigencia.
type StockReportResponse struct {
	AsOf    time.Time            `json:"as_of"`
	Summary StockSummaryResponse `json:"summary"`
	Items   []LotResponse        `json:"items"`
}

// StockReportFromResult arma la respuesta HTTP del reporte de stock.
func StockReportFromResult(rep *reports.StockReport) *StockReportResponse {
	out := &StockReportResponse{
		AsOf: rep.AsOf,
		Summary: StockSummaryResponse{
			Total:        rep.Summary.Total,
			WithStock:    rep.Summary.WithStock,
			OutOfStock:   rep.Summary.OutOfStock,
			Expired:      rep.Summary.Expired,
			ExpiringSoon: rep.Summary.ExpiringSoon,
		},
		Items: make([]LotResponse, 0, len(rep.Rows)),
	}
	for _, row := range rep.Rows {
		item := LotFromEntity(row.Lot)
		item.Status = row.Status
		item.DaysToExpiry = row.DaysToExpiry
		out.Items = append(out.Items, *item)
	}
	return out
}

// ScheduleRow una fila de los reportes de vacunación o vermifugación.
type ScheduleRow struct {
	ID         string     `json:"id"`
	AnimalID   string     `json:"animal_id"`
	AnimalName string     `json:"animal_name"`
	Medication string     `json:"medication"`
	LotCode    string     `json:"lot_code"`
	AppliedAt  time.Time  `json:"applied_at"`
	NextDue    *time.Time `json:"next_due,omitempty"`
	Status     string     `json:"status"`
	DaysToNext int        `json:"days_to_next"`
}

// VaccinationReportResponse reporte de vacunación.
type VaccinationReportResponse struct {
	AsOf  time.Time     `json:"as_of"`
	Items []ScheduleRow `json:"items"`
}

// VaccinationReportFromRows arma la respuesta del reporte de vacunación.
func VaccinationReportFromRows(asOf time.Time, rows []reports.VaccinationRow) *VaccinationReportResponse {
	out := &VaccinationReportResponse{AsOf: asOf, Items: make([]ScheduleRow, 0, len(rows))}
	for _, r := range rows {
		item := ScheduleRow{
			ID:         r.Vaccination.ID,
			AnimalID:   r.Vaccination.AnimalID,
			AppliedAt:  r.Vaccination.AppliedAt,
			NextDue:    r.Vaccination.RevaccinationDate,
			Status:     r.Status,
			DaysToNext: r.DaysToNext,
		}
		if r.Animal != nil {
			item.AnimalName = r.Animal.Name
		}
		if r.Lot != nil {
			item.Medication = r.Lot.Medication
			item.LotCode = r.Lot.LotCode
		}
		out.Items = append(out.Items, item)
	}
	return out
}

// DewormingReportResponse reporte de vermifugación.
type DewormingReportResponse struct {
	AsOf  time.Time     `json:"as_of"`
	Items []ScheduleRow `json:"items"`
}

// DewormingReportFromRows arma la respuesta del reporte de vermifugación.
func DewormingReportFromRows(asOf time.Time, rows []reports.DewormingRow) *DewormingReportResponse {
	out := &DewormingReportResponse{AsOf: asOf, Items: make([]ScheduleRow, 0, len(rows))}
	for _, r := range rows {
		item := ScheduleRow{
			ID:         r.Deworming.ID,
			AnimalID:   r.Deworming.AnimalID,
			AppliedAt:  r.Deworming.AdministeredAt,
			NextDue:    r.Deworming.ReadministerBefore,
			Status:     r.Status,
			DaysToNext: r.DaysToNext,
		}
		if r.Animal != nil {
			item.AnimalName = r.Animal.Name
		}
		if r.Lot != nil {
			item.Medication = r.Lot.Medication
			item.LotCode = r.Lot.LotCode
		}
		out.Items = append(out.Items, item)
	}
	return out
}

// ConsultationReportRow una fila del reporte de consultas.
type ConsultationReportRow struct {
	ID               string    `json:"id"`
	AttendedAt       time.Time `json:"attended_at"`
	AnimalID         string    `json:"animal_id"`
	AnimalName       string    `json:"animal_name"`
	TutorID          string    `json:"tutor_id,omitempty"`
	VeterinarianName string    `json:"veterinarian_name"`
	Type             string    `json:"type,omitempty"`
	Diagnosis        string    `json:"diagnosis"`
}

// ConsultationReportResponse reporte de consultas clínicas.
type ConsultationReportResponse struct {
	Items []ConsultationReportRow `json:"items"`
}

// ConsultationReportFromRows arma la respuesta del reporte de consultas.
func ConsultationReportFromRows(rows []reports.ConsultationRow) *ConsultationReportResponse {
	out := &ConsultationReportResponse{Items: make([]ConsultationReportRow, 0, len(rows))}
	for _, r := range rows {
		item := ConsultationReportRow{
			ID:         r.Consultation.ID,
			AttendedAt: r.Consultation.AttendedAt,
			AnimalID:   r.Consultation.AnimalID,
			Type:       r.Consultation.Type,
			Diagnosis:  r.Consultation.Diagnosis,
		}
		if r.Animal != nil {
			item.AnimalName = r.Animal.Name
			item.TutorID = r.Animal.TutorID
		}
		if r.Veterinarian != nil {
			item.VeterinarianName = r.Veterinarian.Name
		}
		out.Items = append(out.Items, item)
	}
	return out
}

// ServiceReportRow una fila del reporte de servicios tercerizados.
type ServiceReportRow struct {
	ID              string    `json:"id"`
	PerformedAt     time.Time `json:"performed_at"`
	CompanyID       string    `json:"company_id"`
	CompanyName     string    `json:"company_name"`
	AnimalID        string    `json:"animal_id"`
	AnimalName      string    `json:"animal_name"`
	Price           string    `json:"price,omitempty"`
	MedicationsNote string    `json:"medications_note,omitempty"`
	ProceduresNote  string    `json:"procedures_note,omitempty"`
}

// ServiceReportResponse reporte de servicios tercerizados.
type ServiceReportResponse struct {
	Items []ServiceReportRow `json:"items"`
}

// ServiceReportFromRows arma la respuesta del reporte de servicios.
func ServiceReportFromRows(rows []reports.ServiceRow) *ServiceReportResponse {
	out := &ServiceReportResponse{Items: make([]ServiceReportRow, 0, len(rows))}
	for _, r := range rows {
		item := ServiceReportRow{
			ID:              r.Record.ID,
			PerformedAt:     r.Record.PerformedAt,
			CompanyID:       r.Record.CompanyID,
			AnimalID:        r.Record.AnimalID,
			MedicationsNote: r.Record.MedicationsNote,
			ProceduresNote:  r.Record.ProceduresNote,
		}
		if r.Record.Price != nil {
			item.Price = r.Record.Price.StringFixed(2)
		}
		if r.Company != nil {
			item.CompanyName = r.Company.Name
		}
		if r.Animal != nil {
			item.AnimalName = r.Animal.Name
		}
		out.Items = append(out.Items, item)
	}
	return out
}

// DashboardResponse panel gerencial.
type DashboardResponse struct {
	AsOf                time.Time             `json:"as_of"`
	AppointmentsToday   []AppointmentResponse `json:"appointments_today"`
	AppointmentsWeek    []AppointmentResponse `json:"appointments_week"`
	Stock               StockSummaryResponse  `json:"stock"`
	CriticalLots        []LotResponse         `json:"critical_lots"`
	PendingVaccinations []ScheduleRow         `json:"pending_vaccinations"`
	PendingDewormings   []ScheduleRow         `json:"pending_dewormings"`
}

// DashboardFromResult arma la respuesta HTTP del panel gerencial.
func DashboardFromResult(d *reports.Dashboard) *DashboardResponse {
	out := &DashboardResponse{
		AsOf: d.AsOf,
		Stock: StockSummaryResponse{
			Total:        d.Stock.Total,
			WithStock:    d.Stock.WithStock,
			OutOfStock:   d.Stock.OutOfStock,
			Expired:      d.Stock.Expired,
			ExpiringSoon: d.Stock.ExpiringSoon,
		},
		AppointmentsToday:   make([]AppointmentResponse, 0, len(d.AppointmentsToday)),
		AppointmentsWeek:    make([]AppointmentResponse, 0, len(d.AppointmentsWeek)),
		CriticalLots:        make([]LotResponse, 0, len(d.CriticalLots)),
		PendingVaccinations: make([]ScheduleRow, 0, len(d.PendingVaccinations)),
		PendingDewormings:   make([]ScheduleRow, 0, len(d.PendingDewormings)),
	}
	for _, a := range d.AppointmentsToday {
		out.AppointmentsToday = append(out.AppointmentsToday, *AppointmentFromEntity(a))
	}
	for _, a := range d.AppointmentsWeek {
		out.AppointmentsWeek = append(out.AppointmentsWeek, *AppointmentFromEntity(a))
	}
	for _, row := range d.CriticalLots {
		item := LotFromEntity(row.Lot)
		item.Status = row.Status
		item.DaysToExpiry = row.DaysToExpiry
		out.CriticalLots = append(out.CriticalLots, *item)
	}
	out.PendingVaccinations = VaccinationReportFromRows(d.AsOf, d.PendingVaccinations).Items
	out.PendingDewormings = DewormingReportFromRows(d.AsOf, d.PendingDewormings).Items
	return out
}
