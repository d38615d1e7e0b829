package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// MedicationApplicationRequest un medicamento aplicado en una consulta.
type MedicationApplicationRequest struct {
	LotID    string `json:"lot_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// ConsultationRequest entrada para crear o editar una consulta.
type ConsultationRequest struct {
	AnimalID       string                         `json:"animal_id" validate:"required,uuid4"`
	VeterinarianID string                         `json:"veterinarian_id" validate:"required,uuid4"`
	AttendedAt     time.Time                      `json:"attended_at" validate:"required"`
	Type           string                         `json:"type" validate:"max=100"`
	Diagnosis      string                         `json:"diagnosis" validate:"required,min=1"`
	Observations   string                         `json:"observations"`
	HeartRate      *int                           `json:"heart_rate" validate:"omitempty,gt=0"`
	RespRate       *int                           `json:"resp_rate" validate:"omitempty,gt=0"`
	Temperature    decimal.Decimal                `json:"temperature"`
	Weight         decimal.Decimal                `json:"weight"`
	MucosaEval     string                         `json:"mucosa_eval" validate:"max=100"`
	CapillaryTime  string                         `json:"capillary_time" validate:"max=100"`
	Medications    []MedicationApplicationRequest `json:"medications" validate:"dive"`
	ExamIDs        []string                       `json:"exam_ids" validate:"omitempty,dive,uuid4"`
}

// ConsultationResponse salida de una consulta.
type ConsultationResponse struct {
	ID             string          `json:"id"`
	AnimalID       string          `json:"animal_id"`
	VeterinarianID string          `json:"veterinarian_id"`
	AttendedAt     time.Time       `json:"attended_at"`
	Type           string          `json:"type,omitempty"`
	Diagnosis      string          `json:"diagnosis"`
	Observations   string          `json:"observations,omitempty"`
	HeartRate      *int            `json:"heart_rate,omitempty"`
	RespRate       *int            `json:"resp_rate,omitempty"`
	Temperature    decimal.Decimal `json:"temperature"`
	Weight         decimal.Decimal `json:"weight"`
	MucosaEval     string          `json:"mucosa_eval,omitempty"`
	CapillaryTime  string          `json:"capillary_time,omitempty"`
	ExamIDs        []string        `json:"exam_ids,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ConsultationFromEntity convierte la entidad a su representación HTTP.
func ConsultationFromEntity(c *entity.Consultation) *ConsultationResponse {
	if c == nil {
		return nil
	}
	return &ConsultationResponse{
		ID:             c.ID,
		AnimalID:       c.AnimalID,
		VeterinarianID: c.VeterinarianID,
		AttendedAt:     c.AttendedAt,
		Type:           c.Type,
		Diagnosis:      c.Diagnosis,
		Observations:   c.Observations,
		HeartRate:      c.HeartRate,
		RespRate:       c.RespRate,
		Temperature:    c.Temperature,
		Weight:         c.Weight,
		MucosaEval:     c.MucosaEval,
		CapillaryTime:  c.CapillaryTime,
		ExamIDs:        c.ExamIDs,
		CreatedAt:      c.CreatedAt,
	}
}

// ExamRequest entrada para crear o renombrar un examen del catálogo.
type ExamRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ExamResponse salida de un examen del catálogo.
type ExamResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ExamFromEntity convierte la entidad a su representación HTTP.
func ExamFromEntity(e *entity.Exam) *ExamResponse {
	if e == nil {
		return nil
	}
	return &ExamResponse{ID: e.ID, Name: e.Name, CreatedAt: e.CreatedAt}
}

// MedicationApplicationResponse un medicamento consumido por la consulta.
type MedicationApplicationResponse struct {
	LotID    string `json:"lot_id"`
	Quantity int    `json:"quantity"`
}

// ConsultationDetailResponse una consulta con sus medicamentos aplicados.
type ConsultationDetailResponse struct {
	ConsultationResponse
	Medications []MedicationApplicationResponse `json:"medications"`
}

// ConsultationDetailFromEntity arma el detalle de la consulta con sus enlaces
// de consumo.
func ConsultationDetailFromEntity(c *entity.Consultation, links []*entity.ConsumptionLink) *ConsultationDetailResponse {
	out := &ConsultationDetailResponse{
		ConsultationResponse: *ConsultationFromEntity(c),
		Medications:          make([]MedicationApplicationResponse, 0, len(links)),
	}
	for _, l := range links {
		out.Medications = append(out.Medications, MedicationApplicationResponse{LotID: l.LotID, Quantity: l.Quantity})
	}
	return out
}

// VaccinationRequest entrada para crear o editar una vacunación.
type VaccinationRequest struct {
	AnimalID          string     `json:"animal_id" validate:"required,uuid4"`
	LotID             string     `json:"lot_id" validate:"required,uuid4"`
	AppliedAt         time.Time  `json:"applied_at" validate:"required"`
	RevaccinationDate *time.Time `json:"revaccination_date"`
}

// VaccinationResponse salida de una vacunación.
type VaccinationResponse struct {
	ID                string     `json:"id"`
	AnimalID          string     `json:"animal_id"`
	LotID             string     `json:"lot_id"`
	AppliedAt         time.Time  `json:"applied_at"`
	RevaccinationDate *time.Time `json:"revaccination_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// VaccinationFromEntity convierte la entidad a su representación HTTP.
func VaccinationFromEntity(v *entity.Vaccination) *VaccinationResponse {
	if v == nil {
		return nil
	}
	return &VaccinationResponse{
		ID:                v.ID,
		AnimalID:          v.AnimalID,
		LotID:             v.LotID,
		AppliedAt:         v.AppliedAt,
		RevaccinationDate: v.RevaccinationDate,
		CreatedAt:         v.CreatedAt,
	}
}

// DewormingRequest entrada para crear o editar una vermifugación.
type DewormingRequest struct {
	AnimalID           string     `json:"animal_id" validate:"required,uuid4"`
	LotID              string     `json:"lot_id" validate:"required,uuid4"`
	AdministeredAt     time.Time  `json:"administered_at" validate:"required"`
	ReadministerBefore *time.Time `json:"readminister_before"`
}

// DewormingResponse salida de una vermifugación.
type DewormingResponse struct {
	ID                 string     `json:"id"`
	AnimalID           string     `json:"animal_id"`
	LotID              string     `json:"lot_id"`
	AdministeredAt     time.Time  `json:"administered_at"`
	ReadministerBefore *time.Time `json:"readminister_before,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// DewormingFromEntity convierte la entidad a su representación HTTP.
func DewormingFromEntity(d *entity.Deworming) *DewormingResponse {
	if d == nil {
		return nil
	}
	return &DewormingResponse{
		ID:                 d.ID,
		AnimalID:           d.AnimalID,
		LotID:              d.LotID,
		AdministeredAt:     d.AdministeredAt,
		ReadministerBefore: d.ReadministerBefore,
		CreatedAt:          d.CreatedAt,
	}
}

// AppointmentRequest entrada para crear o editar un agendamiento.
type AppointmentRequest struct {
	AnimalID    string    `json:"animal_id" validate:"required,uuid4"`
	TutorID     string    `json:"tutor_id" validate:"omitempty,uuid4"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

// AppointmentResponse salida de un agendamiento.
type AppointmentResponse struct {
	ID          string    `json:"id"`
	AnimalID    string    `json:"animal_id"`
	TutorID     string    `json:"tutor_id,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// AppointmentFromEntity convierte la entidad a su representación HTTP.
func AppointmentFromEntity(a *entity.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}
	return &AppointmentResponse{
		ID:          a.ID,
		AnimalID:    a.AnimalID,
		TutorID:     a.TutorID,
		ScheduledAt: a.ScheduledAt,
		CreatedAt:   a.CreatedAt,
	}
}
