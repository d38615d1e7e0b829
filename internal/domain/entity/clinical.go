package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Consultation representa una consulta clínica con sus signos vitales.
// Los medicamentos aplicados en la consulta viven como ConsumptionLink
// (EventKindConsultation) y se concilian contra el libro de stock.
type Consultation struct {
	ID             string
	AnimalID       string
	VeterinarianID string
	AttendedAt     time.Time
	Type           string // Rotina, Emergência, ...
	Diagnosis      string
	Observations   string
	HeartRate      *int            // BPM
	RespRate       *int            // RPM
	Temperature    decimal.Decimal // °C
	Weight         decimal.Decimal // Kg
	MucosaEval     string
	CapillaryTime  string
	// ExamIDs exámenes solicitados en la consulta (0..N del catálogo).
	ExamIDs   []string
	CreatedAt time.Time
}

// Exam un examen del catálogo de la clínica (hemograma, radiografía, ...).
type Exam struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Vaccination registra la aplicación de una dosis de vacuna a un animal.
// Consume exactamente una unidad del lote referenciado.
type Vaccination struct {
	ID                string
	AnimalID          string
	LotID             string
	AppliedAt         time.Time
	RevaccinationDate *time.Time
	CreatedAt         time.Time
}

// Deworming registra la administración de una dosis de vermífugo.
// Consume exactamente una unidad del lote referenciado.
type Deworming struct {
	ID                 string
	AnimalID           string
	LotID              string
	AdministeredAt     time.Time
	ReadministerBefore *time.Time
	CreatedAt          time.Time
}

// Appointment representa un agendamiento de consulta futuro.
type Appointment struct {
	ID          string
	AnimalID    string
	TutorID     string
	ScheduledAt time.Time
	CreatedAt   time.Time
}
