package repository

import (
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// ConsultationRepository define el puerto de persistencia para consultas clínicas.
type ConsultationRepository interface {
	Create(c *entity.Consultation) error
	GetByID(id string) (*entity.Consultation, error)
	Update(c *entity.Consultation) error
	ListByAnimal(animalID string, limit, offset int) ([]*entity.Consultation, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Consultation, error)
	Delete(id string) error
}

// ExamRepository define el puerto de persistencia del catálogo de exámenes.
type ExamRepository interface {
	Create(e *entity.Exam) error
	GetByID(id string) (*entity.Exam, error)
	GetByName(name string) (*entity.Exam, error)
	Update(e *entity.Exam) error
	List(limit, offset int) ([]*entity.Exam, error)
	Delete(id string) error
	// CountConsultations cantidad de consultas que referencian el examen.
	CountConsultations(examID string) (int, error)
}

// VaccinationFilter criterios del reporte de vacunación.
type VaccinationFilter struct {
	AnimalID    string
	LotID       string
	AppliedFrom *time.Time
	AppliedTo   *time.Time
}

// VaccinationRepository define el puerto de persistencia para registros de vacunación.
type VaccinationRepository interface {
	Create(v *entity.Vaccination) error
	GetByID(id string) (*entity.Vaccination, error)
	Update(v *entity.Vaccination) error
	List(filter VaccinationFilter, limit, offset int) ([]*entity.Vaccination, error)
	// ListDueBefore devuelve registros con revacunación definida hasta la fecha dada.
	ListDueBefore(limit time.Time) ([]*entity.Vaccination, error)
	Delete(id string) error
}

// DewormingFilter criterios del reporte de vermifugación.
type DewormingFilter struct {
	AnimalID         string
	LotID            string
	AdministeredFrom *time.Time
	AdministeredTo   *time.Time
}

// DewormingRepository define el puerto de persistencia para registros de vermifugación.
type DewormingRepository interface {
	Create(d *entity.Deworming) error
	GetByID(id string) (*entity.Deworming, error)
	Update(d *entity.Deworming) error
	List(filter DewormingFilter, limit, offset int) ([]*entity.Deworming, error)
	ListDueBefore(limit time.Time) ([]*entity.Deworming, error)
	Delete(id string) error
}

// AppointmentRepository define el puerto de persistencia para agendamientos.
type AppointmentRepository interface {
	Create(a *entity.Appointment) error
	GetByID(id string) (*entity.Appointment, error)
	Update(a *entity.Appointment) error
	ListBetween(from, to time.Time) ([]*entity.Appointment, error)
	Delete(id string) error
}
