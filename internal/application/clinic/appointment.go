package clinic

import (
	"context"
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// AppointmentUseCase administra agendamientos de consulta. No toca el libro
// de stock; alimenta el panel gerencial.
type AppointmentUseCase struct {
	appointments repository.AppointmentRepository
	animals      repository.AnimalRepository
	tutors       repository.TutorRepository
}

// NewAppointmentUseCase construye el caso de uso.
func NewAppointmentUseCase(appointments repository.AppointmentRepository, animals repository.AnimalRepository, tutors repository.TutorRepository) *AppointmentUseCase {
	return &AppointmentUseCase{appointments: appointments, animals: animals, tutors: tutors}
}

// AppointmentInput entrada para crear o editar un agendamiento.
type AppointmentInput struct {
	AnimalID    string
	TutorID     string
	ScheduledAt time.Time
}

func (uc *AppointmentUseCase) validate(input AppointmentInput) error {
	if input.AnimalID == "" || input.ScheduledAt.IsZero() {
		return domain.ErrInvalidInput
	}
	animal, err := uc.animals.GetByID(input.AnimalID)
	if err != nil {
		return err
	}
	if animal == nil {
		return domain.ErrNotFound
	}
	if input.TutorID != "" {
		tutor, err := uc.tutors.GetByID(input.TutorID)
		if err != nil {
			return err
		}
		if tutor == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// Create registra un agendamiento.
func (uc *AppointmentUseCase) Create(ctx context.Context, input AppointmentInput) (*entity.Appointment, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}
	a := &entity.Appointment{
		AnimalID:    input.AnimalID,
		TutorID:     input.TutorID,
		ScheduledAt: input.ScheduledAt,
		CreatedAt:   time.Now(),
	}
	if err := uc.appointments.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update reescribe un agendamiento existente.
func (uc *AppointmentUseCase) Update(ctx context.Context, id string, input AppointmentInput) (*entity.Appointment, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}
	a, err := uc.appointments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	a.AnimalID = input.AnimalID
	a.TutorID = input.TutorID
	a.ScheduledAt = input.ScheduledAt
	if err := uc.appointments.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete elimina un agendamiento.
func (uc *AppointmentUseCase) Delete(ctx context.Context, id string) error {
	a, err := uc.appointments.GetByID(id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	return uc.appointments.Delete(id)
}

// ListBetween lista agendamientos dentro de un rango de fechas.
func (uc *AppointmentUseCase) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Appointment, error) {
	return uc.appointments.ListBetween(from, to)
}
