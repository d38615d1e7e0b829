package registry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// AnimalUseCase aplica reglas de negocio para animales.
type AnimalUseCase struct {
	repo   repository.AnimalRepository
	tutors repository.TutorRepository
}

// NewAnimalUseCase construye el caso de uso.
func NewAnimalUseCase(repo repository.AnimalRepository, tutors repository.TutorRepository) *AnimalUseCase {
	return &AnimalUseCase{repo: repo, tutors: tutors}
}

// AnimalInput entrada para crear o editar un animal.
type AnimalInput struct {
	TutorID   string
	Name      string
	Species   string
	AgeYears  *int
	AgeMonths *int
	Sex       string
	Weight    decimal.Decimal
	Neutered  bool
	RFID      string
}

func (uc *AnimalUseCase) validate(in AnimalInput) error {
	if in.Name == "" || in.Species == "" {
		return domain.ErrInvalidInput
	}
	if in.Weight.IsNegative() {
		return domain.ErrInvalidInput
	}
	if in.TutorID != "" {
		tutor, err := uc.tutors.GetByID(in.TutorID)
		if err != nil {
			return err
		}
		if tutor == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// Create registra un animal. El tutor es opcional pero, si viene, debe existir.
func (uc *AnimalUseCase) Create(in AnimalInput) (*entity.Animal, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	animal := &entity.Animal{
		ID:        uuid.New().String(),
		TutorID:   in.TutorID,
		Name:      in.Name,
		Species:   in.Species,
		AgeYears:  in.AgeYears,
		AgeMonths: in.AgeMonths,
		Sex:       in.Sex,
		Weight:    in.Weight,
		Neutered:  in.Neutered,
		RFID:      in.RFID,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(animal); err != nil {
		return nil, err
	}
	return animal, nil
}

// Update edita un animal existente.
func (uc *AnimalUseCase) Update(id string, in AnimalInput) (*entity.Animal, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	animal, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, domain.ErrNotFound
	}
	animal.TutorID = in.TutorID
	animal.Name = in.Name
	animal.Species = in.Species
	animal.AgeYears = in.AgeYears
	animal.AgeMonths = in.AgeMonths
	animal.Sex = in.Sex
	animal.Weight = in.Weight
	animal.Neutered = in.Neutered
	animal.RFID = in.RFID
	if err := uc.repo.Update(animal); err != nil {
		return nil, err
	}
	return animal, nil
}

// GetByID obtiene un animal por ID.
func (uc *AnimalUseCase) GetByID(id string) (*entity.Animal, error) {
	animal, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, domain.ErrNotFound
	}
	return animal, nil
}

// List lista animales, opcionalmente filtrados por tutor.
func (uc *AnimalUseCase) List(tutorID string, limit, offset int) ([]*entity.Animal, error) {
	if tutorID != "" {
		return uc.repo.ListByTutor(tutorID, limit, offset)
	}
	return uc.repo.List(limit, offset)
}

// Delete elimina un animal.
func (uc *AnimalUseCase) Delete(id string) error {
	animal, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if animal == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
