package registry

import (
	"time"

	"github.com/google/uuid"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// VeterinarianUseCase aplica reglas de negocio para veterinarios.
type VeterinarianUseCase struct {
	repo repository.VeterinarianRepository
}

// NewVeterinarianUseCase construye el caso de uso.
func NewVeterinarianUseCase(repo repository.VeterinarianRepository) *VeterinarianUseCase {
	return &VeterinarianUseCase{repo: repo}
}

// VeterinarianInput entrada para crear o editar un veterinario.
type VeterinarianInput struct {
	Name  string
	Phone string
}

// Create registra un veterinario.
func (uc *VeterinarianUseCase) Create(in VeterinarianInput) (*entity.Veterinarian, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	vet := &entity.Veterinarian{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(vet); err != nil {
		return nil, err
	}
	return vet, nil
}

// Update edita un veterinario existente.
func (uc *VeterinarianUseCase) Update(id string, in VeterinarianInput) (*entity.Veterinarian, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	vet, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vet == nil {
		return nil, domain.ErrNotFound
	}
	vet.Name = in.Name
	vet.Phone = in.Phone
	if err := uc.repo.Update(vet); err != nil {
		return nil, err
	}
	return vet, nil
}

// GetByID obtiene un veterinario por ID.
func (uc *VeterinarianUseCase) GetByID(id string) (*entity.Veterinarian, error) {
	vet, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vet == nil {
		return nil, domain.ErrNotFound
	}
	return vet, nil
}

// List lista veterinarios con paginación.
func (uc *VeterinarianUseCase) List(limit, offset int) ([]*entity.Veterinarian, error) {
	return uc.repo.List(limit, offset)
}

// Delete elimina un veterinario.
func (uc *VeterinarianUseCase) Delete(id string) error {
	vet, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if vet == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
