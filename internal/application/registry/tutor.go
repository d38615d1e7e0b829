package registry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// Address es el resultado de una consulta de código postal.
type Address struct {
	Street string
	City   string
	State  string
}

// AddressLookup resuelve un CEP de 8 dígitos a una dirección.
// La implementación de producción consulta el servicio ViaCEP.
type AddressLookup interface {
	Lookup(ctx context.Context, cep string) (*Address, error)
}

// TutorUseCase aplica reglas de negocio para tutores.
type TutorUseCase struct {
	repo    repository.TutorRepository
	animals repository.AnimalRepository
	lookup  AddressLookup
}

// NewTutorUseCase construye el caso de uso. lookup puede ser nil; en ese
// caso la dirección queda tal como la envió el cliente.
func NewTutorUseCase(repo repository.TutorRepository, animals repository.AnimalRepository, lookup AddressLookup) *TutorUseCase {
	return &TutorUseCase{repo: repo, animals: animals, lookup: lookup}
}

// TutorInput entrada para crear o editar un tutor.
type TutorInput struct {
	Name      string
	CPF       string
	Phone     string
	Email     string
	CEP       string
	Address   string
	City      string
	State     string
	BirthDate *time.Time
}

func validateTutor(in TutorInput) error {
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	if !allDigits(in.CPF) || len(in.CPF) != 11 {
		return domain.ErrInvalidInput
	}
	if in.Phone != "" && (!allDigits(in.Phone) || len(in.Phone) < 10 || len(in.Phone) > 11) {
		return domain.ErrInvalidInput
	}
	if in.CEP != "" && (!allDigits(in.CEP) || len(in.CEP) != 8) {
		return domain.ErrInvalidInput
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// resolveAddress completa dirección, ciudad y estado desde el CEP cuando el
// cliente no los envió. Un fallo del servicio externo no impide el registro.
func (uc *TutorUseCase) resolveAddress(ctx context.Context, t *entity.Tutor) {
	if uc.lookup == nil || t.CEP == "" {
		return
	}
	if t.Address != "" && t.City != "" && t.State != "" {
		return
	}
	addr, err := uc.lookup.Lookup(ctx, t.CEP)
	if err != nil || addr == nil {
		return
	}
	if t.Address == "" {
		t.Address = addr.Street
	}
	if t.City == "" {
		t.City = addr.City
	}
	if t.State == "" {
		t.State = addr.State
	}
}

// Create registra un tutor. Devuelve domain.ErrDuplicate si el CPF ya existe.
func (uc *TutorUseCase) Create(ctx context.Context, in TutorInput) (*entity.Tutor, error) {
	if err := validateTutor(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCPF(in.CPF)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	tutor := &entity.Tutor{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CPF:       in.CPF,
		Phone:     in.Phone,
		Email:     in.Email,
		CEP:       in.CEP,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		BirthDate: in.BirthDate,
		CreatedAt: time.Now(),
	}
	uc.resolveAddress(ctx, tutor)
	if err := uc.repo.Create(tutor); err != nil {
		return nil, err
	}
	return tutor, nil
}

// Update edita un tutor existente. El CPF puede cambiar mientras no
// colisione con otro registro.
func (uc *TutorUseCase) Update(ctx context.Context, id string, in TutorInput) (*entity.Tutor, error) {
	if err := validateTutor(in); err != nil {
		return nil, err
	}
	tutor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tutor == nil {
		return nil, domain.ErrNotFound
	}
	if in.CPF != tutor.CPF {
		other, err := uc.repo.GetByCPF(in.CPF)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrDuplicate
		}
	}
	tutor.Name = in.Name
	tutor.CPF = in.CPF
	tutor.Phone = in.Phone
	tutor.Email = in.Email
	tutor.CEP = in.CEP
	tutor.Address = in.Address
	tutor.City = in.City
	tutor.State = in.State
	tutor.BirthDate = in.BirthDate
	uc.resolveAddress(ctx, tutor)
	if err := uc.repo.Update(tutor); err != nil {
		return nil, err
	}
	return tutor, nil
}

// GetByID obtiene un tutor por ID.
func (uc *TutorUseCase) GetByID(id string) (*entity.Tutor, error) {
	tutor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tutor == nil {
		return nil, domain.ErrNotFound
	}
	return tutor, nil
}

// List lista tutores con paginación.
func (uc *TutorUseCase) List(limit, offset int) ([]*entity.Tutor, error) {
	return uc.repo.List(limit, offset)
}

// Delete elimina un tutor sin animales asociados. Devuelve domain.ErrConflict
// si todavía tiene animales registrados.
func (uc *TutorUseCase) Delete(id string) error {
	tutor, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if tutor == nil {
		return domain.ErrNotFound
	}
	animals, err := uc.animals.ListByTutor(id, 1, 0)
	if err != nil {
		return err
	}
	if len(animals) > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}
