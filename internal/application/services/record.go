package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// RecordUseCase administra los registros de servicios prestados por
// empresas tercerizadas.
type RecordUseCase struct {
	repo      repository.ServiceRecordRepository
	companies repository.ServiceCompanyRepository
	animals   repository.AnimalRepository
}

// NewRecordUseCase construye el caso de uso.
func NewRecordUseCase(repo repository.ServiceRecordRepository, companies repository.ServiceCompanyRepository, animals repository.AnimalRepository) *RecordUseCase {
	return &RecordUseCase{repo: repo, companies: companies, animals: animals}
}

// RecordInput entrada para crear o editar un registro de servicio.
// AsOf es la fecha de referencia: el servicio no puede haberse realizado
// después de ella.
type RecordInput struct {
	CompanyID       string
	AnimalID        string
	PerformedAt     time.Time
	Price           *decimal.Decimal
	MedicationsNote string
	ProceduresNote  string
	AsOf            time.Time
}

func (uc *RecordUseCase) validate(in RecordInput) error {
	if in.CompanyID == "" || in.AnimalID == "" {
		return domain.ErrInvalidInput
	}
	if in.PerformedAt.After(in.AsOf) {
		return domain.ErrInvalidInput
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return domain.ErrInvalidInput
	}
	company, err := uc.companies.GetByID(in.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	animal, err := uc.animals.GetByID(in.AnimalID)
	if err != nil {
		return err
	}
	if animal == nil {
		return domain.ErrNotFound
	}
	return nil
}

func applyRecordFields(r *entity.ServiceRecord, in RecordInput) {
	r.CompanyID = in.CompanyID
	r.AnimalID = in.AnimalID
	r.PerformedAt = in.PerformedAt
	r.Price = in.Price
	r.MedicationsNote = in.MedicationsNote
	r.ProceduresNote = in.ProceduresNote
}

// Create registra un servicio prestado.
func (uc *RecordUseCase) Create(in RecordInput) (*entity.ServiceRecord, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	record := &entity.ServiceRecord{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
	applyRecordFields(record, in)
	if err := uc.repo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update edita un registro existente.
func (uc *RecordUseCase) Update(id string, in RecordInput) (*entity.ServiceRecord, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	applyRecordFields(record, in)
	if err := uc.repo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetByID obtiene un registro por ID.
func (uc *RecordUseCase) GetByID(id string) (*entity.ServiceRecord, error) {
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

// List lista registros filtrados, del más reciente al más antiguo.
func (uc *RecordUseCase) List(filter repository.ServiceRecordFilter, limit, offset int) ([]*entity.ServiceRecord, error) {
	return uc.repo.List(filter, limit, offset)
}

// Delete elimina un registro de servicio.
func (uc *RecordUseCase) Delete(id string) error {
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
