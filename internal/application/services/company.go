// Package services administra las empresas tercerizadas que prestan
// servicios a la clínica y los registros de esos servicios.
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas tercerizadas.
type CompanyUseCase struct {
	repo    repository.ServiceCompanyRepository
	records repository.ServiceRecordRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.ServiceCompanyRepository, records repository.ServiceRecordRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, records: records}
}

// CompanyInput entrada para crear o editar una empresa tercerizada.
type CompanyInput struct {
	Name  string
	CNPJ  string
	Phone string
	Email string
}

func validateCompany(in CompanyInput) error {
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	if !validCNPJ(in.CNPJ) {
		return domain.ErrInvalidInput
	}
	if in.Phone != "" && (!allDigits(in.Phone) || len(in.Phone) != 11) {
		return domain.ErrInvalidInput
	}
	return nil
}

// checkUnique razón social, CNPJ y email no pueden colisionar con otra
// empresa. selfID excluye al propio registro en ediciones.
func (uc *CompanyUseCase) checkUnique(in CompanyInput, selfID string) error {
	if other, err := uc.repo.GetByName(in.Name); err != nil {
		return err
	} else if other != nil && other.ID != selfID {
		return domain.ErrDuplicate
	}
	if other, err := uc.repo.GetByCNPJ(in.CNPJ); err != nil {
		return err
	} else if other != nil && other.ID != selfID {
		return domain.ErrDuplicate
	}
	if in.Email != "" {
		if other, err := uc.repo.GetByEmail(in.Email); err != nil {
			return err
		} else if other != nil && other.ID != selfID {
			return domain.ErrDuplicate
		}
	}
	return nil
}

// Create registra una empresa. Devuelve domain.ErrDuplicate si la razón
// social, el CNPJ o el email ya existen.
func (uc *CompanyUseCase) Create(in CompanyInput) (*entity.ServiceCompany, error) {
	if err := validateCompany(in); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(in, ""); err != nil {
		return nil, err
	}
	company := &entity.ServiceCompany{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CNPJ:      in.CNPJ,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return company, nil
}

// Update edita una empresa existente.
func (uc *CompanyUseCase) Update(id string, in CompanyInput) (*entity.ServiceCompany, error) {
	if err := validateCompany(in); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkUnique(in, id); err != nil {
		return nil, err
	}
	company.Name = in.Name
	company.CNPJ = in.CNPJ
	company.Phone = in.Phone
	company.Email = in.Email
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*entity.ServiceCompany, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(limit, offset int) ([]*entity.ServiceCompany, error) {
	return uc.repo.List(limit, offset)
}

// Delete elimina una empresa sin servicios registrados. Devuelve
// domain.ErrConflict mientras tenga registros asociados.
func (uc *CompanyUseCase) Delete(id string) error {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	count, err := uc.records.CountByCompany(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}
