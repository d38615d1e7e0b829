package repository

import (
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// ServiceCompanyRepository define el puerto de persistencia de empresas
// tercerizadas.
type ServiceCompanyRepository interface {
	Create(c *entity.ServiceCompany) error
	GetByID(id string) (*entity.ServiceCompany, error)
	GetByCNPJ(cnpj string) (*entity.ServiceCompany, error)
	GetByName(name string) (*entity.ServiceCompany, error)
	GetByEmail(email string) (*entity.ServiceCompany, error)
	Update(c *entity.ServiceCompany) error
	List(limit, offset int) ([]*entity.ServiceCompany, error)
	Delete(id string) error
}

// ServiceRecordFilter criterios del reporte de servicios tercerizados.
type ServiceRecordFilter struct {
	CompanyID     string
	AnimalID      string
	PerformedFrom *time.Time
	PerformedTo   *time.Time
}

// ServiceRecordRepository define el puerto de persistencia de registros de
// servicios tercerizados.
type ServiceRecordRepository interface {
	Create(r *entity.ServiceRecord) error
	GetByID(id string) (*entity.ServiceRecord, error)
	Update(r *entity.ServiceRecord) error
	// List devuelve registros del más reciente al más antiguo.
	List(filter ServiceRecordFilter, limit, offset int) ([]*entity.ServiceRecord, error)
	CountByCompany(companyID string) (int, error)
	Delete(id string) error
}
