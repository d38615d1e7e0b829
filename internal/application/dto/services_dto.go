package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// ServiceCompanyRequest entrada para crear o editar una empresa tercerizada.
type ServiceCompanyRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	CNPJ  string `json:"cnpj" validate:"required,len=14,numeric"`
	Phone string `json:"phone" validate:"omitempty,len=11,numeric"`
	Email string `json:"email" validate:"omitempty,email"`
}

// ServiceCompanyResponse salida de una empresa tercerizada.
type ServiceCompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ServiceCompanyFromEntity convierte la entidad a su representación HTTP.
func ServiceCompanyFromEntity(c *entity.ServiceCompany) *ServiceCompanyResponse {
	if c == nil {
		return nil
	}
	return &ServiceCompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CNPJ:      c.CNPJ,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

// ServiceRecordRequest entrada para crear o editar un registro de servicio.
type ServiceRecordRequest struct {
	CompanyID       string           `json:"company_id" validate:"required,uuid4"`
	AnimalID        string           `json:"animal_id" validate:"required,uuid4"`
	PerformedAt     time.Time        `json:"performed_at" validate:"required"`
	Price           *decimal.Decimal `json:"price"`
	MedicationsNote string           `json:"medications_note"`
	ProceduresNote  string           `json:"procedures_note"`
}

// ServiceRecordResponse salida de un registro de servicio.
type ServiceRecordResponse struct {
	ID              string           `json:"id"`
	CompanyID       string           `json:"company_id"`
	AnimalID        string           `json:"animal_id"`
	PerformedAt     time.Time        `json:"performed_at"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	MedicationsNote string           `json:"medications_note,omitempty"`
	ProceduresNote  string           `json:"procedures_note,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ServiceRecordFromEntity convierte la entidad a su representación HTTP.
func ServiceRecordFromEntity(r *entity.ServiceRecord) *ServiceRecordResponse {
	if r == nil {
		return nil
	}
	return &ServiceRecordResponse{
		ID:              r.ID,
		CompanyID:       r.CompanyID,
		AnimalID:        r.AnimalID,
		PerformedAt:     r.PerformedAt,
		Price:           r.Price,
		MedicationsNote: r.MedicationsNote,
		ProceduresNote:  r.ProceduresNote,
		CreatedAt:       r.CreatedAt,
	}
}
