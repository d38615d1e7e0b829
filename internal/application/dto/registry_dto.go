package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// TutorRequest entrada para crear o editar un tutor.
type TutorRequest struct {
	Name      string     `json:"name" validate:"required,min=1,max=200"`
	CPF       string     `json:"cpf" validate:"required,len=11,numeric"`
	Phone     string     `json:"phone" validate:"omitempty,numeric,min=10,max=11"`
	Email     string     `json:"email" validate:"omitempty,email"`
	CEP       string     `json:"cep" validate:"omitempty,len=8,numeric"`
	Address   string     `json:"address" validate:"max=300"`
	City      string     `json:"city" validate:"max=100"`
	State     string     `json:"state" validate:"max=2"`
	BirthDate *time.Time `json:"birth_date"`
}

// TutorResponse salida de un tutor.
type TutorResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CPF       string     `json:"cpf"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	CEP       string     `json:"cep,omitempty"`
	Address   string     `json:"address,omitempty"`
	City      string     `json:"city,omitempty"`
	State     string     `json:"state,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TutorFromEntity convierte la entidad a su representación HTTP.
func TutorFromEntity(t *entity.Tutor) *TutorResponse {
	if t == nil {
		return nil
	}
	return &TutorResponse{
		ID:        t.ID,
		Name:      t.Name,
		CPF:       t.CPF,
		Phone:     t.Phone,
		Email:     t.Email,
		CEP:       t.CEP,
		Address:   t.Address,
		City:      t.City,
		State:     t.State,
		BirthDate: t.BirthDate,
		CreatedAt: t.CreatedAt,
	}
}

// AnimalRequest entrada para crear o editar un animal.
type AnimalRequest struct {
	TutorID   string          `json:"tutor_id" validate:"omitempty,uuid4"`
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	Species   string          `json:"species" validate:"required,min=1,max=100"`
	AgeYears  *int            `json:"age_years" validate:"omitempty,min=0"`
	AgeMonths *int            `json:"age_months" validate:"omitempty,min=0,max=11"`
	Sex       string          `json:"sex" validate:"omitempty,oneof=M F"`
	Weight    decimal.Decimal `json:"weight"`
	Neutered  bool            `json:"neutered"`
	RFID      string          `json:"rfid" validate:"max=100"`
}

// AnimalResponse salida de un animal.
type AnimalResponse struct {
	ID        string          `json:"id"`
	TutorID   string          `json:"tutor_id,omitempty"`
	Name      string          `json:"name"`
	Species   string          `json:"species"`
	AgeYears  *int            `json:"age_years,omitempty"`
	AgeMonths *int            `json:"age_months,omitempty"`
	Sex       string          `json:"sex,omitempty"`
	Weight    decimal.Decimal `json:"weight"`
	Neutered  bool            `json:"neutered"`
	RFID      string          `json:"rfid,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// AnimalFromEntity convierte la entidad a su representación HTTP.
func AnimalFromEntity(a *entity.Animal) *AnimalResponse {
	if a == nil {
		return nil
	}
	return &AnimalResponse{
		ID:        a.ID,
		TutorID:   a.TutorID,
		Name:      a.Name,
		Species:   a.Species,
		AgeYears:  a.AgeYears,
		AgeMonths: a.AgeMonths,
		Sex:       a.Sex,
		Weight:    a.Weight,
		Neutered:  a.Neutered,
		RFID:      a.RFID,
		CreatedAt: a.CreatedAt,
	}
}

// VeterinarianRequest entrada para crear o editar un veterinario.
type VeterinarianRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Phone string `json:"phone" validate:"omitempty,numeric,min=10,max=11"`
}

// VeterinarianResponse salida de un veterinario.
type VeterinarianResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// VeterinarianFromEntity convierte la entidad a su representación HTTP.
func VeterinarianFromEntity(v *entity.Veterinarian) *VeterinarianResponse {
	if v == nil {
		return nil
	}
	return &VeterinarianResponse{ID: v.ID, Name: v.Name, Phone: v.Phone, CreatedAt: v.CreatedAt}
}
