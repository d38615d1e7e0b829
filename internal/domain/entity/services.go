package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceCompany una empresa tercerizada que presta servicios a la clínica
// (laboratorios, transporte, cremación, ...).
type ServiceCompany struct {
	ID        string
	Name      string // razón social, única
	CNPJ      string // 14 dígitos, sin máscara, con dígitos verificadores válidos
	Phone     string // 11 dígitos (DDD + número), opcional
	Email     string // opcional, único si está presente
	CreatedAt time.Time
}

// ServiceRecord el registro de un servicio prestado por una empresa
// tercerizada sobre un animal de la clínica.
type ServiceRecord struct {
	ID          string
	CompanyID   string
	AnimalID    string
	PerformedAt time.Time
	// Price valor cobrado por el servicio; nil cuando no fue informado.
	Price           *decimal.Decimal
	MedicationsNote string // medicamentos aplicados durante el servicio
	ProceduresNote  string // otros procedimientos realizados
	CreatedAt       time.Time
}
