package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tutor representa al responsable de uno o más animales.
type Tutor struct {
	ID        string
	Name      string
	CPF       string // 11 dígitos, sin máscara
	Phone     string // 10 u 11 dígitos (DDD + número)
	Email     string
	CEP       string // código postal, 8 dígitos
	Address   string // autocompletado desde la consulta de CEP
	City      string
	State     string
	BirthDate *time.Time
	CreatedAt time.Time
}

// Animal representa un paciente de la clínica.
type Animal struct {
	ID        string
	TutorID   string
	Name      string
	Species   string // Canina, Felina, ...
	AgeYears  *int
	AgeMonths *int
	Sex       string
	Weight    decimal.Decimal // kilogramos
	Neutered  bool
	RFID      string // identificador libre opcional, único si está presente
	CreatedAt time.Time
}

// Veterinarian representa un profesional habilitado para atender consultas.
type Veterinarian struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
}
