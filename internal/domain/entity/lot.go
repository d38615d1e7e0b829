package entity

import "time"

// Categorías de medicamento (value object conceptual).
const (
	CategoryVaccine    = "VACCINE"    // vacuna
	CategoryDewormer   = "DEWORMER"   // vermífugo
	CategoryMedication = "MEDICATION" // medicamento general
)

// Lot representa un lote de medicamento con su saldo de stock materializado.
// Quantity es derivado del libro de movimientos: solo la aplicación de un
// movimiento puede escribirlo, nunca una edición directa.
type Lot struct {
	ID           string
	Medication   string
	Category     string // VACCINE, DEWORMER, MEDICATION
	LotCode      string // único a nivel global
	ExpiryDate   time.Time
	Quantity     int // saldo en unidades, >= 0 siempre
	RegisteredAt time.Time
}

// Available indica si el lote puede seleccionarse para consumo.
// Lotes con saldo cero siguen en la base para auditoría pero no se ofrecen.
func (l *Lot) Available() bool {
	return l.Quantity > 0
}
