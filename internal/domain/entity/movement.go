package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Movement representa un asiento inmutable del libro de stock: un cambio de
// saldo de un lote. La historia nunca se edita; una corrección se registra
// como movimiento compensatorio de tipo opuesto (ver ReverseNote).
type Movement struct {
	ID        string
	LotID     string
	Type      string // IN, OUT
	Quantity  int    // siempre > 0; el tipo indica el signo
	Note      string // procedencia: "salida por consulta #42", "reverso por edición", etc.
	CreatedAt time.Time
}
