package entity

// Tipos de evento clínico que consumen stock.
const (
	EventKindConsultation = "CONSULTATION" // medicamento aplicado en consulta
	EventKindVaccination  = "VACCINATION"  // dosis de vacuna
	EventKindDeworming    = "DEWORMING"    // dosis de vermífugo
)

// ConsumptionLink asocia un evento clínico con el lote que consumió y la
// cantidad consumida. Las tres variantes (consulta, vacunación, vermifugación)
// comparten este modelo para que exista un único camino de conciliación de
// saldos. El enlace nunca deja el libro en estado inconsistente: crear,
// actualizar o borrar el enlace genera los movimientos que correspondan dentro
// de la misma transacción.
type ConsumptionLink struct {
	ID        string
	EventKind string // CONSULTATION, VACCINATION, DEWORMING
	EventID   string
	LotID     string
	Quantity  int // > 0
}
