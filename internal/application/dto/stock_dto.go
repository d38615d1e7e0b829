package dto

import (
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// CreateLotRequest entrada para registrar un lote de medicamento.
type CreateLotRequest struct {
	Medication      string    `json:"medication" validate:"required,min=1,max=200"`
	Category        string    `json:"category" validate:"required,oneof=VACCINE DEWORMER MEDICATION"`
	LotCode         string    `json:"lot_code" validate:"required,min=1,max=100"`
	ExpiryDate      time.Time `json:"expiry_date" validate:"required"`
	InitialQuantity int       `json:"initial_quantity" validate:"min=0"`
}

// LotResponse salida de un lote.
type LotResponse struct {
	ID           string    `json:"id"`
	Medication   string    `json:"medication"`
	Category     string    `json:"category"`
	LotCode      string    `json:"lot_code"`
	ExpiryDate   time.Time `json:"expiry_date"`
	Quantity     int       `json:"quantity"`
	Status       string    `json:"status,omitempty"`
	DaysToExpiry int       `json:"days_to_expiry,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// LotFromEntity convierte la entidad a su representación HTTP.
func LotFromEntity(l *entity.Lot) *LotResponse {
	if l == nil {
		return nil
	}
	return &LotResponse{
		ID:           l.ID,
		Medication:   l.Medication,
		Category:     l.Category,
		LotCode:      l.LotCode,
		ExpiryDate:   l.ExpiryDate,
		Quantity:     l.Quantity,
		RegisteredAt: l.RegisteredAt,
	}
}

// LotListResponse lista paginada de lotes.
type LotListResponse struct {
	Items []LotResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// CreateMovementRequest entrada para registrar una entrada o salida manual.
type CreateMovementRequest struct {
	LotID    string `json:"lot_id" validate:"required,uuid4"`
	Type     string `json:"type" validate:"required,oneof=IN OUT"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Note     string `json:"note" validate:"max=500"`
}

// ReverseMovementRequest entrada para revertir un movimiento del libro.
type ReverseMovementRequest struct {
	Note string `json:"note" validate:"max=500"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID        string    `json:"id"`
	LotID     string    `json:"lot_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementFromEntity convierte la entidad a su representación HTTP.
func MovementFromEntity(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:        m.ID,
		LotID:     m.LotID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

// MovementHistoryItem un movimiento del historial con los datos de su lote.
type MovementHistoryItem struct {
	MovementResponse
	Medication string `json:"medication"`
	LotCode    string `json:"lot_code"`
}

// MovementHistoryResponse historial de movimientos.
type MovementHistoryResponse struct {
	Items []MovementHistoryItem `json:"items"`
	Page  PageResponse          `json:"page"`
}
