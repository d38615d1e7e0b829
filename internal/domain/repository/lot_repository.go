package repository

import (
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// LotFilter criterios de búsqueda para el reporte de stock.
// Medication y LotCode filtran por subcadena, sin distinguir mayúsculas.
// La búsqueda insensible a acentos se resuelve en la capa de reportes.
type LotFilter struct {
	Medication string
	LotCode    string
	Category   string
	ExpiryFrom *time.Time
	ExpiryTo   *time.Time
}

// LotRepository define el puerto de persistencia para lotes de medicamento.
// Quantity solo se escribe vía UpdateQuantity dentro de la transacción que
// registra el movimiento correspondiente.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	GetByCode(lotCode string) (*entity.Lot, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) para serializar
	// la verificación y el descuento de saldo por lote.
	GetForUpdate(id string) (*entity.Lot, error)
	UpdateQuantity(id string, quantity int) error
	List(filter LotFilter, limit, offset int) ([]*entity.Lot, error)
	// ListAvailable devuelve solo lotes con saldo > 0 (listas de selección).
	ListAvailable(category string, limit, offset int) ([]*entity.Lot, error)
	// ListExpiringBefore devuelve lotes con saldo > 0 que vencen hasta la fecha dada.
	ListExpiringBefore(limit time.Time) ([]*entity.Lot, error)
	Delete(id string) error
}
