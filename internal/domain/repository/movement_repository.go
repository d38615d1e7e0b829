package repository

import (
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de stock.
// El libro es de solo apéndice: no existen Update ni Delete; una corrección se
// registra como movimiento compensatorio (ver stock.LedgerUseCase.ReverseMovement).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByLot(lotID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	CountByLot(lotID string) (int, error)
}
