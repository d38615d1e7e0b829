package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// LedgerUseCase mantiene los saldos por lote y el libro de movimientos.
// Es el único camino sancionado para mutar lot.Quantity: toda verificación y
// todo descuento pasan por ApplyMovementInTx con la fila del lote bloqueada
// (SELECT FOR UPDATE), de modo que dos consumos concurrentes sobre el mismo
// lote nunca sobregiran el saldo.
type LedgerUseCase struct {
	txRunner TxRunner
}

// NewLedgerUseCase construye el caso de uso del libro de stock.
func NewLedgerUseCase(txRunner TxRunner) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner}
}

// CreateLotInput entrada para registrar un lote.
// AsOf es la fecha de referencia para validar el vencimiento (se valida solo
// en la creación, nunca retroactivamente).
type CreateLotInput struct {
	Medication      string
	Category        string
	LotCode         string
	ExpiryDate      time.Time
	InitialQuantity int
	AsOf            time.Time
}

// CreateLot registra un lote nuevo. Si la cantidad inicial es positiva deja
// además un movimiento de entrada, así el invariante
// quantity == sum(IN) - sum(OUT) vale desde el primer día.
func (uc *LedgerUseCase) CreateLot(ctx context.Context, input CreateLotInput) (*entity.Lot, error) {
	if input.Medication == "" || input.LotCode == "" {
		return nil, domain.ErrInvalidInput
	}
	switch input.Category {
	case entity.CategoryVaccine, entity.CategoryDewormer, entity.CategoryMedication:
	default:
		return nil, domain.ErrInvalidInput
	}
	if input.InitialQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if input.ExpiryDate.Before(truncateToDay(input.AsOf)) {
		return nil, domain.ErrInvalidExpiry
	}

	now := time.Now()
	lot := &entity.Lot{
		Medication:   input.Medication,
		Category:     input.Category,
		LotCode:      input.LotCode,
		ExpiryDate:   input.ExpiryDate,
		Quantity:     input.InitialQuantity,
		RegisteredAt: now,
	}
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		existing, err := repos.Lots.GetByCode(input.LotCode)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateLot
		}
		if err := repos.Lots.Create(lot); err != nil {
			return err
		}
		if input.InitialQuantity > 0 {
			mov := &entity.Movement{
				LotID:     lot.ID,
				Type:      entity.MovementTypeIN,
				Quantity:  input.InitialQuantity,
				Note:      "entrada inicial del lote",
				CreatedAt: now,
			}
			return repos.Movements.Create(mov)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}

// ApplyMovement registra una entrada o salida contra un lote en una
// transacción propia. Callers que ya tienen una transacción abierta deben usar
// ApplyMovementInTx.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, lotID, movType string, quantity int, note string) (*entity.Movement, error) {
	now := time.Now()
	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		var err error
		mov, err = ApplyMovementInTx(repos, lotID, movType, quantity, note, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyMovementInTx bloquea la fila del lote, verifica el saldo para salidas y
// registra el movimiento junto con el nuevo saldo. Único mutador de
// lot.Quantity en todo el sistema; cualquier otro camino que necesite cambiar
// stock debe pasar por acá.
func ApplyMovementInTx(repos TxRepos, lotID, movType string, quantity int, note string, now time.Time) (*entity.Movement, error) {
	if movType != entity.MovementTypeIN && movType != entity.MovementTypeOUT {
		return nil, domain.ErrInvalidInput
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	lot, err := repos.Lots.GetForUpdate(lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}

	newQty := lot.Quantity
	if movType == entity.MovementTypeIN {
		newQty += quantity
	} else {
		if quantity > lot.Quantity {
			return nil, domain.ErrInsufficientStock
		}
		newQty -= quantity
	}
	if err := repos.Lots.UpdateQuantity(lot.ID, newQty); err != nil {
		return nil, err
	}

	mov := &entity.Movement{
		LotID:     lot.ID,
		Type:      movType,
		Quantity:  quantity,
		Note:      note,
		CreatedAt: now,
	}
	if err := repos.Movements.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ReverseMovement registra el movimiento compensatorio de uno existente:
// tipo opuesto, misma cantidad, nota que referencia al original. El movimiento
// original nunca se edita ni se borra.
func (uc *LedgerUseCase) ReverseMovement(ctx context.Context, movementID, note string) (*entity.Movement, error) {
	now := time.Now()
	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		original, err := repos.Movements.GetByID(movementID)
		if err != nil {
			return err
		}
		if original == nil {
			return domain.ErrNotFound
		}
		reversed := entity.MovementTypeIN
		if original.Type == entity.MovementTypeIN {
			reversed = entity.MovementTypeOUT
		}
		if note == "" {
			note = fmt.Sprintf("reverso del movimiento %s", original.ID)
		} else {
			note = fmt.Sprintf("%s (reverso del movimiento %s)", note, original.ID)
		}
		mov, err = ApplyMovementInTx(repos, original.LotID, reversed, original.Quantity, note, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// DeleteLot elimina un lote solo si nada lo referencia (política RESTRICT:
// la historia de stock nunca se destruye en silencio).
func (uc *LedgerUseCase) DeleteLot(ctx context.Context, lotID string) error {
	return uc.txRunner.Run(ctx, func(repos TxRepos) error {
		lot, err := repos.Lots.GetByID(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		movs, err := repos.Movements.CountByLot(lotID)
		if err != nil {
			return err
		}
		links, err := repos.Consumptions.CountByLot(lotID)
		if err != nil {
			return err
		}
		if movs > 0 || links > 0 {
			return domain.ErrLotInUse
		}
		return repos.Lots.Delete(lotID)
	})
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
