package clinic

import (
	"context"
	"time"

	appstock "github.com/mariaalvez/vetclinic-api/internal/application/stock"
	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// DewormingUseCase administra registros de vermifugación: una dosis de un
// lote de categoría DEWORMER por registro, conciliada contra el libro de
// stock igual que las vacunaciones.
type DewormingUseCase struct {
	txRunner   appstock.TxRunner
	animalRepo repository.AnimalRepository
	lotRepo    repository.LotRepository
}

// NewDewormingUseCase construye el caso de uso.
func NewDewormingUseCase(txRunner appstock.TxRunner, animalRepo repository.AnimalRepository, lotRepo repository.LotRepository) *DewormingUseCase {
	return &DewormingUseCase{txRunner: txRunner, animalRepo: animalRepo, lotRepo: lotRepo}
}

// DewormingInput entrada para crear o editar un registro de vermifugación.
type DewormingInput struct {
	AnimalID           string
	LotID              string
	AdministeredAt     time.Time
	ReadministerBefore *time.Time
}

func (uc *DewormingUseCase) validate(input DewormingInput) error {
	if input.AnimalID == "" || input.LotID == "" || input.AdministeredAt.IsZero() {
		return domain.ErrInvalidInput
	}
	animal, err := uc.animalRepo.GetByID(input.AnimalID)
	if err != nil {
		return err
	}
	if animal == nil {
		return domain.ErrNotFound
	}
	return checkLotCategory(uc.lotRepo, input.LotID, entity.CategoryDewormer)
}

// Create registra la vermifugación y su dosis en una sola transacción.
func (uc *DewormingUseCase) Create(ctx context.Context, input DewormingInput) (*entity.Deworming, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}
	now := time.Now()
	d := &entity.Deworming{
		AnimalID:           input.AnimalID,
		LotID:              input.LotID,
		AdministeredAt:     input.AdministeredAt,
		ReadministerBefore: input.ReadministerBefore,
		CreatedAt:          now,
	}
	err := uc.txRunner.Run(ctx, func(repos appstock.TxRepos) error {
		if err := repos.Dewormings.Create(d); err != nil {
			return err
		}
		_, err := appstock.RecordConsumptionInTx(repos, entity.EventKindDeworming, d.ID, input.LotID, dosePerApplication, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Update edita el registro, reconciliando el lote consumido si cambió.
func (uc *DewormingUseCase) Update(ctx context.Context, id string, input DewormingInput) (*entity.Deworming, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}
	now := time.Now()
	var d *entity.Deworming
	err := uc.txRunner.Run(ctx, func(repos appstock.TxRepos) error {
		var err error
		d, err = repos.Dewormings.GetByID(id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.LotID != input.LotID {
			links, err := repos.Consumptions.ListByEvent(entity.EventKindDeworming, d.ID)
			if err != nil {
				return err
			}
			if len(links) != 1 {
				return domain.ErrConflict
			}
			if _, err := appstock.UpdateConsumptionInTx(repos, links[0].ID, input.LotID, dosePerApplication, now); err != nil {
				return err
			}
		}
		d.AnimalID = input.AnimalID
		d.LotID = input.LotID
		d.AdministeredAt = input.AdministeredAt
		d.ReadministerBefore = input.ReadministerBefore
		return repos.Dewormings.Update(d)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Delete elimina el registro y reversa la dosis.
func (uc *DewormingUseCase) Delete(ctx context.Context, id string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(repos appstock.TxRepos) error {
		d, err := repos.Dewormings.GetByID(id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if err := appstock.DeleteForEventInTx(repos, entity.EventKindDeworming, d.ID, now); err != nil {
			return err
		}
		return repos.Dewormings.Delete(d.ID)
	})
}
