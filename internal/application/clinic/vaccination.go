package clinic

import (
	"context"
	"time"

	appstock "github.com/mariaalvez/vetclinic-api/internal/application/stock"
	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// dosePerApplication cada registro de vacunación o vermifugación consume
// exactamente una unidad del lote.
const dosePerApplication = 1

// VaccinationUseCase administra registros de vacunación. Cada registro
// consume una dosis de un lote de categoría VACCINE; crear, editar o borrar
// el registro concilia el libro de stock dentro de la misma transacción.
type VaccinationUseCase struct {
	txRunner   appstock.TxRunner
	animalRepo repository.AnimalRepository
	lotRepo    repository.LotRepository
}

// NewVaccinationUseCase construye el caso de uso.
func NewVaccinationUseCase(txRunner appstock.TxRunner, animalRepo repository.AnimalRepository, lotRepo repository.LotRepository) *VaccinationUseCase {
	return &VaccinationUseCase{txRunner: txRunner, animalRepo: animalRepo, lotRepo: lotRepo}
}

// VaccinationInput entrada para crear o editar un registro de vacunación.
type VaccinationInput struct {
	AnimalID          string
	LotID             string
	AppliedAt         time.Time
	RevaccinationDate *time.Time
}

// checkLotCategory valida que el lote exista y pertenezca a la categoría
// esperada. Se hace antes de abrir la transacción, como validación de campo.
func checkLotCategory(lotRepo repository.LotRepository, lotID, category string) error {
	lot, err := lotRepo.GetByID(lotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return domain.ErrNotFound
	}
	if lot.Category != category {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *VaccinationUseCase) validate(input VaccinationInput) error {
	if input.AnimalID == "" || input.LotID == "" || input.AppliedAt.IsZero() {
		return domain.ErrInvalidInput
	}
	animal, err := uc.animalRepo.GetByID(input.AnimalID)
	if err != nil {
		return err
	}
	if animal == nil {
		return domain.ErrNotFound
	}
	return checkLotCategory(uc.lotRepo, input.LotID, entity.CategoryVaccine)
}

// Create registra la vacunación y la dosis consumida en una sola transacción.
func (uc *VaccinationUseCase) Create(ctx context.Context, input VaccinationInput) (*entity.Vaccination, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}
	now := time.Now()
	v := &entity.Vaccination{
		AnimalID:          input.AnimalID,
		LotID:             input.LotID,
		AppliedAt:         input.AppliedAt,
		RevaccinationDate: input.RevaccinationDate,
		CreatedAt:         now,
	}
	err := uc.txRunner.Run(ctx, func(repos appstock.TxRepos) error {
		if err := repos.Vaccinations.Create(v); err != nil {
			return err
		}
		_, err := appstock.RecordConsumptionInTx(repos, entity.EventKindVaccination, v.ID, input.LotID, dosePerApplication, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Update edita el registro. Si el lote cambia, el adaptador de consumo
// reversa el lote original y descuenta el nuevo; si el nuevo lote no tiene
// saldo, toda la edición falla y nada queda a medias.
func (uc *VaccinationUseCase) Update(ctx context.Context, id string, input VaccinationInput) (*entity.Vaccination, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}
	now := time.Now()
	var v *entity.Vaccination
	err := uc.txRunner.Run(ctx, func(repos appstock.TxRepos) error {
		var err error
		v, err = repos.Vaccinations.GetByID(id)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}
		if v.LotID != input.LotID {
			links, err := repos.Consumptions.ListByEvent(entity.EventKindVaccination, v.ID)
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
		v.AnimalID = input.AnimalID
		v.LotID = input.LotID
		v.AppliedAt = input.AppliedAt
		v.RevaccinationDate = input.RevaccinationDate
		return repos.Vaccinations.Update(v)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Delete elimina el registro y reversa la dosis consumida.
func (uc *VaccinationUseCase) Delete(ctx context.Context, id string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(repos appstock.TxRepos) error {
		v, err := repos.Vaccinations.GetByID(id)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}
		if err := appstock.DeleteForEventInTx(repos, entity.EventKindVaccination, v.ID, now); err != nil {
			return err
		}
		return repos.Vaccinations.Delete(v.ID)
	})
}
