package clinic

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	appstock "github.com/mariaalvez/vetclinic-api/internal/application/stock"
	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// maxBackdateDays una consulta no puede registrarse con más de 15 días de
// antigüedad respecto de la fecha de referencia.
const maxBackdateDays = 15

// ConsultationUseCase administra consultas clínicas y sus medicamentos
// aplicados (0..N por consulta). Toda la conciliación de stock ocurre dentro
// de la transacción que guarda o borra la consulta.
type ConsultationUseCase struct {
	txRunner appstock.TxRunner
	animals  repository.AnimalRepository
	vets     repository.VeterinarianRepository
	exams    repository.ExamRepository
}

// NewConsultationUseCase construye el caso de uso.
func NewConsultationUseCase(txRunner appstock.TxRunner, animals repository.AnimalRepository, vets repository.VeterinarianRepository, exams repository.ExamRepository) *ConsultationUseCase {
	return &ConsultationUseCase{txRunner: txRunner, animals: animals, vets: vets, exams: exams}
}

// MedicationApplication un medicamento aplicado en la consulta.
type MedicationApplication struct {
	LotID    string
	Quantity int
}

// ConsultationInput entrada para crear o editar una consulta.
// AsOf es la fecha de referencia para la validación de antigüedad.
type ConsultationInput struct {
	AnimalID       string
	VeterinarianID string
	AttendedAt     time.Time
	Type           string
	Diagnosis      string
	Observations   string
	HeartRate      *int
	RespRate       *int
	Temperature    decimal.Decimal
	Weight         decimal.Decimal
	MucosaEval     string
	CapillaryTime  string
	Medications    []MedicationApplication
	ExamIDs        []string
	AsOf           time.Time
}

func (uc *ConsultationUseCase) validate(input ConsultationInput) error {
	if input.Diagnosis == "" || input.AnimalID == "" || input.VeterinarianID == "" {
		return domain.ErrInvalidInput
	}
	limite := input.AsOf.AddDate(0, 0, -maxBackdateDays)
	if input.AttendedAt.Before(limite) {
		return domain.ErrInvalidInput
	}
	animal, err := uc.animals.GetByID(input.AnimalID)
	if err != nil {
		return err
	}
	if animal == nil {
		return domain.ErrNotFound
	}
	vet, err := uc.vets.GetByID(input.VeterinarianID)
	if err != nil {
		return err
	}
	if vet == nil {
		return domain.ErrNotFound
	}
	for _, examID := range input.ExamIDs {
		if examID == "" {
			return domain.ErrInvalidInput
		}
		exam, err := uc.exams.GetByID(examID)
		if err != nil {
			return err
		}
		if exam == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// dedupeExamIDs conserva el orden de la primera aparición de cada examen.
func dedupeExamIDs(ids []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// mergeApplications agrupa las aplicaciones solicitadas por lote, sumando
// cantidades repetidas, para que exista a lo sumo un enlace por lote.
func mergeApplications(apps []MedicationApplication) ([]MedicationApplication, error) {
	byLot := map[string]int{}
	var order []string
	for _, a := range apps {
		if a.LotID == "" {
			return nil, domain.ErrInvalidInput
		}
		if a.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if _, seen := byLot[a.LotID]; !seen {
			order = append(order, a.LotID)
		}
		byLot[a.LotID] += a.Quantity
	}
	merged := make([]MedicationApplication, 0, len(order))
	for _, lotID := range order {
		merged = append(merged, MedicationApplication{LotID: lotID, Quantity: byLot[lotID]})
	}
	return merged, nil
}

func applyFields(c *entity.Consultation, input ConsultationInput) {
	c.AnimalID = input.AnimalID
	c.VeterinarianID = input.VeterinarianID
	c.AttendedAt = input.AttendedAt
	c.Type = input.Type
	c.Diagnosis = input.Diagnosis
	c.Observations = input.Observations
	c.HeartRate = input.HeartRate
	c.RespRate = input.RespRate
	c.Temperature = input.Temperature
	c.Weight = input.Weight
	c.MucosaEval = input.MucosaEval
	c.CapillaryTime = input.CapillaryTime
	c.ExamIDs = dedupeExamIDs(input.ExamIDs)
}

// Create guarda la consulta y descuenta cada medicamento aplicado, todo o nada.
func (uc *ConsultationUseCase) Create(ctx context.Context, input ConsultationInput) (*entity.Consultation, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}
	apps, err := mergeApplications(input.Medications)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Consultation{CreatedAt: now}
	applyFields(c, input)

	err = uc.txRunner.Run(ctx, func(repos appstock.TxRepos) error {
		if err := repos.Consultations.Create(c); err != nil {
			return err
		}
		for _, a := range apps {
			if _, err := appstock.RecordConsumptionInTx(repos, entity.EventKindConsultation, c.ID, a.LotID, a.Quantity, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update reescribe la consulta y reconcilia el conjunto de medicamentos
// aplicados contra los enlaces guardados: agrega los nuevos, ajusta las
// cantidades cambiadas y reversa los quitados. Una sola transacción.
func (uc *ConsultationUseCase) Update(ctx context.Context, id string, input ConsultationInput) (*entity.Consultation, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}
	apps, err := mergeApplications(input.Medications)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var c *entity.Consultation
	err = uc.txRunner.Run(ctx, func(repos appstock.TxRepos) error {
		var err error
		c, err = repos.Consultations.GetByID(id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}

		existing, err := repos.Consumptions.ListByEvent(entity.EventKindConsultation, c.ID)
		if err != nil {
			return err
		}
		byLot := map[string]*entity.ConsumptionLink{}
		for _, link := range existing {
			byLot[link.LotID] = link
		}

		for _, a := range apps {
			if link, ok := byLot[a.LotID]; ok {
				delete(byLot, a.LotID)
				if link.Quantity != a.Quantity {
					if _, err := appstock.UpdateConsumptionInTx(repos, link.ID, link.LotID, a.Quantity, now); err != nil {
						return err
					}
				}
				continue
			}
			if _, err := appstock.RecordConsumptionInTx(repos, entity.EventKindConsultation, c.ID, a.LotID, a.Quantity, now); err != nil {
				return err
			}
		}
		// Lo que quedó en el mapa ya no está en la consulta: se reversa.
		for _, link := range byLot {
			if err := appstock.DeleteConsumptionInTx(repos, link, now); err != nil {
				return err
			}
		}

		applyFields(c, input)
		return repos.Consultations.Update(c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete elimina la consulta reversando cada medicamento aplicado.
func (uc *ConsultationUseCase) Delete(ctx context.Context, id string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(repos appstock.TxRepos) error {
		c, err := repos.Consultations.GetByID(id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if err := appstock.DeleteForEventInTx(repos, entity.EventKindConsultation, c.ID, now); err != nil {
			return err
		}
		return repos.Consultations.Delete(c.ID)
	})
}
