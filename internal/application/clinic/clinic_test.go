package clinic_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariaalvez/vetclinic-api/internal/application/clinic"
	appstock "github.com/mariaalvez/vetclinic-api/internal/application/stock"
	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
	"github.com/mariaalvez/vetclinic-api/internal/infrastructure/memory"
)

var hoy = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store        *memory.Store
	ledger       *appstock.LedgerUseCase
	vaccination  *clinic.VaccinationUseCase
	deworming    *clinic.DewormingUseCase
	consultation *clinic.ConsultationUseCase
	animal       *entity.Animal
	vet          *entity.Veterinarian
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ledger := appstock.NewLedgerUseCase(store)

	animal := &entity.Animal{Name: "Rex", Species: "Canina"}
	require.NoError(t, store.Animals().Create(animal))
	vet := &entity.Veterinarian{Name: "Dra. Souza"}
	require.NoError(t, store.Vets().Create(vet))

	lots := store.Repos().Lots
	return &fixture{
		store:        store,
		ledger:       ledger,
		vaccination:  clinic.NewVaccinationUseCase(store, store.Animals(), lots),
		deworming:    clinic.NewDewormingUseCase(store, store.Animals(), lots),
		consultation: clinic.NewConsultationUseCase(store, store.Animals(), store.Vets(), store.Exams()),
		animal:       animal,
		vet:          vet,
	}
}

func (f *fixture) crearLote(t *testing.T, code, category string, qty int) *entity.Lot {
	t.Helper()
	lot, err := f.ledger.CreateLot(context.Background(), appstock.CreateLotInput{
		Medication:      "Medicamento " + code,
		Category:        category,
		LotCode:         code,
		ExpiryDate:      hoy.AddDate(1, 0, 0),
		InitialQuantity: qty,
		AsOf:            hoy,
	})
	require.NoError(t, err)
	return lot
}

func (f *fixture) saldo(t *testing.T, lotID string) int {
	t.Helper()
	lot, err := f.store.Repos().Lots.GetByID(lotID)
	require.NoError(t, err)
	require.NotNil(t, lot)
	return lot.Quantity
}

func TestVaccination_CicloCompleto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lote1 := f.crearLote(t, "VAC-001", entity.CategoryVaccine, 10)
	lote2 := f.crearLote(t, "VAC-002", entity.CategoryVaccine, 10)
	revac := hoy.AddDate(1, 0, 0)

	// Crear: consume una dosis del lote 1.
	v, err := f.vaccination.Create(ctx, clinic.VaccinationInput{
		AnimalID: f.animal.ID, LotID: lote1.ID, AppliedAt: hoy, RevaccinationDate: &revac,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, f.saldo(t, lote1.ID))

	// Cambiar de lote: el lote 1 recupera la dosis, el lote 2 la descuenta.
	v, err = f.vaccination.Update(ctx, v.ID, clinic.VaccinationInput{
		AnimalID: f.animal.ID, LotID: lote2.ID, AppliedAt: hoy, RevaccinationDate: &revac,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, f.saldo(t, lote1.ID))
	assert.Equal(t, 9, f.saldo(t, lote2.ID))

	// Eliminar: el lote 2 también recupera la dosis.
	require.NoError(t, f.vaccination.Delete(ctx, v.ID))
	assert.Equal(t, 10, f.saldo(t, lote2.ID))

	// Ciclo completo = 4 movimientos derivados más las dos aperturas.
	m1, _ := f.store.Repos().Movements.CountByLot(lote1.ID)
	m2, _ := f.store.Repos().Movements.CountByLot(lote2.ID)
	assert.Equal(t, 3, m1)
	assert.Equal(t, 3, m2)
}

func TestVaccination_CategoriaIncorrecta(t *testing.T) {
	f := newFixture(t)
	generico := f.crearLote(t, "MED-001", entity.CategoryMedication, 5)

	_, err := f.vaccination.Create(context.Background(), clinic.VaccinationInput{
		AnimalID: f.animal.ID, LotID: generico.ID, AppliedAt: hoy,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVaccination_SinStock_NoDejaRegistro(t *testing.T) {
	f := newFixture(t)
	agotado := f.crearLote(t, "VAC-000", entity.CategoryVaccine, 0)

	_, err := f.vaccination.Create(context.Background(), clinic.VaccinationInput{
		AnimalID: f.animal.ID, LotID: agotado.ID, AppliedAt: hoy,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El registro de vacunación tampoco debe haber quedado guardado.
	regs, err2 := f.store.Repos().Vaccinations.List(repository.VaccinationFilter{AnimalID: f.animal.ID}, 0, 0)
	require.NoError(t, err2)
	assert.Empty(t, regs)
}

func TestDeworming_CicloBasico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lote := f.crearLote(t, "VERM-001", entity.CategoryDewormer, 3)

	d, err := f.deworming.Create(ctx, clinic.DewormingInput{
		AnimalID: f.animal.ID, LotID: lote.ID, AdministeredAt: hoy,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.saldo(t, lote.ID))

	require.NoError(t, f.deworming.Delete(ctx, d.ID))
	assert.Equal(t, 3, f.saldo(t, lote.ID))
}

func TestConsultation_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := clinic.ConsultationInput{
		AnimalID:       f.animal.ID,
		VeterinarianID: f.vet.ID,
		AttendedAt:     hoy,
		Diagnosis:      "Otitis externa",
		AsOf:           hoy,
	}

	sinDiagnostico := base
	sinDiagnostico.Diagnosis = ""
	_, err := f.consultation.Create(ctx, sinDiagnostico)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el diagnóstico es obligatorio")

	sinVet := base
	sinVet.VeterinarianID = ""
	_, err = f.consultation.Create(ctx, sinVet)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Más de 15 días hacia atrás respecto de la fecha de referencia.
	antigua := base
	antigua.AttendedAt = hoy.AddDate(0, 0, -16)
	_, err = f.consultation.Create(ctx, antigua)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Exactamente 15 días atrás todavía es válido.
	limite := base
	limite.AttendedAt = hoy.AddDate(0, 0, -15)
	_, err = f.consultation.Create(ctx, limite)
	assert.NoError(t, err)
}

func TestConsultation_ReconciliacionDeMedicamentos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	loteA := f.crearLote(t, "MED-A", entity.CategoryMedication, 10)
	loteB := f.crearLote(t, "MED-B", entity.CategoryMedication, 10)
	loteC := f.crearLote(t, "MED-C", entity.CategoryMedication, 10)

	input := clinic.ConsultationInput{
		AnimalID:       f.animal.ID,
		VeterinarianID: f.vet.ID,
		AttendedAt:     hoy,
		Diagnosis:      "Dermatitis",
		AsOf:           hoy,
		Medications: []clinic.MedicationApplication{
			{LotID: loteA.ID, Quantity: 2},
			{LotID: loteB.ID, Quantity: 1},
		},
	}
	c, err := f.consultation.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 8, f.saldo(t, loteA.ID))
	assert.Equal(t, 9, f.saldo(t, loteB.ID))

	// Edición: A sube a 3, B desaparece, C entra con 4.
	input.Medications = []clinic.MedicationApplication{
		{LotID: loteA.ID, Quantity: 3},
		{LotID: loteC.ID, Quantity: 4},
	}
	_, err = f.consultation.Update(ctx, c.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 7, f.saldo(t, loteA.ID))
	assert.Equal(t, 10, f.saldo(t, loteB.ID), "el lote quitado recupera su saldo")
	assert.Equal(t, 6, f.saldo(t, loteC.ID))

	// Borrado: todos los lotes vuelven a su saldo original.
	require.NoError(t, f.consultation.Delete(ctx, c.ID))
	assert.Equal(t, 10, f.saldo(t, loteA.ID))
	assert.Equal(t, 10, f.saldo(t, loteB.ID))
	assert.Equal(t, 10, f.saldo(t, loteC.ID))

	links, _ := f.store.Repos().Consumptions.ListByEvent(entity.EventKindConsultation, c.ID)
	assert.Empty(t, links)
}

// Si un medicamento de la consulta no tiene stock, nada de la consulta se
// guarda: ni el registro ni los consumos de los lotes que sí tenían saldo.
func TestConsultation_FallaParcial_NadaPersiste(t *testing.T) {
	f := newFixture(t)
	conStock := f.crearLote(t, "MED-OK", entity.CategoryMedication, 10)
	sinStock := f.crearLote(t, "MED-SIN", entity.CategoryMedication, 1)

	_, err := f.consultation.Create(context.Background(), clinic.ConsultationInput{
		AnimalID:       f.animal.ID,
		VeterinarianID: f.vet.ID,
		AttendedAt:     hoy,
		Diagnosis:      "Gastroenteritis",
		AsOf:           hoy,
		Medications: []clinic.MedicationApplication{
			{LotID: conStock.ID, Quantity: 3},
			{LotID: sinStock.ID, Quantity: 5},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, f.saldo(t, conStock.ID), "el consumo hermano no debe haberse confirmado")
	assert.Equal(t, 1, f.saldo(t, sinStock.ID))
	consultas, _ := f.store.Repos().Consultations.List(nil, nil, 0, 0)
	assert.Empty(t, consultas)
}
