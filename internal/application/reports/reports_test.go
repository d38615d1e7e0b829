package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariaalvez/vetclinic-api/internal/application/clinic"
	"github.com/mariaalvez/vetclinic-api/internal/application/reports"
	appstock "github.com/mariaalvez/vetclinic-api/internal/application/stock"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
	"github.com/mariaalvez/vetclinic-api/internal/domain/stock"
	"github.com/mariaalvez/vetclinic-api/internal/infrastructure/memory"
)

var hoy = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

type env struct {
	store   *memory.Store
	ledger  *appstock.LedgerUseCase
	reports *reports.UseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	return &env{
		store:  store,
		ledger: appstock.NewLedgerUseCase(store),
		reports: reports.NewUseCase(
			repos.Lots, repos.Movements, repos.Consultations, repos.Vaccinations,
			repos.Dewormings, store.Appointments(), store.ServiceRecords(),
			store.Companies(), store.Animals(), store.Vets(),
		),
	}
}

func (e *env) crearLote(t *testing.T, medication, code string, qty int, expiry time.Time) *entity.Lot {
	t.Helper()
	lot, err := e.ledger.CreateLot(context.Background(), appstock.CreateLotInput{
		Medication:      medication,
		Category:        entity.CategoryMedication,
		LotCode:         code,
		ExpiryDate:      expiry,
		InitialQuantity: qty,
		AsOf:            hoy.AddDate(-1, 0, 0),
	})
	require.NoError(t, err)
	return lot
}

func TestStock_ClasificacionPorVigencia(t *testing.T) {
	e := newEnv(t)
	e.crearLote(t, "Amoxicilina", "LOT-OK", 10, hoy.AddDate(0, 6, 0))
	e.crearLote(t, "Ivermectina", "LOT-PROX", 5, hoy.AddDate(0, 0, 20))
	e.crearLote(t, "Dipirona", "LOT-VENC", 3, hoy.AddDate(0, 0, -1))
	e.crearLote(t, "Meloxicam", "LOT-VACIO", 0, hoy.AddDate(0, 6, 0))

	rep, err := e.reports.Stock(reports.StockFilter{}, hoy)
	require.NoError(t, err)

	assert.Equal(t, 4, rep.Summary.Total)
	assert.Equal(t, 3, rep.Summary.WithStock)
	assert.Equal(t, 1, rep.Summary.OutOfStock)
	assert.Equal(t, 1, rep.Summary.Expired)
	assert.Equal(t, 1, rep.Summary.ExpiringSoon)

	porCodigo := make(map[string]reports.StockRow)
	for _, row := range rep.Rows {
		porCodigo[row.Lot.LotCode] = row
	}
	assert.Equal(t, stock.StatusOK, porCodigo["LOT-OK"].Status)
	assert.Equal(t, stock.StatusExpiringSoon, porCodigo["LOT-PROX"].Status)
	assert.Equal(t, 20, porCodigo["LOT-PROX"].DaysToExpiry)
	assert.Equal(t, stock.StatusExpired, porCodigo["LOT-VENC"].Status)
	assert.Equal(t, -1, porCodigo["LOT-VENC"].DaysToExpiry)
}

func TestStock_FiltroInsensibleAAcentos(t *testing.T) {
	e := newEnv(t)
	e.crearLote(t, "Ivermectína Plus", "LOT-001", 5, hoy.AddDate(0, 6, 0))
	e.crearLote(t, "Amoxicilina", "LOT-002", 5, hoy.AddDate(0, 6, 0))

	// Busca sin acento, el dato lo tiene.
	rep, err := e.reports.Stock(reports.StockFilter{Medication: "ivermectina"}, hoy)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "LOT-001", rep.Rows[0].Lot.LotCode)

	// Busca con acento, el dato no lo tiene.
	rep, err = e.reports.Stock(reports.StockFilter{Medication: "amoxicilína"}, hoy)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "LOT-002", rep.Rows[0].Lot.LotCode)
}

func TestStock_FiltroPorEstado(t *testing.T) {
	e := newEnv(t)
	e.crearLote(t, "Amoxicilina", "LOT-OK", 10, hoy.AddDate(0, 6, 0))
	e.crearLote(t, "Dipirona", "LOT-VENC", 3, hoy.AddDate(0, 0, -5))

	rep, err := e.reports.Stock(reports.StockFilter{Status: stock.StatusExpired}, hoy)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "LOT-VENC", rep.Rows[0].Lot.LotCode)
	// El resumen refleja solo las filas que pasaron el filtro.
	assert.Equal(t, 1, rep.Summary.Total)
}

func TestMovementHistory(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	lot := e.crearLote(t, "Amoxicilina", "LOT-001", 10, hoy.AddDate(0, 6, 0))
	_, err := e.ledger.ApplyMovement(ctx, lot.ID, entity.MovementTypeOUT, 3, "ajuste")
	require.NoError(t, err)

	rows, err := e.reports.MovementHistory(lot.ID, nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Del más reciente al más antiguo.
	assert.Equal(t, entity.MovementTypeOUT, rows[0].Movement.Type)
	assert.Equal(t, entity.MovementTypeIN, rows[1].Movement.Type)
	assert.Equal(t, "LOT-001", rows[0].Lot.LotCode)
}

func TestVaccinations_EstadoDeRevacunacion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	animal := &entity.Animal{Name: "Rex", Species: "Canina"}
	require.NoError(t, e.store.Animals().Create(animal))

	vacUC := clinic.NewVaccinationUseCase(e.store, e.store.Animals(), e.store.Repos().Lots)
	lote, err := e.ledger.CreateLot(ctx, appstock.CreateLotInput{
		Medication: "Antirrábica", Category: entity.CategoryVaccine, LotCode: "VAC-001",
		ExpiryDate: hoy.AddDate(1, 0, 0), InitialQuantity: 10, AsOf: hoy,
	})
	require.NoError(t, err)

	atrasada := hoy.AddDate(0, 0, -10)
	proxima := hoy.AddDate(0, 0, 15)
	lejana := hoy.AddDate(1, 0, 0)
	for _, fecha := range []*time.Time{&atrasada, &proxima, &lejana, nil} {
		_, err := vacUC.Create(ctx, clinic.VaccinationInput{
			AnimalID: animal.ID, LotID: lote.ID, AppliedAt: hoy.AddDate(0, -6, 0), RevaccinationDate: fecha,
		})
		require.NoError(t, err)
	}

	rows, err := e.reports.Vaccinations(repository.VaccinationFilter{AnimalID: animal.ID}, hoy, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	conteo := make(map[string]int)
	for _, r := range rows {
		conteo[r.Status]++
	}
	assert.Equal(t, 1, conteo[reports.ScheduleOverdue])
	assert.Equal(t, 1, conteo[reports.ScheduleDueSoon])
	assert.Equal(t, 1, conteo[reports.ScheduleOK])
	assert.Equal(t, 1, conteo[reports.ScheduleNotScheduled])
}

func TestBuildDashboard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	animal := &entity.Animal{Name: "Rex", Species: "Canina"}
	require.NoError(t, e.store.Animals().Create(animal))

	// Agenda: una cita hoy, una en tres días, una fuera de la semana.
	for _, d := range []int{0, 3, 10} {
		require.NoError(t, e.store.Appointments().Create(&entity.Appointment{
			AnimalID: animal.ID, ScheduledAt: hoy.AddDate(0, 0, d),
		}))
	}

	// Stock: un lote sano y uno por vencer con saldo.
	e.crearLote(t, "Amoxicilina", "LOT-OK", 10, hoy.AddDate(0, 6, 0))
	e.crearLote(t, "Dipirona", "LOT-PROX", 3, hoy.AddDate(0, 0, 10))

	// Una revacunación atrasada.
	vacUC := clinic.NewVaccinationUseCase(e.store, e.store.Animals(), e.store.Repos().Lots)
	lote, err := e.ledger.CreateLot(ctx, appstock.CreateLotInput{
		Medication: "Antirrábica", Category: entity.CategoryVaccine, LotCode: "VAC-001",
		ExpiryDate: hoy.AddDate(1, 0, 0), InitialQuantity: 5, AsOf: hoy,
	})
	require.NoError(t, err)
	atrasada := hoy.AddDate(0, 0, -5)
	_, err = vacUC.Create(ctx, clinic.VaccinationInput{
		AnimalID: animal.ID, LotID: lote.ID, AppliedAt: hoy.AddDate(0, -6, 0), RevaccinationDate: &atrasada,
	})
	require.NoError(t, err)

	dash, err := e.reports.BuildDashboard(hoy)
	require.NoError(t, err)

	assert.Len(t, dash.AppointmentsToday, 1)
	assert.Len(t, dash.AppointmentsWeek, 2)
	require.Len(t, dash.CriticalLots, 1)
	assert.Equal(t, "LOT-PROX", dash.CriticalLots[0].Lot.LotCode)
	require.Len(t, dash.PendingVaccinations, 1)
	assert.Equal(t, reports.ScheduleOverdue, dash.PendingVaccinations[0].Status)
	assert.Equal(t, -5, dash.PendingVaccinations[0].DaysToNext)
}
