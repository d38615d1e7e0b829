package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// execRecorder implementa Querier capturando los argumentos de cada Exec.
// Suficiente para verificar qué valores llegan al INSERT sin una base real.
type execRecorder struct {
	execs [][]any
}

func (e *execRecorder) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	e.execs = append(e.execs, args)
	return pgconn.CommandTag{}, nil
}

func (e *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("no esperado en este test")
}

func (e *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("no esperado en este test")
}

// lastID devuelve el primer argumento (la columna id) del último Exec.
func (e *execRecorder) lastID(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, e.execs, "Create debe ejecutar un INSERT")
	args := e.execs[len(e.execs)-1]
	require.NotEmpty(t, args)
	id, ok := args[0].(string)
	require.True(t, ok, "el primer argumento del INSERT debe ser el id")
	return id
}

func requireUUID(t *testing.T, id string) {
	t.Helper()
	require.NotEmpty(t, id, "el id no puede insertarse vacío")
	_, err := uuid.Parse(id)
	require.NoError(t, err, "el id generado debe ser un UUID")
}

// Las entidades del libro y las clínicas llegan al repositorio sin ID: el
// adaptador debe generarlo antes del INSERT, nunca insertar la clave vacía.
func TestCreate_GeneraIDCuandoFalta(t *testing.T) {
	now := time.Now()

	t.Run("lote", func(t *testing.T) {
		rec := &execRecorder{}
		err := NewLotRepository(rec).Create(&entity.Lot{
			Medication: "Amoxicilina", Category: entity.CategoryMedication,
			LotCode: "LOT-001", ExpiryDate: now.AddDate(1, 0, 0), Quantity: 10, RegisteredAt: now,
		})
		require.NoError(t, err)
		requireUUID(t, rec.lastID(t))
	})

	t.Run("movimiento", func(t *testing.T) {
		rec := &execRecorder{}
		err := NewMovementRepository(rec).Create(&entity.Movement{
			LotID: "lot-1", Type: entity.MovementTypeIN, Quantity: 1, CreatedAt: now,
		})
		require.NoError(t, err)
		requireUUID(t, rec.lastID(t))
	})

	t.Run("enlace de consumo", func(t *testing.T) {
		rec := &execRecorder{}
		err := NewConsumptionRepository(rec).Create(&entity.ConsumptionLink{
			EventKind: entity.EventKindVaccination, EventID: "ev-1", LotID: "lot-1", Quantity: 1,
		})
		require.NoError(t, err)
		requireUUID(t, rec.lastID(t))
	})

	t.Run("consulta", func(t *testing.T) {
		rec := &execRecorder{}
		err := NewConsultationRepository(rec).Create(&entity.Consultation{
			AnimalID: "a-1", VeterinarianID: "v-1", AttendedAt: now, Diagnosis: "otitis", CreatedAt: now,
		})
		require.NoError(t, err)
		requireUUID(t, rec.lastID(t))
	})

	t.Run("vacunación", func(t *testing.T) {
		rec := &execRecorder{}
		err := NewVaccinationRepository(rec).Create(&entity.Vaccination{
			AnimalID: "a-1", LotID: "lot-1", AppliedAt: now, CreatedAt: now,
		})
		require.NoError(t, err)
		requireUUID(t, rec.lastID(t))
	})

	t.Run("vermifugación", func(t *testing.T) {
		rec := &execRecorder{}
		err := NewDewormingRepository(rec).Create(&entity.Deworming{
			AnimalID: "a-1", LotID: "lot-1", AdministeredAt: now, CreatedAt: now,
		})
		require.NoError(t, err)
		requireUUID(t, rec.lastID(t))
	})

	t.Run("agendamiento", func(t *testing.T) {
		rec := &execRecorder{}
		err := NewAppointmentRepository(rec).Create(&entity.Appointment{
			AnimalID: "a-1", ScheduledAt: now, CreatedAt: now,
		})
		require.NoError(t, err)
		requireUUID(t, rec.lastID(t))
	})

	t.Run("examen", func(t *testing.T) {
		rec := &execRecorder{}
		err := NewExamRepository(rec).Create(&entity.Exam{Name: "Hemograma", CreatedAt: now})
		require.NoError(t, err)
		requireUUID(t, rec.lastID(t))
	})

	t.Run("empresa tercerizada", func(t *testing.T) {
		rec := &execRecorder{}
		err := NewServiceCompanyRepository(rec).Create(&entity.ServiceCompany{
			Name: "Lab Vet", CNPJ: "11222333000181", CreatedAt: now,
		})
		require.NoError(t, err)
		requireUUID(t, rec.lastID(t))
	})

	t.Run("registro de servicio", func(t *testing.T) {
		rec := &execRecorder{}
		err := NewServiceRecordRepository(rec).Create(&entity.ServiceRecord{
			CompanyID: "c-1", AnimalID: "a-1", PerformedAt: now, CreatedAt: now,
		})
		require.NoError(t, err)
		requireUUID(t, rec.lastID(t))
	})
}

// Movimientos consecutivos no pueden compartir ID: cada Create genera el suyo.
func TestCreate_IDsDistintosPorInsercion(t *testing.T) {
	rec := &execRecorder{}
	repo := NewMovementRepository(rec)
	now := time.Now()

	require.NoError(t, repo.Create(&entity.Movement{LotID: "lot-1", Type: entity.MovementTypeIN, Quantity: 5, CreatedAt: now}))
	require.NoError(t, repo.Create(&entity.Movement{LotID: "lot-1", Type: entity.MovementTypeOUT, Quantity: 2, CreatedAt: now}))

	require.Len(t, rec.execs, 2)
	first, _ := rec.execs[0][0].(string)
	second, _ := rec.execs[1][0].(string)
	requireUUID(t, first)
	requireUUID(t, second)
	assert.NotEqual(t, first, second, "cada asiento debe insertarse con su propio id")
}

// Un ID ya asignado (por ejemplo al re-insertar dentro de una migración) se respeta.
func TestCreate_RespetaIDExistente(t *testing.T) {
	rec := &execRecorder{}
	id := uuid.New().String()
	err := NewMovementRepository(rec).Create(&entity.Movement{
		ID: id, LotID: "lot-1", Type: entity.MovementTypeIN, Quantity: 1, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, id, rec.lastID(t))
}
