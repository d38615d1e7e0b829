package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/mariaalvez/vetclinic-api/internal/application/stock"
	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/infrastructure/memory"
)

var asOf = time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*memory.Store, *appstock.LedgerUseCase, *appstock.ConsumptionUseCase) {
	t.Helper()
	store := memory.NewStore()
	return store, appstock.NewLedgerUseCase(store), appstock.NewConsumptionUseCase(store)
}

func crearLote(t *testing.T, ledger *appstock.LedgerUseCase, code string, qty int) *entity.Lot {
	t.Helper()
	lot, err := ledger.CreateLot(context.Background(), appstock.CreateLotInput{
		Medication:      "Vacuna Antirrábica",
		Category:        entity.CategoryVaccine,
		LotCode:         code,
		ExpiryDate:      asOf.AddDate(1, 0, 0),
		InitialQuantity: qty,
		AsOf:            asOf,
	})
	require.NoError(t, err)
	return lot
}

// saldoSegunLibro recalcula el saldo de un lote desde sus movimientos.
// Invariante central: quantity == sum(IN) - sum(OUT) en todo momento.
func saldoSegunLibro(t *testing.T, store *memory.Store, lotID string) int {
	t.Helper()
	movs, err := store.Repos().Movements.ListByLot(lotID, nil, nil, 0, 0)
	require.NoError(t, err)
	saldo := 0
	for _, m := range movs {
		if m.Type == entity.MovementTypeIN {
			saldo += m.Quantity
		} else {
			saldo -= m.Quantity
		}
	}
	return saldo
}

func saldoActual(t *testing.T, store *memory.Store, lotID string) int {
	t.Helper()
	lot, err := store.Repos().Lots.GetByID(lotID)
	require.NoError(t, err)
	require.NotNil(t, lot)
	return lot.Quantity
}

func verificarInvariante(t *testing.T, store *memory.Store, lotID string) {
	t.Helper()
	require.Equal(t, saldoSegunLibro(t, store, lotID), saldoActual(t, store, lotID),
		"el saldo materializado debe coincidir con la suma del libro")
}

func TestCreateLot(t *testing.T) {
	store, ledger, _ := setup(t)

	lot := crearLote(t, ledger, "LOT-001", 10)
	assert.Equal(t, 10, lot.Quantity)
	assert.NotEmpty(t, lot.ID)

	// La cantidad inicial queda asentada como movimiento de entrada.
	movs, err := store.Repos().Movements.ListByLot(lot.ID, nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.Equal(t, 10, movs[0].Quantity)
	verificarInvariante(t, store, lot.ID)
}

func TestCreateLot_SinCantidadInicial(t *testing.T) {
	store, ledger, _ := setup(t)

	lot := crearLote(t, ledger, "LOT-VACIO", 0)
	assert.Equal(t, 0, lot.Quantity)

	movs, err := store.Repos().Movements.ListByLot(lot.ID, nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "sin cantidad inicial no debe haber movimiento de apertura")
}

func TestCreateLot_CodigoDuplicado(t *testing.T) {
	_, ledger, _ := setup(t)
	crearLote(t, ledger, "LOT-001", 5)

	_, err := ledger.CreateLot(context.Background(), appstock.CreateLotInput{
		Medication:      "Otro Medicamento",
		Category:        entity.CategoryMedication,
		LotCode:         "LOT-001",
		ExpiryDate:      asOf.AddDate(0, 6, 0),
		InitialQuantity: 3,
		AsOf:            asOf,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateLot)
}

func TestCreateLot_VencimientoPasado(t *testing.T) {
	_, ledger, _ := setup(t)

	_, err := ledger.CreateLot(context.Background(), appstock.CreateLotInput{
		Medication:      "Vermífugo X",
		Category:        entity.CategoryDewormer,
		LotCode:         "LOT-VENCIDO",
		ExpiryDate:      asOf.AddDate(0, 0, -1),
		InitialQuantity: 5,
		AsOf:            asOf,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidExpiry)
}

func TestCreateLot_EntradasInvalidas(t *testing.T) {
	_, ledger, _ := setup(t)
	ctx := context.Background()

	_, err := ledger.CreateLot(ctx, appstock.CreateLotInput{
		Medication: "X", Category: "PERFUME", LotCode: "L-1",
		ExpiryDate: asOf.AddDate(1, 0, 0), AsOf: asOf,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "categoría desconocida")

	_, err = ledger.CreateLot(ctx, appstock.CreateLotInput{
		Medication: "X", Category: entity.CategoryMedication, LotCode: "L-2",
		ExpiryDate: asOf.AddDate(1, 0, 0), InitialQuantity: -4, AsOf: asOf,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad inicial negativa")
}

func TestApplyMovement(t *testing.T) {
	store, ledger, _ := setup(t)
	ctx := context.Background()
	lot := crearLote(t, ledger, "LOT-001", 10)

	_, err := ledger.ApplyMovement(ctx, lot.ID, entity.MovementTypeOUT, 4, "salida de prueba")
	require.NoError(t, err)
	assert.Equal(t, 6, saldoActual(t, store, lot.ID))

	_, err = ledger.ApplyMovement(ctx, lot.ID, entity.MovementTypeIN, 3, "reposición")
	require.NoError(t, err)
	assert.Equal(t, 9, saldoActual(t, store, lot.ID))
	verificarInvariante(t, store, lot.ID)
}

func TestApplyMovement_StockInsuficiente(t *testing.T) {
	store, ledger, _ := setup(t)
	lot := crearLote(t, ledger, "LOT-001", 3)

	_, err := ledger.ApplyMovement(context.Background(), lot.ID, entity.MovementTypeOUT, 4, "sobregiro")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El saldo y el libro quedan exactamente como estaban.
	assert.Equal(t, 3, saldoActual(t, store, lot.ID))
	movs, _ := store.Repos().Movements.ListByLot(lot.ID, nil, nil, 0, 0)
	assert.Len(t, movs, 1, "no debe persistir ningún movimiento huérfano")
}

func TestApplyMovement_CantidadInvalida(t *testing.T) {
	_, ledger, _ := setup(t)
	lot := crearLote(t, ledger, "LOT-001", 3)
	ctx := context.Background()

	_, err := ledger.ApplyMovement(ctx, lot.ID, entity.MovementTypeOUT, 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = ledger.ApplyMovement(ctx, lot.ID, entity.MovementTypeIN, -2, "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = ledger.ApplyMovement(ctx, lot.ID, "ADJUST", 1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de movimiento desconocido")
}

func TestApplyMovement_LoteInexistente(t *testing.T) {
	_, ledger, _ := setup(t)
	_, err := ledger.ApplyMovement(context.Background(), "no-existe", entity.MovementTypeIN, 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReverseMovement(t *testing.T) {
	store, ledger, _ := setup(t)
	ctx := context.Background()
	lot := crearLote(t, ledger, "LOT-001", 10)

	out, err := ledger.ApplyMovement(ctx, lot.ID, entity.MovementTypeOUT, 4, "salida")
	require.NoError(t, err)
	require.Equal(t, 6, saldoActual(t, store, lot.ID))

	rev, err := ledger.ReverseMovement(ctx, out.ID, "corrección")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIN, rev.Type)
	assert.Equal(t, 4, rev.Quantity)
	assert.Contains(t, rev.Note, out.ID, "la nota debe referenciar al movimiento original")

	// El original sigue intacto; el saldo vuelve al valor previo.
	original, err := store.Repos().Movements.GetByID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeOUT, original.Type)
	assert.Equal(t, 10, saldoActual(t, store, lot.ID))
	verificarInvariante(t, store, lot.ID)
}

func TestDeleteLot(t *testing.T) {
	store, ledger, _ := setup(t)
	ctx := context.Background()

	// Lote con movimiento de apertura: no se puede borrar.
	conStock := crearLote(t, ledger, "LOT-USADO", 5)
	err := ledger.DeleteLot(ctx, conStock.ID)
	assert.ErrorIs(t, err, domain.ErrLotInUse)

	// Lote sin movimientos ni consumos: se borra.
	vacio := crearLote(t, ledger, "LOT-LIBRE", 0)
	require.NoError(t, ledger.DeleteLot(ctx, vacio.ID))
	got, err := store.Repos().Lots.GetByID(vacio.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, ledger.DeleteLot(ctx, "no-existe"), domain.ErrNotFound)
}

func TestInvariante_SecuenciaDeMovimientos(t *testing.T) {
	store, ledger, _ := setup(t)
	ctx := context.Background()
	lot := crearLote(t, ledger, "LOT-001", 20)

	pasos := []struct {
		tipo string
		qty  int
	}{
		{entity.MovementTypeOUT, 5},
		{entity.MovementTypeIN, 2},
		{entity.MovementTypeOUT, 10},
		{entity.MovementTypeIN, 7},
		{entity.MovementTypeOUT, 1},
	}
	for _, p := range pasos {
		_, err := ledger.ApplyMovement(ctx, lot.ID, p.tipo, p.qty, "secuencia")
		require.NoError(t, err)
		verificarInvariante(t, store, lot.ID)
	}
	assert.Equal(t, 13, saldoActual(t, store, lot.ID))
}
