package stock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

func TestRecordConsumption(t *testing.T) {
	store, ledger, consumption := setup(t)
	lot := crearLote(t, ledger, "LOT-001", 10)

	link, err := consumption.RecordConsumption(context.Background(), entity.EventKindConsultation, "consulta-42", lot.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, link.Quantity)
	assert.Equal(t, lot.ID, link.LotID)

	assert.Equal(t, 7, saldoActual(t, store, lot.ID))
	verificarInvariante(t, store, lot.ID)

	movs, _ := store.Repos().Movements.ListByLot(lot.ID, nil, nil, 0, 0)
	require.Len(t, movs, 2) // apertura + salida
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.Contains(t, movs[0].Note, "consulta-42")
}

func TestRecordConsumption_StockInsuficiente(t *testing.T) {
	store, ledger, consumption := setup(t)
	lot := crearLote(t, ledger, "LOT-001", 2)

	_, err := consumption.RecordConsumption(context.Background(), entity.EventKindVaccination, "vac-1", lot.ID, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó escrito: ni enlace, ni movimiento, ni cambio de saldo.
	assert.Equal(t, 2, saldoActual(t, store, lot.ID))
	links, _ := store.Repos().Consumptions.ListByEvent(entity.EventKindVaccination, "vac-1")
	assert.Empty(t, links)
	movs, _ := store.Repos().Movements.ListByLot(lot.ID, nil, nil, 0, 0)
	assert.Len(t, movs, 1)
}

func TestRecordConsumption_EntradasInvalidas(t *testing.T) {
	_, ledger, consumption := setup(t)
	lot := crearLote(t, ledger, "LOT-001", 5)
	ctx := context.Background()

	_, err := consumption.RecordConsumption(ctx, entity.EventKindDeworming, "verm-1", lot.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = consumption.RecordConsumption(ctx, "PASEO", "ev-1", lot.ID, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de evento desconocido")
}

func TestUpdateConsumption_MismoLote(t *testing.T) {
	store, ledger, consumption := setup(t)
	ctx := context.Background()
	lot := crearLote(t, ledger, "LOT-001", 10)
	link, err := consumption.RecordConsumption(ctx, entity.EventKindConsultation, "consulta-7", lot.ID, 3)
	require.NoError(t, err)

	// Sube de 3 a 5: salida adicional de 2.
	link, err = consumption.UpdateConsumption(ctx, link.ID, "", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, link.Quantity)
	assert.Equal(t, 5, saldoActual(t, store, lot.ID))

	// Baja de 5 a 1: reverso parcial de 4.
	link, err = consumption.UpdateConsumption(ctx, link.ID, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, link.Quantity)
	assert.Equal(t, 9, saldoActual(t, store, lot.ID))

	// Misma cantidad: sin movimiento nuevo.
	antes, _ := store.Repos().Movements.CountByLot(lot.ID)
	_, err = consumption.UpdateConsumption(ctx, link.ID, "", 1)
	require.NoError(t, err)
	despues, _ := store.Repos().Movements.CountByLot(lot.ID)
	assert.Equal(t, antes, despues)
	verificarInvariante(t, store, lot.ID)
}

func TestUpdateConsumption_CambioDeLote(t *testing.T) {
	store, ledger, consumption := setup(t)
	ctx := context.Background()
	origen := crearLote(t, ledger, "LOT-001", 10)
	destino := crearLote(t, ledger, "LOT-002", 10)
	link, err := consumption.RecordConsumption(ctx, entity.EventKindVaccination, "vac-9", origen.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 6, saldoActual(t, store, origen.ID))

	link, err = consumption.UpdateConsumption(ctx, link.ID, destino.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, destino.ID, link.LotID)

	assert.Equal(t, 10, saldoActual(t, store, origen.ID), "el lote original recupera todo")
	assert.Equal(t, 6, saldoActual(t, store, destino.ID), "el nuevo lote descuenta todo")
	verificarInvariante(t, store, origen.ID)
	verificarInvariante(t, store, destino.ID)
}

// El sub-caso crítico de atomicidad: el cambio de lote falla por stock
// insuficiente en el lote nuevo y el estado completo queda como antes.
func TestUpdateConsumption_FallaEnLoteNuevo_EstadoIntacto(t *testing.T) {
	store, ledger, consumption := setup(t)
	ctx := context.Background()
	origen := crearLote(t, ledger, "LOT-001", 10)
	destino := crearLote(t, ledger, "LOT-002", 2)
	link, err := consumption.RecordConsumption(ctx, entity.EventKindVaccination, "vac-1", origen.ID, 5)
	require.NoError(t, err)

	movsOrigenAntes, _ := store.Repos().Movements.CountByLot(origen.ID)
	movsDestinoAntes, _ := store.Repos().Movements.CountByLot(destino.ID)

	_, err = consumption.UpdateConsumption(ctx, link.ID, destino.ID, 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Saldos, enlace y libro exactamente como antes de la llamada.
	assert.Equal(t, 5, saldoActual(t, store, origen.ID))
	assert.Equal(t, 2, saldoActual(t, store, destino.ID))

	guardado, err := store.Repos().Consumptions.GetByID(link.ID)
	require.NoError(t, err)
	assert.Equal(t, origen.ID, guardado.LotID)
	assert.Equal(t, 5, guardado.Quantity)

	movsOrigen, _ := store.Repos().Movements.CountByLot(origen.ID)
	movsDestino, _ := store.Repos().Movements.CountByLot(destino.ID)
	assert.Equal(t, movsOrigenAntes, movsOrigen, "el reverso sobre el lote original no debe persistir")
	assert.Equal(t, movsDestinoAntes, movsDestino)
}

func TestDeleteConsumption_RoundTrip(t *testing.T) {
	store, ledger, consumption := setup(t)
	ctx := context.Background()
	lot := crearLote(t, ledger, "LOT-001", 10)

	link, err := consumption.RecordConsumption(ctx, entity.EventKindDeworming, "verm-3", lot.ID, 2)
	require.NoError(t, err)
	require.NoError(t, consumption.DeleteConsumption(ctx, link.ID))

	// Crear y borrar es neutro para el saldo y deja una salida + una entrada.
	assert.Equal(t, 10, saldoActual(t, store, lot.ID))
	movs, _ := store.Repos().Movements.ListByLot(lot.ID, nil, nil, 0, 0)
	require.Len(t, movs, 3) // apertura + salida + reverso
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.Equal(t, entity.MovementTypeOUT, movs[1].Type)
	verificarInvariante(t, store, lot.ID)

	got, err := store.Repos().Consumptions.GetByID(link.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// Dos consumos simultáneos contra un lote con saldo 5, cada uno de 4 unidades:
// exactamente uno debe prosperar y el saldo final debe ser 1. Nunca -3 ni dos
// éxitos.
func TestRecordConsumption_Concurrencia(t *testing.T) {
	store, ledger, consumption := setup(t)
	lot := crearLote(t, ledger, "LOT-001", 5)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = consumption.RecordConsumption(context.Background(), entity.EventKindConsultation, "consulta-c", lot.ID, 4)
		}(i)
	}
	wg.Wait()

	exitos, insuficientes := 0, 0
	for _, err := range errs {
		if err == nil {
			exitos++
			continue
		}
		require.ErrorIs(t, err, domain.ErrInsufficientStock)
		insuficientes++
	}
	assert.Equal(t, 1, exitos)
	assert.Equal(t, 1, insuficientes)
	assert.Equal(t, 1, saldoActual(t, store, lot.ID))
	verificarInvariante(t, store, lot.ID)
}

// Escenario completo del ciclo de vida de una vacunación:
// LOT-001 con 10 unidades, consumo de 1, cambio a LOT-002, eliminación.
func TestEscenario_CicloDeVacunacion(t *testing.T) {
	store, ledger, consumption := setup(t)
	ctx := context.Background()
	lote1 := crearLote(t, ledger, "LOT-001", 10)
	lote2 := crearLote(t, ledger, "LOT-002", 10)

	// Vacunación consume 1 de LOT-001.
	link, err := consumption.RecordConsumption(ctx, entity.EventKindVaccination, "vac-rabia", lote1.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 9, saldoActual(t, store, lote1.ID))

	// El registro cambia de lote: LOT-001 se reversa, LOT-002 se consume.
	link, err = consumption.UpdateConsumption(ctx, link.ID, lote2.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, saldoActual(t, store, lote1.ID))
	assert.Equal(t, 9, saldoActual(t, store, lote2.ID))

	// El registro se elimina: LOT-002 recupera su saldo.
	require.NoError(t, consumption.DeleteConsumption(ctx, link.ID))
	assert.Equal(t, 10, saldoActual(t, store, lote2.ID))

	// Cuatro movimientos derivados del ciclo (sin contar las aperturas):
	// salida LOT-001, entrada LOT-001, salida LOT-002, entrada LOT-002.
	movs1, _ := store.Repos().Movements.ListByLot(lote1.ID, nil, nil, 0, 0)
	movs2, _ := store.Repos().Movements.ListByLot(lote2.ID, nil, nil, 0, 0)
	assert.Len(t, movs1, 3) // apertura + salida + entrada
	assert.Len(t, movs2, 3) // apertura + salida + entrada
	verificarInvariante(t, store, lote1.ID)
	verificarInvariante(t, store, lote2.ID)
}

func TestDeleteForEvent(t *testing.T) {
	store, ledger, consumption := setup(t)
	ctx := context.Background()
	lote1 := crearLote(t, ledger, "LOT-001", 10)
	lote2 := crearLote(t, ledger, "LOT-002", 10)

	_, err := consumption.RecordConsumption(ctx, entity.EventKindConsultation, "consulta-5", lote1.ID, 2)
	require.NoError(t, err)
	_, err = consumption.RecordConsumption(ctx, entity.EventKindConsultation, "consulta-5", lote2.ID, 3)
	require.NoError(t, err)

	require.NoError(t, consumption.DeleteForEvent(ctx, entity.EventKindConsultation, "consulta-5"))

	assert.Equal(t, 10, saldoActual(t, store, lote1.ID))
	assert.Equal(t, 10, saldoActual(t, store, lote2.ID))
	links, _ := store.Repos().Consumptions.ListByEvent(entity.EventKindConsultation, "consulta-5")
	assert.Empty(t, links)
}
