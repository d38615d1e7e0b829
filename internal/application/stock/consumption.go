package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// ConsumptionUseCase traduce eventos clínicos (medicamento aplicado en una
// consulta, dosis de vacuna, dosis de vermífugo) en movimientos del libro de
// stock, y concilia el saldo cuando el evento se edita o se elimina.
// Las tres variantes comparten este único camino de conciliación.
type ConsumptionUseCase struct {
	txRunner TxRunner
}

// NewConsumptionUseCase construye el adaptador de consumo.
func NewConsumptionUseCase(txRunner TxRunner) *ConsumptionUseCase {
	return &ConsumptionUseCase{txRunner: txRunner}
}

// eventLabel etiqueta legible del tipo de evento para las notas de movimiento.
func eventLabel(eventKind string) string {
	switch eventKind {
	case entity.EventKindConsultation:
		return "consulta"
	case entity.EventKindVaccination:
		return "vacunación"
	case entity.EventKindDeworming:
		return "vermifugación"
	}
	return eventKind
}

func validEventKind(eventKind string) bool {
	switch eventKind {
	case entity.EventKindConsultation, entity.EventKindVaccination, entity.EventKindDeworming:
		return true
	}
	return false
}

// RecordConsumption crea el enlace de consumo y la salida derivada en una
// transacción propia.
func (uc *ConsumptionUseCase) RecordConsumption(ctx context.Context, eventKind, eventID, lotID string, quantity int) (*entity.ConsumptionLink, error) {
	now := time.Now()
	var link *entity.ConsumptionLink
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		var err error
		link, err = RecordConsumptionInTx(repos, eventKind, eventID, lotID, quantity, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// RecordConsumptionInTx valida cantidad y saldo (con la fila del lote
// bloqueada, antes de cualquier escritura), registra la salida y crea el
// enlace. Para usar dentro de la transacción del evento clínico dueño.
func RecordConsumptionInTx(repos TxRepos, eventKind, eventID, lotID string, quantity int, now time.Time) (*entity.ConsumptionLink, error) {
	if !validEventKind(eventKind) || eventID == "" {
		return nil, domain.ErrInvalidInput
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	note := fmt.Sprintf("salida por %s %s", eventLabel(eventKind), eventID)
	if _, err := ApplyMovementInTx(repos, lotID, entity.MovementTypeOUT, quantity, note, now); err != nil {
		return nil, err
	}

	link := &entity.ConsumptionLink{
		EventKind: eventKind,
		EventID:   eventID,
		LotID:     lotID,
		Quantity:  quantity,
	}
	if err := repos.Consumptions.Create(link); err != nil {
		return nil, err
	}
	return link, nil
}

// UpdateConsumption reconcilia un enlace existente contra una nueva cantidad
// y/o un nuevo lote, en una transacción propia.
func (uc *ConsumptionUseCase) UpdateConsumption(ctx context.Context, linkID, newLotID string, newQuantity int) (*entity.ConsumptionLink, error) {
	now := time.Now()
	var link *entity.ConsumptionLink
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		var err error
		link, err = UpdateConsumptionInTx(repos, linkID, newLotID, newQuantity, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// UpdateConsumptionInTx es el caso difícil del adaptador. Tres sub-casos
// dentro de la misma transacción:
//   - mismo lote, cantidad distinta: salida adicional o reverso parcial por el delta;
//   - lote distinto: reverso total contra el lote original, salida total contra
//     el nuevo (saldo insuficiente en el nuevo lote aborta todo, el estado
//     original queda intacto);
//   - sin cambios en el delta: solo se reescribe el enlace.
func UpdateConsumptionInTx(repos TxRepos, linkID, newLotID string, newQuantity int, now time.Time) (*entity.ConsumptionLink, error) {
	if newQuantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	link, err := repos.Consumptions.GetByID(linkID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}
	if newLotID == "" {
		newLotID = link.LotID
	}

	label := eventLabel(link.EventKind)
	if newLotID == link.LotID {
		delta := newQuantity - link.Quantity
		switch {
		case delta > 0:
			note := fmt.Sprintf("salida adicional por edición de %s %s", label, link.EventID)
			if _, err := ApplyMovementInTx(repos, link.LotID, entity.MovementTypeOUT, delta, note, now); err != nil {
				return nil, err
			}
		case delta < 0:
			note := fmt.Sprintf("reverso parcial por edición de %s %s", label, link.EventID)
			if _, err := ApplyMovementInTx(repos, link.LotID, entity.MovementTypeIN, -delta, note, now); err != nil {
				return nil, err
			}
		}
	} else {
		// Reverso total contra el lote original, salida total contra el nuevo.
		note := fmt.Sprintf("reverso por cambio de lote en %s %s", label, link.EventID)
		if _, err := ApplyMovementInTx(repos, link.LotID, entity.MovementTypeIN, link.Quantity, note, now); err != nil {
			return nil, err
		}
		note = fmt.Sprintf("salida por %s %s (lote reasignado)", label, link.EventID)
		if _, err := ApplyMovementInTx(repos, newLotID, entity.MovementTypeOUT, newQuantity, note, now); err != nil {
			return nil, err
		}
	}

	link.LotID = newLotID
	link.Quantity = newQuantity
	if err := repos.Consumptions.Update(link); err != nil {
		return nil, err
	}
	return link, nil
}

// DeleteConsumption revierte y elimina un enlace en una transacción propia.
func (uc *ConsumptionUseCase) DeleteConsumption(ctx context.Context, linkID string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(repos TxRepos) error {
		link, err := repos.Consumptions.GetByID(linkID)
		if err != nil {
			return err
		}
		if link == nil {
			return domain.ErrNotFound
		}
		return DeleteConsumptionInTx(repos, link, now)
	})
}

// DeleteConsumptionInTx registra la entrada compensatoria por la cantidad del
// enlace y borra el enlace. Restituye el saldo del lote exactamente al valor
// previo a la creación del consumo.
func DeleteConsumptionInTx(repos TxRepos, link *entity.ConsumptionLink, now time.Time) error {
	note := fmt.Sprintf("reverso por eliminación de %s %s", eventLabel(link.EventKind), link.EventID)
	if _, err := ApplyMovementInTx(repos, link.LotID, entity.MovementTypeIN, link.Quantity, note, now); err != nil {
		return err
	}
	return repos.Consumptions.Delete(link.ID)
}

// DeleteForEventInTx revierte y elimina todos los enlaces de un evento
// clínico. Para usar en la transacción que borra el evento dueño.
func DeleteForEventInTx(repos TxRepos, eventKind, eventID string, now time.Time) error {
	links, err := repos.Consumptions.ListByEvent(eventKind, eventID)
	if err != nil {
		return err
	}
	for _, link := range links {
		if err := DeleteConsumptionInTx(repos, link, now); err != nil {
			return err
		}
	}
	return nil
}

// DeleteForEvent variante con transacción propia de DeleteForEventInTx.
func (uc *ConsumptionUseCase) DeleteForEvent(ctx context.Context, eventKind, eventID string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(repos TxRepos) error {
		return DeleteForEventInTx(repos, eventKind, eventID, now)
	})
}
