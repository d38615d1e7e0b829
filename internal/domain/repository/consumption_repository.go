package repository

import "github.com/mariaalvez/vetclinic-api/internal/domain/entity"

// ConsumptionRepository define el puerto de persistencia para los enlaces de
// consumo (evento clínico → lote → cantidad). El enlace se crea, actualiza o
// borra siempre dentro de la misma transacción que concilia el saldo del lote.
type ConsumptionRepository interface {
	Create(link *entity.ConsumptionLink) error
	GetByID(id string) (*entity.ConsumptionLink, error)
	Update(link *entity.ConsumptionLink) error
	Delete(id string) error
	ListByEvent(eventKind, eventID string) ([]*entity.ConsumptionLink, error)
	CountByLot(lotID string) (int, error)
}
