package stock

import (
	"context"

	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Todo lo que un caso de uso escriba a través de estos repositorios se
// confirma o revierte en bloque.
type TxRepos struct {
	Lots          repository.LotRepository
	Movements     repository.MovementRepository
	Consumptions  repository.ConsumptionRepository
	Consultations repository.ConsultationRepository
	Vaccinations  repository.VaccinationRepository
	Dewormings    repository.DewormingRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de stock:
// ningún lector observa un movimiento sin su actualización de saldo ni al revés.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
