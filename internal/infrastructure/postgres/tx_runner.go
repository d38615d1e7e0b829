package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mariaalvez/vetclinic-api/internal/application/stock"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los casos de uso del libro de stock registran el
// movimiento, el saldo y el enlace de consumo a través de estos repos para
// que nadie observe un estado intermedio.
func (r *TxRunner) Run(ctx context.Context, fn func(repos stock.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := stock.TxRepos{
		Lots:          NewLotRepository(tx),
		Movements:     NewMovementRepository(tx),
		Consumptions:  NewConsumptionRepository(tx),
		Consultations: NewConsultationRepository(tx),
		Vaccinations:  NewVaccinationRepository(tx),
		Dewormings:    NewDewormingRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
