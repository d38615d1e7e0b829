package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo implementación de ConsumptionRepository sobre PostgreSQL.
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador de enlaces de consumo.
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

const linkColumns = `id, event_kind, event_id, lot_id, quantity`

// Create inserta un enlace de consumo.
func (r *ConsumptionRepo) Create(link *entity.ConsumptionLink) error {
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	query := `
		INSERT INTO consumption_links (` + linkColumns + `)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		link.ID, link.EventKind, link.EventID, link.LotID, link.Quantity,
	)
	if err != nil {
		return fmt.Errorf("create consumption link: %w", err)
	}
	return nil
}

// GetByID obtiene un enlace por ID. Devuelve nil si no existe.
func (r *ConsumptionRepo) GetByID(id string) (*entity.ConsumptionLink, error) {
	query := `SELECT ` + linkColumns + ` FROM consumption_links WHERE id = $1`
	var l entity.ConsumptionLink
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.EventKind, &l.EventID, &l.LotID, &l.Quantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumption link: %w", err)
	}
	return &l, nil
}

// Update reescribe lote y cantidad de un enlace existente.
func (r *ConsumptionRepo) Update(link *entity.ConsumptionLink) error {
	query := `UPDATE consumption_links SET lot_id = $2, quantity = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, link.ID, link.LotID, link.Quantity)
	if err != nil {
		return fmt.Errorf("update consumption link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un enlace.
func (r *ConsumptionRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM consumption_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete consumption link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByEvent devuelve los enlaces de un evento clínico.
func (r *ConsumptionRepo) ListByEvent(eventKind, eventID string) ([]*entity.ConsumptionLink, error) {
	query := `SELECT ` + linkColumns + ` FROM consumption_links
		WHERE event_kind = $1 AND event_id = $2 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, eventKind, eventID)
	if err != nil {
		return nil, fmt.Errorf("list consumption links: %w", err)
	}
	defer rows.Close()

	var out []*entity.ConsumptionLink
	for rows.Next() {
		var l entity.ConsumptionLink
		if err := rows.Scan(&l.ID, &l.EventKind, &l.EventID, &l.LotID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan consumption link: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// CountByLot cuenta los enlaces que referencian un lote (regla RESTRICT de borrado).
func (r *ConsumptionRepo) CountByLot(lotID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM consumption_links WHERE lot_id = $1`, lotID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count consumption links: %w", err)
	}
	return count, nil
}
