package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

var _ repository.DewormingRepository = (*DewormingRepo)(nil)

// DewormingRepo implementación de DewormingRepository sobre PostgreSQL.
type DewormingRepo struct {
	q Querier
}

// NewDewormingRepository construye el adaptador de vermifugaciones.
func NewDewormingRepository(q Querier) *DewormingRepo {
	return &DewormingRepo{q: q}
}

const dewormingColumns = `id, animal_id, lot_id, administered_at, readminister_before, created_at`

// Create inserta un registro de vermifugación.
func (r *DewormingRepo) Create(d *entity.Deworming) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	query := `
		INSERT INTO dewormings (` + dewormingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.AnimalID, d.LotID, d.AdministeredAt, d.ReadministerBefore, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create deworming: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID. Devuelve nil si no existe.
func (r *DewormingRepo) GetByID(id string) (*entity.Deworming, error) {
	query := `SELECT ` + dewormingColumns + ` FROM dewormings WHERE id = $1`
	var d entity.Deworming
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.AnimalID, &d.LotID, &d.AdministeredAt, &d.ReadministerBefore, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deworming: %w", err)
	}
	return &d, nil
}

// Update reescribe un registro existente.
func (r *DewormingRepo) Update(d *entity.Deworming) error {
	query := `
		UPDATE dewormings SET
			animal_id = $2, lot_id = $3, administered_at = $4, readminister_before = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		d.ID, d.AnimalID, d.LotID, d.AdministeredAt, d.ReadministerBefore,
	)
	if err != nil {
		return fmt.Errorf("update deworming: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List busca registros según el filtro, del más reciente al más antiguo.
func (r *DewormingRepo) List(filter repository.DewormingFilter, limit, offset int) ([]*entity.Deworming, error) {
	query := `SELECT ` + dewormingColumns + ` FROM dewormings WHERE 1=1`
	args := []any{}
	i := 1
	if filter.AnimalID != "" {
		query += fmt.Sprintf(" AND animal_id = $%d", i)
		args = append(args, filter.AnimalID)
		i++
	}
	if filter.LotID != "" {
		query += fmt.Sprintf(" AND lot_id = $%d", i)
		args = append(args, filter.LotID)
		i++
	}
	if filter.AdministeredFrom != nil {
		query += fmt.Sprintf(" AND administered_at >= $%d", i)
		args = append(args, *filter.AdministeredFrom)
		i++
	}
	if filter.AdministeredTo != nil {
		query += fmt.Sprintf(" AND administered_at <= $%d", i)
		args = append(args, *filter.AdministeredTo)
		i++
	}
	query += " ORDER BY administered_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, limit, offset)
	}
	return r.queryDewormings(query, args...)
}

// ListDueBefore devuelve registros con readministración definida hasta la fecha dada.
func (r *DewormingRepo) ListDueBefore(limit time.Time) ([]*entity.Deworming, error) {
	query := `SELECT ` + dewormingColumns + ` FROM dewormings
		WHERE readminister_before IS NOT NULL AND readminister_before <= $1
		ORDER BY readminister_before ASC`
	return r.queryDewormings(query, limit)
}

// Delete elimina un registro.
func (r *DewormingRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM dewormings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deworming: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DewormingRepo) queryDewormings(query string, args ...any) ([]*entity.Deworming, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dewormings: %w", err)
	}
	defer rows.Close()

	var out []*entity.Deworming
	for rows.Next() {
		var d entity.Deworming
		if err := rows.Scan(&d.ID, &d.AnimalID, &d.LotID, &d.AdministeredAt, &d.ReadministerBefore, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deworming: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
