package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
// Solo inserta y lee: el libro de movimientos es de solo apéndice y la tabla
// no tiene camino de UPDATE ni DELETE desde la aplicación.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, lot_id, type, quantity, note, created_at`

// Create inserta un asiento del libro.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.LotID, m.Type, m.Quantity, m.Note, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.LotID, &m.Type, &m.Quantity, &m.Note, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByLot devuelve los movimientos de un lote, del más reciente al más antiguo.
func (r *MovementRepo) ListByLot(lotID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE lot_id = $1`
	args := []any{lotID}
	return r.queryMovements(query, args, from, to, limit, offset)
}

// List devuelve el historial completo, del más reciente al más antiguo.
func (r *MovementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	return r.queryMovements(query, nil, from, to, limit, offset)
}

// CountByLot cuenta los movimientos de un lote (regla RESTRICT de borrado).
func (r *MovementRepo) CountByLot(lotID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM movements WHERE lot_id = $1`, lotID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}

func (r *MovementRepo) queryMovements(query string, args []any, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	i := len(args) + 1
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", i)
		args = append(args, *from)
		i++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", i)
		args = append(args, *to)
		i++
	}
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, limit, offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.LotID, &m.Type, &m.Quantity, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
