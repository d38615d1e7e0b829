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

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, medication, category, lot_code, expiry_date, quantity, registered_at`

func scanLot(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(&l.ID, &l.Medication, &l.Category, &l.LotCode, &l.ExpiryDate, &l.Quantity, &l.RegisteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// Create inserta un lote. Devuelve domain.ErrDuplicateLot si el código ya existe.
func (r *LotRepo) Create(lot *entity.Lot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.Medication, lot.Category, lot.LotCode, lot.ExpiryDate, lot.Quantity, lot.RegisteredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLot
		}
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve nil si no existe.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return lot, nil
}

// GetByCode obtiene un lote por su código. Devuelve nil si no existe.
func (r *LotRepo) GetByCode(lotCode string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE lot_code = $1`
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, lotCode))
	if err != nil {
		return nil, fmt.Errorf("get lot by code: %w", err)
	}
	return lot, nil
}

// GetForUpdate obtiene el lote y bloquea su fila (SELECT FOR UPDATE).
// Serializa verificación y descuento de saldo: dos consumos concurrentes del
// mismo lote se ordenan aquí.
func (r *LotRepo) GetForUpdate(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1 FOR UPDATE`
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get lot for update: %w", err)
	}
	return lot, nil
}

// UpdateQuantity escribe el saldo materializado. Solo se llama dentro de la
// transacción que registra el movimiento correspondiente.
func (r *LotRepo) UpdateQuantity(id string, quantity int) error {
	query := `UPDATE lots SET quantity = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update lot quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List busca lotes según el filtro, ordenados por vencimiento ascendente.
func (r *LotRepo) List(filter repository.LotFilter, limit, offset int) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE 1=1`
	args := []any{}
	i := 1
	if filter.Medication != "" {
		query += fmt.Sprintf(" AND medication ILIKE $%d", i)
		args = append(args, "%"+filter.Medication+"%")
		i++
	}
	if filter.LotCode != "" {
		query += fmt.Sprintf(" AND lot_code ILIKE $%d", i)
		args = append(args, "%"+filter.LotCode+"%")
		i++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", i)
		args = append(args, filter.Category)
		i++
	}
	if filter.ExpiryFrom != nil {
		query += fmt.Sprintf(" AND expiry_date >= $%d", i)
		args = append(args, *filter.ExpiryFrom)
		i++
	}
	if filter.ExpiryTo != nil {
		query += fmt.Sprintf(" AND expiry_date <= $%d", i)
		args = append(args, *filter.ExpiryTo)
		i++
	}
	query += " ORDER BY expiry_date ASC, lot_code ASC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, limit, offset)
	}
	return r.queryLots(query, args...)
}

// ListAvailable devuelve solo lotes con saldo > 0 (listas de selección).
func (r *LotRepo) ListAvailable(category string, limit, offset int) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE quantity > 0`
	args := []any{}
	i := 1
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", i)
		args = append(args, category)
		i++
	}
	query += " ORDER BY expiry_date ASC, lot_code ASC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, limit, offset)
	}
	return r.queryLots(query, args...)
}

// ListExpiringBefore devuelve lotes con saldo > 0 que vencen hasta la fecha dada.
func (r *LotRepo) ListExpiringBefore(limit time.Time) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots
		WHERE quantity > 0 AND expiry_date <= $1
		ORDER BY expiry_date ASC`
	return r.queryLots(query, limit)
}

// Delete elimina un lote. Devuelve domain.ErrLotInUse si tiene movimientos o
// consumos asociados (las FK de movements y consumption_links son RESTRICT).
func (r *LotRepo) Delete(id string) error {
	query := `DELETE FROM lots WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrLotInUse
		}
		return fmt.Errorf("delete lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LotRepo) queryLots(query string, args ...any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var out []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.Medication, &l.Category, &l.LotCode, &l.ExpiryDate, &l.Quantity, &l.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
