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

var _ repository.VaccinationRepository = (*VaccinationRepo)(nil)

// VaccinationRepo implementación de VaccinationRepository sobre PostgreSQL.
type VaccinationRepo struct {
	q Querier
}

// NewVaccinationRepository construye el adaptador de vacunaciones.
func NewVaccinationRepository(q Querier) *VaccinationRepo {
	return &VaccinationRepo{q: q}
}

const vaccinationColumns = `id, animal_id, lot_id, applied_at, revaccination_date, created_at`

// Create inserta un registro de vacunación.
func (r *VaccinationRepo) Create(v *entity.Vaccination) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	query := `
		INSERT INTO vaccinations (` + vaccinationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.AnimalID, v.LotID, v.AppliedAt, v.RevaccinationDate, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create vaccination: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID. Devuelve nil si no existe.
func (r *VaccinationRepo) GetByID(id string) (*entity.Vaccination, error) {
	query := `SELECT ` + vaccinationColumns + ` FROM vaccinations WHERE id = $1`
	var v entity.Vaccination
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.AnimalID, &v.LotID, &v.AppliedAt, &v.RevaccinationDate, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vaccination: %w", err)
	}
	return &v, nil
}

// Update reescribe un registro existente.
func (r *VaccinationRepo) Update(v *entity.Vaccination) error {
	query := `
		UPDATE vaccinations SET
			animal_id = $2, lot_id = $3, applied_at = $4, revaccination_date = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		v.ID, v.AnimalID, v.LotID, v.AppliedAt, v.RevaccinationDate,
	)
	if err != nil {
		return fmt.Errorf("update vaccination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List busca registros según el filtro, del más reciente al más antiguo.
func (r *VaccinationRepo) List(filter repository.VaccinationFilter, limit, offset int) ([]*entity.Vaccination, error) {
	query := `SELECT ` + vaccinationColumns + ` FROM vaccinations WHERE 1=1`
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
	if filter.AppliedFrom != nil {
		query += fmt.Sprintf(" AND applied_at >= $%d", i)
		args = append(args, *filter.AppliedFrom)
		i++
	}
	if filter.AppliedTo != nil {
		query += fmt.Sprintf(" AND applied_at <= $%d", i)
		args = append(args, *filter.AppliedTo)
		i++
	}
	query += " ORDER BY applied_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, limit, offset)
	}
	return r.queryVaccinations(query, args...)
}

// ListDueBefore devuelve registros con revacunación definida hasta la fecha dada.
func (r *VaccinationRepo) ListDueBefore(limit time.Time) ([]*entity.Vaccination, error) {
	query := `SELECT ` + vaccinationColumns + ` FROM vaccinations
		WHERE revaccination_date IS NOT NULL AND revaccination_date <= $1
		ORDER BY revaccination_date ASC`
	return r.queryVaccinations(query, limit)
}

// Delete elimina un registro.
func (r *VaccinationRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM vaccinations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vaccination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VaccinationRepo) queryVaccinations(query string, args ...any) ([]*entity.Vaccination, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vaccinations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Vaccination
	for rows.Next() {
		var v entity.Vaccination
		if err := rows.Scan(&v.ID, &v.AnimalID, &v.LotID, &v.AppliedAt, &v.RevaccinationDate, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vaccination: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
