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

var _ repository.VeterinarianRepository = (*VeterinarianRepo)(nil)

// VeterinarianRepo implementación de VeterinarianRepository sobre PostgreSQL.
type VeterinarianRepo struct {
	q Querier
}

// NewVeterinarianRepository construye el adaptador de veterinarios.
func NewVeterinarianRepository(q Querier) *VeterinarianRepo {
	return &VeterinarianRepo{q: q}
}

// Create inserta un veterinario.
func (r *VeterinarianRepo) Create(v *entity.Veterinarian) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	query := `INSERT INTO veterinarians (id, name, phone, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, v.ID, v.Name, v.Phone, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("create veterinarian: %w", err)
	}
	return nil
}

// GetByID obtiene un veterinario por ID. Devuelve nil si no existe.
func (r *VeterinarianRepo) GetByID(id string) (*entity.Veterinarian, error) {
	query := `SELECT id, name, phone, created_at FROM veterinarians WHERE id = $1`
	var v entity.Veterinarian
	err := r.q.QueryRow(context.Background(), query, id).Scan(&v.ID, &v.Name, &v.Phone, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get veterinarian: %w", err)
	}
	return &v, nil
}

// Update reescribe un veterinario existente.
func (r *VeterinarianRepo) Update(v *entity.Veterinarian) error {
	query := `UPDATE veterinarians SET name = $2, phone = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, v.ID, v.Name, v.Phone)
	if err != nil {
		return fmt.Errorf("update veterinarian: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista veterinarios por nombre, con paginación.
func (r *VeterinarianRepo) List(limit, offset int) ([]*entity.Veterinarian, error) {
	query := `SELECT id, name, phone, created_at FROM veterinarians ORDER BY name ASC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list veterinarians: %w", err)
	}
	defer rows.Close()

	var out []*entity.Veterinarian
	for rows.Next() {
		var v entity.Veterinarian
		if err := rows.Scan(&v.ID, &v.Name, &v.Phone, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan veterinarian: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

// Delete elimina un veterinario.
func (r *VeterinarianRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM veterinarians WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete veterinarian: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
