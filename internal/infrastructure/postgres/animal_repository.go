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

var _ repository.AnimalRepository = (*AnimalRepo)(nil)

// AnimalRepo implementación de AnimalRepository sobre PostgreSQL.
type AnimalRepo struct {
	q Querier
}

// NewAnimalRepository construye el adaptador de animales.
func NewAnimalRepository(q Querier) *AnimalRepo {
	return &AnimalRepo{q: q}
}

const animalColumns = `id, tutor_id, name, species, age_years, age_months, sex, weight, neutered, rfid, created_at`

// tutor_id y rfid son NULLables en la tabla; en la entidad la cadena vacía
// representa ausencia, la conversión se hace al escanear y al insertar.
func scanAnimal(row pgx.Row) (*entity.Animal, error) {
	var a entity.Animal
	var tutorID, rfid *string
	err := row.Scan(&a.ID, &tutorID, &a.Name, &a.Species, &a.AgeYears, &a.AgeMonths,
		&a.Sex, &a.Weight, &a.Neutered, &rfid, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if tutorID != nil {
		a.TutorID = *tutorID
	}
	if rfid != nil {
		a.RFID = *rfid
	}
	return &a, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create inserta un animal. Devuelve domain.ErrDuplicate si el RFID ya existe.
func (r *AnimalRepo) Create(a *entity.Animal) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO animals (` + animalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, nullIfEmpty(a.TutorID), a.Name, a.Species, a.AgeYears, a.AgeMonths,
		a.Sex, a.Weight, a.Neutered, nullIfEmpty(a.RFID), a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create animal: %w", err)
	}
	return nil
}

// GetByID obtiene un animal por ID. Devuelve nil si no existe.
func (r *AnimalRepo) GetByID(id string) (*entity.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE id = $1`
	animal, err := scanAnimal(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get animal: %w", err)
	}
	return animal, nil
}

// Update reescribe un animal existente.
func (r *AnimalRepo) Update(a *entity.Animal) error {
	query := `
		UPDATE animals SET
			tutor_id = $2, name = $3, species = $4, age_years = $5, age_months = $6,
			sex = $7, weight = $8, neutered = $9, rfid = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		a.ID, nullIfEmpty(a.TutorID), a.Name, a.Species, a.AgeYears, a.AgeMonths,
		a.Sex, a.Weight, a.Neutered, nullIfEmpty(a.RFID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update animal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByTutor lista los animales de un tutor.
func (r *AnimalRepo) ListByTutor(tutorID string, limit, offset int) ([]*entity.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE tutor_id = $1 ORDER BY name ASC`
	args := []any{tutorID}
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}
	return r.queryAnimals(query, args...)
}

// List lista todos los animales con paginación.
func (r *AnimalRepo) List(limit, offset int) ([]*entity.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals ORDER BY name ASC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}
	return r.queryAnimals(query, args...)
}

// Delete elimina un animal.
func (r *AnimalRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete animal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AnimalRepo) queryAnimals(query string, args ...any) ([]*entity.Animal, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}
	defer rows.Close()

	var out []*entity.Animal
	for rows.Next() {
		var a entity.Animal
		var tutorID, rfid *string
		if err := rows.Scan(&a.ID, &tutorID, &a.Name, &a.Species, &a.AgeYears, &a.AgeMonths,
			&a.Sex, &a.Weight, &a.Neutered, &rfid, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan animal: %w", err)
		}
		if tutorID != nil {
			a.TutorID = *tutorID
		}
		if rfid != nil {
			a.RFID = *rfid
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
