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

var _ repository.TutorRepository = (*TutorRepo)(nil)

// TutorRepo implementación de TutorRepository sobre PostgreSQL.
type TutorRepo struct {
	q Querier
}

// NewTutorRepository construye el adaptador de tutores.
func NewTutorRepository(q Querier) *TutorRepo {
	return &TutorRepo{q: q}
}

const tutorColumns = `id, name, cpf, phone, email, cep, address, city, state, birth_date, created_at`

func scanTutor(row pgx.Row) (*entity.Tutor, error) {
	var t entity.Tutor
	err := row.Scan(&t.ID, &t.Name, &t.CPF, &t.Phone, &t.Email, &t.CEP,
		&t.Address, &t.City, &t.State, &t.BirthDate, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Create inserta un tutor. Devuelve domain.ErrDuplicate si el CPF ya existe.
func (r *TutorRepo) Create(t *entity.Tutor) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO tutors (` + tutorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Name, t.CPF, t.Phone, t.Email, t.CEP,
		t.Address, t.City, t.State, t.BirthDate, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create tutor: %w", err)
	}
	return nil
}

// GetByID obtiene un tutor por ID. Devuelve nil si no existe.
func (r *TutorRepo) GetByID(id string) (*entity.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors WHERE id = $1`
	tutor, err := scanTutor(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	return tutor, nil
}

// GetByCPF obtiene un tutor por CPF. Devuelve nil si no existe.
func (r *TutorRepo) GetByCPF(cpf string) (*entity.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors WHERE cpf = $1`
	tutor, err := scanTutor(r.q.QueryRow(context.Background(), query, cpf))
	if err != nil {
		return nil, fmt.Errorf("get tutor by cpf: %w", err)
	}
	return tutor, nil
}

// Update reescribe un tutor existente.
func (r *TutorRepo) Update(t *entity.Tutor) error {
	query := `
		UPDATE tutors SET
			name = $2, cpf = $3, phone = $4, email = $5, cep = $6,
			address = $7, city = $8, state = $9, birth_date = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		t.ID, t.Name, t.CPF, t.Phone, t.Email, t.CEP,
		t.Address, t.City, t.State, t.BirthDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tutor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista tutores por nombre, con paginación.
func (r *TutorRepo) List(limit, offset int) ([]*entity.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors ORDER BY name ASC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	defer rows.Close()

	var out []*entity.Tutor
	for rows.Next() {
		var t entity.Tutor
		if err := rows.Scan(&t.ID, &t.Name, &t.CPF, &t.Phone, &t.Email, &t.CEP,
			&t.Address, &t.City, &t.State, &t.BirthDate, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tutor: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Delete elimina un tutor. Devuelve domain.ErrConflict si aún tiene animales
// (FK RESTRICT desde animals).
func (r *TutorRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM tutors WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete tutor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
