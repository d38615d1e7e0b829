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

var _ repository.ExamRepository = (*ExamRepo)(nil)

// ExamRepo implementación de ExamRepository sobre PostgreSQL.
type ExamRepo struct {
	q Querier
}

// NewExamRepository construye el adaptador del catálogo de exámenes.
func NewExamRepository(q Querier) *ExamRepo {
	return &ExamRepo{q: q}
}

const examColumns = `id, name, created_at`

func scanExam(row pgx.Row) (*entity.Exam, error) {
	var e entity.Exam
	if err := row.Scan(&e.ID, &e.Name, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// Create inserta un examen. Devuelve domain.ErrDuplicate si el nombre ya existe.
func (r *ExamRepo) Create(e *entity.Exam) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `INSERT INTO exams (` + examColumns + `) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, e.ID, e.Name, e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create exam: %w", err)
	}
	return nil
}

// GetByID obtiene un examen por ID. Devuelve nil si no existe.
func (r *ExamRepo) GetByID(id string) (*entity.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE id = $1`
	exam, err := scanExam(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}
	return exam, nil
}

// GetByName obtiene un examen por nombre exacto. Devuelve nil si no existe.
func (r *ExamRepo) GetByName(name string) (*entity.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE name = $1`
	exam, err := scanExam(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		return nil, fmt.Errorf("get exam by name: %w", err)
	}
	return exam, nil
}

// Update renombra un examen.
func (r *ExamRepo) Update(e *entity.Exam) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE exams SET name = $2 WHERE id = $1`, e.ID, e.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update exam: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve el catálogo ordenado por nombre.
func (r *ExamRepo) List(limit, offset int) ([]*entity.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams ORDER BY name`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	defer rows.Close()

	var out []*entity.Exam
	for rows.Next() {
		var e entity.Exam
		if err := rows.Scan(&e.ID, &e.Name, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan exam: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Delete elimina un examen. Devuelve domain.ErrConflict si alguna consulta
// lo referencia.
func (r *ExamRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete exam: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountConsultations cantidad de consultas que referencian el examen.
func (r *ExamRepo) CountConsultations(examID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM consultation_exams WHERE exam_id = $1`, examID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count consultations by exam: %w", err)
	}
	return count, nil
}
