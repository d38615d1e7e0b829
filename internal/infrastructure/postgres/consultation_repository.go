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

var _ repository.ConsultationRepository = (*ConsultationRepo)(nil)

// ConsultationRepo implementación de ConsultationRepository sobre PostgreSQL.
type ConsultationRepo struct {
	q Querier
}

// NewConsultationRepository construye el adaptador de consultas clínicas.
func NewConsultationRepository(q Querier) *ConsultationRepo {
	return &ConsultationRepo{q: q}
}

const consultationColumns = `id, animal_id, veterinarian_id, attended_at, type, diagnosis,
	observations, heart_rate, resp_rate, temperature, weight, mucosa_eval, capillary_time, created_at`

// Create inserta una consulta.
func (r *ConsultationRepo) Create(c *entity.Consultation) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO consultations (` + consultationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.AnimalID, c.VeterinarianID, c.AttendedAt, c.Type, c.Diagnosis,
		c.Observations, c.HeartRate, c.RespRate, c.Temperature, c.Weight,
		c.MucosaEval, c.CapillaryTime, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create consultation: %w", err)
	}
	return r.insertExamLinks(c.ID, c.ExamIDs)
}

// insertExamLinks guarda la relación consulta-examen. position conserva el
// orden en que se solicitaron los exámenes.
func (r *ConsultationRepo) insertExamLinks(consultationID string, examIDs []string) error {
	for i, examID := range examIDs {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO consultation_exams (consultation_id, exam_id, position) VALUES ($1, $2, $3)`,
			consultationID, examID, i,
		)
		if err != nil {
			return fmt.Errorf("create consultation exam link: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una consulta por ID. Devuelve nil si no existe.
func (r *ConsultationRepo) GetByID(id string) (*entity.Consultation, error) {
	query := `SELECT ` + consultationColumns + ` FROM consultations WHERE id = $1`
	var c entity.Consultation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.AnimalID, &c.VeterinarianID, &c.AttendedAt, &c.Type, &c.Diagnosis,
		&c.Observations, &c.HeartRate, &c.RespRate, &c.Temperature, &c.Weight,
		&c.MucosaEval, &c.CapillaryTime, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consultation: %w", err)
	}
	if err := r.attachExamIDs([]*entity.Consultation{&c}); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update reescribe una consulta existente.
func (r *ConsultationRepo) Update(c *entity.Consultation) error {
	query := `
		UPDATE consultations SET
			animal_id = $2, veterinarian_id = $3, attended_at = $4, type = $5,
			diagnosis = $6, observations = $7, heart_rate = $8, resp_rate = $9,
			temperature = $10, weight = $11, mucosa_eval = $12, capillary_time = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.AnimalID, c.VeterinarianID, c.AttendedAt, c.Type,
		c.Diagnosis, c.Observations, c.HeartRate, c.RespRate,
		c.Temperature, c.Weight, c.MucosaEval, c.CapillaryTime,
	)
	if err != nil {
		return fmt.Errorf("update consultation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	// Reescritura completa de la relación con exámenes.
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM consultation_exams WHERE consultation_id = $1`, c.ID,
	); err != nil {
		return fmt.Errorf("update consultation exam links: %w", err)
	}
	return r.insertExamLinks(c.ID, c.ExamIDs)
}

// ListByAnimal devuelve el historial clínico de un animal, del más reciente
// al más antiguo.
func (r *ConsultationRepo) ListByAnimal(animalID string, limit, offset int) ([]*entity.Consultation, error) {
	query := `SELECT ` + consultationColumns + ` FROM consultations WHERE animal_id = $1`
	args := []any{animalID}
	query += " ORDER BY attended_at DESC"
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}
	return r.queryConsultations(query, args...)
}

// List devuelve consultas en un rango de fechas, de la más reciente a la más antigua.
func (r *ConsultationRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Consultation, error) {
	query := `SELECT ` + consultationColumns + ` FROM consultations WHERE 1=1`
	args := []any{}
	i := 1
	if from != nil {
		query += fmt.Sprintf(" AND attended_at >= $%d", i)
		args = append(args, *from)
		i++
	}
	if to != nil {
		query += fmt.Sprintf(" AND attended_at <= $%d", i)
		args = append(args, *to)
		i++
	}
	query += " ORDER BY attended_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, limit, offset)
	}
	return r.queryConsultations(query, args...)
}

// Delete elimina una consulta. Los enlaces de consumo se borran antes, en la
// misma transacción, por el caso de uso.
func (r *ConsultationRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM consultation_exams WHERE consultation_id = $1`, id,
	); err != nil {
		return fmt.Errorf("delete consultation exam links: %w", err)
	}
	tag, err := r.q.Exec(context.Background(), `DELETE FROM consultations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete consultation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ConsultationRepo) queryConsultations(query string, args ...any) ([]*entity.Consultation, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Consultation
	for rows.Next() {
		var c entity.Consultation
		if err := rows.Scan(
			&c.ID, &c.AnimalID, &c.VeterinarianID, &c.AttendedAt, &c.Type, &c.Diagnosis,
			&c.Observations, &c.HeartRate, &c.RespRate, &c.Temperature, &c.Weight,
			&c.MucosaEval, &c.CapillaryTime, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan consultation: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachExamIDs(out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachExamIDs carga en lote la relación consulta-examen, en el orden en
// que los exámenes fueron solicitados.
func (r *ConsultationRepo) attachExamIDs(cs []*entity.Consultation) error {
	if len(cs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(cs))
	byID := make(map[string]*entity.Consultation, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
		byID[c.ID] = c
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT consultation_id, exam_id
		FROM consultation_exams
		WHERE consultation_id = ANY($1)
		ORDER BY consultation_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list consultation exam links: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var consultationID, examID string
		if err := rows.Scan(&consultationID, &examID); err != nil {
			return fmt.Errorf("scan consultation exam link: %w", err)
		}
		if c, ok := byID[consultationID]; ok {
			c.ExamIDs = append(c.ExamIDs, examID)
		}
	}
	return rows.Err()
}
