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

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación de AppointmentRepository sobre PostgreSQL.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador de agendamientos.
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

const appointmentColumns = `id, animal_id, tutor_id, scheduled_at, created_at`

// Create inserta un agendamiento.
func (r *AppointmentRepo) Create(a *entity.Appointment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.AnimalID, a.TutorID, a.ScheduledAt, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// GetByID obtiene un agendamiento por ID. Devuelve nil si no existe.
func (r *AppointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	var a entity.Appointment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.AnimalID, &a.TutorID, &a.ScheduledAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &a, nil
}

// Update reescribe un agendamiento existente.
func (r *AppointmentRepo) Update(a *entity.Appointment) error {
	query := `UPDATE appointments SET animal_id = $2, tutor_id = $3, scheduled_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, a.ID, a.AnimalID, a.TutorID, a.ScheduledAt)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBetween devuelve los agendamientos en [from, to) ordenados por fecha.
func (r *AppointmentRepo) ListBetween(from, to time.Time) ([]*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE scheduled_at >= $1 AND scheduled_at < $2
		ORDER BY scheduled_at ASC`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Appointment
	for rows.Next() {
		var a entity.Appointment
		if err := rows.Scan(&a.ID, &a.AnimalID, &a.TutorID, &a.ScheduledAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Delete elimina un agendamiento.
func (r *AppointmentRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
