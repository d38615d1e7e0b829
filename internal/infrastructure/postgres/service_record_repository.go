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

var _ repository.ServiceRecordRepository = (*ServiceRecordRepo)(nil)

// ServiceRecordRepo implementación de ServiceRecordRepository sobre PostgreSQL.
type ServiceRecordRepo struct {
	q Querier
}

// NewServiceRecordRepository construye el adaptador de registros de servicios.
func NewServiceRecordRepository(q Querier) *ServiceRecordRepo {
	return &ServiceRecordRepo{q: q}
}

const serviceRecordColumns = `id, company_id, animal_id, performed_at, price,
	medications_note, procedures_note, created_at`

// Create inserta un registro de servicio.
func (r *ServiceRecordRepo) Create(rec *entity.ServiceRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	query := `
		INSERT INTO service_records (` + serviceRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.CompanyID, rec.AnimalID, rec.PerformedAt, rec.Price,
		rec.MedicationsNote, rec.ProceduresNote, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create service record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID. Devuelve nil si no existe.
func (r *ServiceRecordRepo) GetByID(id string) (*entity.ServiceRecord, error) {
	query := `SELECT ` + serviceRecordColumns + ` FROM service_records WHERE id = $1`
	var rec entity.ServiceRecord
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.CompanyID, &rec.AnimalID, &rec.PerformedAt, &rec.Price,
		&rec.MedicationsNote, &rec.ProceduresNote, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service record: %w", err)
	}
	return &rec, nil
}

// Update reescribe un registro existente.
func (r *ServiceRecordRepo) Update(rec *entity.ServiceRecord) error {
	query := `
		UPDATE service_records SET
			company_id = $2, animal_id = $3, performed_at = $4, price = $5,
			medications_note = $6, procedures_note = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.CompanyID, rec.AnimalID, rec.PerformedAt, rec.Price,
		rec.MedicationsNote, rec.ProceduresNote,
	)
	if err != nil {
		return fmt.Errorf("update service record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve registros filtrados, del más reciente al más antiguo.
func (r *ServiceRecordRepo) List(filter repository.ServiceRecordFilter, limit, offset int) ([]*entity.ServiceRecord, error) {
	query := `SELECT ` + serviceRecordColumns + ` FROM service_records WHERE 1=1`
	args := []any{}
	i := 1
	if filter.CompanyID != "" {
		query += fmt.Sprintf(" AND company_id = $%d", i)
		args = append(args, filter.CompanyID)
		i++
	}
	if filter.AnimalID != "" {
		query += fmt.Sprintf(" AND animal_id = $%d", i)
		args = append(args, filter.AnimalID)
		i++
	}
	if filter.PerformedFrom != nil {
		query += fmt.Sprintf(" AND performed_at >= $%d", i)
		args = append(args, *filter.PerformedFrom)
		i++
	}
	if filter.PerformedTo != nil {
		query += fmt.Sprintf(" AND performed_at <= $%d", i)
		args = append(args, *filter.PerformedTo)
		i++
	}
	query += " ORDER BY performed_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
		args = append(args, limit, offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list service records: %w", err)
	}
	defer rows.Close()

	var out []*entity.ServiceRecord
	for rows.Next() {
		var rec entity.ServiceRecord
		if err := rows.Scan(
			&rec.ID, &rec.CompanyID, &rec.AnimalID, &rec.PerformedAt, &rec.Price,
			&rec.MedicationsNote, &rec.ProceduresNote, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// CountByCompany cantidad de registros asociados a una empresa.
func (r *ServiceRecordRepo) CountByCompany(companyID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM service_records WHERE company_id = $1`, companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count service records: %w", err)
	}
	return count, nil
}

// Delete elimina un registro de servicio.
func (r *ServiceRecordRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM service_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
