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

var _ repository.ServiceCompanyRepository = (*ServiceCompanyRepo)(nil)

// ServiceCompanyRepo implementación de ServiceCompanyRepository sobre PostgreSQL.
type ServiceCompanyRepo struct {
	q Querier
}

// NewServiceCompanyRepository construye el adaptador de empresas tercerizadas.
func NewServiceCompanyRepository(q Querier) *ServiceCompanyRepo {
	return &ServiceCompanyRepo{q: q}
}

const serviceCompanyColumns = `id, name, cnpj, phone, email, created_at`

func scanServiceCompany(row pgx.Row) (*entity.ServiceCompany, error) {
	var c entity.ServiceCompany
	err := row.Scan(&c.ID, &c.Name, &c.CNPJ, &c.Phone, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create inserta una empresa. Devuelve domain.ErrDuplicate si la razón
// social, el CNPJ o el email ya existen.
func (r *ServiceCompanyRepo) Create(c *entity.ServiceCompany) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO service_companies (` + serviceCompanyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.CNPJ, c.Phone, c.Email, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create service company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. Devuelve nil si no existe.
func (r *ServiceCompanyRepo) GetByID(id string) (*entity.ServiceCompany, error) {
	query := `SELECT ` + serviceCompanyColumns + ` FROM service_companies WHERE id = $1`
	company, err := scanServiceCompany(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get service company: %w", err)
	}
	return company, nil
}

// GetByCNPJ obtiene una empresa por CNPJ. Devuelve nil si no existe.
func (r *ServiceCompanyRepo) GetByCNPJ(cnpj string) (*entity.ServiceCompany, error) {
	query := `SELECT ` + serviceCompanyColumns + ` FROM service_companies WHERE cnpj = $1`
	company, err := scanServiceCompany(r.q.QueryRow(context.Background(), query, cnpj))
	if err != nil {
		return nil, fmt.Errorf("get service company by cnpj: %w", err)
	}
	return company, nil
}

// GetByName obtiene una empresa por razón social exacta. Devuelve nil si no existe.
func (r *ServiceCompanyRepo) GetByName(name string) (*entity.ServiceCompany, error) {
	query := `SELECT ` + serviceCompanyColumns + ` FROM service_companies WHERE name = $1`
	company, err := scanServiceCompany(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		return nil, fmt.Errorf("get service company by name: %w", err)
	}
	return company, nil
}

// GetByEmail obtiene una empresa por email. Devuelve nil si no existe.
func (r *ServiceCompanyRepo) GetByEmail(email string) (*entity.ServiceCompany, error) {
	query := `SELECT ` + serviceCompanyColumns + ` FROM service_companies WHERE email = $1`
	company, err := scanServiceCompany(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		return nil, fmt.Errorf("get service company by email: %w", err)
	}
	return company, nil
}

// Update reescribe una empresa existente.
func (r *ServiceCompanyRepo) Update(c *entity.ServiceCompany) error {
	query := `
		UPDATE service_companies SET
			name = $2, cnpj = $3, phone = $4, email = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.CNPJ, c.Phone, c.Email,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update service company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve empresas ordenadas por razón social.
func (r *ServiceCompanyRepo) List(limit, offset int) ([]*entity.ServiceCompany, error) {
	query := `SELECT ` + serviceCompanyColumns + ` FROM service_companies ORDER BY name`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list service companies: %w", err)
	}
	defer rows.Close()

	var out []*entity.ServiceCompany
	for rows.Next() {
		var c entity.ServiceCompany
		if err := rows.Scan(&c.ID, &c.Name, &c.CNPJ, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service company: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Delete elimina una empresa. Devuelve domain.ErrConflict mientras tenga
// servicios registrados.
func (r *ServiceCompanyRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM service_companies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete service company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
