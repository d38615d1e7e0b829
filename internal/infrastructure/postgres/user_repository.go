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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, name, email, password_hash, role, created_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create inserta un usuario. Devuelve domain.ErrEmailAlreadyExists si el email ya existe.
func (r *UserRepo) Create(u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetByEmail obtiene un usuario por email. Devuelve nil si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// Update reescribe un usuario existente.
func (r *UserRepo) Update(u *entity.User) error {
	query := `UPDATE users SET name = $2, email = $3, password_hash = $4, role = $5 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, u.ID, u.Name, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista usuarios con paginación.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// Delete elimina un usuario.
func (r *UserRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
