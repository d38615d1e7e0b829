package dto

import (
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

// RegisterRequest entrada para registrar un usuario.
type RegisterRequest struct {
	Name     string `json:"name" validate:"max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin vet"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromEntity convierte la entidad a su representación HTTP.
func UserFromEntity(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

// LoginResponse token más usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
