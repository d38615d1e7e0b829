package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleVet   = "vet"
)

// User representa un usuario del sistema administrativo.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string // admin, vet
	CreatedAt    time.Time
}
