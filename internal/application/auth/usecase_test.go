package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariaalvez/vetclinic-api/internal/application/auth"
	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/infrastructure/memory"
	"github.com/mariaalvez/vetclinic-api/pkg/jwt"
)

var cfg = auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "vetclinic-api"}

func TestRegisterYLogin(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewUseCase(store.Users(), cfg)

	user, err := uc.Register(auth.RegisterInput{
		Name: "Admin", Email: "admin@clinica.com", Password: "secreta1", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secreta1", user.PasswordHash, "el password nunca se guarda en claro")

	res, err := uc.Login("admin@clinica.com", "secreta1")
	require.NoError(t, err)

	userID, role, err := jwt.Parse(cfg.Secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewUseCase(store.Users(), cfg)

	_, err := uc.Register(auth.RegisterInput{Email: "vet@clinica.com", Password: "secreta1"})
	require.NoError(t, err)

	_, err = uc.Register(auth.RegisterInput{Email: "vet@clinica.com", Password: "otraclave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewUseCase(store.Users(), cfg)

	_, err := uc.Register(auth.RegisterInput{Email: "vet@clinica.com", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(auth.RegisterInput{Email: "vet@clinica.com", Password: "secreta1", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	store := memory.NewStore()
	uc := auth.NewUseCase(store.Users(), cfg)

	_, err := uc.Login("nadie@clinica.com", "loquesea")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Register(auth.RegisterInput{Email: "vet@clinica.com", Password: "secreta1"})
	require.NoError(t, err)
	_, err = uc.Login("vet@clinica.com", "equivocada")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
