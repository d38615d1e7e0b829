package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
	"github.com/mariaalvez/vetclinic-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterInput datos para crear un usuario.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginResult token firmado más el usuario autenticado.
type LoginResult struct {
	Token string
	User  *entity.User
}

// Register crea un usuario: hashea password con bcrypt y persiste.
// Devuelve domain.ErrEmailAlreadyExists si el email ya existe.
func (uc *UseCase) Register(in RegisterInput) (*entity.User, error) {
	if in.Email == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVet
	}
	if role != entity.RoleAdmin && role != entity.RoleVet {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(email, password string) (*LoginResult, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}
