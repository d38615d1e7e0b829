package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/auth"
	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if !parseBody(c, &in) {
		return nil
	}
	user, err := h.uc.Register(auth.RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserFromEntity(user))
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if !parseBody(c, &in) {
		return nil
	}
	res, err := h.uc.Login(in.Email, in.Password)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: res.Token, User: *dto.UserFromEntity(res.User)})
}
