package http

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
	"github.com/mariaalvez/vetclinic-api/internal/domain"
)

// validate instancia compartida del validador de structs (es concurrente).
var validate = validator.New()

// parseBody decodifica y valida el cuerpo JSON. Devuelve false si ya
// respondió un error al cliente.
func parseBody(c *fiber.Ctx, out any) bool {
	if err := c.BodyParser(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return false
	}
	if err := validate.Struct(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		return false
	}
	return true
}

// domainError traduce los errores de dominio a respuestas HTTP. Cualquier
// error no mapeado es un 500.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidExpiry):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrDuplicateLot), errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrLotInUse), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// queryDate parsea un query param de fecha (YYYY-MM-DD). Devuelve nil si está
// vacío; responde 400 y devuelve ok=false si el formato es inválido.
func queryDate(c *fiber.Ctx, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: name + " debe tener formato YYYY-MM-DD",
		})
		return nil, false
	}
	return &t, true
}

// pageParams lee limit/offset con los mismos topes que el resto de la API.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
