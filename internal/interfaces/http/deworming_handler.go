package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/clinic"
	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// DewormingHandler maneja las peticiones HTTP para registros de vermifugación.
type DewormingHandler struct {
	uc         *clinic.DewormingUseCase
	dewormings repository.DewormingRepository
}

// NewDewormingHandler construye el handler.
func NewDewormingHandler(uc *clinic.DewormingUseCase, dewormings repository.DewormingRepository) *DewormingHandler {
	return &DewormingHandler{uc: uc, dewormings: dewormings}
}

// Create godoc
// @Summary      Registrar vermifugación
// @Description  Registra la dosis y descuenta una unidad del lote indicado en
// @Description  la misma transacción. El lote debe ser de categoría DEWORMER.
// @Tags         dewormings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DewormingRequest  true  "Datos de la vermifugación"
// @Success      201   {object}  dto.DewormingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Lote sin saldo"
// @Router       /api/dewormings [post]
func (h *DewormingHandler) Create(c *fiber.Ctx) error {
	var in dto.DewormingRequest
	if !parseBody(c, &in) {
		return nil
	}
	d, err := h.uc.Create(c.Context(), clinic.DewormingInput{
		AnimalID:           in.AnimalID,
		LotID:              in.LotID,
		AdministeredAt:     in.AdministeredAt,
		ReadministerBefore: in.ReadministerBefore,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DewormingFromEntity(d))
}

// Update godoc
// @Summary      Editar vermifugación
// @Description  Si cambia el lote, devuelve la dosis al lote anterior y la
// @Description  descuenta del nuevo en una sola transacción.
// @Tags         dewormings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la vermifugación"
// @Param        body  body  dto.DewormingRequest  true  "Datos de la vermifugación"
// @Success      200   {object}  dto.DewormingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dewormings/{id} [put]
func (h *DewormingHandler) Update(c *fiber.Ctx) error {
	var in dto.DewormingRequest
	if !parseBody(c, &in) {
		return nil
	}
	d, err := h.uc.Update(c.Context(), c.Params("id"), clinic.DewormingInput{
		AnimalID:           in.AnimalID,
		LotID:              in.LotID,
		AdministeredAt:     in.AdministeredAt,
		ReadministerBefore: in.ReadministerBefore,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.DewormingFromEntity(d))
}

// GetByID godoc
// @Summary      Obtener vermifugación por ID
// @Tags         dewormings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la vermifugación"
// @Success      200  {object}  dto.DewormingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dewormings/{id} [get]
func (h *DewormingHandler) GetByID(c *fiber.Ctx) error {
	d, err := h.dewormings.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if d == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vermifugación no encontrada"})
	}
	return c.JSON(dto.DewormingFromEntity(d))
}

// List godoc
// @Summary      Listar vermifugaciones
// @Tags         dewormings
// @Security     Bearer
// @Produce      json
// @Param        animal_id  query  string  false  "Filtrar por animal"
// @Param        lot_id     query  string  false  "Filtrar por lote"
// @Param        from       query  string  false  "Administradas desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Administradas hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.DewormingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dewormings [get]
func (h *DewormingHandler) List(c *fiber.Ctx) error {
	from, ok := queryDate(c, "from")
	if !ok {
		return nil
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)

	list, err := h.dewormings.List(repository.DewormingFilter{
		AnimalID:         c.Query("animal_id"),
		LotID:            c.Query("lot_id"),
		AdministeredFrom: from,
		AdministeredTo:   to,
	}, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]*dto.DewormingResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DewormingFromEntity(d))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar vermifugación
// @Description  Borra el registro y devuelve la dosis al lote.
// @Tags         dewormings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la vermifugación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dewormings/{id} [delete]
func (h *DewormingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
