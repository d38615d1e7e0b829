package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
	"github.com/mariaalvez/vetclinic-api/internal/application/registry"
)

// VeterinarianHandler maneja las peticiones HTTP para veterinarios.
type VeterinarianHandler struct {
	uc *registry.VeterinarianUseCase
}

// NewVeterinarianHandler construye el handler.
func NewVeterinarianHandler(uc *registry.VeterinarianUseCase) *VeterinarianHandler {
	return &VeterinarianHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar veterinario
// @Tags         veterinarians
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VeterinarianRequest  true  "Datos del veterinario"
// @Success      201   {object}  dto.VeterinarianResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/veterinarians [post]
func (h *VeterinarianHandler) Create(c *fiber.Ctx) error {
	var in dto.VeterinarianRequest
	if !parseBody(c, &in) {
		return nil
	}
	vet, err := h.uc.Create(registry.VeterinarianInput{Name: in.Name, Phone: in.Phone})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.VeterinarianFromEntity(vet))
}

// Update godoc
// @Summary      Editar veterinario
// @Tags         veterinarians
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del veterinario"
// @Param        body  body  dto.VeterinarianRequest  true  "Datos del veterinario"
// @Success      200   {object}  dto.VeterinarianResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/veterinarians/{id} [put]
func (h *VeterinarianHandler) Update(c *fiber.Ctx) error {
	var in dto.VeterinarianRequest
	if !parseBody(c, &in) {
		return nil
	}
	vet, err := h.uc.Update(c.Params("id"), registry.VeterinarianInput{Name: in.Name, Phone: in.Phone})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.VeterinarianFromEntity(vet))
}

// GetByID godoc
// @Summary      Obtener veterinario por ID
// @Tags         veterinarians
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del veterinario"
// @Success      200  {object}  dto.VeterinarianResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/veterinarians/{id} [get]
func (h *VeterinarianHandler) GetByID(c *fiber.Ctx) error {
	vet, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.VeterinarianFromEntity(vet))
}

// List godoc
// @Summary      Listar veterinarios
// @Tags         veterinarians
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VeterinarianResponse
// @Router       /api/veterinarians [get]
func (h *VeterinarianHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	vets, err := h.uc.List(limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]*dto.VeterinarianResponse, 0, len(vets))
	for _, v := range vets {
		out = append(out, dto.VeterinarianFromEntity(v))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar veterinario
// @Tags         veterinarians
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del veterinario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/veterinarians/{id} [delete]
func (h *VeterinarianHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
