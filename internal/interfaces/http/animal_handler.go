package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
	"github.com/mariaalvez/vetclinic-api/internal/application/registry"
)

// AnimalHandler maneja las peticiones HTTP para animales.
type AnimalHandler struct {
	uc *registry.AnimalUseCase
}

// NewAnimalHandler construye el handler.
func NewAnimalHandler(uc *registry.AnimalUseCase) *AnimalHandler {
	return &AnimalHandler{uc: uc}
}

func animalInput(in dto.AnimalRequest) registry.AnimalInput {
	return registry.AnimalInput{
		TutorID:   in.TutorID,
		Name:      in.Name,
		Species:   in.Species,
		AgeYears:  in.AgeYears,
		AgeMonths: in.AgeMonths,
		Sex:       in.Sex,
		Weight:    in.Weight,
		Neutered:  in.Neutered,
		RFID:      in.RFID,
	}
}

// Create godoc
// @Summary      Registrar animal
// @Tags         animals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AnimalRequest  true  "Datos del animal"
// @Success      201   {object}  dto.AnimalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "Tutor inexistente"
// @Router       /api/animals [post]
func (h *AnimalHandler) Create(c *fiber.Ctx) error {
	var in dto.AnimalRequest
	if !parseBody(c, &in) {
		return nil
	}
	animal, err := h.uc.Create(animalInput(in))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AnimalFromEntity(animal))
}

// Update godoc
// @Summary      Editar animal
// @Tags         animals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del animal"
// @Param        body  body  dto.AnimalRequest  true  "Datos del animal"
// @Success      200   {object}  dto.AnimalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/animals/{id} [put]
func (h *AnimalHandler) Update(c *fiber.Ctx) error {
	var in dto.AnimalRequest
	if !parseBody(c, &in) {
		return nil
	}
	animal, err := h.uc.Update(c.Params("id"), animalInput(in))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.AnimalFromEntity(animal))
}

// GetByID godoc
// @Summary      Obtener animal por ID
// @Tags         animals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del animal"
// @Success      200  {object}  dto.AnimalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/animals/{id} [get]
func (h *AnimalHandler) GetByID(c *fiber.Ctx) error {
	animal, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.AnimalFromEntity(animal))
}

// List godoc
// @Summary      Listar animales
// @Tags         animals
// @Security     Bearer
// @Produce      json
// @Param        tutor_id  query  string  false  "Filtrar por tutor"
// @Success      200  {array}  dto.AnimalResponse
// @Router       /api/animals [get]
func (h *AnimalHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	animals, err := h.uc.List(c.Query("tutor_id"), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]*dto.AnimalResponse, 0, len(animals))
	for _, a := range animals {
		out = append(out, dto.AnimalFromEntity(a))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar animal
// @Tags         animals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del animal"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/animals/{id} [delete]
func (h *AnimalHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
