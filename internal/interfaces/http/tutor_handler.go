package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
	"github.com/mariaalvez/vetclinic-api/internal/application/registry"
)

// TutorHandler maneja las peticiones HTTP para tutores.
type TutorHandler struct {
	uc *registry.TutorUseCase
}

// NewTutorHandler construye el handler.
func NewTutorHandler(uc *registry.TutorUseCase) *TutorHandler {
	return &TutorHandler{uc: uc}
}

func tutorInput(in dto.TutorRequest) registry.TutorInput {
	return registry.TutorInput{
		Name:      in.Name,
		CPF:       in.CPF,
		Phone:     in.Phone,
		Email:     in.Email,
		CEP:       in.CEP,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		BirthDate: in.BirthDate,
	}
}

// Create godoc
// @Summary      Registrar tutor
// @Description  Si se informa CEP y faltan datos de dirección, se completan
// @Description  consultando ViaCEP. La falta de respuesta del servicio no
// @Description  impide el registro.
// @Tags         tutors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TutorRequest  true  "Datos del tutor"
// @Success      201   {object}  dto.TutorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "CPF ya registrado"
// @Router       /api/tutors [post]
func (h *TutorHandler) Create(c *fiber.Ctx) error {
	var in dto.TutorRequest
	if !parseBody(c, &in) {
		return nil
	}
	tutor, err := h.uc.Create(c.Context(), tutorInput(in))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TutorFromEntity(tutor))
}

// Update godoc
// @Summary      Editar tutor
// @Tags         tutors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del tutor"
// @Param        body  body  dto.TutorRequest  true  "Datos del tutor"
// @Success      200   {object}  dto.TutorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tutors/{id} [put]
func (h *TutorHandler) Update(c *fiber.Ctx) error {
	var in dto.TutorRequest
	if !parseBody(c, &in) {
		return nil
	}
	tutor, err := h.uc.Update(c.Context(), c.Params("id"), tutorInput(in))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.TutorFromEntity(tutor))
}

// GetByID godoc
// @Summary      Obtener tutor por ID
// @Tags         tutors
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tutor"
// @Success      200  {object}  dto.TutorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tutors/{id} [get]
func (h *TutorHandler) GetByID(c *fiber.Ctx) error {
	tutor, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.TutorFromEntity(tutor))
}

// List godoc
// @Summary      Listar tutores
// @Tags         tutors
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TutorResponse
// @Router       /api/tutors [get]
func (h *TutorHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	tutors, err := h.uc.List(limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]*dto.TutorResponse, 0, len(tutors))
	for _, t := range tutors {
		out = append(out, dto.TutorFromEntity(t))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tutor
// @Tags         tutors
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tutor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "Tiene animales registrados"
// @Router       /api/tutors/{id} [delete]
func (h *TutorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
