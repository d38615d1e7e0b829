package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/clinic"
	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
)

// ExamHandler maneja las peticiones HTTP del catálogo de exámenes.
type ExamHandler struct {
	uc *clinic.ExamUseCase
}

// NewExamHandler construye el handler.
func NewExamHandler(uc *clinic.ExamUseCase) *ExamHandler {
	return &ExamHandler{uc: uc}
}

// Create godoc
// @Summary      Agregar examen al catálogo
// @Tags         exams
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExamRequest  true  "Nombre del examen"
// @Success      201   {object}  dto.ExamResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Nombre duplicado"
// @Router       /api/exams [post]
func (h *ExamHandler) Create(c *fiber.Ctx) error {
	var in dto.ExamRequest
	if !parseBody(c, &in) {
		return nil
	}
	exam, err := h.uc.Create(in.Name)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExamFromEntity(exam))
}

// Update godoc
// @Summary      Renombrar examen
// @Tags         exams
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del examen"
// @Param        body  body  dto.ExamRequest  true  "Nombre del examen"
// @Success      200   {object}  dto.ExamResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/exams/{id} [put]
func (h *ExamHandler) Update(c *fiber.Ctx) error {
	var in dto.ExamRequest
	if !parseBody(c, &in) {
		return nil
	}
	exam, err := h.uc.Update(c.Params("id"), in.Name)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ExamFromEntity(exam))
}

// GetByID godoc
// @Summary      Obtener examen por ID
// @Tags         exams
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del examen"
// @Success      200  {object}  dto.ExamResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exams/{id} [get]
func (h *ExamHandler) GetByID(c *fiber.Ctx) error {
	exam, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ExamFromEntity(exam))
}

// List godoc
// @Summary      Listar catálogo de exámenes
// @Tags         exams
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ExamResponse
// @Router       /api/exams [get]
func (h *ExamHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	exams, err := h.uc.List(limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]*dto.ExamResponse, 0, len(exams))
	for _, e := range exams {
		out = append(out, dto.ExamFromEntity(e))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Quitar examen del catálogo
// @Description  Falla con 409 mientras alguna consulta referencie el examen.
// @Tags         exams
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del examen"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/exams/{id} [delete]
func (h *ExamHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
