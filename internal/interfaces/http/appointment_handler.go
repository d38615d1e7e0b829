package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/clinic"
	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
)

// AppointmentHandler maneja las peticiones HTTP para agendamientos.
type AppointmentHandler struct {
	uc *clinic.AppointmentUseCase
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(uc *clinic.AppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// Create godoc
// @Summary      Agendar atención
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AppointmentRequest  true  "Datos del agendamiento"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var in dto.AppointmentRequest
	if !parseBody(c, &in) {
		return nil
	}
	a, err := h.uc.Create(c.Context(), clinic.AppointmentInput{
		AnimalID:    in.AnimalID,
		TutorID:     in.TutorID,
		ScheduledAt: in.ScheduledAt,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AppointmentFromEntity(a))
}

// Update godoc
// @Summary      Reagendar atención
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del agendamiento"
// @Param        body  body  dto.AppointmentRequest  true  "Datos del agendamiento"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [put]
func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	var in dto.AppointmentRequest
	if !parseBody(c, &in) {
		return nil
	}
	a, err := h.uc.Update(c.Context(), c.Params("id"), clinic.AppointmentInput{
		AnimalID:    in.AnimalID,
		TutorID:     in.TutorID,
		ScheduledAt: in.ScheduledAt,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.AppointmentFromEntity(a))
}

// List godoc
// @Summary      Listar agendamientos en un rango de fechas
// @Description  Sin parámetros devuelve los agendamientos de los próximos
// @Description  siete días.
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD, exclusivo)"
// @Success      200  {array}  dto.AppointmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	from, ok := queryDate(c, "from")
	if !ok {
		return nil
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return nil
	}
	now := time.Now()
	start := now.Truncate(24 * time.Hour)
	if from != nil {
		start = *from
	}
	end := start.AddDate(0, 0, 7)
	if to != nil {
		end = *to
	}

	list, err := h.uc.ListBetween(c.Context(), start, end)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]*dto.AppointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AppointmentFromEntity(a))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Cancelar agendamiento
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del agendamiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
