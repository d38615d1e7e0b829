package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/clinic"
	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// VaccinationHandler maneja las peticiones HTTP para registros de vacunación.
type VaccinationHandler struct {
	uc           *clinic.VaccinationUseCase
	vaccinations repository.VaccinationRepository
}

// NewVaccinationHandler construye el handler.
func NewVaccinationHandler(uc *clinic.VaccinationUseCase, vaccinations repository.VaccinationRepository) *VaccinationHandler {
	return &VaccinationHandler{uc: uc, vaccinations: vaccinations}
}

// Create godoc
// @Summary      Registrar vacunación
// @Description  Registra la dosis y descuenta una unidad del lote indicado en
// @Description  la misma transacción. El lote debe ser de categoría VACCINE.
// @Tags         vaccinations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VaccinationRequest  true  "Datos de la vacunación"
// @Success      201   {object}  dto.VaccinationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Lote sin saldo"
// @Router       /api/vaccinations [post]
func (h *VaccinationHandler) Create(c *fiber.Ctx) error {
	var in dto.VaccinationRequest
	if !parseBody(c, &in) {
		return nil
	}
	v, err := h.uc.Create(c.Context(), clinic.VaccinationInput{
		AnimalID:          in.AnimalID,
		LotID:             in.LotID,
		AppliedAt:         in.AppliedAt,
		RevaccinationDate: in.RevaccinationDate,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.VaccinationFromEntity(v))
}

// Update godoc
// @Summary      Editar vacunación
// @Description  Si cambia el lote, devuelve la dosis al lote anterior y la
// @Description  descuenta del nuevo en una sola transacción.
// @Tags         vaccinations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la vacunación"
// @Param        body  body  dto.VaccinationRequest  true  "Datos de la vacunación"
// @Success      200   {object}  dto.VaccinationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vaccinations/{id} [put]
func (h *VaccinationHandler) Update(c *fiber.Ctx) error {
	var in dto.VaccinationRequest
	if !parseBody(c, &in) {
		return nil
	}
	v, err := h.uc.Update(c.Context(), c.Params("id"), clinic.VaccinationInput{
		AnimalID:          in.AnimalID,
		LotID:             in.LotID,
		AppliedAt:         in.AppliedAt,
		RevaccinationDate: in.RevaccinationDate,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.VaccinationFromEntity(v))
}

// GetByID godoc
// @Summary      Obtener vacunación por ID
// @Tags         vaccinations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la vacunación"
// @Success      200  {object}  dto.VaccinationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vaccinations/{id} [get]
func (h *VaccinationHandler) GetByID(c *fiber.Ctx) error {
	v, err := h.vaccinations.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if v == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vacunación no encontrada"})
	}
	return c.JSON(dto.VaccinationFromEntity(v))
}

// List godoc
// @Summary      Listar vacunaciones
// @Tags         vaccinations
// @Security     Bearer
// @Produce      json
// @Param        animal_id  query  string  false  "Filtrar por animal"
// @Param        lot_id     query  string  false  "Filtrar por lote"
// @Param        from       query  string  false  "Aplicadas desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Aplicadas hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.VaccinationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/vaccinations [get]
func (h *VaccinationHandler) List(c *fiber.Ctx) error {
	from, ok := queryDate(c, "from")
	if !ok {
		return nil
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)

	list, err := h.vaccinations.List(repository.VaccinationFilter{
		AnimalID:    c.Query("animal_id"),
		LotID:       c.Query("lot_id"),
		AppliedFrom: from,
		AppliedTo:   to,
	}, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]*dto.VaccinationResponse, 0, len(list))
	for _, v := range list {
		out = append(out, dto.VaccinationFromEntity(v))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar vacunación
// @Description  Borra el registro y devuelve la dosis al lote.
// @Tags         vaccinations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la vacunación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vaccinations/{id} [delete]
func (h *VaccinationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
