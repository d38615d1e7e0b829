package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
	"github.com/mariaalvez/vetclinic-api/internal/application/services"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// ServiceRecordHandler maneja las peticiones HTTP de registros de servicios
// tercerizados.
type ServiceRecordHandler struct {
	uc *services.RecordUseCase
}

// NewServiceRecordHandler construye el handler.
func NewServiceRecordHandler(uc *services.RecordUseCase) *ServiceRecordHandler {
	return &ServiceRecordHandler{uc: uc}
}

func recordInput(in dto.ServiceRecordRequest) services.RecordInput {
	return services.RecordInput{
		CompanyID:       in.CompanyID,
		AnimalID:        in.AnimalID,
		PerformedAt:     in.PerformedAt,
		Price:           in.Price,
		MedicationsNote: in.MedicationsNote,
		ProceduresNote:  in.ProceduresNote,
		AsOf:            time.Now(),
	}
}

// Create godoc
// @Summary      Registrar servicio tercerizado
// @Description  La fecha del procedimiento no puede ser futura y el valor,
// @Description  si viene, debe ser mayor que cero.
// @Tags         service-records
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ServiceRecordRequest  true  "Datos del servicio"
// @Success      201   {object}  dto.ServiceRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "Empresa o animal inexistente"
// @Router       /api/service-records [post]
func (h *ServiceRecordHandler) Create(c *fiber.Ctx) error {
	var in dto.ServiceRecordRequest
	if !parseBody(c, &in) {
		return nil
	}
	record, err := h.uc.Create(recordInput(in))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ServiceRecordFromEntity(record))
}

// Update godoc
// @Summary      Editar registro de servicio
// @Tags         service-records
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del registro"
// @Param        body  body  dto.ServiceRecordRequest  true  "Datos del servicio"
// @Success      200   {object}  dto.ServiceRecordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/service-records/{id} [put]
func (h *ServiceRecordHandler) Update(c *fiber.Ctx) error {
	var in dto.ServiceRecordRequest
	if !parseBody(c, &in) {
		return nil
	}
	record, err := h.uc.Update(c.Params("id"), recordInput(in))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ServiceRecordFromEntity(record))
}

// GetByID godoc
// @Summary      Obtener registro de servicio por ID
// @Tags         service-records
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.ServiceRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-records/{id} [get]
func (h *ServiceRecordHandler) GetByID(c *fiber.Ctx) error {
	record, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ServiceRecordFromEntity(record))
}

// List godoc
// @Summary      Listar registros de servicios
// @Tags         service-records
// @Security     Bearer
// @Produce      json
// @Param        company_id  query  string  false  "Filtrar por empresa"
// @Param        animal_id   query  string  false  "Filtrar por animal"
// @Param        from        query  string  false  "Realizados desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Realizados hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.ServiceRecordResponse
// @Router       /api/service-records [get]
func (h *ServiceRecordHandler) List(c *fiber.Ctx) error {
	from, ok := queryDate(c, "from")
	if !ok {
		return nil
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)
	records, err := h.uc.List(repository.ServiceRecordFilter{
		CompanyID:     c.Query("company_id"),
		AnimalID:      c.Query("animal_id"),
		PerformedFrom: from,
		PerformedTo:   to,
	}, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]*dto.ServiceRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ServiceRecordFromEntity(r))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro de servicio
// @Tags         service-records
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-records/{id} [delete]
func (h *ServiceRecordHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
