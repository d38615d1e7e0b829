package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/clinic"
	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
)

// ConsultationHandler maneja las peticiones HTTP para consultas clínicas.
// Las escrituras pasan por el caso de uso, que concilia los medicamentos
// aplicados contra el libro de movimientos; las lecturas van al repositorio.
type ConsultationHandler struct {
	uc            *clinic.ConsultationUseCase
	consultations repository.ConsultationRepository
	consumptions  repository.ConsumptionRepository
}

// NewConsultationHandler construye el handler.
func NewConsultationHandler(uc *clinic.ConsultationUseCase, consultations repository.ConsultationRepository, consumptions repository.ConsumptionRepository) *ConsultationHandler {
	return &ConsultationHandler{uc: uc, consultations: consultations, consumptions: consumptions}
}

func consultationInput(in dto.ConsultationRequest) clinic.ConsultationInput {
	meds := make([]clinic.MedicationApplication, 0, len(in.Medications))
	for _, m := range in.Medications {
		meds = append(meds, clinic.MedicationApplication{LotID: m.LotID, Quantity: m.Quantity})
	}
	return clinic.ConsultationInput{
		AnimalID:       in.AnimalID,
		VeterinarianID: in.VeterinarianID,
		AttendedAt:     in.AttendedAt,
		Type:           in.Type,
		Diagnosis:      in.Diagnosis,
		Observations:   in.Observations,
		HeartRate:      in.HeartRate,
		RespRate:       in.RespRate,
		Temperature:    in.Temperature,
		Weight:         in.Weight,
		MucosaEval:     in.MucosaEval,
		CapillaryTime:  in.CapillaryTime,
		Medications:    meds,
		ExamIDs:        in.ExamIDs,
		AsOf:           time.Now(),
	}
}

// Create godoc
// @Summary      Registrar consulta clínica
// @Description  Registra la consulta y descuenta del stock los medicamentos
// @Description  aplicados, todo en una sola transacción. Si algún lote no
// @Description  tiene saldo suficiente no se persiste nada.
// @Tags         consultations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsultationRequest  true  "Datos de la consulta"
// @Success      201   {object}  dto.ConsultationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Saldo insuficiente"
// @Router       /api/consultations [post]
func (h *ConsultationHandler) Create(c *fiber.Ctx) error {
	var in dto.ConsultationRequest
	if !parseBody(c, &in) {
		return nil
	}
	cons, err := h.uc.Create(c.Context(), consultationInput(in))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ConsultationFromEntity(cons))
}

// Update godoc
// @Summary      Editar consulta clínica
// @Description  Reemplaza los datos de la consulta y reconcilia los
// @Description  medicamentos aplicados: devuelve al stock lo que salió de la
// @Description  lista y descuenta lo nuevo, en una sola transacción.
// @Tags         consultations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la consulta"
// @Param        body  body  dto.ConsultationRequest  true  "Datos de la consulta"
// @Success      200   {object}  dto.ConsultationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consultations/{id} [put]
func (h *ConsultationHandler) Update(c *fiber.Ctx) error {
	var in dto.ConsultationRequest
	if !parseBody(c, &in) {
		return nil
	}
	cons, err := h.uc.Update(c.Context(), c.Params("id"), consultationInput(in))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ConsultationFromEntity(cons))
}

// GetByID godoc
// @Summary      Obtener consulta con sus medicamentos aplicados
// @Tags         consultations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la consulta"
// @Success      200  {object}  dto.ConsultationDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consultations/{id} [get]
func (h *ConsultationHandler) GetByID(c *fiber.Ctx) error {
	cons, err := h.consultations.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if cons == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "consulta no encontrada"})
	}
	links, err := h.consumptions.ListByEvent(entity.EventKindConsultation, cons.ID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ConsultationDetailFromEntity(cons, links))
}

// List godoc
// @Summary      Listar consultas
// @Tags         consultations
// @Security     Bearer
// @Produce      json
// @Param        animal_id  query  string  false  "Filtrar por animal"
// @Param        from       query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.ConsultationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/consultations [get]
func (h *ConsultationHandler) List(c *fiber.Ctx) error {
	from, ok := queryDate(c, "from")
	if !ok {
		return nil
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)

	var (
		list []*entity.Consultation
		err  error
	)
	if animalID := c.Query("animal_id"); animalID != "" {
		list, err = h.consultations.ListByAnimal(animalID, limit, offset)
	} else {
		list, err = h.consultations.List(from, to, limit, offset)
	}
	if err != nil {
		return domainError(c, err)
	}
	out := make([]*dto.ConsultationResponse, 0, len(list))
	for _, cons := range list {
		out = append(out, dto.ConsultationFromEntity(cons))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar consulta
// @Description  Borra la consulta y devuelve al stock los medicamentos que
// @Description  había consumido.
// @Tags         consultations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la consulta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consultations/{id} [delete]
func (h *ConsultationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
