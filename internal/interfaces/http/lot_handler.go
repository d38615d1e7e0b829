package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
	appstock "github.com/mariaalvez/vetclinic-api/internal/application/stock"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
	"github.com/mariaalvez/vetclinic-api/internal/domain/stock"
)

// LotHandler maneja las peticiones HTTP para lotes de medicamento.
// Las escrituras pasan por el caso de uso del libro; las lecturas van
// directo al repositorio atado al pool.
type LotHandler struct {
	ledger *appstock.LedgerUseCase
	lots   repository.LotRepository
}

// NewLotHandler construye el handler.
func NewLotHandler(ledger *appstock.LedgerUseCase, lots repository.LotRepository) *LotHandler {
	return &LotHandler{ledger: ledger, lots: lots}
}

// Create godoc
// @Summary      Registrar lote de medicamento
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "Datos del lote"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *LotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if !parseBody(c, &in) {
		return nil
	}
	lot, err := h.ledger.CreateLot(c.Context(), appstock.CreateLotInput{
		Medication:      in.Medication,
		Category:        in.Category,
		LotCode:         in.LotCode,
		ExpiryDate:      in.ExpiryDate,
		InitialQuantity: in.InitialQuantity,
		AsOf:            time.Now(),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LotFromEntity(lot))
}

// GetByID godoc
// @Summary      Obtener lote por ID
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id} [get]
func (h *LotHandler) GetByID(c *fiber.Ctx) error {
	lot, err := h.lots.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if lot == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	}
	out := dto.LotFromEntity(lot)
	out.Status = stock.Status(lot.ExpiryDate, time.Now())
	out.DaysToExpiry = stock.DaysUntil(lot.ExpiryDate, time.Now())
	return c.JSON(out)
}

// List godoc
// @Summary      Listar lotes
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        medication  query  string  false  "Filtro por medicamento"
// @Param        lot_code    query  string  false  "Filtro por código de lote"
// @Param        category    query  string  false  "VACCINE | DEWORMER | MEDICATION"
// @Param        available   query  bool    false  "Solo lotes con saldo"
// @Success      200  {object}  dto.LotListResponse
// @Router       /api/lots [get]
func (h *LotHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	category := c.Query("category")

	if c.QueryBool("available", false) {
		list, err := h.lots.ListAvailable(category, limit, offset)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(lotList(list, limit, offset))
	}

	list, err := h.lots.List(repository.LotFilter{
		Medication: c.Query("medication"),
		LotCode:    c.Query("lot_code"),
		Category:   category,
	}, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(lotList(list, limit, offset))
}

// lotList arma la respuesta paginada con el estado de vigencia de cada lote.
func lotList(lots []*entity.Lot, limit, offset int) dto.LotListResponse {
	today := time.Now()
	out := dto.LotListResponse{
		Items: make([]dto.LotResponse, 0, len(lots)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, l := range lots {
		item := dto.LotFromEntity(l)
		item.Status = stock.Status(l.ExpiryDate, today)
		item.DaysToExpiry = stock.DaysUntil(l.ExpiryDate, today)
		out.Items = append(out.Items, *item)
	}
	return out
}

// Delete godoc
// @Summary      Eliminar lote sin historia
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "Tiene movimientos o consumos"
// @Router       /api/lots/{id} [delete]
func (h *LotHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledger.DeleteLot(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
