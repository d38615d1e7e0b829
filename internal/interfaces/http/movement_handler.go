package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
	"github.com/mariaalvez/vetclinic-api/internal/application/reports"
	appstock "github.com/mariaalvez/vetclinic-api/internal/application/stock"
)

// MovementHandler maneja las peticiones HTTP sobre el libro de movimientos.
type MovementHandler struct {
	ledger  *appstock.LedgerUseCase
	reports *reports.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledger *appstock.LedgerUseCase, rep *reports.UseCase) *MovementHandler {
	return &MovementHandler{ledger: ledger, reports: rep}
}

// Create godoc
// @Summary      Registrar entrada o salida manual
// @Description  Aplica un movimiento IN u OUT sobre un lote. Las salidas
// @Description  fallan con 409 si el saldo del lote no alcanza.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Saldo insuficiente"
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	mov, err := h.ledger.ApplyMovement(c.Context(), in.LotID, in.Type, in.Quantity, in.Note)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementFromEntity(mov))
}

// Reverse godoc
// @Summary      Revertir un movimiento
// @Description  Registra el movimiento compensatorio del movimiento dado.
// @Description  El asiento original no se modifica ni se borra.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true   "ID del movimiento a revertir"
// @Param        body  body  dto.ReverseMovementRequest  false  "Nota opcional"
// @Success      201   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/reverse [post]
func (h *MovementHandler) Reverse(c *fiber.Ctx) error {
	var in dto.ReverseMovementRequest
	if len(c.Body()) > 0 {
		if !parseBody(c, &in) {
			return nil
		}
	}
	mov, err := h.ledger.ReverseMovement(c.Context(), c.Params("id"), in.Note)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementFromEntity(mov))
}

// History godoc
// @Summary      Historial de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        lot_id  query  string  false  "Restringir a un lote"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.MovementHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	from, ok := queryDate(c, "from")
	if !ok {
		return nil
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)

	rows, err := h.reports.MovementHistory(c.Query("lot_id"), from, to, limit, offset)
	if err != nil {
		return domainError(c, err)
	}

	out := dto.MovementHistoryResponse{
		Items: make([]dto.MovementHistoryItem, 0, len(rows)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, r := range rows {
		item := dto.MovementHistoryItem{MovementResponse: *dto.MovementFromEntity(r.Movement)}
		if r.Lot != nil {
			item.Medication = r.Lot.Medication
			item.LotCode = r.Lot.LotCode
		}
		out.Items = append(out.Items, item)
	}
	return c.JSON(out)
}
