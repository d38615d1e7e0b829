package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
	"github.com/mariaalvez/vetclinic-api/internal/application/reports"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
	"github.com/mariaalvez/vetclinic-api/internal/infrastructure/pdf"
)

// ReportHandler maneja las peticiones HTTP de reportes y del panel gerencial.
type ReportHandler struct {
	uc              *reports.UseCase
	gen             *pdf.StockReportGenerator
	consultationGen *pdf.ConsultationReportGenerator
	serviceGen      *pdf.ServiceReportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase, gen *pdf.StockReportGenerator, consultationGen *pdf.ConsultationReportGenerator, serviceGen *pdf.ServiceReportGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, gen: gen, consultationGen: consultationGen, serviceGen: serviceGen}
}

func (h *ReportHandler) stockFilter(c *fiber.Ctx) (reports.StockFilter, bool) {
	var in dto.StockReportRequest
	if err := c.QueryParser(&in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
		return reports.StockFilter{}, false
	}
	if err := validate.Struct(in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		return reports.StockFilter{}, false
	}
	filter := reports.StockFilter{
		Medication: in.Medication,
		LotCode:    in.LotCode,
		Category:   in.Category,
		Status:     in.Status,
	}
	if in.ExpiryFrom != "" {
		t, _ := time.Parse("2006-01-02", in.ExpiryFrom)
		filter.ExpiryFrom = &t
	}
	if in.ExpiryTo != "" {
		t, _ := time.Parse("2006-01-02", in.ExpiryTo)
		filter.ExpiryTo = &t
	}
	return filter, true
}

// Stock godoc
// @Summary      Reporte de stock
// @Description  Lotes con su estado de vigencia proyectado a hoy y totales
// @Description  del inventario. La búsqueda por medicamento o código ignora
// @Description  mayúsculas y acentos.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        medication   query  string  false  "Filtro por medicamento"
// @Param        lot_code     query  string  false  "Filtro por código de lote"
// @Param        category     query  string  false  "VACCINE | DEWORMER | MEDICATION"
// @Param        status       query  string  false  "OK | EXPIRING_SOON | EXPIRED"
// @Param        expiry_from  query  string  false  "Vencimiento desde (YYYY-MM-DD)"
// @Param        expiry_to    query  string  false  "Vencimiento hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.StockReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	filter, ok := h.stockFilter(c)
	if !ok {
		return nil
	}
	rep, err := h.uc.Stock(filter, time.Now())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.StockReportFromResult(rep))
}

// StockPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        medication  query  string  false  "Filtro por medicamento"
// @Param        category    query  string  false  "VACCINE | DEWORMER | MEDICATION"
// @Param        status      query  string  false  "OK | EXPIRING_SOON | EXPIRED"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock/pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	filter, ok := h.stockFilter(c)
	if !ok {
		return nil
	}
	now := time.Now()
	rep, err := h.uc.Stock(filter, now)
	if err != nil {
		return domainError(c, err)
	}
	doc, err := h.gen.Generate(rep)
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="stock-%s.pdf"`, now.Format("2006-01-02")))
	return c.Send(doc)
}

// Vaccinations godoc
// @Summary      Reporte de vacunación
// @Description  Vacunaciones con el estado de su revacunación: OK, DUE_SOON,
// @Description  OVERDUE o NOT_SCHEDULED.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        animal_id  query  string  false  "Filtrar por animal"
// @Param        lot_id     query  string  false  "Filtrar por lote"
// @Param        from       query  string  false  "Aplicadas desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Aplicadas hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.VaccinationReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/vaccinations [get]
func (h *ReportHandler) Vaccinations(c *fiber.Ctx) error {
	from, ok := queryDate(c, "from")
	if !ok {
		return nil
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)
	now := time.Now()

	rows, err := h.uc.Vaccinations(repository.VaccinationFilter{
		AnimalID:    c.Query("animal_id"),
		LotID:       c.Query("lot_id"),
		AppliedFrom: from,
		AppliedTo:   to,
	}, now, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.VaccinationReportFromRows(now, rows))
}

// Dewormings godoc
// @Summary      Reporte de vermifugación
// @Description  Vermifugaciones con el estado de su readministración: OK,
// @Description  DUE_SOON, OVERDUE o NOT_SCHEDULED.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        animal_id  query  string  false  "Filtrar por animal"
// @Param        lot_id     query  string  false  "Filtrar por lote"
// @Param        from       query  string  false  "Administradas desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Administradas hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.DewormingReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/dewormings [get]
func (h *ReportHandler) Dewormings(c *fiber.Ctx) error {
	from, ok := queryDate(c, "from")
	if !ok {
		return nil
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)
	now := time.Now()

	rows, err := h.uc.Dewormings(repository.DewormingFilter{
		AnimalID:         c.Query("animal_id"),
		LotID:            c.Query("lot_id"),
		AdministeredFrom: from,
		AdministeredTo:   to,
	}, now, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.DewormingReportFromRows(now, rows))
}

func (h *ReportHandler) consultationFilter(c *fiber.Ctx) (reports.ConsultationFilter, bool) {
	from, ok := queryDate(c, "from")
	if !ok {
		return reports.ConsultationFilter{}, false
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return reports.ConsultationFilter{}, false
	}
	return reports.ConsultationFilter{
		AnimalID: c.Query("animal_id"),
		TutorID:  c.Query("tutor_id"),
		From:     from,
		To:       to,
	}, true
}

// Consultations godoc
// @Summary      Reporte de consultas
// @Description  Consultas clínicas con animal y profesional, de la más
// @Description  reciente a la más antigua. El filtro por tutor abarca todos
// @Description  sus animales.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        animal_id  query  string  false  "Filtrar por animal"
// @Param        tutor_id   query  string  false  "Filtrar por tutor"
// @Param        from       query  string  false  "Atendidas desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Atendidas hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.ConsultationReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/consultations [get]
func (h *ReportHandler) Consultations(c *fiber.Ctx) error {
	filter, ok := h.consultationFilter(c)
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)
	rows, err := h.uc.Consultations(filter, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ConsultationReportFromRows(rows))
}

// ConsultationsPDF godoc
// @Summary      Reporte de consultas en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        animal_id  query  string  false  "Filtrar por animal"
// @Param        tutor_id   query  string  false  "Filtrar por tutor"
// @Param        from       query  string  false  "Atendidas desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Atendidas hasta (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/consultations/pdf [get]
func (h *ReportHandler) ConsultationsPDF(c *fiber.Ctx) error {
	filter, ok := h.consultationFilter(c)
	if !ok {
		return nil
	}
	rows, err := h.uc.Consultations(filter, 0, 0)
	if err != nil {
		return domainError(c, err)
	}
	now := time.Now()
	doc, err := h.consultationGen.Generate(rows, now)
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="consultations-%s.pdf"`, now.Format("2006-01-02")))
	return c.Send(doc)
}

func (h *ReportHandler) serviceFilter(c *fiber.Ctx) (reports.ServiceFilter, bool) {
	from, ok := queryDate(c, "from")
	if !ok {
		return reports.ServiceFilter{}, false
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return reports.ServiceFilter{}, false
	}
	return reports.ServiceFilter{
		CompanyID: c.Query("company_id"),
		AnimalID:  c.Query("animal_id"),
		From:      from,
		To:        to,
		Search:    c.Query("search"),
	}, true
}

// Services godoc
// @Summary      Reporte de servicios tercerizados
// @Description  Servicios prestados por empresas tercerizadas, del más
// @Description  reciente al más antiguo. La búsqueda por texto recorre las
// @Description  notas de medicamentos y procedimientos ignorando acentos.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        company_id  query  string  false  "Filtrar por empresa"
// @Param        animal_id   query  string  false  "Filtrar por animal"
// @Param        from        query  string  false  "Realizados desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Realizados hasta (YYYY-MM-DD)"
// @Param        search      query  string  false  "Buscar en las notas"
// @Success      200  {object}  dto.ServiceReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/services [get]
func (h *ReportHandler) Services(c *fiber.Ctx) error {
	filter, ok := h.serviceFilter(c)
	if !ok {
		return nil
	}
	limit, offset := pageParams(c)
	rows, err := h.uc.Services(filter, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ServiceReportFromRows(rows))
}

// ServicesPDF godoc
// @Summary      Reporte de servicios tercerizados en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        company_id  query  string  false  "Filtrar por empresa"
// @Param        animal_id   query  string  false  "Filtrar por animal"
// @Param        from        query  string  false  "Realizados desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Realizados hasta (YYYY-MM-DD)"
// @Param        search      query  string  false  "Buscar en las notas"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/services/pdf [get]
func (h *ReportHandler) ServicesPDF(c *fiber.Ctx) error {
	filter, ok := h.serviceFilter(c)
	if !ok {
		return nil
	}
	rows, err := h.uc.Services(filter, 0, 0)
	if err != nil {
		return domainError(c, err)
	}
	now := time.Now()
	doc, err := h.serviceGen.Generate(rows, now)
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="services-%s.pdf"`, now.Format("2006-01-02")))
	return c.Send(doc)
}

// Dashboard godoc
// @Summary      Panel gerencial
// @Description  Agendamientos del día y de la semana, totales de stock, lotes
// @Description  críticos y revacunaciones o vermifugaciones próximas a vencer.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.uc.BuildDashboard(time.Now())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.DashboardFromResult(d))
}
