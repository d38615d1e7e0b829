package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mariaalvez/vetclinic-api/internal/application/dto"
	"github.com/mariaalvez/vetclinic-api/internal/application/services"
)

// ServiceCompanyHandler maneja las peticiones HTTP para empresas tercerizadas.
type ServiceCompanyHandler struct {
	uc *services.CompanyUseCase
}

// NewServiceCompanyHandler construye el handler.
func NewServiceCompanyHandler(uc *services.CompanyUseCase) *ServiceCompanyHandler {
	return &ServiceCompanyHandler{uc: uc}
}

func companyInput(in dto.ServiceCompanyRequest) services.CompanyInput {
	return services.CompanyInput{
		Name:  in.Name,
		CNPJ:  in.CNPJ,
		Phone: in.Phone,
		Email: in.Email,
	}
}

// Create godoc
// @Summary      Registrar empresa tercerizada
// @Description  El CNPJ se valida con sus dígitos verificadores. Razón
// @Description  social, CNPJ y email no pueden repetirse.
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ServiceCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.ServiceCompanyResponse
// @Failure      400   {object}  dto.ErrorResponse  "CNPJ inválido"
// @Failure      409   {object}  dto.ErrorResponse  "Registro duplicado"
// @Router       /api/companies [post]
func (h *ServiceCompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.ServiceCompanyRequest
	if !parseBody(c, &in) {
		return nil
	}
	company, err := h.uc.Create(companyInput(in))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ServiceCompanyFromEntity(company))
}

// Update godoc
// @Summary      Editar empresa tercerizada
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la empresa"
// @Param        body  body  dto.ServiceCompanyRequest  true  "Datos de la empresa"
// @Success      200   {object}  dto.ServiceCompanyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [put]
func (h *ServiceCompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.ServiceCompanyRequest
	if !parseBody(c, &in) {
		return nil
	}
	company, err := h.uc.Update(c.Params("id"), companyInput(in))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ServiceCompanyFromEntity(company))
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.ServiceCompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *ServiceCompanyHandler) GetByID(c *fiber.Ctx) error {
	company, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ServiceCompanyFromEntity(company))
}

// List godoc
// @Summary      Listar empresas tercerizadas
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ServiceCompanyResponse
// @Router       /api/companies [get]
func (h *ServiceCompanyHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	companies, err := h.uc.List(limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]*dto.ServiceCompanyResponse, 0, len(companies))
	for _, company := range companies {
		out = append(out, dto.ServiceCompanyFromEntity(company))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empresa tercerizada
// @Description  Falla con 409 mientras la empresa tenga servicios registrados.
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [delete]
func (h *ServiceCompanyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
