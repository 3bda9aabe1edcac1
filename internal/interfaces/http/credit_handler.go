package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/in100tiva/PDV/internal/application/credit"
	"github.com/in100tiva/PDV/internal/application/dto"
)

// CreditHandler trata o crediário (fiado).
type CreditHandler struct {
	uc *credit.UseCase
}

// NewCreditHandler constrói o handler.
func NewCreditHandler(uc *credit.UseCase) *CreditHandler {
	return &CreditHandler{uc: uc}
}

// List godoc
// @Summary      Listar fiados da loja
// @Tags         credits
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendente, parcial ou pago"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.CreditResponse
// @Router       /api/credits [get]
func (h *CreditHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros inválidos")
	}
	out, err := h.uc.ListByStore(c.UserContext(), GetStoreID(c), c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter fiado por ID
// @Tags         credits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do fiado"
// @Success      200  {object}  dto.CreditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/credits/{id} [get]
func (h *CreditHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByCustomer godoc
// @Summary      Listar fiados de um cliente
// @Tags         credits
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID do cliente"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.CreditResponse
// @Router       /api/customers/{id}/credits [get]
func (h *CreditHandler) ListByCustomer(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros inválidos")
	}
	out, err := h.uc.ListByCustomer(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterPayment godoc
// @Summary      Registrar pagamento de fiado
// @Tags         credits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do fiado"
// @Param        body  body  dto.CreditPaymentRequest  true  "Pagamento"
// @Success      200   {object}  dto.CreditResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/credits/{id}/payments [post]
func (h *CreditHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.CreditPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.RegisterPayment(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
