package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/in100tiva/PDV/internal/application/checkout"
	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/application/pos"
)

// POSHandler trata o carrinho por sessão de caixa e o fechamento da venda.
type POSHandler struct {
	svc       *pos.Service
	checkout  *checkout.UseCase
	companyID string
}

// NewPOSHandler constrói o handler.
func NewPOSHandler(svc *pos.Service, checkoutUC *checkout.UseCase, companyID string) *POSHandler {
	return &POSHandler{svc: svc, checkout: checkoutUC, companyID: companyID}
}

// GetCart godoc
// @Summary      Obter o carrinho da sessão
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Success      200      {object}  dto.CartResponse
// @Router       /api/pos/sessions/{session}/cart [get]
func (h *POSHandler) GetCart(c *fiber.Ctx) error {
	out, err := h.svc.GetCart(c.UserContext(), c.Params("session"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Adicionar item ao carrinho (por produto ou código de barras)
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Param        body     body  dto.AddCartItemRequest  true  "Item"
// @Success      200      {object}  dto.CartResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/pos/sessions/{session}/items [post]
func (h *POSHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.svc.AddItem(c.UserContext(), h.companyID, c.Params("session"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Alterar a quantidade de uma linha do carrinho
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Param        line     path  string  true  "ID da linha"
// @Param        body     body  dto.UpdateCartItemRequest  true  "Nova quantidade"
// @Success      200      {object}  dto.CartResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/pos/sessions/{session}/items/{line} [patch]
func (h *POSHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.svc.UpdateItemQuantity(c.UserContext(), c.Params("session"), c.Params("line"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Remover uma linha do carrinho
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Param        line     path  string  true  "ID da linha"
// @Success      200      {object}  dto.CartResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/pos/sessions/{session}/items/{line} [delete]
func (h *POSHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.svc.RemoveItem(c.UserContext(), c.Params("session"), c.Params("line"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetItemDiscount godoc
// @Summary      Aplicar desconto em uma linha
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Param        line     path  string  true  "ID da linha"
// @Param        body     body  dto.DiscountRequest  true  "Desconto percentual ou em valor"
// @Success      200      {object}  dto.CartResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/pos/sessions/{session}/items/{line}/discount [put]
func (h *POSHandler) SetItemDiscount(c *fiber.Ctx) error {
	var in dto.DiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.svc.SetItemDiscount(c.UserContext(), c.Params("session"), c.Params("line"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ClearItemDiscount godoc
// @Summary      Remover o desconto de uma linha
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Param        line     path  string  true  "ID da linha"
// @Success      200      {object}  dto.CartResponse
// @Router       /api/pos/sessions/{session}/items/{line}/discount [delete]
func (h *POSHandler) ClearItemDiscount(c *fiber.Ctx) error {
	out, err := h.svc.ClearItemDiscount(c.UserContext(), c.Params("session"), c.Params("line"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetOrderDiscount godoc
// @Summary      Aplicar desconto geral na venda
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Param        body     body  dto.DiscountRequest  true  "Desconto percentual ou em valor"
// @Success      200      {object}  dto.CartResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/pos/sessions/{session}/discount [put]
func (h *POSHandler) SetOrderDiscount(c *fiber.Ctx) error {
	var in dto.DiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.svc.SetOrderDiscount(c.UserContext(), c.Params("session"), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ClearOrderDiscount godoc
// @Summary      Remover o desconto geral
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Success      200      {object}  dto.CartResponse
// @Router       /api/pos/sessions/{session}/discount [delete]
func (h *POSHandler) ClearOrderDiscount(c *fiber.Ctx) error {
	out, err := h.svc.SetOrderDiscount(c.UserContext(), c.Params("session"), nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetCustomer godoc
// @Summary      Vincular cliente à venda em andamento
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Param        body     body  dto.SetCustomerRequest  true  "ID do cliente (vazio desvincula)"
// @Success      200      {object}  dto.CartResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/pos/sessions/{session}/customer [put]
func (h *POSHandler) SetCustomer(c *fiber.Ctx) error {
	var in dto.SetCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.svc.SetCustomer(c.UserContext(), c.Params("session"), in.CustomerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetNote godoc
// @Summary      Anotar observação na venda em andamento
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Param        body     body  dto.SetNoteRequest  true  "Observação"
// @Success      200      {object}  dto.CartResponse
// @Router       /api/pos/sessions/{session}/note [put]
func (h *POSHandler) SetNote(c *fiber.Ctx) error {
	var in dto.SetNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.svc.SetNote(c.UserContext(), c.Params("session"), in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ClearCart godoc
// @Summary      Esvaziar o carrinho da sessão
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Success      200      {object}  dto.CartResponse
// @Router       /api/pos/sessions/{session}/cart [delete]
func (h *POSHandler) ClearCart(c *fiber.Ctx) error {
	out, err := h.svc.ClearCart(c.UserContext(), c.Params("session"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// EndSession godoc
// @Summary      Encerrar a sessão de caixa
// @Tags         pos
// @Security     Bearer
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Success      204
// @Router       /api/pos/sessions/{session} [delete]
func (h *POSHandler) EndSession(c *fiber.Ctx) error {
	h.svc.EndSession(c.Params("session"))
	return c.SendStatus(fiber.StatusNoContent)
}

// Checkout godoc
// @Summary      Fechar a venda da sessão
// @Description  Grava venda, itens, baixa de estoque e pagamento em uma única
// @Description  transação. O carrinho só é limpo depois do commit.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session  path  string  true  "ID da sessão de caixa"
// @Param        body     body  dto.CheckoutRequest  true  "Forma de pagamento"
// @Success      201      {object}  dto.SaleResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/pos/sessions/{session}/checkout [post]
func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.checkout.FinalizeSale(c.UserContext(), GetStoreID(c), GetUserID(c), c.Params("session"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
