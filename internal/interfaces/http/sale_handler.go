package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/application/usecase"
)

// SaleHandler consulta vendas finalizadas e emite o cupom.
type SaleHandler struct {
	uc      *usecase.SaleUseCase
	receipt *usecase.ReceiptUseCase
}

// NewSaleHandler constrói o handler.
func NewSaleHandler(uc *usecase.SaleUseCase, receipt *usecase.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, receipt: receipt}
}

// List godoc
// @Summary      Listar vendas da loja no período
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Data inicial (RFC 3339)"
// @Param        to      query  string  false  "Data final (RFC 3339)"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.SaleResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros inválidos")
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return badRequest(c, "VALIDATION", "from deve estar em RFC 3339")
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return badRequest(c, "VALIDATION", "to deve estar em RFC 3339")
	}
	out, err := h.uc.ListByStore(c.UserContext(), GetStoreID(c), from, to, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter venda completa (itens e pagamentos)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Emitir o cupom não fiscal da venda em PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	raw, err := h.receipt.Generate(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=cupom-%s.pdf", id))
	return c.Send(raw)
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
