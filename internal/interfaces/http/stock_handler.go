package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/application/stock"
	"github.com/in100tiva/PDV/internal/domain/entity"
)

// StockHandler trata o livro-razão de estoque da loja do usuário.
type StockHandler struct {
	uc *stock.LedgerUseCase
}

// NewStockHandler constrói o handler.
func NewStockHandler(uc *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Adjust godoc
// @Summary      Registrar entrada ou saída manual de estoque
// @Description  Saída maior que o saldo trava em zero; a resposta informa o
// @Description  delta pedido, o aplicado e se houve trava.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Movimentação"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	if !in.Quantity.IsPositive() {
		return badRequest(c, "VALIDATION", "quantity deve ser maior que zero")
	}
	delta := in.Quantity
	switch in.Type {
	case entity.MovementEntrada:
	case entity.MovementSaida:
		delta = delta.Neg()
	default:
		return badRequest(c, "VALIDATION", "type deve ser entrada ou saida")
	}
	res, err := h.uc.AdjustQuantity(c.UserContext(), stock.MutationInput{
		StoreID:   GetStoreID(c),
		ProductID: in.ProductID,
		VariantID: in.VariantID,
		UserID:    GetUserID(c),
		Reason:    in.Reason,
	}, delta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAdjustResponse(in.ProductID, in.VariantID, res))
}

// Set godoc
// @Summary      Definir a quantidade absoluta em estoque (contagem)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetStockRequest  true  "Quantidade contada"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/quantity [put]
func (h *StockHandler) Set(c *fiber.Ctx) error {
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	res, err := h.uc.SetQuantity(c.UserContext(), stock.MutationInput{
		StoreID:   GetStoreID(c),
		ProductID: in.ProductID,
		VariantID: in.VariantID,
		UserID:    GetUserID(c),
		Reason:    in.Reason,
	}, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAdjustResponse(in.ProductID, in.VariantID, res))
}

// SetThresholds godoc
// @Summary      Configurar mínimo e máximo de um item
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.SetThresholdsRequest  true  "Limites"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/thresholds [put]
func (h *StockHandler) SetThresholds(c *fiber.Ctx) error {
	var in dto.SetThresholdsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	err := h.uc.SetThresholds(c.UserContext(), GetStoreID(c), in.ProductID, in.VariantID, in.MinQuantity, in.MaxQuantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar o estoque da loja
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.StockItemResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros inválidos")
	}
	page.DefaultPage()
	list, err := h.uc.ListByStore(c.UserContext(), GetStoreID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockItems(list))
}

// Movements godoc
// @Summary      Histórico de movimentações da loja (mais recentes primeiro)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        since   query  string  false  "Data inicial (RFC 3339)"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.StockMovementResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros inválidos")
	}
	page.DefaultPage()
	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "since deve estar em RFC 3339")
		}
		since = &t
	}
	list, err := h.uc.ListMovements(c.UserContext(), GetStoreID(c), since, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMovementResponse{
			ID:             m.ID,
			ProductID:      m.ProductID,
			VariantID:      m.VariantID,
			UserID:         m.UserID,
			Type:           m.Type,
			Quantity:       m.Quantity,
			QuantityBefore: m.QuantityBefore,
			QuantityAfter:  m.QuantityAfter,
			Reason:         m.Reason,
			ReferenceKind:  m.ReferenceKind,
			ReferenceID:    m.ReferenceID,
			CreatedAt:      m.CreatedAt,
		})
	}
	return c.JSON(items)
}

// Report godoc
// @Summary      Itens abaixo do mínimo e zerados
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockReportResponse
// @Router       /api/stock/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	below, zeroed, err := h.uc.StockReport(c.UserContext(), GetStoreID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockReportResponse{
		BelowMinimum: toStockItems(below),
		Zeroed:       toStockItems(zeroed),
	})
}

func toAdjustResponse(productID, variantID string, res *stock.Result) dto.AdjustStockResponse {
	return dto.AdjustStockResponse{
		ProductID:      productID,
		VariantID:      variantID,
		QuantityBefore: res.QuantityBefore,
		QuantityAfter:  res.QuantityAfter,
		Requested:      res.Requested,
		Applied:        res.Applied,
		Clamped:        res.Clamped,
	}
}

func toStockItems(list []*entity.Stock) []dto.StockItemResponse {
	items := make([]dto.StockItemResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.StockItemResponse{
			ProductID:   s.ProductID,
			VariantID:   s.VariantID,
			Quantity:    s.Quantity,
			MinQuantity: s.MinQuantity,
			MaxQuantity: s.MaxQuantity,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return items
}
