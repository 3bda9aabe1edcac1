package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/in100tiva/PDV/internal/application/alerts"
)

// AlertHandler trata os alertas de estoque da loja.
type AlertHandler struct {
	uc *alerts.UseCase
}

// NewAlertHandler constrói o handler.
func NewAlertHandler(uc *alerts.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// alertResponse corpo de um alerta na listagem.
type alertResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	VariantID   string           `json:"variant_id,omitempty"`
	Type        string           `json:"type"`
	Quantity    decimal.Decimal  `json:"quantity"`
	MinQuantity *decimal.Decimal `json:"min_quantity,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ListUnread godoc
// @Summary      Listar alertas de estoque não lidos
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Limite"  default(20)
// @Success      200    {array}  alertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) ListUnread(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	list, err := h.uc.ListUnread(c.UserContext(), GetStoreID(c), limit)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]alertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, alertResponse{
			ID:          a.ID,
			ProductID:   a.ProductID,
			VariantID:   a.VariantID,
			Type:        a.Type,
			Quantity:    a.Quantity,
			MinQuantity: a.MinQuantity,
			CreatedAt:   a.CreatedAt,
		})
	}
	return c.JSON(items)
}

// MarkRead godoc
// @Summary      Marcar alerta como lido
// @Tags         alerts
// @Security     Bearer
// @Param        id  path  string  true  "ID do alerta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/read [post]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
