package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/in100tiva/PDV/internal/application/usecase"
)

// ReportHandler trata o relatório de vendas.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler constrói o handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales godoc
// @Summary      Relatório de vendas do período
// @Description  Total, ticket médio, por dia, por forma de pagamento e
// @Description  produtos mais vendidos. Sem período assume os últimos 30 dias.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Data inicial (RFC 3339)"
// @Param        to    query  string  false  "Data final (RFC 3339)"
// @Success      200   {object}  dto.SalesReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "from deve estar em RFC 3339")
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "to deve estar em RFC 3339")
		}
		to = t
	}
	if to.Before(from) {
		return badRequest(c, "VALIDATION", "to não pode ser anterior a from")
	}
	out, err := h.uc.SalesReport(c.UserContext(), GetStoreID(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
