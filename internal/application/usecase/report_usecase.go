package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

// ReportUseCase agrega vendas do período para o painel da loja.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase constrói o caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// SalesReport monta o relatório de vendas do período: totais, ticket médio,
// quebra por dia e forma de pagamento, e produtos mais vendidos.
func (uc *ReportUseCase) SalesReport(ctx context.Context, storeID string, from, to time.Time) (*dto.SalesReportResponse, error) {
	if storeID == "" || to.Before(from) {
		return nil, domain.ErrInvalidInput
	}

	total, count, err := uc.repo.SalesTotals(storeID, from, to)
	if err != nil {
		return nil, err
	}
	byDay, err := uc.repo.SalesByDay(storeID, from, to)
	if err != nil {
		return nil, err
	}
	byPayment, err := uc.repo.SalesByPaymentMethod(storeID, from, to)
	if err != nil {
		return nil, err
	}
	topProducts, err := uc.repo.TopProducts(storeID, from, to, 10)
	if err != nil {
		return nil, err
	}

	resp := &dto.SalesReportResponse{
		From:  from.Format("2006-01-02"),
		To:    to.Format("2006-01-02"),
		Total: total,
		Count: count,
	}
	if count > 0 {
		resp.AverageTicket = total.Div(decimal.NewFromInt(count)).Round(2)
	} else {
		resp.AverageTicket = decimal.Zero
	}
	for _, d := range byDay {
		resp.ByDay = append(resp.ByDay, dto.SalesReportDay{
			Day:   d.Day.Format("2006-01-02"),
			Total: d.Total,
			Count: d.Count,
		})
	}
	for _, p := range byPayment {
		resp.ByPayment = append(resp.ByPayment, dto.SalesReportPayment{
			Method: p.Method,
			Total:  p.Total,
			Count:  p.Count,
		})
	}
	for _, p := range topProducts {
		resp.TopProducts = append(resp.TopProducts, dto.SalesReportProduct{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
			Total:       p.Total,
		})
	}
	return resp, nil
}
