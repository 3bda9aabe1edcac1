package usecase

import (
	"context"
	"time"

	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

// SaleUseCase consultas de vendas finalizadas. Vendas nascem no checkout;
// aqui é só leitura.
type SaleUseCase struct {
	repo repository.SaleRepository
}

// NewSaleUseCase constrói o caso de uso.
func NewSaleUseCase(repo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{repo: repo}
}

// GetByID obtém uma venda completa: itens e pagamentos inclusos.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	items, err := uc.repo.GetItems(id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.repo.GetPayments(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items, payments), nil
}

// ListByStore lista vendas da loja no período, mais recentes primeiro.
func (uc *SaleUseCase) ListByStore(ctx context.Context, storeID string, from, to *time.Time, page dto.PageRequest) ([]dto.SaleResponse, error) {
	if storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	sales, err := uc.repo.ListByStore(storeID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, *toSaleResponse(s, nil, nil))
	}
	return items, nil
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem, payments []*entity.Payment) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		StoreID:       sale.StoreID,
		UserID:        sale.UserID,
		CustomerID:    sale.CustomerID,
		Number:        sale.Number,
		Status:        sale.Status,
		Subtotal:      sale.Subtotal,
		DiscountKind:  sale.DiscountKind,
		DiscountValue: sale.DiscountValue,
		Total:         sale.Total,
		Notes:         sale.Notes,
		CreatedAt:     sale.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			VariantID:     item.VariantID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			DiscountKind:  item.DiscountKind,
			DiscountValue: item.DiscountValue,
			Subtotal:      item.Subtotal,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{
			ID:     p.ID,
			Method: p.Method,
			Amount: p.Amount,
			Change: p.Change,
		})
	}
	return resp
}
