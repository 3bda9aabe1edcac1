package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

// ReceiptItemForPDF é a linha do cupom já resolvida com nomes de produto.
type ReceiptItemForPDF struct {
	ProductName   string
	VariantName   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	DiscountKind  string
	DiscountValue decimal.Decimal
	Subtotal      decimal.Decimal
}

// ReceiptPDFGenerator é o porto de geração do cupom em PDF.
type ReceiptPDFGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale, store *entity.Store, items []ReceiptItemForPDF, payments []*entity.Payment) ([]byte, error)
}

// ReceiptUseCase monta os dados do cupom de uma venda e delega a renderização.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase constrói o caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:    saleRepo,
		storeRepo:   storeRepo,
		productRepo: productRepo,
		generator:   generator,
	}
}

// Generate devolve os bytes do PDF do cupom da venda.
func (uc *ReceiptUseCase) Generate(ctx context.Context, saleID string) ([]byte, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale.Status != entity.SaleFinalizada {
		return nil, fmt.Errorf("venda %s não finalizada: %w", saleID, domain.ErrConflict)
	}
	store, err := uc.storeRepo.GetByID(sale.StoreID)
	if err != nil {
		return nil, err
	}
	items, err := uc.saleRepo.GetItems(saleID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.saleRepo.GetPayments(saleID)
	if err != nil {
		return nil, err
	}

	lines := make([]ReceiptItemForPDF, 0, len(items))
	for _, item := range items {
		line := ReceiptItemForPDF{
			ProductName:   item.ProductID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			DiscountKind:  item.DiscountKind,
			DiscountValue: item.DiscountValue,
			Subtotal:      item.Subtotal,
		}
		// Produto pode ter sido removido depois da venda; o cupom sai
		// com o ID no lugar do nome em vez de falhar.
		if product, err := uc.productRepo.GetByID(item.ProductID); err == nil {
			line.ProductName = product.Name
		}
		if item.VariantID != "" {
			if variant, err := uc.productRepo.GetVariantByID(item.VariantID); err == nil {
				line.VariantName = variant.Name
			}
		}
		lines = append(lines, line)
	}

	return uc.generator.GenerateReceipt(ctx, sale, store, lines, payments)
}
