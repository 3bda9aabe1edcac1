package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
	"github.com/in100tiva/PDV/pkg/normalize"
)

var validUnits = map[string]bool{
	entity.UnitUN: true,
	entity.UnitKG: true,
	entity.UnitG:  true,
	entity.UnitL:  true,
	entity.UnitML: true,
	entity.UnitCX: true,
	entity.UnitPC: true,
}

// ProductUseCase casos de uso CRUD para produtos e variações. Quantidade em
// estoque é mantida pelo livro-razão, nunca por aqui.
type ProductUseCase struct {
	repo  repository.ProductRepository
	cache ProductCache
}

// ProductCache guarda listagens de catálogo e as invalida quando o produto
// muda. Implementado sobre Redis; a interface permite testar sem ele.
type ProductCache interface {
	GetList(ctx context.Context, companyID, key string) ([]dto.ProductResponse, bool)
	SetList(ctx context.Context, companyID, key string, items []dto.ProductResponse)
	InvalidateCompany(ctx context.Context, companyID string)
}

// NewProductUseCase constrói o caso de uso. cache pode ser nil.
func NewProductUseCase(repo repository.ProductRepository, cache ProductCache) *ProductUseCase {
	return &ProductUseCase{repo: repo, cache: cache}
}

// Create cria um produto novo. Código de barras duplicado na empresa é
// rejeitado.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SalePrice.IsNegative() || in.CostPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = entity.UnitUN
	}
	if !validUnits[in.UnitMeasure] {
		return nil, domain.ErrInvalidInput
	}
	if in.Barcode != "" {
		if existing, err := uc.repo.GetByBarcode(companyID, in.Barcode); err == nil && existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CategoryID:   in.CategoryID,
		Name:         in.Name,
		Description:  in.Description,
		InternalCode: in.InternalCode,
		Barcode:      in.Barcode,
		UnitMeasure:  in.UnitMeasure,
		CostPrice:    in.CostPrice,
		SalePrice:    in.SalePrice,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return toProductResponse(product), nil
}

// GetByID obtém um produto por ID, com suas variações.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	variants, err := uc.repo.ListVariantsByProduct(id)
	if err != nil {
		return nil, err
	}
	for _, v := range variants {
		resp.Variants = append(resp.Variants, toVariantResponse(v))
	}
	return resp, nil
}

// Update atualiza campos do produto. Vendas em andamento não são afetadas:
// o carrinho congela o preço na adição.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.UnitMeasure != nil {
		if !validUnits[*in.UnitMeasure] {
			return nil, domain.ErrInvalidInput
		}
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, product.CompanyID)
	return toProductResponse(product), nil
}

// List lista produtos da empresa com filtro por categoria e busca textual
// insensível a acentos.
func (uc *ProductUseCase) List(ctx context.Context, companyID, categoryID, search string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	term := normalize.Text(search)
	key := fmt.Sprintf("%s|%s|%d|%d", categoryID, term, page.Limit, page.Offset)
	if uc.cache != nil {
		if items, ok := uc.cache.GetList(ctx, companyID, key); ok {
			return items, nil
		}
	}
	list, err := uc.repo.ListByCompany(companyID, categoryID, term, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	if uc.cache != nil {
		uc.cache.SetList(ctx, companyID, key, items)
	}
	return items, nil
}

// Delete remove um produto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.invalidate(ctx, product.CompanyID)
	return nil
}

// CreateVariant cria uma variação do produto.
func (uc *ProductUseCase) CreateVariant(ctx context.Context, productID string, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SalePrice != nil && in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if in.Barcode != "" {
		if _, err := uc.repo.GetVariantByBarcode(product.CompanyID, in.Barcode); err == nil {
			return nil, domain.ErrDuplicate
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	now := time.Now()
	variant := &entity.ProductVariant{
		ID:        uuid.New().String(),
		ProductID: productID,
		Name:      in.Name,
		SKU:       in.SKU,
		Barcode:   in.Barcode,
		CostPrice: in.CostPrice,
		SalePrice: in.SalePrice,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreateVariant(variant); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, product.CompanyID)
	resp := toVariantResponse(variant)
	return &resp, nil
}

// ListVariants lista as variações do produto.
func (uc *ProductUseCase) ListVariants(ctx context.Context, productID string) ([]dto.VariantResponse, error) {
	variants, err := uc.repo.ListVariantsByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VariantResponse, 0, len(variants))
	for _, v := range variants {
		items = append(items, toVariantResponse(v))
	}
	return items, nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context, companyID string) {
	if uc.cache != nil {
		uc.cache.InvalidateCompany(ctx, companyID)
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		Description:  p.Description,
		InternalCode: p.InternalCode,
		Barcode:      p.Barcode,
		UnitMeasure:  p.UnitMeasure,
		CostPrice:    p.CostPrice,
		SalePrice:    p.SalePrice,
		Active:       p.Active,
	}
}

func toVariantResponse(v *entity.ProductVariant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Name:      v.Name,
		SKU:       v.SKU,
		Barcode:   v.Barcode,
		SalePrice: v.SalePrice,
		Active:    v.Active,
	}
}
