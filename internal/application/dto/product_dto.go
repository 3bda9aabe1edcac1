package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	CategoryID   string          `json:"category_id,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	InternalCode string          `json:"internal_code,omitempty"`
	Barcode      string          `json:"barcode,omitempty"`
	UnitMeasure  string          `json:"unit_measure"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionais).
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Barcode     *string          `json:"barcode,omitempty"`
	UnitMeasure *string          `json:"unit_measure,omitempty"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// CreateVariantRequest body para POST /api/products/:id/variants.
type CreateVariantRequest struct {
	Name      string           `json:"name"`
	SKU       string           `json:"sku,omitempty"`
	Barcode   string           `json:"barcode,omitempty"`
	CostPrice *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
}

// VariantResponse variação na resposta.
type VariantResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Name      string           `json:"name"`
	SKU       string           `json:"sku,omitempty"`
	Barcode   string           `json:"barcode,omitempty"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
	Active    bool             `json:"active"`
}

// ProductResponse produto na resposta (com variações quando solicitado).
type ProductResponse struct {
	ID           string            `json:"id"`
	CategoryID   string            `json:"category_id,omitempty"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	InternalCode string            `json:"internal_code,omitempty"`
	Barcode      string            `json:"barcode,omitempty"`
	UnitMeasure  string            `json:"unit_measure"`
	CostPrice    decimal.Decimal   `json:"cost_price"`
	SalePrice    decimal.Decimal   `json:"sale_price"`
	Active       bool              `json:"active"`
	Variants     []VariantResponse `json:"variants,omitempty"`
}
