package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest body para POST /api/pos/sessions/:session/items.
// Quantity zero assume 1 (toque rápido no PDV adiciona uma unidade).
type AddCartItemRequest struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Barcode   string          `json:"barcode,omitempty"` // alternativa a product_id
	Quantity  decimal.Decimal `json:"quantity"`
}

// UpdateCartItemRequest body para PATCH da linha.
type UpdateCartItemRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// DiscountRequest desconto por linha ou geral.
type DiscountRequest struct {
	Kind  string          `json:"kind"` // percentual | valor
	Value decimal.Decimal `json:"value"`
}

// SetCustomerRequest body para PUT .../customer.
type SetCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// SetNoteRequest body para PUT .../note.
type SetNoteRequest struct {
	Note string `json:"note"`
}

// CartLineResponse linha do carrinho na resposta.
type CartLineResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	VariantID     string          `json:"variant_id,omitempty"`
	ProductName   string          `json:"product_name"`
	VariantName   string          `json:"variant_name,omitempty"`
	UnitMeasure   string          `json:"unit_measure"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	DiscountKind  string          `json:"discount_kind,omitempty"`
	DiscountValue decimal.Decimal `json:"discount_value,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// CartResponse estado completo do carrinho da sessão.
type CartResponse struct {
	Lines         []CartLineResponse `json:"lines"`
	CustomerID    string             `json:"customer_id,omitempty"`
	DiscountKind  string             `json:"discount_kind,omitempty"`
	DiscountValue decimal.Decimal    `json:"discount_value,omitempty"`
	Note          string             `json:"note,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DiscountTotal decimal.Decimal    `json:"discount_total"`
	Total         decimal.Decimal    `json:"total"`
	ItemCount     decimal.Decimal    `json:"item_count"`
}
