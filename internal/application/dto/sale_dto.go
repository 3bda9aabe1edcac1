package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest body para POST /api/pos/sessions/:session/checkout.
// AmountReceived só é considerado para pagamento em dinheiro (troco).
type CheckoutRequest struct {
	PaymentMethod  string           `json:"payment_method"` // dinheiro, pix, credito, debito, fiado
	AmountReceived *decimal.Decimal `json:"amount_received,omitempty"`
	DueDate        *time.Time       `json:"due_date,omitempty"` // vencimento do fiado
}

// SaleItemResponse item da venda.
type SaleItemResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	VariantID     string          `json:"variant_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	DiscountKind  string          `json:"discount_kind,omitempty"`
	DiscountValue decimal.Decimal `json:"discount_value,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// PaymentResponse pagamento da venda.
type PaymentResponse struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
	Change decimal.Decimal `json:"change,omitempty"`
}

// StockShortage informa um item cuja baixa de estoque travou em zero no
// checkout (vendido além do saldo registrado).
type StockShortage struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Requested decimal.Decimal `json:"requested"`
	Applied   decimal.Decimal `json:"applied"`
}

// SaleResponse venda completa na resposta.
type SaleResponse struct {
	ID            string             `json:"id"`
	StoreID       string             `json:"store_id"`
	UserID        string             `json:"user_id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	Number        int64              `json:"number"`
	Status        string             `json:"status"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DiscountKind  string             `json:"discount_kind,omitempty"`
	DiscountValue decimal.Decimal    `json:"discount_value,omitempty"`
	Total         decimal.Decimal    `json:"total"`
	Notes         string             `json:"notes,omitempty"`
	Items         []SaleItemResponse `json:"items,omitempty"`
	Payments      []PaymentResponse  `json:"payments,omitempty"`
	Shortages     []StockShortage    `json:"stock_shortages,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}
