package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/stock/adjust (entrada/saída manual).
// Type define o sinal: entrada soma, saida subtrai; Quantity é sempre > 0.
type AdjustStockRequest struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Type      string          `json:"type"` // entrada | saida
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason,omitempty"`
}

// SetStockRequest body para PUT /api/stock/quantity (define valor absoluto).
type SetStockRequest struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason,omitempty"`
}

// AdjustStockResponse resultado da mutação. Applied difere de Requested
// quando a saída foi travada em zero — o clamp é sempre reportado, nunca
// silencioso.
type AdjustStockResponse struct {
	ProductID      string          `json:"product_id"`
	VariantID      string          `json:"variant_id,omitempty"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Requested      decimal.Decimal `json:"requested_delta"`
	Applied        decimal.Decimal `json:"applied_delta"`
	Clamped        bool            `json:"clamped"`
}

// StockItemResponse um registro de estoque na listagem.
type StockItemResponse struct {
	ProductID   string           `json:"product_id"`
	VariantID   string           `json:"variant_id,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	MinQuantity *decimal.Decimal `json:"min_quantity,omitempty"`
	MaxQuantity *decimal.Decimal `json:"max_quantity,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// StockMovementResponse uma movimentação no histórico.
type StockMovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	VariantID      string          `json:"variant_id,omitempty"`
	UserID         string          `json:"user_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Reason         string          `json:"reason,omitempty"`
	ReferenceKind  string          `json:"reference_kind,omitempty"`
	ReferenceID    string          `json:"reference_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SetThresholdsRequest body para PUT /api/stock/thresholds.
type SetThresholdsRequest struct {
	ProductID   string           `json:"product_id"`
	VariantID   string           `json:"variant_id,omitempty"`
	MinQuantity *decimal.Decimal `json:"min_quantity,omitempty"`
	MaxQuantity *decimal.Decimal `json:"max_quantity,omitempty"`
}

// StockReportResponse itens abaixo do mínimo e zerados.
type StockReportResponse struct {
	BelowMinimum []StockItemResponse `json:"below_minimum"`
	Zeroed       []StockItemResponse `json:"zeroed"`
}
