package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditPaymentRequest body para POST /api/credits/:id/payments.
type CreditPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"` // dinheiro, pix, credito, debito
	Notes  string          `json:"notes,omitempty"`
}

// CreditResponse fiado na resposta.
type CreditResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	SaleID     string          `json:"sale_id"`
	Total      decimal.Decimal `json:"total"`
	Paid       decimal.Decimal `json:"paid"`
	Remaining  decimal.Decimal `json:"remaining"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}
