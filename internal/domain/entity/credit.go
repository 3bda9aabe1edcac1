package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do fiado.
const (
	CreditPendente = "pendente"
	CreditParcial  = "parcial"
	CreditPago     = "pago"
)

// CreditSale representa uma venda fiado (crediário) pendente de quitação.
type CreditSale struct {
	ID         string
	StoreID    string
	CustomerID string
	SaleID     string
	Total      decimal.Decimal
	Paid       decimal.Decimal
	Remaining  decimal.Decimal
	DueDate    *time.Time
	Status     string // pendente, parcial, pago
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreditPayment é um abatimento registrado sobre um fiado.
type CreditPayment struct {
	ID        string
	CreditID  string
	UserID    string
	Amount    decimal.Decimal
	Method    string // dinheiro, pix, credito, debito
	Notes     string
	CreatedAt time.Time
}
