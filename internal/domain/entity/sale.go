package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de venda.
const (
	SaleAberta     = "aberta"
	SaleFinalizada = "finalizada"
	SaleCancelada  = "cancelada"
)

// Tipos de desconto (por item ou sobre a venda inteira).
const (
	DiscountPercentual = "percentual"
	DiscountValor      = "valor"
)

// Formas de pagamento.
const (
	PaymentDinheiro = "dinheiro"
	PaymentPix      = "pix"
	PaymentCredito  = "credito"
	PaymentDebito   = "debito"
	PaymentFiado    = "fiado"
)

// Sale representa uma venda finalizada no PDV.
type Sale struct {
	ID            string
	StoreID       string
	UserID        string
	CustomerID    string // vazio em venda não identificada
	Number        int64  // consecutivo por loja
	Status        string
	Subtotal      decimal.Decimal
	DiscountKind  string // vazio quando sem desconto geral
	DiscountValue decimal.Decimal
	Total         decimal.Decimal
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleItem é uma linha da venda com preço e desconto congelados no checkout.
type SaleItem struct {
	ID            string
	SaleID        string
	ProductID     string
	VariantID     string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	CostPrice     decimal.Decimal
	DiscountKind  string
	DiscountValue decimal.Decimal
	Subtotal      decimal.Decimal
	CreatedAt     time.Time
}

// Payment registra o pagamento de uma venda.
type Payment struct {
	ID        string
	SaleID    string
	Method    string // dinheiro, pix, credito, debito, fiado
	Amount    decimal.Decimal
	Change    decimal.Decimal // troco (apenas dinheiro)
	CreatedAt time.Time
}
