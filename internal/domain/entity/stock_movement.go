package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação de estoque.
const (
	MovementEntrada       = "entrada"
	MovementSaida         = "saida"
	MovementAjuste        = "ajuste"
	MovementTransferencia = "transferencia"
)

// Origem (referência) da movimentação.
const (
	ReferenceVenda         = "venda"
	ReferenceCompra        = "compra"
	ReferenceAjusteManual  = "ajuste_manual"
	ReferenceTransferencia = "transferencia"
)

// StockMovement é o registro imutável de uma alteração de estoque.
// Quantity é sempre a magnitude aplicada (pós-clamp): QuantityAfter e
// QuantityBefore sempre reconciliam com ela, inclusive quando uma saída
// maior que o saldo foi travada em zero.
type StockMovement struct {
	ID             string
	StoreID        string
	ProductID      string
	VariantID      string // vazio quando sem variação
	UserID         string
	Type           string          // entrada, saida, ajuste, transferencia
	Quantity       decimal.Decimal // magnitude > 0
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Reason         string
	ReferenceKind  string // venda, compra, ajuste_manual, transferencia
	ReferenceID    string
	CreatedAt      time.Time
}
