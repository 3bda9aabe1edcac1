package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de alerta de estoque.
const (
	AlertEstoqueBaixo  = "estoque_baixo"
	AlertEstoqueZerado = "estoque_zerado"
)

// StockAlert é gerado pelo scheduler quando um item fica abaixo do mínimo.
type StockAlert struct {
	ID          string
	StoreID     string
	ProductID   string
	VariantID   string
	Type        string // estoque_baixo, estoque_zerado
	Quantity    decimal.Decimal
	MinQuantity *decimal.Decimal
	Read        bool
	CreatedAt   time.Time
}
