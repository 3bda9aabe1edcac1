package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa a quantidade atual em estoque de um produto (e variação
// opcional) em uma loja. A ausência de registro equivale a quantidade zero;
// o registro nunca é apagado, mesmo zerado.
type Stock struct {
	ID          string
	StoreID     string
	ProductID   string
	VariantID   string // vazio quando o produto não tem variação
	Quantity    decimal.Decimal
	MinQuantity *decimal.Decimal // alerta de estoque baixo (opcional)
	MaxQuantity *decimal.Decimal
	UpdatedAt   time.Time
}

// BelowMinimum informa se a quantidade atual está abaixo do mínimo configurado.
func (s *Stock) BelowMinimum() bool {
	return s.MinQuantity != nil && s.Quantity.LessThan(*s.MinQuantity)
}
