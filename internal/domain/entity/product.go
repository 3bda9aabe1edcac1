package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida aceitas (un, kg, g, l, ml, cx, pc).
const (
	UnitUN = "un"
	UnitKG = "kg"
	UnitG  = "g"
	UnitL  = "l"
	UnitML = "ml"
	UnitCX = "cx"
	UnitPC = "pc"
)

// Product representa um produto do catálogo. O preço de venda aplicado no
// carrinho é capturado no momento da adição (snapshot); alterações aqui não
// afetam vendas em andamento.
type Product struct {
	ID           string
	CompanyID    string
	CategoryID   string // vazio se sem categoria
	Name         string
	Description  string
	InternalCode string
	Barcode      string
	UnitMeasure  string          // un, kg, g, l, ml, cx, pc
	CostPrice    decimal.Decimal // preço de custo (pode ser zero)
	SalePrice    decimal.Decimal // preço de venda
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductVariant representa uma variação do produto (tamanho, cor, etc.).
// SalePrice nulo significa que vale o preço do produto pai.
type ProductVariant struct {
	ID        string
	ProductID string
	Name      string
	SKU       string
	Barcode   string
	CostPrice *decimal.Decimal
	SalePrice *decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResolvedPrice devolve o preço de venda efetivo da variação,
// caindo para o preço do produto quando a variação não define o seu.
func (v *ProductVariant) ResolvedPrice(p *Product) decimal.Decimal {
	if v != nil && v.SalePrice != nil {
		return *v.SalePrice
	}
	return p.SalePrice
}
