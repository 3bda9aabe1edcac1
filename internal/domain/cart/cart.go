package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
)

// Discount é um desconto percentual ou de valor fixo, aplicável a uma linha
// ou à venda inteira.
type Discount struct {
	Kind  string // entity.DiscountPercentual ou entity.DiscountValor
	Value decimal.Decimal
}

// valid rejeita tipo desconhecido e valor negativo. Percentual acima de 100
// é aceito: o subtotal correspondente trava em zero.
func (d Discount) valid() bool {
	if d.Kind != entity.DiscountPercentual && d.Kind != entity.DiscountValor {
		return false
	}
	return !d.Value.IsNegative()
}

// ItemInput é o snapshot de catálogo necessário para adicionar uma linha:
// preço resolvido (variação sobrepõe produto) e custo, capturados no momento
// da adição. Alterações posteriores de preço não afetam o carrinho.
type ItemInput struct {
	ProductID   string
	VariantID   string // vazio quando sem variação
	ProductName string
	VariantName string
	UnitMeasure string
	UnitPrice   decimal.Decimal
	CostPrice   decimal.Decimal
}

// Line é uma linha do carrinho: um par (produto, variação) com quantidade,
// preço unitário congelado e desconto próprio opcional.
type Line struct {
	ID          string
	ProductID   string
	VariantID   string
	ProductName string
	VariantName string
	UnitMeasure string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	CostPrice   decimal.Decimal
	Discount    *Discount
	Subtotal    decimal.Decimal
}

// Cart é a venda em andamento de uma sessão de PDV. Os campos derivados
// (Subtotal, DiscountTotal, Total, ItemCount) são recalculados de forma
// síncrona após toda mutação; nunca ficam defasados.
type Cart struct {
	Lines         []*Line
	CustomerID    string
	OrderDiscount *Discount
	Note          string

	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	Total         decimal.Decimal
	ItemCount     decimal.Decimal
}

// New cria um carrinho vazio com derivados zerados.
func New() *Cart {
	c := &Cart{}
	c.recalculate()
	return c
}

// lineSubtotal calcula max(0, qtd*preço - desconto). Percentual é aplicado
// sobre a base cheia a cada recálculo (nunca composto entre edições);
// desconto de valor é limitado à base.
func lineSubtotal(quantity, unitPrice decimal.Decimal, d *Discount) decimal.Decimal {
	base := quantity.Mul(unitPrice)
	if d == nil || d.Value.IsZero() {
		return base
	}
	var discount decimal.Decimal
	if d.Kind == entity.DiscountPercentual {
		discount = base.Mul(d.Value).Div(decimal.NewFromInt(100))
	} else {
		discount = d.Value
	}
	result := base.Sub(discount)
	if result.IsNegative() {
		return decimal.Zero
	}
	return result
}

// orderDiscountAmount calcula o desconto geral sobre o subtotal, limitado a ele.
func orderDiscountAmount(subtotal decimal.Decimal, d *Discount) decimal.Decimal {
	if d == nil || d.Value.IsZero() {
		return decimal.Zero
	}
	if d.Kind == entity.DiscountPercentual {
		return subtotal.Mul(d.Value).Div(decimal.NewFromInt(100))
	}
	if d.Value.GreaterThan(subtotal) {
		return subtotal
	}
	return d.Value
}

// recalculate deriva subtotal, desconto geral, total e contagem de itens a
// partir das linhas. Determinístico e idempotente: rodar duas vezes sobre o
// mesmo estado produz o mesmo resultado.
func (c *Cart) recalculate() {
	subtotal := decimal.Zero
	itemCount := decimal.Zero
	for _, l := range c.Lines {
		subtotal = subtotal.Add(l.Subtotal)
		itemCount = itemCount.Add(l.Quantity)
	}
	discount := orderDiscountAmount(subtotal, c.OrderDiscount)
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	c.Subtotal = subtotal
	c.DiscountTotal = discount
	c.Total = total
	c.ItemCount = itemCount
}

// findLine localiza a linha pelo id; nil quando ausente.
func (c *Cart) findLine(lineID string) *Line {
	for _, l := range c.Lines {
		if l.ID == lineID {
			return l
		}
	}
	return nil
}

// findPair localiza a linha do par (produto, variação); nil quando ausente.
func (c *Cart) findPair(productID, variantID string) *Line {
	for _, l := range c.Lines {
		if l.ProductID == productID && l.VariantID == variantID {
			return l
		}
	}
	return nil
}

// AddItem adiciona quantity unidades do item ao carrinho. Se já existe linha
// para o mesmo par (produto, variação), a quantidade é somada e o subtotal
// recalculado respeitando o desconto existente; caso contrário, uma linha
// nova é anexada com o preço congelado agora. Quantidade não positiva é
// rejeitada com ErrInvalidInput sem alterar o estado.
func (c *Cart) AddItem(item ItemInput, quantity decimal.Decimal) (*Line, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if item.ProductID == "" || item.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	if existing := c.findPair(item.ProductID, item.VariantID); existing != nil {
		existing.Quantity = existing.Quantity.Add(quantity)
		existing.Subtotal = lineSubtotal(existing.Quantity, existing.UnitPrice, existing.Discount)
		c.recalculate()
		return existing, nil
	}

	line := &Line{
		ID:          uuid.New().String(),
		ProductID:   item.ProductID,
		VariantID:   item.VariantID,
		ProductName: item.ProductName,
		VariantName: item.VariantName,
		UnitMeasure: item.UnitMeasure,
		Quantity:    quantity,
		UnitPrice:   item.UnitPrice,
		CostPrice:   item.CostPrice,
		Subtotal:    lineSubtotal(quantity, item.UnitPrice, nil),
	}
	c.Lines = append(c.Lines, line)
	c.recalculate()
	return line, nil
}

// UpdateItemQuantity ajusta a quantidade da linha. Quantidade <= 0 remove a
// linha; id desconhecido é no-op.
func (c *Cart) UpdateItemQuantity(lineID string, quantity decimal.Decimal) {
	if !quantity.GreaterThan(decimal.Zero) {
		c.RemoveItem(lineID)
		return
	}
	line := c.findLine(lineID)
	if line == nil {
		return
	}
	line.Quantity = quantity
	line.Subtotal = lineSubtotal(line.Quantity, line.UnitPrice, line.Discount)
	c.recalculate()
}

// RemoveItem remove a linha; no-op quando ausente.
func (c *Cart) RemoveItem(lineID string) {
	for i, l := range c.Lines {
		if l.ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.recalculate()
			return
		}
	}
}

// SetItemDiscount aplica desconto à linha e recalcula. Desconto inválido
// retorna ErrInvalidInput; linha desconhecida é no-op silencioso.
func (c *Cart) SetItemDiscount(lineID string, d Discount) error {
	if !d.valid() {
		return domain.ErrInvalidInput
	}
	line := c.findLine(lineID)
	if line == nil {
		return nil
	}
	line.Discount = &d
	line.Subtotal = lineSubtotal(line.Quantity, line.UnitPrice, line.Discount)
	c.recalculate()
	return nil
}

// ClearItemDiscount remove o desconto da linha; no-op quando ausente.
func (c *Cart) ClearItemDiscount(lineID string) {
	line := c.findLine(lineID)
	if line == nil {
		return
	}
	line.Discount = nil
	line.Subtotal = lineSubtotal(line.Quantity, line.UnitPrice, nil)
	c.recalculate()
}

// SetOrderDiscount define (ou limpa, com nil) o desconto geral da venda.
func (c *Cart) SetOrderDiscount(d *Discount) error {
	if d != nil && !d.valid() {
		return domain.ErrInvalidInput
	}
	c.OrderDiscount = d
	c.recalculate()
	return nil
}

// SetCustomer associa um cliente à venda (metadado, sem recálculo).
func (c *Cart) SetCustomer(customerID string) {
	c.CustomerID = customerID
}

// SetNote define a observação da venda (metadado, sem recálculo).
func (c *Cart) SetNote(note string) {
	c.Note = note
}

// IsEmpty informa se o carrinho não tem linhas.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear volta ao estado vazio de forma atômica: linhas, cliente, desconto,
// observação e todos os derivados zerados.
func (c *Cart) Clear() {
	c.Lines = nil
	c.CustomerID = ""
	c.OrderDiscount = nil
	c.Note = ""
	c.recalculate()
}
