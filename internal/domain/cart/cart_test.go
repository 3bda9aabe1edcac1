package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/cart"
	"github.com/in100tiva/PDV/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func coffee() cart.ItemInput {
	return cart.ItemInput{
		ProductID:   "prod-cafe",
		ProductName: "Café torrado 500g",
		UnitMeasure: entity.UnitUN,
		UnitPrice:   dec("6.00"),
		CostPrice:   dec("3.50"),
	}
}

func sugar() cart.ItemInput {
	return cart.ItemInput{
		ProductID:   "prod-acucar",
		ProductName: "Açúcar cristal 1kg",
		UnitMeasure: entity.UnitUN,
		UnitPrice:   dec("4.50"),
	}
}

// Carrinho novo deve nascer com todos os derivados zerados.
func TestNew_CarrinhoVazio(t *testing.T) {
	c := cart.New()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Subtotal.IsZero())
	assert.True(t, c.DiscountTotal.IsZero())
	assert.True(t, c.Total.IsZero())
	assert.True(t, c.ItemCount.IsZero())
}

// Duas adições do mesmo par (produto, sem variação) devem virar uma única
// linha com quantidade 2, não duas linhas.
func TestAddItem_MesmoParIncrementaLinha(t *testing.T) {
	c := cart.New()
	l1, err := c.AddItem(coffee(), dec("1"))
	require.NoError(t, err)
	l2, err := c.AddItem(coffee(), dec("1"))
	require.NoError(t, err)

	assert.Equal(t, l1.ID, l2.ID, "mesmo par deve reutilizar a linha")
	require.Len(t, c.Lines, 1)
	assert.True(t, c.Lines[0].Quantity.Equal(dec("2")))
	assert.True(t, c.Subtotal.Equal(dec("12")))
}

// Mesmo produto com variações diferentes são linhas separadas.
func TestAddItem_VariacoesDiferentesSaoLinhasSeparadas(t *testing.T) {
	c := cart.New()
	small := coffee()
	small.VariantID = "var-250g"
	small.UnitPrice = dec("3.50")

	_, err := c.AddItem(coffee(), dec("1"))
	require.NoError(t, err)
	_, err = c.AddItem(small, dec("1"))
	require.NoError(t, err)

	assert.Len(t, c.Lines, 2)
	assert.True(t, c.Subtotal.Equal(dec("9.50")))
}

// Quantidade não positiva é rejeitada sem alterar o estado.
func TestAddItem_QuantidadeInvalidaRejeitada(t *testing.T) {
	c := cart.New()
	_, err := c.AddItem(coffee(), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.AddItem(coffee(), dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, c.IsEmpty(), "erro de validação não pode mutar o carrinho")
}

// Cenário completo de venda: 2x 6.00 -> subtotal 12.00,
// desconto geral 10% -> total 10.80, remover linha -> total 0.
func TestCenarioDescontoGeralDezPorCento(t *testing.T) {
	c := cart.New()
	line, err := c.AddItem(coffee(), dec("2"))
	require.NoError(t, err)
	assert.True(t, c.Subtotal.Equal(dec("12.00")))

	require.NoError(t, c.SetOrderDiscount(&cart.Discount{Kind: entity.DiscountPercentual, Value: dec("10")}))
	assert.True(t, c.Total.Equal(dec("10.80")), "total esperado 10.80, veio %s", c.Total)

	c.RemoveItem(line.ID)
	assert.True(t, c.Total.IsZero())
	assert.True(t, c.Subtotal.IsZero())
	assert.True(t, c.DiscountTotal.IsZero(), "desconto percentual sobre subtotal zero é zero")
}

// Desconto percentual por linha: subtotal == base*(1-d/100), travado em zero.
func TestSetItemDiscount_Percentual(t *testing.T) {
	cases := []struct {
		name     string
		percent  string
		expected string
	}{
		{"zero", "0", "12"},
		{"quinze", "15", "10.20"},
		{"cem", "100", "0"},
		{"acima de cem trava em zero", "150", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := cart.New()
			line, err := c.AddItem(coffee(), dec("2"))
			require.NoError(t, err)
			require.NoError(t, c.SetItemDiscount(line.ID, cart.Discount{Kind: entity.DiscountPercentual, Value: dec(tc.percent)}))
			assert.True(t, c.Lines[0].Subtotal.Equal(dec(tc.expected)),
				"desconto %s%% sobre 12: esperado %s, veio %s", tc.percent, tc.expected, c.Lines[0].Subtotal)
		})
	}
}

// Desconto de valor por linha: subtotal == max(0, base-v).
func TestSetItemDiscount_Valor(t *testing.T) {
	cases := []struct {
		name     string
		value    string
		expected string
	}{
		{"parcial", "5", "7"},
		{"igual à base", "12", "0"},
		{"maior que a base trava em zero", "50", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := cart.New()
			line, err := c.AddItem(coffee(), dec("2"))
			require.NoError(t, err)
			require.NoError(t, c.SetItemDiscount(line.ID, cart.Discount{Kind: entity.DiscountValor, Value: dec(tc.value)}))
			assert.True(t, c.Lines[0].Subtotal.Equal(dec(tc.expected)))
		})
	}
}

// Percentual é sempre aplicado sobre a base cheia: reaplicar o mesmo
// desconto não compõe com o anterior.
func TestSetItemDiscount_NaoComposto(t *testing.T) {
	c := cart.New()
	line, err := c.AddItem(coffee(), dec("2"))
	require.NoError(t, err)

	d := cart.Discount{Kind: entity.DiscountPercentual, Value: dec("10")}
	require.NoError(t, c.SetItemDiscount(line.ID, d))
	first := c.Lines[0].Subtotal
	require.NoError(t, c.SetItemDiscount(line.ID, d))
	assert.True(t, c.Lines[0].Subtotal.Equal(first), "reaplicar desconto deve ser idempotente")
	assert.True(t, first.Equal(dec("10.80")))
}

// Desconto inválido (tipo desconhecido ou valor negativo) é rejeitado.
func TestSetItemDiscount_Invalido(t *testing.T) {
	c := cart.New()
	line, err := c.AddItem(coffee(), dec("1"))
	require.NoError(t, err)

	assert.ErrorIs(t, c.SetItemDiscount(line.ID, cart.Discount{Kind: "cupom", Value: dec("1")}), domain.ErrInvalidInput)
	assert.ErrorIs(t, c.SetItemDiscount(line.ID, cart.Discount{Kind: entity.DiscountValor, Value: dec("-2")}), domain.ErrInvalidInput)
	assert.True(t, c.Lines[0].Subtotal.Equal(dec("6.00")), "desconto inválido não altera a linha")

	// Linha desconhecida: no-op sem erro.
	require.NoError(t, c.SetItemDiscount("nao-existe", cart.Discount{Kind: entity.DiscountValor, Value: dec("1")}))
}

// Limpar o desconto restaura o subtotal cheio da linha.
func TestClearItemDiscount(t *testing.T) {
	c := cart.New()
	line, err := c.AddItem(coffee(), dec("2"))
	require.NoError(t, err)
	require.NoError(t, c.SetItemDiscount(line.ID, cart.Discount{Kind: entity.DiscountValor, Value: dec("5")}))
	require.True(t, c.Lines[0].Subtotal.Equal(dec("7")))

	c.ClearItemDiscount(line.ID)
	assert.True(t, c.Lines[0].Subtotal.Equal(dec("12")))
	assert.Nil(t, c.Lines[0].Discount)
}

// Atualizar quantidade recalcula respeitando o desconto existente da linha;
// quantidade <= 0 remove; id desconhecido é no-op.
func TestUpdateItemQuantity(t *testing.T) {
	c := cart.New()
	line, err := c.AddItem(coffee(), dec("2"))
	require.NoError(t, err)
	require.NoError(t, c.SetItemDiscount(line.ID, cart.Discount{Kind: entity.DiscountPercentual, Value: dec("50")}))

	c.UpdateItemQuantity(line.ID, dec("4"))
	assert.True(t, c.Lines[0].Subtotal.Equal(dec("12")), "4*6.00 com desconto de 50 por cento = 12")

	before := c.Total
	c.UpdateItemQuantity("nao-existe", dec("3"))
	assert.True(t, c.Total.Equal(before), "id desconhecido é no-op")

	c.UpdateItemQuantity(line.ID, decimal.Zero)
	assert.True(t, c.IsEmpty(), "quantidade zero remove a linha")
}

// Desconto geral de valor é limitado ao subtotal: total nunca negativo.
func TestSetOrderDiscount_ValorTravaEmZero(t *testing.T) {
	c := cart.New()
	_, err := c.AddItem(sugar(), dec("1"))
	require.NoError(t, err)

	require.NoError(t, c.SetOrderDiscount(&cart.Discount{Kind: entity.DiscountValor, Value: dec("100")}))
	assert.True(t, c.DiscountTotal.Equal(dec("4.50")), "desconto limitado ao subtotal")
	assert.True(t, c.Total.IsZero())

	// Limpar desconto geral.
	require.NoError(t, c.SetOrderDiscount(nil))
	assert.True(t, c.Total.Equal(dec("4.50")))
}

// Invariantes: total == subtotal - descontoGeral e subtotal == soma das
// linhas, para qualquer sequência de operações; o estado final não depende
// da ordem das mutações que levam ao mesmo conjunto de linhas.
func TestInvariantesIndependemDaOrdem(t *testing.T) {
	build := func(ops func(c *cart.Cart)) *cart.Cart {
		c := cart.New()
		ops(c)
		return c
	}

	a := build(func(c *cart.Cart) {
		_, _ = c.AddItem(coffee(), dec("2"))
		_, _ = c.AddItem(sugar(), dec("3"))
		_ = c.SetOrderDiscount(&cart.Discount{Kind: entity.DiscountPercentual, Value: dec("10")})
	})
	b := build(func(c *cart.Cart) {
		_ = c.SetOrderDiscount(&cart.Discount{Kind: entity.DiscountPercentual, Value: dec("10")})
		_, _ = c.AddItem(sugar(), dec("1"))
		_, _ = c.AddItem(coffee(), dec("2"))
		_, _ = c.AddItem(sugar(), dec("2"))
	})

	for _, c := range []*cart.Cart{a, b} {
		sum := decimal.Zero
		for _, l := range c.Lines {
			sum = sum.Add(l.Subtotal)
		}
		assert.True(t, c.Subtotal.Equal(sum), "subtotal deve ser a soma das linhas")
		assert.True(t, c.Total.Equal(c.Subtotal.Sub(c.DiscountTotal)))
	}
	assert.True(t, a.Subtotal.Equal(b.Subtotal))
	assert.True(t, a.Total.Equal(b.Total))
	assert.True(t, a.ItemCount.Equal(b.ItemCount))
}

// Idempotência: Clear duas vezes e RemoveItem repetido não mudam nada após
// a primeira chamada.
func TestIdempotencia(t *testing.T) {
	c := cart.New()
	line, err := c.AddItem(coffee(), dec("1"))
	require.NoError(t, err)
	c.SetCustomer("cli-1")
	c.SetNote("entregar às 18h")

	c.RemoveItem(line.ID)
	c.RemoveItem(line.ID)
	assert.True(t, c.IsEmpty())

	c.Clear()
	c.Clear()
	assert.Empty(t, c.CustomerID)
	assert.Empty(t, c.Note)
	assert.Nil(t, c.OrderDiscount)
	assert.True(t, c.Total.IsZero())
	assert.True(t, c.ItemCount.IsZero())
}

// Quantidade fracionária (kg) conta no ItemCount e no subtotal.
func TestQuantidadeFracionaria(t *testing.T) {
	c := cart.New()
	banana := cart.ItemInput{
		ProductID:   "prod-banana",
		ProductName: "Banana prata",
		UnitMeasure: entity.UnitKG,
		UnitPrice:   dec("7.80"),
	}
	_, err := c.AddItem(banana, dec("0.450"))
	require.NoError(t, err)

	assert.True(t, c.ItemCount.Equal(dec("0.450")))
	assert.True(t, c.Subtotal.Equal(dec("3.51")), "0.450 * 7.80 = 3.51, veio %s", c.Subtotal)
}
