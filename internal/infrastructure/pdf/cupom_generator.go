// Package pdf gera o cupom não fiscal da venda em papel térmico de 80mm.
//
// Layout do cupom:
//
//	┌──────────────────────────────┐
//	│  NOME DA LOJA                │
//	│  Cupom nº / data / operador  │
//	│  ────────────────────────    │
//	│  ITENS: qtd x preço = sub    │
//	│  ────────────────────────    │
//	│  Subtotal / Desconto / TOTAL │
//	│  Pagamentos + troco          │
//	│  Rodapé                      │
//	└──────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/in100tiva/PDV/internal/application/usecase"
	"github.com/in100tiva/PDV/internal/domain/entity"
)

var (
	colorDark = &props.Color{Red: 30, Green: 30, Blue: 30}
	colorGray = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// CupomGenerator implementa usecase.ReceiptPDFGenerator usando Maroto v2.
type CupomGenerator struct{}

// NewCupomGenerator constrói o gerador.
func NewCupomGenerator() *CupomGenerator { return &CupomGenerator{} }

// GenerateReceipt gera o PDF do cupom e devolve seus bytes.
func (g *CupomGenerator) GenerateReceipt(
	_ context.Context,
	sale *entity.Sale,
	store *entity.Store,
	items []usecase.ReceiptItemForPDF,
	payments []*entity.Payment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(80, 297).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(5).WithBottomMargin(5).
		WithDefaultFont(&props.Font{Family: "courier", Size: 8}).
		WithTitle(fmt.Sprintf("Cupom #%d", sale.Number), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(sale, store)...)
	m.AddRows(separator())
	m.AddRows(itemRows(items)...)
	m.AddRows(separator())
	m.AddRows(totalsRows(sale)...)
	m.AddRows(paymentRows(payments)...)
	m.AddRows(footerRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar cupom: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRows: nome da loja, número da venda e data.
func headerRows(sale *entity.Sale, store *entity.Store) []core.Row {
	data := sale.CreatedAt.Format("02/01/2006 15:04")
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(store.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center,
				Color: colorDark, Top: 1,
			}),
		)),
	}
	if store.Phone != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New("Tel: "+store.Phone, props.Text{
				Size: 7, Align: align.Center, Color: colorGray,
			}),
		)))
	}
	rows = append(rows,
		row.New(5).Add(col.New(12).Add(
			text.New("CUPOM NÃO FISCAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1,
			}),
		)),
		row.New(4).Add(
			col.New(6).Add(text.New(fmt.Sprintf("Venda nº %d", sale.Number), props.Text{
				Size: 7, Align: align.Left,
			})),
			col.New(6).Add(text.New(data, props.Text{
				Size: 7, Align: align.Right, Color: colorGray,
			})),
		),
	)
	return rows
}

// itemRows: duas linhas por item — descrição, depois qtd x unitário = subtotal.
func itemRows(items []usecase.ReceiptItemForPDF) []core.Row {
	rows := make([]core.Row, 0, len(items)*2)
	for _, it := range items {
		name := it.ProductName
		if it.VariantName != "" {
			name += " - " + it.VariantName
		}
		rows = append(rows,
			row.New(4).Add(col.New(12).Add(
				text.New(name, props.Text{Size: 7.5, Align: align.Left, Top: 0.5}),
			)),
			row.New(4).Add(
				col.New(7).Add(text.New(
					fmt.Sprintf("%s x R$ %s", it.Quantity.String(), money(it.UnitPrice)),
					props.Text{Size: 7, Align: align.Left, Left: 2, Color: colorGray},
				)),
				col.New(5).Add(text.New(
					"R$ "+money(it.Subtotal),
					props.Text{Size: 7.5, Align: align.Right},
				)),
			),
		)
		if it.DiscountKind != "" {
			rows = append(rows, row.New(3.5).Add(col.New(12).Add(
				text.New("  desconto "+discountLabel(it.DiscountKind, it.DiscountValue), props.Text{
					Size: 6.5, Align: align.Left, Left: 2, Color: colorGray,
				}),
			)))
		}
	}
	return rows
}

// totalsRows: subtotal, desconto geral (se houver) e total em destaque.
func totalsRows(sale *entity.Sale) []core.Row {
	kv := func(label, value string, bold bool, size float64) core.Row {
		st := fontstyle.Normal
		if bold {
			st = fontstyle.Bold
		}
		return row.New(4.5).Add(
			col.New(6).Add(text.New(label, props.Text{Style: st, Size: size, Align: align.Left})),
			col.New(6).Add(text.New(value, props.Text{Style: st, Size: size, Align: align.Right})),
		)
	}

	rows := []core.Row{kv("Subtotal", "R$ "+money(sale.Subtotal), false, 8)}
	if sale.DiscountKind != "" {
		rows = append(rows, kv(
			"Desconto ("+discountLabel(sale.DiscountKind, sale.DiscountValue)+")",
			"-R$ "+money(sale.Subtotal.Sub(sale.Total)),
			false, 8,
		))
	}
	rows = append(rows, kv("TOTAL", "R$ "+money(sale.Total), true, 10))
	return rows
}

// paymentRows: uma linha por pagamento, com troco quando em dinheiro.
func paymentRows(payments []*entity.Payment) []core.Row {
	rows := make([]core.Row, 0, len(payments)+1)
	for _, p := range payments {
		rows = append(rows, row.New(4).Add(
			col.New(6).Add(text.New(methodLabel(p.Method), props.Text{
				Size: 7.5, Align: align.Left, Color: colorGray,
			})),
			col.New(6).Add(text.New("R$ "+money(p.Amount), props.Text{
				Size: 7.5, Align: align.Right,
			})),
		))
		if p.Change.IsPositive() {
			rows = append(rows, row.New(4).Add(
				col.New(6).Add(text.New("Troco", props.Text{
					Size: 7.5, Align: align.Left, Color: colorGray,
				})),
				col.New(6).Add(text.New("R$ "+money(p.Change), props.Text{
					Size: 7.5, Align: align.Right,
				})),
			))
		}
	}
	return rows
}

// footerRows: agradecimento e aviso de documento sem valor fiscal.
func footerRows() []core.Row {
	return []core.Row{
		row.New(3),
		row.New(5).Add(col.New(12).Add(
			text.New("Obrigado pela preferência!", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1,
			}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New("Documento sem valor fiscal.", props.Text{
				Size: 6.5, Align: align.Center, Color: colorGray,
			}),
		)),
	}
}

func separator() core.Row {
	return line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2, SizePercent: 100})
}

// money formata com duas casas e vírgula decimal brasileira.
// Ex: 1234.5 → "1234,50"
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	b := []byte(s)
	for i := range b {
		if b[i] == '.' {
			b[i] = ','
		}
	}
	return string(b)
}

func discountLabel(kind string, value decimal.Decimal) string {
	if kind == entity.DiscountPercentual {
		return value.String() + "%"
	}
	return "R$ " + money(value)
}

func methodLabel(method string) string {
	switch method {
	case entity.PaymentDinheiro:
		return "Dinheiro"
	case entity.PaymentPix:
		return "Pix"
	case entity.PaymentCredito:
		return "Cartão de crédito"
	case entity.PaymentDebito:
		return "Cartão de débito"
	case entity.PaymentFiado:
		return "Fiado"
	default:
		return method
	}
}
