package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/application/stock"
	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/cart"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
	"github.com/in100tiva/PDV/pkg/logger"
)

// UseCase finaliza a venda de uma sessão de PDV: persiste venda, itens,
// baixa de estoque, pagamento e fiado em UMA transação, e só então esvazia
// o carrinho. Falha em qualquer etapa desfaz tudo e preserva o carrinho.
type UseCase struct {
	txRunner TxRunner
	sessions CartSessions
	log      *logger.Logger
}

// NewUseCase constrói o coordenador de checkout.
func NewUseCase(txRunner TxRunner, sessions CartSessions, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, sessions: sessions, log: log}
}

var validPaymentMethods = map[string]bool{
	entity.PaymentDinheiro: true,
	entity.PaymentPix:      true,
	entity.PaymentCredito:  true,
	entity.PaymentDebito:   true,
	entity.PaymentFiado:    true,
}

// FinalizeSale fecha a venda da sessão. Carrinho vazio e forma de pagamento
// desconhecida são rejeitados antes de abrir a transação; fiado exige
// cliente associado. A baixa de estoque trava em zero (a venda no balcão já
// aconteceu), e os itens cuja baixa travou voltam em Shortages para o caixa
// conferir o estoque físico.
func (uc *UseCase) FinalizeSale(ctx context.Context, storeID, userID, sessionID string, req dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if storeID == "" || userID == "" || sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validPaymentMethods[req.PaymentMethod] {
		return nil, domain.ErrInvalidInput
	}

	c := uc.sessions.Snapshot(sessionID)
	if c.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if req.PaymentMethod == entity.PaymentFiado && c.CustomerID == "" {
		return nil, domain.ErrCustomerRequired
	}
	if req.PaymentMethod == entity.PaymentDinheiro && req.AmountReceived != nil &&
		req.AmountReceived.LessThan(c.Total) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	sale := buildSale(storeID, userID, c, now)
	items := buildItems(sale.ID, c, now)
	payment := buildPayment(sale.ID, c.Total, req, now)

	var shortages []dto.StockShortage

	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
		creditRepo repository.CreditRepository,
	) error {
		number, err := saleRepo.NextNumber(storeID)
		if err != nil {
			return fmt.Errorf("consecutivo da venda: %w", err)
		}
		sale.Number = number

		if err := saleRepo.Create(sale); err != nil {
			return fmt.Errorf("gravar venda: %w", err)
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return fmt.Errorf("gravar item da venda: %w", err)
			}
		}

		// baixa de estoque na mesma transação, com bloqueio de linha por item
		for _, item := range items {
			res, err := stock.ApplyAdjustInTx(stockRepo, movementRepo, stock.MutationInput{
				StoreID:       storeID,
				ProductID:     item.ProductID,
				VariantID:     item.VariantID,
				UserID:        userID,
				Reason:        fmt.Sprintf("venda #%d", sale.Number),
				ReferenceKind: entity.ReferenceVenda,
				ReferenceID:   sale.ID,
			}, item.Quantity.Neg(), now)
			if err != nil {
				return fmt.Errorf("baixa de estoque: %w", err)
			}
			if res.Clamped {
				shortages = append(shortages, dto.StockShortage{
					ProductID: item.ProductID,
					VariantID: item.VariantID,
					Requested: item.Quantity,
					Applied:   res.Applied.Abs(),
				})
			}
		}

		if err := saleRepo.CreatePayment(payment); err != nil {
			return fmt.Errorf("gravar pagamento: %w", err)
		}

		if req.PaymentMethod == entity.PaymentFiado {
			credit := &entity.CreditSale{
				ID:         uuid.New().String(),
				StoreID:    storeID,
				CustomerID: c.CustomerID,
				SaleID:     sale.ID,
				Total:      c.Total,
				Paid:       decimal.Zero,
				Remaining:  c.Total,
				DueDate:    req.DueDate,
				Status:     entity.CreditPendente,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := creditRepo.Create(credit); err != nil {
				return fmt.Errorf("gravar fiado: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		// carrinho intocado: o caixa pode tentar de novo
		return nil, err
	}

	// commit feito: agora sim o carrinho é esvaziado
	uc.sessions.Clear(sessionID)

	for _, sh := range shortages {
		uc.log.Warn().
			Str("venda_id", sale.ID).
			Str("produto_id", sh.ProductID).
			Str("variante_id", sh.VariantID).
			Str("pedido", sh.Requested.String()).
			Str("aplicado", sh.Applied.String()).
			Msg("baixa de estoque travou em zero no checkout")
	}

	return toSaleResponse(sale, items, payment, shortages), nil
}

func buildSale(storeID, userID string, c *cart.Cart, now time.Time) *entity.Sale {
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		StoreID:    storeID,
		UserID:     userID,
		CustomerID: c.CustomerID,
		Status:     entity.SaleFinalizada,
		Subtotal:   c.Subtotal,
		Total:      c.Total,
		Notes:      c.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if c.OrderDiscount != nil {
		sale.DiscountKind = c.OrderDiscount.Kind
		sale.DiscountValue = c.OrderDiscount.Value
	}
	return sale
}

func buildItems(saleID string, c *cart.Cart, now time.Time) []*entity.SaleItem {
	items := make([]*entity.SaleItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		item := &entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			CostPrice: l.CostPrice,
			Subtotal:  l.Subtotal,
			CreatedAt: now,
		}
		if l.Discount != nil {
			item.DiscountKind = l.Discount.Kind
			item.DiscountValue = l.Discount.Value
		}
		items = append(items, item)
	}
	return items
}

func buildPayment(saleID string, total decimal.Decimal, req dto.CheckoutRequest, now time.Time) *entity.Payment {
	payment := &entity.Payment{
		ID:        uuid.New().String(),
		SaleID:    saleID,
		Method:    req.PaymentMethod,
		Amount:    total,
		CreatedAt: now,
	}
	if req.PaymentMethod == entity.PaymentDinheiro && req.AmountReceived != nil {
		payment.Amount = *req.AmountReceived
		payment.Change = req.AmountReceived.Sub(total)
	}
	return payment
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem, payment *entity.Payment, shortages []dto.StockShortage) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		StoreID:       sale.StoreID,
		UserID:        sale.UserID,
		CustomerID:    sale.CustomerID,
		Number:        sale.Number,
		Status:        sale.Status,
		Subtotal:      sale.Subtotal,
		DiscountKind:  sale.DiscountKind,
		DiscountValue: sale.DiscountValue,
		Total:         sale.Total,
		Notes:         sale.Notes,
		Shortages:     shortages,
		CreatedAt:     sale.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			VariantID:     item.VariantID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			DiscountKind:  item.DiscountKind,
			DiscountValue: item.DiscountValue,
			Subtotal:      item.Subtotal,
		})
	}
	resp.Payments = append(resp.Payments, dto.PaymentResponse{
		ID:     payment.ID,
		Method: payment.Method,
		Amount: payment.Amount,
		Change: payment.Change,
	})
	return resp
}
