package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

// LedgerUseCase mantém a quantidade em estoque por (loja, produto, variação)
// e o livro-razão de movimentações. Toda mutação roda em transação com
// bloqueio de linha (SELECT FOR UPDATE): dois terminais ajustando o mesmo
// item serializam no banco, nunca se sobrescrevem.
type LedgerUseCase struct {
	txRunner     TxRunner
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
}

// NewLedgerUseCase constrói o caso de uso.
func NewLedgerUseCase(txRunner TxRunner, stockRepo repository.StockRepository, movementRepo repository.StockMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, stockRepo: stockRepo, movementRepo: movementRepo}
}

// MutationInput identifica o item e o autor de uma mutação de estoque.
type MutationInput struct {
	StoreID       string
	ProductID     string
	VariantID     string
	UserID        string
	Reason        string
	ReferenceKind string // venda, compra, ajuste_manual, transferencia
	ReferenceID   string
}

// Result descreve o efeito real da mutação. Applied difere de Requested
// quando o clamp em zero reduziu a saída; a magnitude gravada no movimento
// é sempre |QuantityAfter - QuantityBefore| (delta aplicado), de modo que o
// livro-razão sempre reconcilia com o saldo.
type Result struct {
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Requested      decimal.Decimal // delta pedido (com sinal)
	Applied        decimal.Decimal // delta efetivo (com sinal)
	Clamped        bool
	Movement       *entity.StockMovement // nil em transição no-op
}

// GetQuantity devolve a quantidade atual; zero quando não há registro.
func (uc *LedgerUseCase) GetQuantity(ctx context.Context, storeID, productID, variantID string) (decimal.Decimal, error) {
	if storeID == "" || productID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	s, err := uc.stockRepo.Get(storeID, productID, variantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return s.Quantity, nil
}

// SetQuantity é a mutação primitiva: fixa a quantidade do item em
// max(0, newQuantity), grava o registro e anexa uma movimentação com o tipo
// inferido do sinal da diferença. Transição sem mudança não gera movimento.
// Atômico: registro e movimento ou ambos ou nenhum.
func (uc *LedgerUseCase) SetQuantity(ctx context.Context, in MutationInput, newQuantity decimal.Decimal) (*Result, error) {
	if in.StoreID == "" || in.ProductID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *Result
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, movementRepo repository.StockMovementRepository) error {
		r, err := applySet(stockRepo, movementRepo, in, newQuantity, time.Now())
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdjustQuantity aplica um delta sobre a quantidade atual:
// newQuantity = max(0, atual + delta). Usado pelas entradas/saídas manuais
// e pela baixa automática do checkout.
func (uc *LedgerUseCase) AdjustQuantity(ctx context.Context, in MutationInput, delta decimal.Decimal) (*Result, error) {
	if in.StoreID == "" || in.ProductID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	var result *Result
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, movementRepo repository.StockMovementRepository) error {
		r, err := ApplyAdjustInTx(stockRepo, movementRepo, in, delta, time.Now())
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyAdjustInTx executa o ajuste usando repositórios do chamador (mesma
// transação). O checkout usa este caminho para dar baixa de estoque na
// transação da venda.
func ApplyAdjustInTx(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	in MutationInput,
	delta decimal.Decimal,
	now time.Time,
) (*Result, error) {
	// Bloqueia a linha antes de ler: o delta é aplicado sobre o valor já
	// serializado, não sobre uma leitura solta.
	current, err := lockOrInit(stockRepo, in, now)
	if err != nil {
		return nil, err
	}
	target := current.Quantity.Add(delta)
	return applyTo(stockRepo, movementRepo, in, current, target, delta, now)
}

// applySet fixa a quantidade absoluta dentro da transação do chamador.
func applySet(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	in MutationInput,
	newQuantity decimal.Decimal,
	now time.Time,
) (*Result, error) {
	current, err := lockOrInit(stockRepo, in, now)
	if err != nil {
		return nil, err
	}
	requested := newQuantity.Sub(current.Quantity)
	return applyTo(stockRepo, movementRepo, in, current, newQuantity, requested, now)
}

// lockOrInit trava a linha de estoque ou, na primeira mutação do item,
// devolve um registro novo com quantidade zero.
func lockOrInit(stockRepo repository.StockRepository, in MutationInput, now time.Time) (*entity.Stock, error) {
	current, err := stockRepo.GetForUpdate(in.StoreID, in.ProductID, in.VariantID)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return &entity.Stock{
		ID:        uuid.New().String(),
		StoreID:   in.StoreID,
		ProductID: in.ProductID,
		VariantID: in.VariantID,
		Quantity:  decimal.Zero,
		UpdatedAt: now,
	}, nil
}

// applyTo concretiza a transição: trava em zero, grava o registro e anexa o
// movimento com magnitude = |depois - antes|.
func applyTo(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	in MutationInput,
	current *entity.Stock,
	target, requested decimal.Decimal,
	now time.Time,
) (*Result, error) {
	before := current.Quantity
	after := target
	clamped := false
	if after.IsNegative() {
		after = decimal.Zero
		clamped = true
	}

	result := &Result{
		QuantityBefore: before,
		QuantityAfter:  after,
		Requested:      requested,
		Applied:        after.Sub(before),
		Clamped:        clamped,
	}
	// Transição no-op: nada a gravar no livro-razão.
	if after.Equal(before) {
		return result, nil
	}

	current.Quantity = after
	current.UpdatedAt = now
	if err := stockRepo.Upsert(current); err != nil {
		return nil, err
	}

	movementType := entity.MovementEntrada
	if result.Applied.IsNegative() {
		movementType = entity.MovementSaida
	}
	referenceKind := in.ReferenceKind
	if referenceKind == "" {
		referenceKind = entity.ReferenceAjusteManual
	}
	movement := &entity.StockMovement{
		ID:             uuid.New().String(),
		StoreID:        in.StoreID,
		ProductID:      in.ProductID,
		VariantID:      in.VariantID,
		UserID:         in.UserID,
		Type:           movementType,
		Quantity:       result.Applied.Abs(),
		QuantityBefore: before,
		QuantityAfter:  after,
		Reason:         in.Reason,
		ReferenceKind:  referenceKind,
		ReferenceID:    in.ReferenceID,
		CreatedAt:      now,
	}
	if err := movementRepo.Create(movement); err != nil {
		return nil, err
	}
	result.Movement = movement
	return result, nil
}

// ListMovements lista as movimentações da loja, mais recentes primeiro.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, storeID string, since *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movementRepo.ListByStore(storeID, since, limit, offset)
}

// ListByStore lista os registros de estoque da loja.
func (uc *LedgerUseCase) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Stock, error) {
	if storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.stockRepo.ListByStore(storeID, limit, offset)
}

// SetThresholds define os limites mínimo/máximo do item (alertas).
func (uc *LedgerUseCase) SetThresholds(ctx context.Context, storeID, productID, variantID string, min, max *decimal.Decimal) error {
	if storeID == "" || productID == "" {
		return domain.ErrInvalidInput
	}
	if min != nil && min.IsNegative() || max != nil && max.IsNegative() {
		return domain.ErrInvalidInput
	}
	return uc.stockRepo.SetThresholds(storeID, productID, variantID, min, max)
}

// StockReport devolve itens abaixo do mínimo e zerados da loja.
func (uc *LedgerUseCase) StockReport(ctx context.Context, storeID string) (below, zeroed []*entity.Stock, err error) {
	if storeID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	below, err = uc.stockRepo.ListBelowMinimum(storeID)
	if err != nil {
		return nil, nil, err
	}
	zeroed, err = uc.stockRepo.ListZeroed(storeID)
	if err != nil {
		return nil, nil, err
	}
	return below, zeroed, nil
}
