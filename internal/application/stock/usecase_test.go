package stock

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

// ---- fakes em memória ----

type fakeStockRepo struct {
	items map[string]*entity.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{items: make(map[string]*entity.Stock)}
}

func stockKey(storeID, productID, variantID string) string {
	return storeID + "|" + productID + "|" + variantID
}

func (r *fakeStockRepo) Get(storeID, productID, variantID string) (*entity.Stock, error) {
	s, ok := r.items[stockKey(storeID, productID, variantID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStockRepo) GetForUpdate(storeID, productID, variantID string) (*entity.Stock, error) {
	return r.Get(storeID, productID, variantID)
}

func (r *fakeStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	r.items[stockKey(stock.StoreID, stock.ProductID, stock.VariantID)] = &cp
	return nil
}

func (r *fakeStockRepo) SetThresholds(storeID, productID, variantID string, min, max *decimal.Decimal) error {
	s, ok := r.items[stockKey(storeID, productID, variantID)]
	if !ok {
		return domain.ErrNotFound
	}
	s.MinQuantity = min
	s.MaxQuantity = max
	return nil
}

func (r *fakeStockRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range r.items {
		if s.StoreID == storeID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) ListBelowMinimum(storeID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range r.items {
		if s.StoreID == storeID && s.BelowMinimum() {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) ListZeroed(storeID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range r.items {
		if s.StoreID == storeID && s.Quantity.IsZero() {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeMovementRepo) ListByStore(storeID string, since *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.StoreID != storeID {
			continue
		}
		if since != nil && m.CreatedAt.Before(*since) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByProduct(storeID, productID, variantID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.StoreID == storeID && m.ProductID == productID && m.VariantID == variantID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
	fail         error
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(repository.StockRepository, repository.StockMovementRepository) error) error {
	if tx.fail != nil {
		return tx.fail
	}
	return fn(tx.stockRepo, tx.movementRepo)
}

func newLedger() (*LedgerUseCase, *fakeStockRepo, *fakeMovementRepo) {
	stockRepo := newFakeStockRepo()
	movementRepo := &fakeMovementRepo{}
	tx := &fakeTxRunner{stockRepo: stockRepo, movementRepo: movementRepo}
	return NewLedgerUseCase(tx, stockRepo, movementRepo), stockRepo, movementRepo
}

func mutation() MutationInput {
	return MutationInput{
		StoreID:   "loja-1",
		ProductID: "prod-1",
		UserID:    "user-1",
		Reason:    "ajuste de teste",
	}
}

// ---- testes ----

func TestGetQuantity_ItemSemRegistroRetornaZero(t *testing.T) {
	uc, _, _ := newLedger()

	q, err := uc.GetQuantity(context.Background(), "loja-1", "prod-1", "")
	require.NoError(t, err)
	assert.True(t, q.IsZero())
}

func TestSetQuantity_PrimeiraMutacaoCriaRegistroEMovimento(t *testing.T) {
	uc, stockRepo, movementRepo := newLedger()

	res, err := uc.SetQuantity(context.Background(), mutation(), decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.True(t, res.QuantityBefore.IsZero())
	assert.Equal(t, "10", res.QuantityAfter.String())
	assert.Equal(t, "10", res.Applied.String())
	assert.False(t, res.Clamped)

	s, err := stockRepo.Get("loja-1", "prod-1", "")
	require.NoError(t, err)
	assert.Equal(t, "10", s.Quantity.String())

	require.Len(t, movementRepo.movements, 1)
	m := movementRepo.movements[0]
	assert.Equal(t, entity.MovementEntrada, m.Type)
	assert.Equal(t, "10", m.Quantity.String())
	assert.True(t, m.QuantityBefore.IsZero())
	assert.Equal(t, "10", m.QuantityAfter.String())
	assert.Equal(t, entity.ReferenceAjusteManual, m.ReferenceKind)
	assert.Equal(t, "user-1", m.UserID)
}

func TestAdjustQuantity_SaidaInfereTipoPeloSinal(t *testing.T) {
	uc, _, movementRepo := newLedger()

	_, err := uc.SetQuantity(context.Background(), mutation(), decimal.NewFromInt(10))
	require.NoError(t, err)

	res, err := uc.AdjustQuantity(context.Background(), mutation(), decimal.NewFromInt(-4))
	require.NoError(t, err)

	assert.Equal(t, "10", res.QuantityBefore.String())
	assert.Equal(t, "6", res.QuantityAfter.String())
	assert.Equal(t, "-4", res.Applied.String())
	assert.False(t, res.Clamped)

	require.Len(t, movementRepo.movements, 2)
	m := movementRepo.movements[1]
	assert.Equal(t, entity.MovementSaida, m.Type)
	// magnitude sempre positiva
	assert.Equal(t, "4", m.Quantity.String())
	assert.Equal(t, "10", m.QuantityBefore.String())
	assert.Equal(t, "6", m.QuantityAfter.String())
}

func TestAdjustQuantity_TravaEmZeroEReportaClamp(t *testing.T) {
	uc, stockRepo, movementRepo := newLedger()

	_, err := uc.SetQuantity(context.Background(), mutation(), decimal.NewFromInt(3))
	require.NoError(t, err)

	// pedido de -5 com saldo 3: aplica -3 e trava em zero
	res, err := uc.AdjustQuantity(context.Background(), mutation(), decimal.NewFromInt(-5))
	require.NoError(t, err)

	assert.Equal(t, "3", res.QuantityBefore.String())
	assert.True(t, res.QuantityAfter.IsZero())
	assert.Equal(t, "-5", res.Requested.String())
	assert.Equal(t, "-3", res.Applied.String())
	assert.True(t, res.Clamped)

	s, err := stockRepo.Get("loja-1", "prod-1", "")
	require.NoError(t, err)
	assert.True(t, s.Quantity.IsZero())

	// a magnitude do movimento é o delta aplicado, não o pedido
	m := movementRepo.movements[len(movementRepo.movements)-1]
	assert.Equal(t, "3", m.Quantity.String())
	assert.Equal(t, "3", m.QuantityBefore.String())
	assert.True(t, m.QuantityAfter.IsZero())
}

func TestAdjustQuantity_SaidaComSaldoZeroNaoGeraMovimento(t *testing.T) {
	uc, _, movementRepo := newLedger()

	res, err := uc.AdjustQuantity(context.Background(), mutation(), decimal.NewFromInt(-2))
	require.NoError(t, err)

	assert.True(t, res.QuantityBefore.IsZero())
	assert.True(t, res.QuantityAfter.IsZero())
	assert.True(t, res.Applied.IsZero())
	assert.True(t, res.Clamped)
	assert.Nil(t, res.Movement)
	assert.Empty(t, movementRepo.movements)
}

func TestSetQuantity_SemMudancaNaoGeraMovimento(t *testing.T) {
	uc, _, movementRepo := newLedger()

	_, err := uc.SetQuantity(context.Background(), mutation(), decimal.NewFromInt(7))
	require.NoError(t, err)

	res, err := uc.SetQuantity(context.Background(), mutation(), decimal.NewFromInt(7))
	require.NoError(t, err)
	assert.Nil(t, res.Movement)
	require.Len(t, movementRepo.movements, 1)
}

func TestSetQuantity_NegativaTravaEmZero(t *testing.T) {
	uc, _, _ := newLedger()

	_, err := uc.SetQuantity(context.Background(), mutation(), decimal.NewFromInt(5))
	require.NoError(t, err)

	res, err := uc.SetQuantity(context.Background(), mutation(), decimal.NewFromInt(-2))
	require.NoError(t, err)
	assert.True(t, res.QuantityAfter.IsZero())
	assert.True(t, res.Clamped)
	assert.Equal(t, "-5", res.Applied.String())
}

func TestAdjustQuantity_VariacoesTemSaldosIndependentes(t *testing.T) {
	uc, stockRepo, _ := newLedger()

	inP := mutation()
	inM := mutation()
	inM.VariantID = "var-m"

	_, err := uc.SetQuantity(context.Background(), inP, decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = uc.SetQuantity(context.Background(), inM, decimal.NewFromInt(4))
	require.NoError(t, err)

	_, err = uc.AdjustQuantity(context.Background(), inM, decimal.NewFromInt(-1))
	require.NoError(t, err)

	base, err := stockRepo.Get("loja-1", "prod-1", "")
	require.NoError(t, err)
	assert.Equal(t, "10", base.Quantity.String())

	varM, err := stockRepo.Get("loja-1", "prod-1", "var-m")
	require.NoError(t, err)
	assert.Equal(t, "3", varM.Quantity.String())
}

func TestAdjustQuantity_QuantidadeFracionaria(t *testing.T) {
	uc, _, _ := newLedger()

	_, err := uc.SetQuantity(context.Background(), mutation(), decimal.RequireFromString("2.500"))
	require.NoError(t, err)

	res, err := uc.AdjustQuantity(context.Background(), mutation(), decimal.RequireFromString("-0.750"))
	require.NoError(t, err)
	assert.Equal(t, "1.75", res.QuantityAfter.String())
}

func TestAdjustQuantity_EntradasValidadas(t *testing.T) {
	uc, _, _ := newLedger()
	ctx := context.Background()

	_, err := uc.AdjustQuantity(ctx, mutation(), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := mutation()
	in.StoreID = ""
	_, err = uc.AdjustQuantity(ctx, in, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = mutation()
	in.UserID = ""
	_, err = uc.SetQuantity(ctx, in, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustQuantity_FalhaNaTransacaoNaoAlteraEstado(t *testing.T) {
	stockRepo := newFakeStockRepo()
	movementRepo := &fakeMovementRepo{}
	tx := &fakeTxRunner{stockRepo: stockRepo, movementRepo: movementRepo, fail: fmt.Errorf("conexão perdida")}
	uc := NewLedgerUseCase(tx, stockRepo, movementRepo)

	_, err := uc.AdjustQuantity(context.Background(), mutation(), decimal.NewFromInt(5))
	require.Error(t, err)
	assert.Empty(t, stockRepo.items)
	assert.Empty(t, movementRepo.movements)
}

func TestListMovements_MaisRecentesPrimeiro(t *testing.T) {
	uc, _, movementRepo := newLedger()
	base := time.Now()

	for i := 0; i < 3; i++ {
		movementRepo.movements = append(movementRepo.movements, &entity.StockMovement{
			ID:        fmt.Sprintf("mov-%d", i),
			StoreID:   "loja-1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	out, err := uc.ListMovements(context.Background(), "loja-1", nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "mov-2", out[0].ID)
	assert.Equal(t, "mov-0", out[2].ID)
}

func TestStockReport_AbaixoDoMinimoEZerados(t *testing.T) {
	uc, _, _ := newLedger()
	ctx := context.Background()

	_, err := uc.SetQuantity(ctx, mutation(), decimal.NewFromInt(2))
	require.NoError(t, err)
	min := decimal.NewFromInt(5)
	require.NoError(t, uc.SetThresholds(ctx, "loja-1", "prod-1", "", &min, nil))

	inZero := mutation()
	inZero.ProductID = "prod-2"
	_, err = uc.SetQuantity(ctx, inZero, decimal.NewFromInt(1))
	require.NoError(t, err)
	_, err = uc.AdjustQuantity(ctx, inZero, decimal.NewFromInt(-1))
	require.NoError(t, err)

	below, zeroed, err := uc.StockReport(ctx, "loja-1")
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.Equal(t, "prod-1", below[0].ProductID)
	require.Len(t, zeroed, 1)
	assert.Equal(t, "prod-2", zeroed[0].ProductID)
}
