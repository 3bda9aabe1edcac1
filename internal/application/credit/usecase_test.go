package credit

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
)

type fakeCreditRepo struct {
	credits  map[string]*entity.CreditSale
	payments []*entity.CreditPayment
}

func (r *fakeCreditRepo) Create(c *entity.CreditSale) error {
	cp := *c
	r.credits[c.ID] = &cp
	return nil
}

func (r *fakeCreditRepo) GetByID(id string) (*entity.CreditSale, error) {
	c, ok := r.credits[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCreditRepo) Update(c *entity.CreditSale) error {
	cp := *c
	r.credits[c.ID] = &cp
	return nil
}

func (r *fakeCreditRepo) CreatePayment(p *entity.CreditPayment) error {
	cp := *p
	r.payments = append(r.payments, &cp)
	return nil
}

func (r *fakeCreditRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CreditSale, error) {
	var out []*entity.CreditSale
	for _, c := range r.credits {
		if c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCreditRepo) ListByStore(storeID, status string, limit, offset int) ([]*entity.CreditSale, error) {
	var out []*entity.CreditSale
	for _, c := range r.credits {
		if c.StoreID == storeID && (status == "" || c.Status == status) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCreditRepo) ListPayments(creditID string) ([]*entity.CreditPayment, error) {
	var out []*entity.CreditPayment
	for _, p := range r.payments {
		if p.CreditID == creditID {
			out = append(out, p)
		}
	}
	return out, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture() (*UseCase, *fakeCreditRepo) {
	repo := &fakeCreditRepo{credits: make(map[string]*entity.CreditSale)}
	repo.credits["cred-1"] = &entity.CreditSale{
		ID:         "cred-1",
		StoreID:    "loja-1",
		CustomerID: "cli-1",
		SaleID:     "venda-1",
		Total:      dec("100.00"),
		Paid:       decimal.Zero,
		Remaining:  dec("100.00"),
		Status:     entity.CreditPendente,
	}
	return NewUseCase(repo), repo
}

func TestRegisterPayment_AbatimentoParcial(t *testing.T) {
	uc, repo := newFixture()

	resp, err := uc.RegisterPayment(context.Background(), "cred-1", "user-1", dto.CreditPaymentRequest{
		Amount: dec("40.00"),
		Method: entity.PaymentPix,
	})
	require.NoError(t, err)

	assert.Equal(t, "40", resp.Paid.String())
	assert.Equal(t, "60", resp.Remaining.String())
	assert.Equal(t, entity.CreditParcial, resp.Status)
	require.Len(t, repo.payments, 1)
}

func TestRegisterPayment_QuitacaoTotal(t *testing.T) {
	uc, _ := newFixture()
	ctx := context.Background()

	_, err := uc.RegisterPayment(ctx, "cred-1", "user-1", dto.CreditPaymentRequest{
		Amount: dec("60.00"),
		Method: entity.PaymentDinheiro,
	})
	require.NoError(t, err)

	resp, err := uc.RegisterPayment(ctx, "cred-1", "user-1", dto.CreditPaymentRequest{
		Amount: dec("40.00"),
		Method: entity.PaymentPix,
	})
	require.NoError(t, err)
	assert.True(t, resp.Remaining.IsZero())
	assert.Equal(t, entity.CreditPago, resp.Status)

	// fiado quitado não aceita mais abatimentos
	_, err = uc.RegisterPayment(ctx, "cred-1", "user-1", dto.CreditPaymentRequest{
		Amount: dec("1.00"),
		Method: entity.PaymentPix,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterPayment_AcimaDoSaldoDevedor(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.RegisterPayment(context.Background(), "cred-1", "user-1", dto.CreditPaymentRequest{
		Amount: dec("150.00"),
		Method: entity.PaymentPix,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterPayment_FiadoNaoEFormaDeAbatimento(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.RegisterPayment(context.Background(), "cred-1", "user-1", dto.CreditPaymentRequest{
		Amount: dec("10.00"),
		Method: entity.PaymentFiado,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListByStore_FiltraPorStatus(t *testing.T) {
	uc, repo := newFixture()
	repo.credits["cred-2"] = &entity.CreditSale{
		ID:      "cred-2",
		StoreID: "loja-1",
		Status:  entity.CreditPago,
	}

	list, err := uc.ListByStore(context.Background(), "loja-1", entity.CreditPendente, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "cred-1", list[0].ID)

	_, err = uc.ListByStore(context.Background(), "loja-1", "atrasado", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
