package pos

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

// ---- fakes em memória ----

type fakeProductRepo struct {
	products map[string]*entity.Product
	variants map[string]*entity.ProductVariant
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[string]*entity.Product),
		variants: make(map[string]*entity.ProductVariant),
	}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetByBarcode(companyID, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.Barcode == code {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) ListByCompany(companyID, categoryID, search string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CreateVariant(v *entity.ProductVariant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *fakeProductRepo) GetVariantByID(id string) (*entity.ProductVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (r *fakeProductRepo) GetVariantByBarcode(companyID, code string) (*entity.ProductVariant, error) {
	for _, v := range r.variants {
		if v.Barcode == code {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) ListVariantsByProduct(productID string) ([]*entity.ProductVariant, error) {
	var out []*entity.ProductVariant
	for _, v := range r.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) GetByCompanyAndDocument(companyID, document string) (*entity.Customer, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) ListByCompany(companyID, search string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestService() (*Service, *fakeProductRepo, *fakeCustomerRepo) {
	productRepo := newFakeProductRepo()
	customerRepo := &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}

	productRepo.products["prod-cafe"] = &entity.Product{
		ID:          "prod-cafe",
		CompanyID:   "empresa-1",
		Name:        "Café Torrado 500g",
		Barcode:     "7891000100103",
		UnitMeasure: entity.UnitUN,
		SalePrice:   dec("18.90"),
		CostPrice:   dec("11.00"),
		Active:      true,
	}
	productRepo.products["prod-camiseta"] = &entity.Product{
		ID:          "prod-camiseta",
		CompanyID:   "empresa-1",
		Name:        "Camiseta Básica",
		UnitMeasure: entity.UnitUN,
		SalePrice:   dec("39.90"),
		Active:      true,
	}
	priceG := dec("44.90")
	productRepo.variants["var-g"] = &entity.ProductVariant{
		ID:        "var-g",
		ProductID: "prod-camiseta",
		Name:      "G",
		Barcode:   "7891000200200",
		SalePrice: &priceG,
		Active:    true,
	}
	productRepo.variants["var-m"] = &entity.ProductVariant{
		ID:        "var-m",
		ProductID: "prod-camiseta",
		Name:      "M",
		Active:    true,
	}
	productRepo.products["prod-sem-preco"] = &entity.Product{
		ID:          "prod-sem-preco",
		CompanyID:   "empresa-1",
		Name:        "Produto Sem Preço",
		UnitMeasure: entity.UnitUN,
		Active:      true,
	}
	customerRepo.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Maria"}

	return NewService(productRepo, customerRepo), productRepo, customerRepo
}

// ---- testes ----

func TestAddItem_PorIDCongelaPreco(t *testing.T) {
	svc, productRepo, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.AddItem(ctx, "empresa-1", "caixa-1", dto.AddCartItemRequest{
		ProductID: "prod-cafe",
		Quantity:  dec("2"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "18.9", resp.Lines[0].UnitPrice.String())
	assert.Equal(t, "37.8", resp.Subtotal.String())

	// alterar o catálogo não muda a venda em andamento
	productRepo.products["prod-cafe"].SalePrice = dec("25.00")
	resp, err = svc.GetCart(ctx, "caixa-1")
	require.NoError(t, err)
	assert.Equal(t, "18.9", resp.Lines[0].UnitPrice.String())
}

func TestAddItem_QuantidadeOmitidaAssumeUm(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.AddItem(context.Background(), "empresa-1", "caixa-1", dto.AddCartItemRequest{
		ProductID: "prod-cafe",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", resp.ItemCount.String())
}

func TestAddItem_VariacaoSobrepoePreco(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.AddItem(context.Background(), "empresa-1", "caixa-1", dto.AddCartItemRequest{
		ProductID: "prod-camiseta",
		VariantID: "var-g",
		Quantity:  dec("1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "44.9", resp.Lines[0].UnitPrice.String())
	assert.Equal(t, "G", resp.Lines[0].VariantName)
}

func TestAddItem_VariacaoSemPrecoHerdaDoProduto(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.AddItem(context.Background(), "empresa-1", "caixa-1", dto.AddCartItemRequest{
		ProductID: "prod-camiseta",
		VariantID: "var-m",
		Quantity:  dec("1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "39.9", resp.Lines[0].UnitPrice.String())
}

func TestAddItem_PorCodigoDeBarras(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// código de barras de variação tem prioridade
	resp, err := svc.AddItem(ctx, "empresa-1", "caixa-1", dto.AddCartItemRequest{
		Barcode: "7891000200200",
	})
	require.NoError(t, err)
	assert.Equal(t, "var-g", resp.Lines[0].VariantID)

	// código de barras de produto
	resp, err = svc.AddItem(ctx, "empresa-1", "caixa-1", dto.AddCartItemRequest{
		Barcode: "7891000100103",
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, "prod-cafe", resp.Lines[1].ProductID)
}

func TestAddItem_SemPrecoResolvivel(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddItem(context.Background(), "empresa-1", "caixa-1", dto.AddCartItemRequest{
		ProductID: "prod-sem-preco",
	})
	assert.ErrorIs(t, err, domain.ErrMissingPrice)
}

func TestAddItem_ProdutoInativo(t *testing.T) {
	svc, productRepo, _ := newTestService()
	productRepo.products["prod-cafe"].Active = false

	_, err := svc.AddItem(context.Background(), "empresa-1", "caixa-1", dto.AddCartItemRequest{
		ProductID: "prod-cafe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItem_VariacaoDeOutroProduto(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddItem(context.Background(), "empresa-1", "caixa-1", dto.AddCartItemRequest{
		ProductID: "prod-cafe",
		VariantID: "var-g",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessoesSaoIsoladas(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "empresa-1", "caixa-1", dto.AddCartItemRequest{ProductID: "prod-cafe"})
	require.NoError(t, err)

	resp, err := svc.GetCart(ctx, "caixa-2")
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
}

func TestSetCustomer_ValidaExistencia(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.SetCustomer(ctx, "caixa-1", "cli-1")
	require.NoError(t, err)
	assert.Equal(t, "cli-1", resp.CustomerID)

	_, err = svc.SetCustomer(ctx, "caixa-1", "cli-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	resp, err = svc.SetCustomer(ctx, "caixa-1", "")
	require.NoError(t, err)
	assert.Empty(t, resp.CustomerID)
}

func TestDescontosViaServico(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.AddItem(ctx, "empresa-1", "caixa-1", dto.AddCartItemRequest{
		ProductID: "prod-cafe",
		Quantity:  dec("2"),
	})
	require.NoError(t, err)
	lineID := resp.Lines[0].ID

	resp, err = svc.SetItemDiscount(ctx, "caixa-1", lineID, dto.DiscountRequest{
		Kind:  entity.DiscountPercentual,
		Value: dec("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "34.02", resp.Lines[0].Subtotal.String())

	resp, err = svc.SetOrderDiscount(ctx, "caixa-1", &dto.DiscountRequest{
		Kind:  entity.DiscountValor,
		Value: dec("4.02"),
	})
	require.NoError(t, err)
	assert.Equal(t, "30", resp.Total.String())

	resp, err = svc.SetOrderDiscount(ctx, "caixa-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "34.02", resp.Total.String())

	resp, err = svc.ClearItemDiscount(ctx, "caixa-1", lineID)
	require.NoError(t, err)
	assert.Equal(t, "37.8", resp.Total.String())
}

func TestSnapshot_NaoCompartilhaEstado(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "empresa-1", "caixa-1", dto.AddCartItemRequest{ProductID: "prod-cafe"})
	require.NoError(t, err)

	snap := svc.Snapshot("caixa-1")
	require.Len(t, snap.Lines, 1)

	// mutação na sessão não altera a cópia
	_, err = svc.ClearCart(ctx, "caixa-1")
	require.NoError(t, err)
	assert.Len(t, snap.Lines, 1)
	assert.Equal(t, "18.9", snap.Total.String())
}

func TestEndSession_DescartaCarrinho(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "empresa-1", "caixa-1", dto.AddCartItemRequest{ProductID: "prod-cafe"})
	require.NoError(t, err)
	svc.EndSession("caixa-1")

	resp, err := svc.GetCart(ctx, "caixa-1")
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
}
