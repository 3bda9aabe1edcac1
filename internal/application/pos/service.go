package pos

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/cart"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

// Service gerencia os carrinhos das sessões de PDV em memória: cada terminal
// aberto tem uma sessão com seu carrinho. O carrinho é estado transitório da
// venda em andamento; só vira registro persistente no checkout.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*cart.Cart

	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewService constrói o serviço de sessões de PDV.
func NewService(productRepo repository.ProductRepository, customerRepo repository.CustomerRepository) *Service {
	return &Service{
		sessions:     make(map[string]*cart.Cart),
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// session devolve o carrinho da sessão, criando um vazio na primeira visita.
// Chamar com s.mu adquirido.
func (s *Service) session(sessionID string) *cart.Cart {
	c, ok := s.sessions[sessionID]
	if !ok {
		c = cart.New()
		s.sessions[sessionID] = c
	}
	return c
}

// GetCart devolve o estado atual do carrinho da sessão.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return toCartResponse(s.session(sessionID)), nil
}

// AddItem resolve o item no catálogo (por id ou código de barras), congela o
// preço efetivo e adiciona ao carrinho. Quantidade omitida assume 1.
func (s *Service) AddItem(ctx context.Context, companyID, sessionID string, req dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	quantity := req.Quantity
	if quantity.IsZero() {
		quantity = decimal.NewFromInt(1)
	}

	item, err := s.resolveItem(ctx, companyID, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.session(sessionID)
	if _, err := c.AddItem(*item, quantity); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// resolveItem monta o snapshot de catálogo da linha: produto (e variação,
// quando houver) ativos e preço efetivo. Código de barras é procurado
// primeiro nas variações, depois nos produtos.
func (s *Service) resolveItem(ctx context.Context, companyID string, req dto.AddCartItemRequest) (*cart.ItemInput, error) {
	var (
		product *entity.Product
		variant *entity.ProductVariant
		err     error
	)

	switch {
	case req.Barcode != "":
		variant, err = s.productRepo.GetVariantByBarcode(companyID, req.Barcode)
		if err == nil {
			product, err = s.productRepo.GetByID(variant.ProductID)
			if err != nil {
				return nil, err
			}
		} else {
			product, err = s.productRepo.GetByBarcode(companyID, req.Barcode)
			if err != nil {
				return nil, err
			}
		}
	case req.ProductID != "":
		product, err = s.productRepo.GetByID(req.ProductID)
		if err != nil {
			return nil, err
		}
		if req.VariantID != "" {
			variant, err = s.productRepo.GetVariantByID(req.VariantID)
			if err != nil {
				return nil, err
			}
			if variant.ProductID != product.ID {
				return nil, domain.ErrInvalidInput
			}
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	if !product.Active || (variant != nil && !variant.Active) {
		return nil, domain.ErrNotFound
	}

	price := variant.ResolvedPrice(product)
	if !price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrMissingPrice
	}

	item := &cart.ItemInput{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitMeasure: product.UnitMeasure,
		UnitPrice:   price,
		CostPrice:   product.CostPrice,
	}
	if variant != nil {
		item.VariantID = variant.ID
		item.VariantName = variant.Name
		if variant.CostPrice != nil {
			item.CostPrice = *variant.CostPrice
		}
	}
	return item, nil
}

// UpdateItemQuantity ajusta a quantidade da linha; <= 0 remove.
func (s *Service) UpdateItemQuantity(ctx context.Context, sessionID, lineID string, quantity decimal.Decimal) (*dto.CartResponse, error) {
	if sessionID == "" || lineID == "" {
		return nil, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.session(sessionID)
	c.UpdateItemQuantity(lineID, quantity)
	return toCartResponse(c), nil
}

// RemoveItem remove a linha do carrinho.
func (s *Service) RemoveItem(ctx context.Context, sessionID, lineID string) (*dto.CartResponse, error) {
	if sessionID == "" || lineID == "" {
		return nil, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.session(sessionID)
	c.RemoveItem(lineID)
	return toCartResponse(c), nil
}

// SetItemDiscount aplica desconto à linha.
func (s *Service) SetItemDiscount(ctx context.Context, sessionID, lineID string, req dto.DiscountRequest) (*dto.CartResponse, error) {
	if sessionID == "" || lineID == "" {
		return nil, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.session(sessionID)
	if err := c.SetItemDiscount(lineID, cart.Discount{Kind: req.Kind, Value: req.Value}); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// ClearItemDiscount remove o desconto da linha.
func (s *Service) ClearItemDiscount(ctx context.Context, sessionID, lineID string) (*dto.CartResponse, error) {
	if sessionID == "" || lineID == "" {
		return nil, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.session(sessionID)
	c.ClearItemDiscount(lineID)
	return toCartResponse(c), nil
}

// SetOrderDiscount define o desconto geral da venda; req nulo limpa.
func (s *Service) SetOrderDiscount(ctx context.Context, sessionID string, req *dto.DiscountRequest) (*dto.CartResponse, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	var d *cart.Discount
	if req != nil && req.Kind != "" {
		d = &cart.Discount{Kind: req.Kind, Value: req.Value}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.session(sessionID)
	if err := c.SetOrderDiscount(d); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// SetCustomer associa um cliente à venda em andamento; id vazio desassocia.
func (s *Service) SetCustomer(ctx context.Context, sessionID, customerID string) (*dto.CartResponse, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	if customerID != "" {
		if _, err := s.customerRepo.GetByID(customerID); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.session(sessionID)
	c.SetCustomer(customerID)
	return toCartResponse(c), nil
}

// SetNote define a observação da venda em andamento.
func (s *Service) SetNote(ctx context.Context, sessionID, note string) (*dto.CartResponse, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.session(sessionID)
	c.SetNote(note)
	return toCartResponse(c), nil
}

// ClearCart esvazia o carrinho da sessão de uma vez.
func (s *Service) ClearCart(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.session(sessionID)
	c.Clear()
	return toCartResponse(c), nil
}

// Snapshot devolve uma cópia profunda do carrinho da sessão. O checkout lê
// a cópia enquanto a transação roda; mutações concorrentes na sessão não a
// afetam.
func (s *Service) Snapshot(sessionID string) *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotCart(s.session(sessionID))
}

// Clear esvazia o carrinho da sessão. Chamado pelo checkout após o commit.
func (s *Service) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID).Clear()
}

// EndSession descarta a sessão e seu carrinho.
func (s *Service) EndSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func snapshotCart(c *cart.Cart) *cart.Cart {
	cp := *c
	cp.Lines = make([]*cart.Line, len(c.Lines))
	for i, l := range c.Lines {
		lc := *l
		if l.Discount != nil {
			d := *l.Discount
			lc.Discount = &d
		}
		cp.Lines[i] = &lc
	}
	if c.OrderDiscount != nil {
		d := *c.OrderDiscount
		cp.OrderDiscount = &d
	}
	return &cp
}

// toCartResponse projeta o carrinho para a resposta da API.
func toCartResponse(c *cart.Cart) *dto.CartResponse {
	resp := &dto.CartResponse{
		Lines:         make([]dto.CartLineResponse, 0, len(c.Lines)),
		CustomerID:    c.CustomerID,
		Note:          c.Note,
		Subtotal:      c.Subtotal,
		DiscountTotal: c.DiscountTotal,
		Total:         c.Total,
		ItemCount:     c.ItemCount,
	}
	if c.OrderDiscount != nil {
		resp.DiscountKind = c.OrderDiscount.Kind
		resp.DiscountValue = c.OrderDiscount.Value
	}
	for _, l := range c.Lines {
		line := dto.CartLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			VariantID:   l.VariantID,
			ProductName: l.ProductName,
			VariantName: l.VariantName,
			UnitMeasure: l.UnitMeasure,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		}
		if l.Discount != nil {
			line.DiscountKind = l.Discount.Kind
			line.DiscountValue = l.Discount.Value
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}
