package credit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

// UseCase gerencia o fiado (crediário): consulta e abatimentos. O fiado
// nasce no checkout; aqui ele só é quitado.
type UseCase struct {
	repo repository.CreditRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(repo repository.CreditRepository) *UseCase {
	return &UseCase{repo: repo}
}

var validCreditPaymentMethods = map[string]bool{
	entity.PaymentDinheiro: true,
	entity.PaymentPix:      true,
	entity.PaymentCredito:  true,
	entity.PaymentDebito:   true,
}

// RegisterPayment registra um abatimento sobre o fiado. Valor acima do saldo
// devedor é rejeitado; quando o saldo chega a zero o fiado vira pago.
func (uc *UseCase) RegisterPayment(ctx context.Context, creditID, userID string, in dto.CreditPaymentRequest) (*dto.CreditResponse, error) {
	if creditID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() || !validCreditPaymentMethods[in.Method] {
		return nil, domain.ErrInvalidInput
	}

	credit, err := uc.repo.GetByID(creditID)
	if err != nil {
		return nil, err
	}
	if credit.Status == entity.CreditPago {
		return nil, domain.ErrConflict
	}
	if in.Amount.GreaterThan(credit.Remaining) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	payment := &entity.CreditPayment{
		ID:        uuid.New().String(),
		CreditID:  creditID,
		UserID:    userID,
		Amount:    in.Amount,
		Method:    in.Method,
		Notes:     in.Notes,
		CreatedAt: now,
	}
	if err := uc.repo.CreatePayment(payment); err != nil {
		return nil, err
	}

	credit.Paid = credit.Paid.Add(in.Amount)
	credit.Remaining = credit.Remaining.Sub(in.Amount)
	if credit.Remaining.IsZero() {
		credit.Status = entity.CreditPago
	} else {
		credit.Status = entity.CreditParcial
	}
	credit.UpdatedAt = now
	if err := uc.repo.Update(credit); err != nil {
		return nil, err
	}
	return toCreditResponse(credit), nil
}

// GetByID obtém um fiado por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.CreditResponse, error) {
	credit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toCreditResponse(credit), nil
}

// ListByCustomer lista os fiados do cliente.
func (uc *UseCase) ListByCustomer(ctx context.Context, customerID string, page dto.PageRequest) ([]dto.CreditResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCustomer(customerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toCreditResponses(list), nil
}

// ListByStore lista os fiados da loja, com filtro opcional por status.
func (uc *UseCase) ListByStore(ctx context.Context, storeID, status string, page dto.PageRequest) ([]dto.CreditResponse, error) {
	if storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if status != "" && status != entity.CreditPendente && status != entity.CreditParcial && status != entity.CreditPago {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.ListByStore(storeID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toCreditResponses(list), nil
}

func toCreditResponses(list []*entity.CreditSale) []dto.CreditResponse {
	items := make([]dto.CreditResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCreditResponse(c))
	}
	return items
}

func toCreditResponse(c *entity.CreditSale) *dto.CreditResponse {
	return &dto.CreditResponse{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		SaleID:     c.SaleID,
		Total:      c.Total,
		Paid:       c.Paid,
		Remaining:  c.Remaining,
		DueDate:    c.DueDate,
		Status:     c.Status,
		CreatedAt:  c.CreatedAt,
	}
}
