package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase constrói o caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create cria um cliente novo. Documento (CPF/CNPJ) duplicado na empresa é
// rejeitado.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DocumentType != "" && in.DocumentType != entity.DocumentCPF && in.DocumentType != entity.DocumentCNPJ {
		return nil, domain.ErrInvalidInput
	}
	if in.CreditLimit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Document != "" {
		if _, err := uc.repo.GetByCompanyAndDocument(companyID, in.Document); err == nil {
			return nil, domain.ErrDuplicate
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		DocumentType: in.DocumentType,
		Document:     in.Document,
		Email:        in.Email,
		Phone:        in.Phone,
		CreditLimit:  in.CreditLimit,
		Notes:        in.Notes,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtém um cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update atualiza um cliente. Documento não muda após o cadastro.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		customer.Name = *in.Name
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.CreditLimit != nil {
		if in.CreditLimit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		customer.CreditLimit = *in.CreditLimit
	}
	if in.Notes != nil {
		customer.Notes = *in.Notes
	}
	if in.Active != nil {
		customer.Active = *in.Active
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes da empresa com busca por nome ou documento.
func (uc *CustomerUseCase) List(ctx context.Context, companyID, search string, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return items, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		DocumentType: c.DocumentType,
		Document:     c.Document,
		Email:        c.Email,
		Phone:        c.Phone,
		CreditLimit:  c.CreditLimit,
		Active:       c.Active,
	}
}
