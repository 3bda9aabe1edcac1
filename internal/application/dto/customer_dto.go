package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name         string          `json:"name"`
	DocumentType string          `json:"document_type,omitempty"` // cpf | cnpj
	Document     string          `json:"document,omitempty"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	CreditLimit  decimal.Decimal `json:"credit_limit,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id.
type UpdateCustomerRequest struct {
	Name        *string          `json:"name,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// CustomerResponse cliente na resposta.
type CustomerResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	DocumentType string          `json:"document_type,omitempty"`
	Document     string          `json:"document,omitempty"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	Active       bool            `json:"active"`
}
