package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento do cliente.
const (
	DocumentCPF  = "cpf"
	DocumentCNPJ = "cnpj"
)

// Customer representa um cliente da loja (venda identificada e fiado).
type Customer struct {
	ID           string
	CompanyID    string
	Name         string
	DocumentType string // cpf, cnpj
	Document     string
	Email        string
	Phone        string
	CreditLimit  decimal.Decimal // limite para vendas fiado (zero = sem limite definido)
	Notes        string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
