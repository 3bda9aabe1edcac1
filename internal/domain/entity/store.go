package entity

import "time"

// Store representa uma loja (ponto de venda) da empresa.
type Store struct {
	ID        string
	CompanyID string
	Name      string
	Code      string // código curto único por empresa
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
