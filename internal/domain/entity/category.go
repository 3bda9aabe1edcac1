package entity

import "time"

// Category representa uma categoria de produtos.
type Category struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Color       string // cor de exibição no PDV (hex, opcional)
	SortOrder   int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
