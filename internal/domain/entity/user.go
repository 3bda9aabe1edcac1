package entity

import "time"

// Papéis de usuário.
const (
	RoleAdmin    = "admin"
	RoleGerente  = "gerente"
	RoleVendedor = "vendedor"
	RoleCaixa    = "caixa"
)

// User representa um usuário do sistema (operador de caixa, gerente, etc.).
type User struct {
	ID           string
	CompanyID    string
	StoreID      string // loja padrão do usuário
	Name         string
	Email        string
	PasswordHash string
	Role         string // admin, gerente, vendedor, caixa
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
