package dto

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	StoreID  string `json:"store_id,omitempty"`
	Role     string `json:"role,omitempty"` // default: vendedor
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse token JWT e dados básicos do usuário.
type AuthResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	StoreID string `json:"store_id,omitempty"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}
