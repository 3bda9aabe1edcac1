package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
	"github.com/in100tiva/PDV/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

var validRoles = map[string]bool{
	entity.RoleAdmin:    true,
	entity.RoleGerente:  true,
	entity.RoleVendedor: true,
	entity.RoleCaixa:    true,
}

// UseCase casos de uso de autenticação: registro e login.
type UseCase struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	jwtCfg    JWTConfig
	companyID string
}

// NewUseCase constrói o caso de uso de auth. companyID é a empresa única da
// instalação (single-tenant).
func NewUseCase(userRepo repository.UserRepository, storeRepo repository.StoreRepository, jwtCfg JWTConfig, companyID string) *UseCase {
	return &UseCase{userRepo: userRepo, storeRepo: storeRepo, jwtCfg: jwtCfg, companyID: companyID}
}

// Register cria um usuário: hasheia a senha com bcrypt e persiste. Devolve
// ErrEmailAlreadyExists se o email já existe.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	if in.Email == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.userRepo.GetByEmail(in.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if in.StoreID != "" {
		if _, err := uc.storeRepo.GetByID(in.StoreID); err != nil {
			return nil, err
		}
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	if !validRoles[role] {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    uc.companyID,
		StoreID:      in.StoreID,
		Name:         name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return uc.buildAuthResponse(user)
}

// Login verifica email/senha, gera JWT e retorna token + usuário.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	return uc.buildAuthResponse(user)
}

func (uc *UseCase) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.StoreID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:   token,
		UserID:  user.ID,
		StoreID: user.StoreID,
		Name:    user.Name,
		Role:    user.Role,
	}, nil
}
