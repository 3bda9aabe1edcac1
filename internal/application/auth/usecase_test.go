package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/in100tiva/PDV/internal/application/auth"
	"github.com/in100tiva/PDV/internal/application/dto"
	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	pkgjwt "github.com/in100tiva/PDV/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

type fakeStoreRepo struct {
	stores map[string]*entity.Store
}

func (f *fakeStoreRepo) Create(s *entity.Store) error { return nil }

func (f *fakeStoreRepo) GetByID(id string) (*entity.Store, error) {
	s, ok := f.stores[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeStoreRepo) ListByCompany(companyID string) ([]*entity.Store, error) {
	return nil, nil
}

const (
	testSecret  = "segredo-de-teste"
	testCompany = "empresa-1"
	testStore   = "loja-1"
)

func newUseCase() (*auth.UseCase, *fakeUserRepo) {
	users := newFakeUserRepo()
	stores := &fakeStoreRepo{stores: map[string]*entity.Store{
		testStore: {ID: testStore, CompanyID: testCompany, Name: "Loja Centro"},
	}}
	uc := auth.NewUseCase(users, stores, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "pdv-test",
	}, testCompany)
	return uc, users
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CriaUsuarioComTokenValido(t *testing.T) {
	uc, users := newUseCase()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Maria",
		Email:    "maria@pdv.com",
		Password: "senha-forte",
		StoreID:  testStore,
		Role:     "caixa",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "Maria", out.Name)
	assert.Equal(t, "caixa", out.Role)
	assert.Equal(t, testStore, out.StoreID)

	// O token devolvido deve carregar os claims do usuário criado.
	userID, storeID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.UserID, userID)
	assert.Equal(t, testStore, storeID)
	assert.Equal(t, "caixa", role)

	// A senha nunca é persistida em claro.
	saved := users.byEmail["maria@pdv.com"]
	require.NotNil(t, saved)
	assert.NotEqual(t, "senha-forte", saved.PasswordHash)
	assert.True(t, saved.Active)
	assert.Equal(t, testCompany, saved.CompanyID)
}

func TestRegister_PapelPadraoEhVendedor(t *testing.T) {
	uc, _ := newUseCase()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "joao@pdv.com",
		Password: "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, out.Role)
}

func TestRegister_SenhaCurta_ErrInvalidInput(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "curta@pdv.com",
		Password: "12345",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_PapelDesconhecido_ErrInvalidInput(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "x@pdv.com",
		Password: "123456",
		Role:     "estagiario",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EmailDuplicado_ErrEmailAlreadyExists(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "dup@pdv.com", Password: "123456",
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Email: "dup@pdv.com", Password: "outrasenha",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_LojaInexistente_ErrNotFound(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "semloja@pdv.com",
		Password: "123456",
		StoreID:  "loja-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredenciaisCorretas(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "login@pdv.com", Password: "123456", StoreID: testStore,
	})
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "login@pdv.com", Password: "123456",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, testStore, out.StoreID)
}

func TestLogin_SenhaErrada_ErrUnauthorized(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "login@pdv.com", Password: "123456",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "login@pdv.com", Password: "errada",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailInexistente_ErrUserNotFound(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "nunca@pdv.com", Password: "123456",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInativo_ErrForbidden(t *testing.T) {
	uc, users := newUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "inativo@pdv.com", Password: "123456",
	})
	require.NoError(t, err)
	users.byEmail["inativo@pdv.com"].Active = false

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "inativo@pdv.com", Password: "123456",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
