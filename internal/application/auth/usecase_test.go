package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oriflame-store/internal/application/auth"
	"github.com/jhoicas/oriflame-store/internal/application/dto"
	"github.com/jhoicas/oriflame-store/internal/application/usecase"
	"github.com/jhoicas/oriflame-store/internal/domain"
	"github.com/jhoicas/oriflame-store/internal/domain/entity"
	"github.com/jhoicas/oriflame-store/internal/infrastructure/localstore"
	pkgjwt "github.com/jhoicas/oriflame-store/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type offlineMirror struct{}

func (offlineMirror) Configured() bool                                       { return false }
func (offlineMirror) AddUser(context.Context, *entity.User) error            { return nil }
func (offlineMirror) AddProduct(context.Context, *entity.Product) error      { return nil }
func (offlineMirror) AddOrder(context.Context, *entity.Order) error          { return nil }
func (offlineMirror) GetUsers(context.Context) ([]*entity.User, error)       { return nil, nil }
func (offlineMirror) GetProducts(context.Context) ([]*entity.Product, error) { return nil, nil }
func (offlineMirror) GetOrders(context.Context) ([]*entity.Order, error)     { return nil, nil }

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store, err := localstore.New(context.Background(), localstore.NewMemoryBackend(), localstore.Config{}, zerolog.Nop())
	require.NoError(t, err)
	users := usecase.NewUserUseCase(store.Users(), offlineMirror{}, usecase.SyncConfig{}, zerolog.Nop())
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "oriflame-store-test"})
}

func TestAuthUseCase_LoginAdminSembrado(t *testing.T) {
	uc := newAuth(t)

	res, err := uc.Login(dto.LoginRequest{Email: localstore.DefaultAdminEmail, Password: localstore.DefaultAdminPassword})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.User.Role)

	claims, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, localstore.DefaultAdminEmail, claims.Email)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAuthUseCase_LoginCredencialesInvalidas(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.Login(dto.LoginRequest{Email: localstore.DefaultAdminEmail, Password: "incorrecta"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@test.com", Password: "x"})
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestAuthUseCase_RegisterIgnoraRolAdmin(t *testing.T) {
	uc := newAuth(t)

	res, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "ana@test.com", Password: "secreto1", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, res.User.Role)
	assert.False(t, res.Sync.Sheets)

	login, err := uc.Login(dto.LoginRequest{Email: "ana@test.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
}
