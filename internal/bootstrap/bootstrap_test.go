package bootstrap_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oriflame-store/internal/application/dto"
	"github.com/jhoicas/oriflame-store/internal/bootstrap"
	"github.com/jhoicas/oriflame-store/pkg/config"
)

func testConfig(driver, sqlitePath string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "test", Name: "oriflame-store"},
		Storage: config.StorageConfig{Driver: driver, SQLitePath: sqlitePath},
		Remote:  config.RemoteConfig{Timeout: time.Second},
		Admin:   config.AdminConfig{Email: "jefa@tienda.com", Password: "clave123"},
		JWT:     config.JWTConfig{Secret: "s3cr3t", Expiration: 5, Issuer: "test"},
	}
}

func TestNew_MemoriaSinEspejo(t *testing.T) {
	c, err := bootstrap.New(context.Background(), testConfig(config.StorageMemory, ""), zerolog.Nop())
	require.NoError(t, err)
	defer c.Shutdown(context.Background())

	assert.False(t, c.Remote.Configured())
	st := c.MaintenanceUC.Stats()
	assert.Equal(t, 1, st.Users)
	assert.Equal(t, 6, st.Products)

	login, err := c.AuthUC.Login(dto.LoginRequest{Email: "jefa@tienda.com", Password: "clave123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestNew_SQLitePersisteEntreArranques(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tienda.db")
	cfg := testConfig(config.StorageSQLite, path)
	ctx := context.Background()

	c, err := bootstrap.New(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	res, err := c.UserUC.Register(ctx, dto.RegisterRequest{Email: "ana@test.com", Password: "secreto"})
	require.NoError(t, err)
	assert.True(t, res.Sync.Local)
	assert.False(t, res.Sync.Sheets)
	c.Shutdown(ctx)

	reopened, err := bootstrap.New(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Shutdown(ctx)
	u, err := reopened.UserUC.GetByEmail("ana@test.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, res.User.ID, u.ID)
}

func TestNew_RevisionDeCatalogo(t *testing.T) {
	ctx := context.Background()
	c, err := bootstrap.New(ctx, testConfig(config.StorageMemory, ""), zerolog.Nop())
	require.NoError(t, err)
	defer c.Shutdown(ctx)
	assert.Zero(t, c.CatalogRevision())

	res, err := c.ProductUC.Create(ctx, dto.CreateProductRequest{
		Name:        "Perfume",
		Description: "Eau de toilette",
		Price:       decimal.NewFromInt(45),
		Image:       "perfume.png",
	})
	require.NoError(t, err)
	require.NoError(t, c.ProductUC.Delete(ctx, res.Product.ID))
	assert.Equal(t, uint64(2), c.CatalogRevision())

	c.Close()
	_, err = c.ProductUC.Create(ctx, dto.CreateProductRequest{
		Name:        "Crema",
		Description: "Hidratante",
		Price:       decimal.NewFromInt(20),
		Image:       "crema.png",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c.CatalogRevision(), "Close cancela la suscripción")
}
