// Package bootstrap arma el grafo de dependencias compartido por cmd/api y cmd/storectl:
// respaldo durable, almacén local, espejo remoto y casos de uso.
package bootstrap

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jhoicas/oriflame-store/internal/application/auth"
	"github.com/jhoicas/oriflame-store/internal/application/usecase"
	"github.com/jhoicas/oriflame-store/internal/infrastructure/localstore"
	infrapdf "github.com/jhoicas/oriflame-store/internal/infrastructure/pdf"
	"github.com/jhoicas/oriflame-store/internal/infrastructure/postgres"
	"github.com/jhoicas/oriflame-store/internal/infrastructure/sheets"
	"github.com/jhoicas/oriflame-store/internal/infrastructure/sqlite"
	"github.com/jhoicas/oriflame-store/pkg/config"
)

// Container dependencias ya construidas.
type Container struct {
	Store         *localstore.Store
	Remote        *sheets.Client
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	OrderUC       *usecase.OrderUseCase
	MaintenanceUC *usecase.MaintenanceUseCase

	log             zerolog.Logger
	closers         []func()
	catalogRevision atomic.Uint64
}

// New abre el respaldo durable elegido por STORAGE_DRIVER y construye el resto.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	c := &Container{log: log}

	backend, err := c.openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := localstore.New(ctx, backend, localstore.Config{
		AdminEmail:    cfg.Admin.Email,
		AdminPassword: cfg.Admin.Password,
	}, log)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("inicializar almacén local: %w", err)
	}
	c.Store = store

	c.Remote = sheets.NewClient(sheets.Config{
		AppsScriptURL: cfg.Remote.AppsScriptURL,
		Timeout:       cfg.Remote.Timeout,
		Reader:        sheets.NewReader(cfg.Remote.SheetsBaseURL, cfg.Remote.SheetsAPIKey, cfg.Remote.SpreadsheetID, cfg.Remote.Timeout),
	}, log)
	if !c.Remote.Configured() {
		log.Warn().Msg("APPS_SCRIPT_URL sin configurar: las escrituras quedan solo en el almacén local")
	}

	syncCfg := usecase.SyncConfig{RemoteTimeout: cfg.Remote.Timeout}
	c.UserUC = usecase.NewUserUseCase(store.Users(), c.Remote, syncCfg, log)
	c.ProductUC = usecase.NewProductUseCase(store.Products(), c.Remote, syncCfg, log)
	c.OrderUC = usecase.NewOrderUseCase(store.Orders(), c.ProductUC, c.UserUC, c.Remote,
		infrapdf.NewReceiptGenerator(""), syncCfg, log)
	c.MaintenanceUC = usecase.NewMaintenanceUseCase(store, c.Remote, c.Remote, log)
	c.AuthUC = auth.NewAuthUseCase(c.UserUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	unsubscribe := c.ProductUC.Subscribe(func() {
		rev := c.catalogRevision.Add(1)
		log.Info().
			Uint64("revision", rev).
			Int("products", c.Store.Stats().Products).
			Msg("catálogo modificado")
	})
	c.closers = append(c.closers, unsubscribe)
	return c, nil
}

// CatalogRevision cantidad de altas, modificaciones y bajas de productos desde el arranque.
func (c *Container) CatalogRevision() uint64 {
	return c.catalogRevision.Load()
}

func (c *Container) openBackend(ctx context.Context, cfg *config.Config) (localstore.Backend, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		backend, err := postgres.NewBackend(ctx, pool)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.log.Info().Str("driver", cfg.Storage.Driver).Msg("respaldo durable listo")
		return backend, nil
	case config.StorageMemory:
		c.log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		return localstore.NewMemoryBackend(), nil
	default:
		backend, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("abrir SQLite %s: %w", cfg.Storage.SQLitePath, err)
		}
		c.closers = append(c.closers, func() {
			if err := backend.Close(); err != nil {
				c.log.Error().Err(err).Msg("cerrar SQLite")
			}
		})
		c.log.Info().Str("driver", config.StorageSQLite).Str("path", cfg.Storage.SQLitePath).Msg("respaldo durable listo")
		return backend, nil
	}
}

// Shutdown vuelca las tablas pendientes y libera el respaldo durable.
func (c *Container) Shutdown(ctx context.Context) {
	if c.MaintenanceUC != nil {
		if err := c.MaintenanceUC.Flush(ctx); err != nil {
			c.log.Error().Err(err).Msg("volcado final del almacén local")
		}
	}
	c.Close()
}

// Close libera recursos en orden inverso de apertura.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
