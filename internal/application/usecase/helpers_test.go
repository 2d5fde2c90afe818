package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oriflame-store/internal/application/ports"
	"github.com/jhoicas/oriflame-store/internal/application/usecase"
	"github.com/jhoicas/oriflame-store/internal/domain/entity"
	"github.com/jhoicas/oriflame-store/internal/infrastructure/localstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var baseTime = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

// fakeRemote espejo en memoria con fallos inyectables.
type fakeRemote struct {
	mu         sync.Mutex
	configured bool
	writeErr   error
	readErr    error
	users      []*entity.User
	products   []*entity.Product
	orders     []*entity.Order
}

func newFakeRemote() *fakeRemote { return &fakeRemote{configured: true} }

func (f *fakeRemote) Configured() bool { return f.configured }

func (f *fakeRemote) AddUser(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	cp := *u
	cp.Password = ""
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeRemote) AddProduct(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	cp := *p
	f.products = append(f.products, &cp)
	return nil
}

func (f *fakeRemote) AddOrder(_ context.Context, o *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	cp := *o
	f.orders = append(f.orders, &cp)
	return nil
}

func (f *fakeRemote) GetUsers(context.Context) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.configured {
		return nil, ports.ErrRemoteNotConfigured
	}
	return f.users, f.readErr
}

func (f *fakeRemote) GetProducts(context.Context) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.configured {
		return nil, ports.ErrRemoteNotConfigured
	}
	return f.products, f.readErr
}

func (f *fakeRemote) GetOrders(context.Context) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.configured {
		return nil, ports.ErrRemoteNotConfigured
	}
	return f.orders, f.readErr
}

// fixture casos de uso cableados sobre un almacén en memoria y un espejo falso.
type fixture struct {
	store    *localstore.Store
	backend  *localstore.MemoryBackend
	remote   *fakeRemote
	users    *usecase.UserUseCase
	products *usecase.ProductUseCase
	orders   *usecase.OrderUseCase
	admin    *usecase.MaintenanceUseCase
}

func newFixture(t *testing.T, remote *fakeRemote, receipts ports.ReceiptRenderer) *fixture {
	t.Helper()
	backend := localstore.NewMemoryBackend()
	store, err := localstore.New(context.Background(), backend, localstore.Config{
		Now: func() time.Time { return baseTime },
	}, zerolog.Nop())
	require.NoError(t, err)

	tick := baseTime
	var clockMu sync.Mutex
	cfg := usecase.SyncConfig{
		RemoteTimeout: time.Second,
		Now: func() time.Time {
			clockMu.Lock()
			defer clockMu.Unlock()
			tick = tick.Add(time.Minute)
			return tick
		},
	}
	log := zerolog.Nop()
	users := usecase.NewUserUseCase(store.Users(), remote, cfg, log)
	products := usecase.NewProductUseCase(store.Products(), remote, cfg, log)
	return &fixture{
		store:    store,
		backend:  backend,
		remote:   remote,
		users:    users,
		products: products,
		orders:   usecase.NewOrderUseCase(store.Orders(), products, users, remote, receipts, cfg, log),
		admin:    usecase.NewMaintenanceUseCase(store, remote, nil, log),
	}
}

// clearSampleProducts deja la tabla de productos vacía.
func (f *fixture) clearSampleProducts(t *testing.T) {
	t.Helper()
	for _, id := range localstore.SampleProductIDs() {
		require.NoError(t, f.store.Products().Delete(id))
	}
}

func ids[T any](list []*T, id func(*T) string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, id(v))
	}
	return out
}

func productID(p *entity.Product) string { return p.ID }
