package localstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/oriflame-store/internal/domain/entity"
	"github.com/jhoicas/oriflame-store/internal/domain/repository"
)

var _ repository.StoreMaintenance = (*Store)(nil)

// Config opciones del almacén local.
type Config struct {
	AdminEmail    string
	AdminPassword string
	FlushTimeout  time.Duration    // por volcado; 0 = 5s
	Now           func() time.Time // reloj para sembrado; nil = time.Now
}

// Store agrupa las tablas de usuarios, productos y órdenes.
// Se construye una vez al arrancar y se comparte por referencia; no requiere cierre
// más allá de un Flush final.
type Store struct {
	cfg      Config
	log      zerolog.Logger
	users    *Table[entity.User]
	products *Table[entity.Product]
	orders   *Table[entity.Order]
}

// New construye el almacén sobre backend y ejecuta Initialize.
func New(ctx context.Context, backend Backend, cfg Config, log zerolog.Logger) (*Store, error) {
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = 5 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = DefaultAdminEmail
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = DefaultAdminPassword
	}
	log = log.With().Str("component", "localstore").Logger()
	s := &Store{
		cfg: cfg,
		log: log,
		users: newTable(entity.TableUsers, KeyUsers, backend, cfg.FlushTimeout, log,
			func(u *entity.User) string { return u.ID },
			func(u *entity.User) time.Time { return u.CreatedAt }),
		products: newTable(entity.TableProducts, KeyProducts, backend, cfg.FlushTimeout, log,
			func(p *entity.Product) string { return p.ID },
			func(p *entity.Product) time.Time { return p.CreatedAt }),
		orders: newTable(entity.TableOrders, KeyOrders, backend, cfg.FlushTimeout, log,
			func(o *entity.Order) string { return o.ID },
			func(o *entity.Order) time.Time { return o.CreatedAt }),
	}
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Users vista de la tabla de usuarios.
func (s *Store) Users() *UserTable { return &UserTable{t: s.users} }

// Products vista de la tabla de productos.
func (s *Store) Products() *ProductTable { return &ProductTable{t: s.products} }

// Orders vista de la tabla de órdenes.
func (s *Store) Orders() *OrderTable { return &OrderTable{t: s.orders} }

// Initialize rehidrata las tres tablas y siembra el admin y los productos de ejemplo si faltan.
func (s *Store) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.users.load(ctx)
	s.products.load(ctx)
	s.orders.load(ctx)

	if err := s.seedAdmin(); err != nil {
		return err
	}
	if s.products.Len() == 0 {
		if err := s.seedProducts(); err != nil {
			return err
		}
	}
	s.log.Info().
		Int("users", s.users.Len()).
		Int("products", s.products.Len()).
		Int("orders", s.orders.Len()).
		Msg("almacén local inicializado")
	return nil
}

// Clear vacía todas las tablas y elimina su respaldo durable. Una tabla cuya clave
// no pudo eliminarse conserva sus datos y el error se devuelve.
func (s *Store) Clear(ctx context.Context) error {
	err := errors.Join(
		s.users.clear(ctx),
		s.products.clear(ctx),
		s.orders.clear(ctx),
	)
	if err != nil {
		return err
	}
	s.log.Warn().Msg("almacén local vaciado")
	return nil
}

// Flush reintenta el volcado de las tablas sucias.
func (s *Store) Flush(_ context.Context) error {
	var pending []string
	if !s.users.flush() {
		pending = append(pending, entity.TableUsers)
	}
	if !s.products.flush() {
		pending = append(pending, entity.TableProducts)
	}
	if !s.orders.flush() {
		pending = append(pending, entity.TableOrders)
	}
	if len(pending) > 0 {
		return &FlushError{Tables: pending}
	}
	return nil
}

// Stats conteos por tabla y tablas sucias.
func (s *Store) Stats() repository.StoreStats {
	st := repository.StoreStats{
		Users:    s.users.Len(),
		Products: s.products.Len(),
		Orders:   s.orders.Len(),
	}
	dirty := map[string]bool{}
	if s.users.Dirty() {
		dirty[entity.TableUsers] = true
	}
	if s.products.Dirty() {
		dirty[entity.TableProducts] = true
	}
	if s.orders.Dirty() {
		dirty[entity.TableOrders] = true
	}
	if len(dirty) > 0 {
		st.Dirty = dirty
	}
	return st
}

// FlushError tablas que siguen sin volcarse tras Flush.
type FlushError struct {
	Tables []string
}

func (e *FlushError) Error() string {
	return "localstore: tablas sin volcar: " + strings.Join(e.Tables, ", ")
}
