package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oriflame-store/internal/application/dto"
	"github.com/jhoicas/oriflame-store/internal/application/ports"
	"github.com/jhoicas/oriflame-store/internal/domain"
	"github.com/jhoicas/oriflame-store/internal/domain/entity"
	"github.com/jhoicas/oriflame-store/internal/domain/repository"
)

// ProductUseCase catálogo de productos sobre el almacén local y el espejo remoto.
type ProductUseCase struct {
	repo repository.ProductRepository
	sync syncer
	cfg  SyncConfig
	log  zerolog.Logger

	mu        sync.Mutex
	nextSub   int
	listeners map[int]func()
}

// NewProductUseCase construye el caso de uso. remote puede ser nil (modo solo local).
func NewProductUseCase(repo repository.ProductRepository, remote ports.RemoteMirror, cfg SyncConfig, log zerolog.Logger) *ProductUseCase {
	cfg = cfg.withDefaults()
	log = log.With().Str("usecase", "products").Logger()
	return &ProductUseCase{
		repo:      repo,
		sync:      newSyncer(remote, cfg, log),
		cfg:       cfg,
		log:       log,
		listeners: make(map[int]func()),
	}
}

// Subscribe registra fn para ser llamada tras cada alta, modificación o baja.
// Devuelve la función que cancela la suscripción.
func (uc *ProductUseCase) Subscribe(fn func()) (unsubscribe func()) {
	uc.mu.Lock()
	id := uc.nextSub
	uc.nextSub++
	uc.listeners[id] = fn
	uc.mu.Unlock()
	return func() {
		uc.mu.Lock()
		delete(uc.listeners, id)
		uc.mu.Unlock()
	}
}

func (uc *ProductUseCase) notify() {
	uc.mu.Lock()
	fns := make([]func(), 0, len(uc.listeners))
	for _, fn := range uc.listeners {
		fns = append(fns, fn)
	}
	uc.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Create crea un producto. Si in.ID coincide con uno existente lo sobrescribe
// conservando su fecha de creación.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductWriteResult, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	now := uc.cfg.Now()
	product := &entity.Product{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	} else if existing, err := uc.repo.GetByID(product.ID); err != nil {
		return nil, err
	} else if existing != nil {
		product.CreatedAt = existing.CreatedAt
	}
	if err := uc.repo.Put(product); err != nil {
		return nil, err
	}
	status := uc.sync.write(ctx, "Producto", func(ctx context.Context) error {
		return uc.sync.remote.AddProduct(ctx, product)
	})
	uc.notify()
	return &dto.ProductWriteResult{Product: product, Sync: status}, nil
}

// List une productos remotos y locales sin duplicados por id. Si ambos están vacíos
// devuelve el catálogo de demostración.
func (uc *ProductUseCase) List(ctx context.Context) ([]*entity.Product, error) {
	local, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	remote := fetchRemote(ctx, uc.sync, "products", func(ctx context.Context) ([]*entity.Product, error) {
		return uc.sync.remote.GetProducts(ctx)
	})
	merged := mergeBy(remote, local, func(p *entity.Product) string { return p.ID })
	if len(merged) == 0 {
		uc.log.Debug().Msg("sin productos; se usa el catálogo de demostración")
		return FallbackCatalog(), nil
	}
	return merged, nil
}

// GetByID busca primero en el almacén local y luego en el listado combinado.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}
	all, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
}

// Update modifica los campos informados de un producto local.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductWriteResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
		product.Price = *in.Price
	}
	if in.Image != nil {
		product.Image = *in.Image
	}
	product.UpdatedAt = uc.cfg.Now()
	if err := uc.repo.Put(product); err != nil {
		return nil, err
	}
	uc.notify()
	return &dto.ProductWriteResult{Product: product, Sync: localOnly("Producto")}, nil
}

// Delete elimina un producto local; no falla si no existe.
func (uc *ProductUseCase) Delete(_ context.Context, id string) error {
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.notify()
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: price debe ser mayor que cero", domain.ErrValidation)
	}
	return nil
}
