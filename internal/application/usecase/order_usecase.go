package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/oriflame-store/internal/application/dto"
	"github.com/jhoicas/oriflame-store/internal/application/ports"
	"github.com/jhoicas/oriflame-store/internal/domain"
	"github.com/jhoicas/oriflame-store/internal/domain/entity"
	"github.com/jhoicas/oriflame-store/internal/domain/repository"
)

// OrderUseCase órdenes sobre el almacén local y el espejo remoto. Para mostrar cada
// orden usa el catálogo y los usuarios combinados.
type OrderUseCase struct {
	repo     repository.OrderRepository
	products *ProductUseCase
	users    *UserUseCase
	receipts ports.ReceiptRenderer
	sync     syncer
	cfg      SyncConfig
}

// NewOrderUseCase construye el caso de uso. receipts puede ser nil (sin comprobantes).
func NewOrderUseCase(
	repo repository.OrderRepository,
	products *ProductUseCase,
	users *UserUseCase,
	remote ports.RemoteMirror,
	receipts ports.ReceiptRenderer,
	cfg SyncConfig,
	log zerolog.Logger,
) *OrderUseCase {
	cfg = cfg.withDefaults()
	return &OrderUseCase{
		repo:     repo,
		products: products,
		users:    users,
		receipts: receipts,
		sync:     newSyncer(remote, cfg, log.With().Str("usecase", "orders").Logger()),
		cfg:      cfg,
	}
}

// Create registra una orden en estado processing. Si Total es cero se toma el precio
// del producto.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderWriteResult, error) {
	in.Address = strings.TrimSpace(in.Address)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	total := in.Total
	if total.IsZero() {
		if p, err := uc.products.GetByID(ctx, in.ProductID); err == nil {
			total = p.Price
		}
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: total debe ser mayor que cero", domain.ErrValidation)
	}
	now := uc.cfg.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Address:   in.Address,
		Total:     total,
		Status:    entity.OrderStatusProcessing,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Put(order); err != nil {
		return nil, err
	}
	status := uc.sync.write(ctx, "Orden", func(ctx context.Context) error {
		return uc.sync.remote.AddOrder(ctx, order)
	})
	return &dto.OrderWriteResult{Order: order, Sync: status}, nil
}

// ListForUser órdenes de userID, con nombre e imagen del producto, más recientes primero.
func (uc *OrderUseCase) ListForUser(ctx context.Context, userID string) ([]*entity.EnrichedOrder, error) {
	all, err := uc.merged(ctx)
	if err != nil {
		return nil, err
	}
	mine := all[:0]
	for _, o := range all {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	products, err := uc.productIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.EnrichedOrder, 0, len(mine))
	for _, o := range mine {
		out = append(out, enrich(o, products, nil))
	}
	return out, nil
}

// ListAll todas las órdenes con producto y email del comprador (vista de administración).
func (uc *OrderUseCase) ListAll(ctx context.Context) ([]*entity.EnrichedOrder, error) {
	all, err := uc.merged(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productIndex(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.userIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.EnrichedOrder, 0, len(all))
	for _, o := range all {
		out = append(out, enrich(o, products, users))
	}
	return out, nil
}

// UpdateStatus cambia el estado de una orden local.
func (uc *OrderUseCase) UpdateStatus(_ context.Context, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderWriteResult, error) {
	in.Status = strings.TrimSpace(in.Status)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("orden %s: %w", id, domain.ErrNotFound)
	}
	order.Status = in.Status
	order.UpdatedAt = uc.cfg.Now()
	if err := uc.repo.Put(order); err != nil {
		return nil, err
	}
	return &dto.OrderWriteResult{Order: order, Sync: localOnly("Orden")}, nil
}

// Receipt genera el PDF de una orden. Un cliente solo puede pedir sus propias órdenes.
func (uc *OrderUseCase) Receipt(ctx context.Context, orderID, requesterID string, admin bool) ([]byte, error) {
	if uc.receipts == nil {
		return nil, fmt.Errorf("%w: comprobantes deshabilitados", domain.ErrInvalidInput)
	}
	all, err := uc.merged(ctx)
	if err != nil {
		return nil, err
	}
	var order *entity.Order
	for _, o := range all {
		if o.ID == orderID {
			order = o
			break
		}
	}
	if order == nil {
		return nil, fmt.Errorf("orden %s: %w", orderID, domain.ErrNotFound)
	}
	if !admin && order.UserID != requesterID {
		return nil, domain.ErrForbidden
	}
	products, err := uc.productIndex(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.userIndex(ctx)
	if err != nil {
		return nil, err
	}
	enriched := enrich(order, products, users)
	return uc.receipts.RenderOrderReceipt(ctx, enriched, enriched.UserEmail)
}

// merged órdenes remotas y locales sin duplicados por id, por fecha descendente.
func (uc *OrderUseCase) merged(ctx context.Context) ([]*entity.Order, error) {
	local, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	remote := fetchRemote(ctx, uc.sync, "orders", func(ctx context.Context) ([]*entity.Order, error) {
		return uc.sync.remote.GetOrders(ctx)
	})
	all := mergeBy(remote, local, func(o *entity.Order) string { return o.ID })
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return all, nil
}

func (uc *OrderUseCase) productIndex(ctx context.Context) (map[string]*entity.Product, error) {
	list, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		idx[p.ID] = p
	}
	return idx, nil
}

func (uc *OrderUseCase) userIndex(ctx context.Context) (map[string]string, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]string, len(list))
	for _, u := range list {
		idx[u.ID] = u.Email
	}
	return idx, nil
}

// enrich añade datos de producto y, si users no es nil, el email del comprador.
func enrich(o *entity.Order, products map[string]*entity.Product, users map[string]string) *entity.EnrichedOrder {
	e := &entity.EnrichedOrder{Order: *o, ProductName: entity.UnknownProduct}
	if p, ok := products[o.ProductID]; ok {
		e.ProductName = p.Name
		e.ProductImage = p.Image
	}
	if users != nil {
		e.UserEmail = entity.UnknownUser
		if email, ok := users[o.UserID]; ok {
			e.UserEmail = email
		}
	}
	return e
}
