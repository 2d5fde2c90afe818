package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oriflame-store/internal/domain/entity"
)

// CreateOrderRequest entrada para crear una orden. Total en cero toma el precio
// actual del producto.
type CreateOrderRequest struct {
	UserID    string          `json:"userId" form:"userId" validate:"required"`
	ProductID string          `json:"productId" form:"productId" validate:"required"`
	Address   string          `json:"address" form:"address" validate:"required,max=500"`
	Total     decimal.Decimal `json:"total" form:"total"`
}

// UpdateOrderStatusRequest cambio de estado (texto libre).
type UpdateOrderStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,max=50"`
}

// OrderWriteResult orden escrita y estado de sincronización.
type OrderWriteResult struct {
	Order *entity.Order `json:"order"`
	Sync  SyncStatus    `json:"sync"`
}
