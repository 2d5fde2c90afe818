package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oriflame-store/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. Con ID informado la operación
// sobrescribe el producto existente.
type CreateProductRequest struct {
	ID          string          `json:"id,omitempty" form:"id" validate:"omitempty,max=100"`
	Name        string          `json:"name" form:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" form:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" form:"price"`
	Image       string          `json:"image" form:"image" validate:"required"`
}

// UpdateProductRequest actualización parcial; los campos nil no cambian.
type UpdateProductRequest struct {
	Name        *string          `json:"name" form:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" form:"description"`
	Price       *decimal.Decimal `json:"price" form:"price"`
	Image       *string          `json:"image" form:"image"`
}

// ProductWriteResult producto escrito y estado de sincronización.
type ProductWriteResult struct {
	Product *entity.Product `json:"product"`
	Sync    SyncStatus      `json:"sync"`
}
