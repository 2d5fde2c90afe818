package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Order. Después de la creación el estado es texto libre.
const (
	OrderStatusProcessing = "processing"
)

// Etiquetas usadas cuando una orden referencia un usuario o producto inexistente.
const (
	UnknownProduct = "Unknown Product"
	UnknownUser    = "Unknown User"
)

// Order representa una compra de un producto por un usuario.
// UserID y ProductID no tienen integridad referencial.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	ProductID string          `json:"productId"`
	Address   string          `json:"address"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// EnrichedOrder orden con datos denormalizados de producto y usuario para mostrar.
type EnrichedOrder struct {
	Order
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage,omitempty"`
	UserEmail    string `json:"userEmail,omitempty"`
}
