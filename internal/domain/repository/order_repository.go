package repository

import "github.com/jhoicas/oriflame-store/internal/domain/entity"

// OrderRepository define el puerto de persistencia local para Order (DIP).
type OrderRepository interface {
	Put(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	List() ([]*entity.Order, error)
	ListByUser(userID string) ([]*entity.Order, error)
}
