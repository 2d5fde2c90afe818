package repository

import "github.com/jhoicas/oriflame-store/internal/domain/entity"

// ProductRepository define el puerto de persistencia local para Product (DIP).
type ProductRepository interface {
	// Put inserta o sobrescribe el producto en product.ID.
	Put(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	// Delete no falla si el producto no existe.
	Delete(id string) error
}
