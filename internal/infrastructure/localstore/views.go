package localstore

import (
	"github.com/jhoicas/oriflame-store/internal/domain/entity"
	"github.com/jhoicas/oriflame-store/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserTable)(nil)
	_ repository.ProductRepository = (*ProductTable)(nil)
	_ repository.OrderRepository   = (*OrderTable)(nil)
)

// UserTable adaptador de la tabla de usuarios al puerto UserRepository.
type UserTable struct {
	t *Table[entity.User]
}

// Put inserta o sobrescribe el usuario.
func (r *UserTable) Put(user *entity.User) error { return r.t.Put(user) }

// GetByID obtiene un usuario por ID.
func (r *UserTable) GetByID(id string) (*entity.User, error) {
	u, ok := r.t.Get(id)
	if !ok {
		return nil, nil
	}
	return u, nil
}

// GetByEmail busca por email exacto.
func (r *UserTable) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.t.Find(func(u *entity.User) bool { return u.Email == email })
	if !ok {
		return nil, nil
	}
	return u, nil
}

// List lista usuarios, más recientes primero.
func (r *UserTable) List() ([]*entity.User, error) { return r.t.List(), nil }

// ProductTable adaptador de la tabla de productos al puerto ProductRepository.
type ProductTable struct {
	t *Table[entity.Product]
}

// Put inserta o sobrescribe el producto.
func (r *ProductTable) Put(product *entity.Product) error { return r.t.Put(product) }

// GetByID obtiene un producto por ID.
func (r *ProductTable) GetByID(id string) (*entity.Product, error) {
	p, ok := r.t.Get(id)
	if !ok {
		return nil, nil
	}
	return p, nil
}

// List lista productos, más recientes primero.
func (r *ProductTable) List() ([]*entity.Product, error) { return r.t.List(), nil }

// Delete elimina un producto por ID.
func (r *ProductTable) Delete(id string) error {
	r.t.Delete(id)
	return nil
}

// OrderTable adaptador de la tabla de órdenes al puerto OrderRepository.
type OrderTable struct {
	t *Table[entity.Order]
}

// Put inserta o sobrescribe la orden.
func (r *OrderTable) Put(order *entity.Order) error { return r.t.Put(order) }

// GetByID obtiene una orden por ID.
func (r *OrderTable) GetByID(id string) (*entity.Order, error) {
	o, ok := r.t.Get(id)
	if !ok {
		return nil, nil
	}
	return o, nil
}

// List lista órdenes, más recientes primero.
func (r *OrderTable) List() ([]*entity.Order, error) { return r.t.List(), nil }

// ListByUser lista las órdenes de un usuario.
func (r *OrderTable) ListByUser(userID string) ([]*entity.Order, error) {
	all := r.t.List()
	out := make([]*entity.Order, 0, len(all))
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
