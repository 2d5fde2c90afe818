package repository

import "github.com/jhoicas/oriflame-store/internal/domain/entity"

// UserRepository define el puerto de persistencia local para User (DIP).
// GetByID y GetByEmail devuelven (nil, nil) cuando no existe.
type UserRepository interface {
	Put(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List() ([]*entity.User, error)
}
