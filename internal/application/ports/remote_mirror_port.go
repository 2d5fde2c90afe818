package ports

import (
	"context"
	"errors"

	"github.com/jhoicas/oriflame-store/internal/domain/entity"
)

var (
	// ErrRemoteUnavailable agrupa cualquier fallo del espejo remoto: red, timeout,
	// HTTP no 2xx, respuesta ilegible o success:false.
	ErrRemoteUnavailable = errors.New("espejo remoto no disponible")
	// ErrRemoteNotConfigured el espejo no tiene endpoint configurado (modo solo local).
	ErrRemoteNotConfigured = errors.New("espejo remoto no configurado")
)

// RemoteMirror define el puerto de salida hacia el endpoint remoto (hoja de cálculo).
// Es best-effort: no reintenta ni encola. Los registros que devuelve ya están
// normalizados al esquema canónico de entity.
type RemoteMirror interface {
	Configured() bool
	AddUser(ctx context.Context, user *entity.User) error
	AddProduct(ctx context.Context, product *entity.Product) error
	AddOrder(ctx context.Context, order *entity.Order) error
	GetUsers(ctx context.Context) ([]*entity.User, error)
	GetProducts(ctx context.Context) ([]*entity.Product, error)
	GetOrders(ctx context.Context) ([]*entity.Order, error)
}

// RemoteConfigurer permite cambiar el endpoint del espejo en caliente.
type RemoteConfigurer interface {
	Endpoint() string
	SetEndpoint(url string)
}
