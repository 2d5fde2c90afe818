// Package localstore implementa el almacén local de la tienda: tres tablas en memoria
// (usuarios, productos, órdenes) respaldadas por un Backend durable clave/valor.
// Cada mutación reescribe la tabla completa como un arreglo JSON bajo su clave.
package localstore

import (
	"context"
	"errors"
)

// Claves durables por tipo de entidad. Solo el Store escribe en ellas.
const (
	KeyUsers    = "store_users"
	KeyProducts = "store_products"
	KeyOrders   = "store_orders"
)

// ErrKeyNotFound lo devuelve un Backend cuando la clave no existe.
var ErrKeyNotFound = errors.New("localstore: clave no encontrada")

// Backend persistencia durable clave/valor donde se vuelcan las tablas.
// Implementaciones: MemoryBackend, sqlite.Backend, postgres.Backend.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}
