package entity

// Nombres de las tablas del almacén local (uno por tipo de entidad).
const (
	TableUsers    = "users"
	TableProducts = "products"
	TableOrders   = "orders"
)
