package repository

import "context"

// StoreStats conteo de registros por tabla y estado de sincronización con el almacenamiento durable.
type StoreStats struct {
	Users    int             `json:"users"`
	Products int             `json:"products"`
	Orders   int             `json:"orders"`
	Dirty    map[string]bool `json:"dirty,omitempty"` // tablas con cambios aún no escritos
}

// StoreMaintenance operaciones de mantenimiento sobre el almacén local completo.
type StoreMaintenance interface {
	// Clear vacía las tres tablas y elimina su respaldo durable. Irreversible.
	Clear(ctx context.Context) error
	// Initialize rehidrata desde el almacenamiento durable y siembra admin y productos de ejemplo.
	Initialize(ctx context.Context) error
	// Flush reintenta escribir las tablas marcadas como sucias.
	Flush(ctx context.Context) error
	Stats() StoreStats
}
