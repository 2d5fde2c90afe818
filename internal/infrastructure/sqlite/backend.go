// Package sqlite implementa localstore.Backend sobre un archivo SQLite (driver Go puro,
// sin cgo) usando GORM. Es el backend durable por defecto.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/oriflame-store/internal/infrastructure/localstore"
)

var _ localstore.Backend = (*Backend)(nil)

// kvEntry fila de la tabla clave/valor: una por tabla del almacén local.
type kvEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:128"`
	Value     string `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string { return "kv_entries" }

// Backend persistencia clave/valor en SQLite.
type Backend struct {
	db *gorm.DB
}

// Open abre (o crea) la base en path y migra la tabla kv_entries.
func Open(path string) (*Backend, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migrar kv_entries: %w", err)
	}
	return &Backend{db: db}, nil
}

// Load obtiene el valor de la clave.
func (b *Backend) Load(ctx context.Context, key string) ([]byte, error) {
	var e kvEntry
	err := b.db.WithContext(ctx).Where("entry_key = ?", key).Take(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, localstore.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get kv %s: %w", key, err)
	}
	return []byte(e.Value), nil
}

// Save inserta o reemplaza el valor de la clave.
func (b *Backend) Save(ctx context.Context, key string, data []byte) error {
	e := kvEntry{Key: key, Value: string(data), UpdatedAt: time.Now()}
	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("upsert kv %s: %w", key, err)
	}
	return nil
}

// Remove elimina la clave; no falla si no existe.
func (b *Backend) Remove(ctx context.Context, key string) error {
	if err := b.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&kvEntry{}).Error; err != nil {
		return fmt.Errorf("delete kv %s: %w", key, err)
	}
	return nil
}

// Close cierra la conexión subyacente.
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
