package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/oriflame-store/internal/infrastructure/localstore"
)

var _ localstore.Backend = (*Backend)(nil)

// Querier subconjunto de pgxpool.Pool / pgx.Tx que usa el backend.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaKV = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		entry_key  TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// Backend implementación de localstore.Backend sobre una tabla clave/valor en PostgreSQL.
type Backend struct {
	q Querier
}

// NewBackend crea la tabla kv_entries si no existe y devuelve el backend.
func NewBackend(ctx context.Context, q Querier) (*Backend, error) {
	if _, err := q.Exec(ctx, schemaKV); err != nil {
		return nil, fmt.Errorf("crear tabla kv_entries: %w", err)
	}
	return &Backend{q: q}, nil
}

// Load obtiene el valor de la clave.
func (b *Backend) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := b.q.QueryRow(ctx, `SELECT value FROM kv_entries WHERE entry_key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, localstore.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get kv %s: %w", key, err)
	}
	return []byte(value), nil
}

// Save inserta o reemplaza el valor de la clave.
func (b *Backend) Save(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO kv_entries (entry_key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (entry_key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := b.q.Exec(ctx, query, key, string(data)); err != nil {
		return fmt.Errorf("upsert kv %s: %w", key, err)
	}
	return nil
}

// Remove elimina la clave.
func (b *Backend) Remove(ctx context.Context, key string) error {
	if _, err := b.q.Exec(ctx, `DELETE FROM kv_entries WHERE entry_key = $1`, key); err != nil {
		return fmt.Errorf("delete kv %s: %w", key, err)
	}
	return nil
}
