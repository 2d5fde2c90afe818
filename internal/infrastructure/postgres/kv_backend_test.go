package postgres_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oriflame-store/internal/infrastructure/localstore"
	"github.com/jhoicas/oriflame-store/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Querier en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

type fakeQuerier struct {
	rows    map[string]string
	execErr error
	stmts   []string
}

func newFakeQuerier() *fakeQuerier { return &fakeQuerier{rows: map[string]string{}} }

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.stmts = append(q.stmts, sql)
	if q.execErr != nil {
		return pgconn.CommandTag{}, q.execErr
	}
	switch {
	case strings.Contains(sql, "INSERT INTO kv_entries"):
		q.rows[args[0].(string)] = args[1].(string)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(sql, "DELETE FROM kv_entries"):
		delete(q.rows, args[0].(string))
		return pgconn.NewCommandTag("DELETE 1"), nil
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	v, ok := q.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: v}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestNewBackend_CreaEsquema(t *testing.T) {
	q := newFakeQuerier()
	_, err := postgres.NewBackend(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, q.stmts, 1)
	assert.Contains(t, q.stmts[0], "CREATE TABLE IF NOT EXISTS kv_entries")
}

func TestNewBackend_ErrorDeEsquema(t *testing.T) {
	q := newFakeQuerier()
	q.execErr = errors.New("permiso denegado")
	_, err := postgres.NewBackend(context.Background(), q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kv_entries")
}

func TestBackend_SaveLoadRemove(t *testing.T) {
	ctx := context.Background()
	b, err := postgres.NewBackend(ctx, newFakeQuerier())
	require.NoError(t, err)

	_, err = b.Load(ctx, localstore.KeyProducts)
	assert.ErrorIs(t, err, localstore.ErrKeyNotFound)

	require.NoError(t, b.Save(ctx, localstore.KeyProducts, []byte(`[{"id":"1"}]`)))
	data, err := b.Load(ctx, localstore.KeyProducts)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(data))

	require.NoError(t, b.Remove(ctx, localstore.KeyProducts))
	_, err = b.Load(ctx, localstore.KeyProducts)
	assert.ErrorIs(t, err, localstore.ErrKeyNotFound)
}

func TestBackend_StoreSobrePostgres(t *testing.T) {
	ctx := context.Background()
	b, err := postgres.NewBackend(ctx, newFakeQuerier())
	require.NoError(t, err)

	s, err := localstore.New(ctx, b, localstore.Config{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 6, s.Stats().Products)
	assert.Empty(t, s.Stats().Dirty)

	raw, err := b.Load(ctx, localstore.KeyUsers)
	require.NoError(t, err)
	assert.Contains(t, string(raw), localstore.DefaultAdminEmail)
}
