package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oriflame-store/internal/domain/entity"
	"github.com/jhoicas/oriflame-store/internal/infrastructure/localstore"
	"github.com/jhoicas/oriflame-store/internal/infrastructure/sqlite"
)

func openBackend(t *testing.T) (*sqlite.Backend, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	b, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b, path
}

func TestBackend_LoadClaveAusente(t *testing.T) {
	b, _ := openBackend(t)
	_, err := b.Load(context.Background(), "nada")
	assert.ErrorIs(t, err, localstore.ErrKeyNotFound)
}

func TestBackend_SaveSobrescribeYRemove(t *testing.T) {
	b, _ := openBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, "k", []byte(`[1]`)))
	require.NoError(t, b.Save(ctx, "k", []byte(`[1,2]`)))

	got, err := b.Load(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(got))

	require.NoError(t, b.Remove(ctx, "k"))
	require.NoError(t, b.Remove(ctx, "k"), "eliminar dos veces no falla")
	_, err = b.Load(ctx, "k")
	assert.ErrorIs(t, err, localstore.ErrKeyNotFound)
}

// El almacén sobrevive al cierre y reapertura del archivo.
func TestBackend_StorePersisteEntreAperturas(t *testing.T) {
	b, path := openBackend(t)
	ctx := context.Background()
	s, err := localstore.New(ctx, b, localstore.Config{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Orders().Put(&entity.Order{ID: "o-1", UserID: "u-1", CreatedAt: time.Now()}))
	require.NoError(t, b.Close())

	b2, err := sqlite.Open(path)
	require.NoError(t, err)
	defer b2.Close()
	s2, err := localstore.New(ctx, b2, localstore.Config{}, zerolog.Nop())
	require.NoError(t, err)

	o, err := s2.Orders().GetByID("o-1")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, "u-1", o.UserID)
	assert.Equal(t, 1, s2.Stats().Users, "el admin no se duplica al reabrir")
}
