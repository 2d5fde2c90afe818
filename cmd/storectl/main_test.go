package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryEnv(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("APPS_SCRIPT_URL", "")
	t.Setenv("ADMIN_EMAIL", "jefa@tienda.com")
}

func TestRun_SinArgumentosMuestraAyuda(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, &out))
	assert.Contains(t, out.String(), "Uso: storectl")
	assert.Contains(t, out.String(), "--json")
}

func TestRun_ComandoDesconocido(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"exportar"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exportar")
}

func TestRun_StatsJSON(t *testing.T) {
	memoryEnv(t)
	var out bytes.Buffer
	require.NoError(t, run([]string{"stats", "--json"}, &out))

	var got struct {
		Store struct {
			Users    int `json:"users"`
			Products int `json:"products"`
		} `json:"store"`
		Remote struct {
			Configured bool `json:"configured"`
		} `json:"remote"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 1, got.Store.Users)
	assert.Equal(t, 6, got.Store.Products)
	assert.False(t, got.Remote.Configured)
}

func TestRun_UsersTabla(t *testing.T) {
	memoryEnv(t)
	var out bytes.Buffer
	require.NoError(t, run([]string{"users"}, &out))
	assert.Contains(t, out.String(), "EMAIL")
	assert.Contains(t, out.String(), "jefa@tienda.com")
}

func TestRun_ResetExigeConfirmacion(t *testing.T) {
	memoryEnv(t)
	var out bytes.Buffer
	err := run([]string{"reset"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out.Reset()
	require.NoError(t, run([]string{"reset", "--yes"}, &out))
	assert.Contains(t, out.String(), "6 productos")
}

// chdir reproduce t.Chdir (Go 1.24) para toolchains anteriores.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
