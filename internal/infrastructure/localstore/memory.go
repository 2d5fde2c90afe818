package localstore

import (
	"context"
	"errors"
	"sync"
)

// ErrQuotaExceeded lo devuelve MemoryBackend cuando una escritura supera la cuota.
var ErrQuotaExceeded = errors.New("localstore: cuota de almacenamiento excedida")

var _ Backend = (*MemoryBackend)(nil)

// MemoryBackend Backend en memoria del proceso. Útil en tests y con STORAGE_DRIVER=memory.
// Con cuota > 0 rechaza escrituras que dejarían el total de bytes por encima de la cuota.
type MemoryBackend struct {
	mu    sync.Mutex
	data  map[string][]byte
	quota int
}

// NewMemoryBackend construye un backend vacío sin cuota.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// SetQuota fija la cuota total en bytes (0 = sin límite).
func (m *MemoryBackend) SetQuota(bytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quota = bytes
}

// Load devuelve una copia del valor guardado.
func (m *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Save reemplaza el valor de la clave.
func (m *MemoryBackend) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quota > 0 {
		total := len(data)
		for k, v := range m.data {
			if k != key {
				total += len(v)
			}
		}
		if total > m.quota {
			return ErrQuotaExceeded
		}
	}
	v := make([]byte, len(data))
	copy(v, data)
	m.data[key] = v
	return nil
}

// Remove elimina la clave; no falla si no existe.
func (m *MemoryBackend) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys devuelve las claves presentes.
func (m *MemoryBackend) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}
