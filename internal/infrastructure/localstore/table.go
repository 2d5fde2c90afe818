package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/oriflame-store/internal/domain"
)

type row[T any] struct {
	val T
	seq uint64 // orden de inserción; se conserva en sobrescrituras
}

// Table tabla en memoria indexada por id y volcada completa al Backend tras cada mutación.
// Si el volcado falla la mutación en memoria se mantiene y la tabla queda sucia
// hasta el siguiente volcado exitoso.
type Table[T any] struct {
	mu      sync.RWMutex
	name    string
	key     string
	rows    map[string]*row[T]
	seq     uint64
	dirty   bool
	idOf    func(*T) string
	created func(*T) time.Time

	backend Backend
	timeout time.Duration
	log     zerolog.Logger
}

func newTable[T any](name, key string, backend Backend, timeout time.Duration, log zerolog.Logger,
	idOf func(*T) string, created func(*T) time.Time) *Table[T] {
	return &Table[T]{
		name:    name,
		key:     key,
		rows:    make(map[string]*row[T]),
		idOf:    idOf,
		created: created,
		backend: backend,
		timeout: timeout,
		log:     log.With().Str("table", name).Logger(),
	}
}

// Put inserta o sobrescribe rec en su id. Solo falla si el id está vacío.
func (t *Table[T]) Put(rec *T) error {
	if rec == nil {
		return fmt.Errorf("%s: %w: registro nulo", t.name, domain.ErrInvalidInput)
	}
	id := t.idOf(rec)
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s: %w: id vacío", t.name, domain.ErrInvalidInput)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if r, ok := t.rows[id]; ok {
		r.val = *rec
	} else {
		t.seq++
		t.rows[id] = &row[T]{val: *rec, seq: t.seq}
	}
	t.flushLocked()
	return nil
}

// Get devuelve una copia del registro o false si no existe.
func (t *Table[T]) Get(id string) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	v := r.val
	return &v, true
}

// Find devuelve el primer registro (en orden de inserción) que cumple match.
func (t *Table[T]) Find(match func(*T) bool) (*T, bool) {
	for _, v := range t.inserted() {
		if match(v) {
			return v, true
		}
	}
	return nil, false
}

// List devuelve todos los registros por fecha de creación descendente;
// los empates conservan el orden de inserción.
func (t *Table[T]) List() []*T {
	t.mu.RLock()
	rows := make([]*row[T], 0, len(t.rows))
	for _, r := range t.rows {
		cp := *r
		rows = append(rows, &cp)
	}
	t.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		ci, cj := t.created(&rows[i].val), t.created(&rows[j].val)
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]*T, len(rows))
	for i, r := range rows {
		v := r.val
		out[i] = &v
	}
	return out
}

// Delete elimina el registro si existe; no-op en caso contrario.
func (t *Table[T]) Delete(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	t.flushLocked()
}

// Len número de registros.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Dirty indica si hay cambios en memoria sin volcar al Backend.
func (t *Table[T]) Dirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dirty
}

// inserted copia los registros en orden de inserción (formato del volcado durable).
func (t *Table[T]) inserted() []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.insertedLocked()
}

func (t *Table[T]) insertedLocked() []*T {
	rows := make([]*row[T], 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]*T, len(rows))
	for i, r := range rows {
		v := r.val
		out[i] = &v
	}
	return out
}

func (t *Table[T]) flushLocked() {
	data, err := json.Marshal(t.insertedLocked())
	if err != nil {
		t.dirty = true
		t.log.Error().Err(err).Msg("serializar tabla")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	if err := t.backend.Save(ctx, t.key, data); err != nil {
		t.dirty = true
		t.log.Warn().Err(err).Str("key", t.key).Msg("volcado a almacenamiento durable fallido; se mantiene solo en memoria")
		return
	}
	t.dirty = false
}

// flush reintenta el volcado si la tabla está sucia. Devuelve true si quedó limpia.
func (t *Table[T]) flush() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dirty {
		t.flushLocked()
	}
	return !t.dirty
}

// load reemplaza el contenido en memoria con lo guardado en el Backend.
// Clave ausente, error de lectura o JSON corrupto dejan la tabla vacía.
func (t *Table[T]) load(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = make(map[string]*row[T])
	t.seq = 0
	t.dirty = false

	data, err := t.backend.Load(ctx, t.key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			t.log.Warn().Err(err).Str("key", t.key).Msg("leer almacenamiento durable; se inicia vacío")
		}
		return
	}
	var recs []*T
	if err := json.Unmarshal(data, &recs); err != nil {
		t.log.Warn().Err(err).Str("key", t.key).Msg("datos corruptos; se inicia vacío")
		return
	}
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		id := t.idOf(rec)
		if id == "" {
			continue
		}
		if r, ok := t.rows[id]; ok {
			r.val = *rec
			continue
		}
		t.seq++
		t.rows[id] = &row[T]{val: *rec, seq: t.seq}
	}
	t.log.Debug().Int("rows", len(t.rows)).Msg("tabla rehidratada")
}

// clear elimina la clave durable y, solo si lo logra, vacía la tabla en memoria.
func (t *Table[T]) clear(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.backend.Remove(ctx, t.key); err != nil {
		t.log.Error().Err(err).Str("key", t.key).Msg("eliminar clave durable; la tabla se conserva")
		return fmt.Errorf("%s: eliminar %s: %w", t.name, t.key, err)
	}
	t.rows = make(map[string]*row[T])
	t.seq = 0
	t.dirty = false
	return nil
}
