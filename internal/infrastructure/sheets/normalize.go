package sheets

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/oriflame-store/internal/domain/entity"
)

// Frontera de normalización: todo lo que llega del espejo (script o lectura directa)
// pasa por aquí antes de convertirse en entity. Las claves se pliegan a minúsculas
// sin separadores, así userId, userid, UserID y user_id son la misma columna.

// cases.Caser no es seguro entre goroutines; se crea uno por llamada.
func foldKey(k string) string {
	k = cases.Fold().String(strings.TrimSpace(k))
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ', '.':
			return -1
		}
		return r
	}, k)
}

// record fila remota con claves plegadas.
type record map[string]any

// newRecord pliega las claves de raw. Si dos claves colisionan gana el valor no vacío;
// entre dos no vacíos gana la clave ya canónica (camelCase sin separadores) y, a igual
// rango, la menor en orden lexicográfico.
func newRecord(raw map[string]any) record {
	r := make(record, len(raw))
	rank := make(map[string]int, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := raw[k]
		fk := foldKey(k)
		if prev, dup := r[fk]; dup {
			if isBlank(v) || (!isBlank(prev) && rank[fk] <= keyRank(k)) {
				continue
			}
		}
		r[fk] = v
		rank[fk] = keyRank(k)
	}
	return r
}

// keyRank 0 para claves canónicas como userId, 1 para UserID, user_id, etc.
func keyRank(k string) int {
	if k == "" || strings.ContainsAny(k, "_- .") || !unicode.IsLower([]rune(k)[0]) {
		return 1
	}
	return 0
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// str devuelve el primer valor no vacío entre las claves dadas, como texto.
func (r record) str(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case json.Number:
			s = t.String()
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(t)
		default:
			b, err := json.Marshal(t)
			if err != nil {
				continue
			}
			s = string(b)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func (r record) decimal(keys ...string) decimal.Decimal {
	s := strings.TrimPrefix(r.str(keys...), "$")
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006",
}

func (r record) time(keys ...string) time.Time {
	s := r.str(keys...)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// toUser devuelve nil si la fila no trae email (clave de deduplicación).
func toUser(r record) *entity.User {
	u := &entity.User{
		ID:        r.str("id"),
		Email:     r.str("email"),
		Role:      r.str("role"),
		CreatedAt: r.time("createdat", "created", "date"),
	}
	if u.Email == "" {
		return nil
	}
	if u.Role != entity.RoleAdmin {
		u.Role = entity.RoleCustomer
	}
	return u
}

func toProduct(r record) *entity.Product {
	p := &entity.Product{
		ID:          r.str("id"),
		Name:        r.str("name"),
		Description: r.str("description"),
		Price:       r.decimal("price"),
		Image:       r.str("image", "imageurl"),
		CreatedAt:   r.time("createdat", "addedat", "created"),
		UpdatedAt:   r.time("updatedat"),
	}
	if p.ID == "" {
		return nil
	}
	return p
}

func toOrder(r record) *entity.Order {
	o := &entity.Order{
		ID:        r.str("id", "orderid"),
		UserID:    r.str("userid", "user"),
		ProductID: r.str("productid", "product"),
		Address:   r.str("address"),
		Total:     r.decimal("total"),
		Status:    r.str("status"),
		Date:      r.time("date", "createdat"),
		CreatedAt: r.time("createdat", "date"),
		UpdatedAt: r.time("updatedat"),
	}
	if o.ID == "" {
		return nil
	}
	return o
}

func convert[T any](rows []map[string]any, fn func(record) *T) []*T {
	out := make([]*T, 0, len(rows))
	for _, raw := range rows {
		if v := fn(newRecord(raw)); v != nil {
			out = append(out, v)
		}
	}
	return out
}
