package sheets_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oriflame-store/internal/application/ports"
	"github.com/jhoicas/oriflame-store/internal/domain/entity"
	"github.com/jhoicas/oriflame-store/internal/infrastructure/sheets"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// scriptServer simula el Web App: decodifica el cuerpo y delega en handle.
func scriptServer(t *testing.T, handle func(req map[string]any) (int, any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		status, body := handle(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(url string) *sheets.Client {
	return sheets.NewClient(sheets.Config{AppsScriptURL: url, Timeout: 2 * time.Second}, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Escrituras
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_AddProductEnviaContrato(t *testing.T) {
	var got map[string]any
	srv := scriptServer(t, func(req map[string]any) (int, any) {
		got = req
		return http.StatusOK, map[string]any{"success": true, "message": "Product added successfully"}
	})

	err := newClient(srv.URL).AddProduct(context.Background(), &entity.Product{
		ID: "p1", Name: "Serum", Price: decimal.RequireFromString("45.99"), Image: "http://img",
	})
	require.NoError(t, err)

	assert.Equal(t, "addProduct", got["action"])
	p, ok := got["product"].(map[string]any)
	require.True(t, ok, "el payload va bajo la clave product")
	assert.Equal(t, "p1", p["id"])
	assert.Equal(t, "45.99", p["price"])
}

func TestClient_AddUserNoEnviaPassword(t *testing.T) {
	var got map[string]any
	srv := scriptServer(t, func(req map[string]any) (int, any) {
		got = req
		return http.StatusOK, map[string]any{"success": true}
	})

	err := newClient(srv.URL).AddUser(context.Background(), &entity.User{
		ID: "u1", Email: "ana@test.com", Password: "secreto", Role: entity.RoleCustomer,
	})
	require.NoError(t, err)
	u := got["user"].(map[string]any)
	assert.Equal(t, "ana@test.com", u["email"])
	_, hasPassword := u["password"]
	assert.False(t, hasPassword)
}

func TestClient_SuccessFalseEsNoDisponible(t *testing.T) {
	srv := scriptServer(t, func(map[string]any) (int, any) {
		return http.StatusOK, map[string]any{"success": false, "error": "Invalid action"}
	})
	err := newClient(srv.URL).AddOrder(context.Background(), &entity.Order{ID: "o1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrRemoteUnavailable)
	assert.Contains(t, err.Error(), "Invalid action")
}

func TestClient_HTTPNo2xxEsNoDisponible(t *testing.T) {
	srv := scriptServer(t, func(map[string]any) (int, any) {
		return http.StatusInternalServerError, map[string]any{"success": true}
	})
	err := newClient(srv.URL).AddOrder(context.Background(), &entity.Order{ID: "o1"})
	assert.ErrorIs(t, err, ports.ErrRemoteUnavailable)
}

func TestClient_TimeoutEsNoDisponible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := sheets.NewClient(sheets.Config{AppsScriptURL: srv.URL, Timeout: 50 * time.Millisecond}, zerolog.Nop())
	err := c.AddOrder(context.Background(), &entity.Order{ID: "o1"})
	assert.ErrorIs(t, err, ports.ErrRemoteUnavailable)
}

func TestClient_RedNoDisponible(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newClient(url).AddOrder(context.Background(), &entity.Order{ID: "o1"})
	assert.ErrorIs(t, err, ports.ErrRemoteUnavailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_SinConfigurar(t *testing.T) {
	for _, url := range []string{"", sheets.PlaceholderURL} {
		c := newClient(url)
		assert.False(t, c.Configured())
		err := c.AddUser(context.Background(), &entity.User{ID: "u"})
		assert.ErrorIs(t, err, ports.ErrRemoteNotConfigured)
		_, err = c.GetUsers(context.Background())
		assert.ErrorIs(t, err, ports.ErrRemoteNotConfigured)
	}
}

func TestClient_SetEndpoint(t *testing.T) {
	c := newClient("")
	c.SetEndpoint("  https://script.example/exec ")
	assert.True(t, c.Configured())
	assert.Equal(t, "https://script.example/exec", c.Endpoint())
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas y normalización
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_GetOrdersNormalizaClaves(t *testing.T) {
	srv := scriptServer(t, func(req map[string]any) (int, any) {
		assert.Equal(t, "getOrders", req["action"])
		return http.StatusOK, map[string]any{
			"success": true,
			"orders": []map[string]any{
				{"ID": "o1", "UserID": "u1", "ProductID": "7", "Total": 12.5, "Date": "2025-01-02T10:00:00Z", "Address": "Calle 1"},
				{"id": "o2", "userid": "u2", "productid": "8", "total": "30.00"},
				{"id": "o3", "user_id": "u3", "product_id": "9"},
				{"userId": "sin-id"},
			},
		}
	})

	orders, err := newClient(srv.URL).GetOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 3, "filas sin id se descartan")

	assert.Equal(t, "u1", orders[0].UserID)
	assert.Equal(t, "7", orders[0].ProductID)
	assert.True(t, decimal.RequireFromString("12.5").Equal(orders[0].Total))
	assert.Equal(t, 2025, orders[0].Date.Year())
	assert.Equal(t, "Calle 1", orders[0].Address)

	assert.Equal(t, "u2", orders[1].UserID)
	assert.True(t, decimal.RequireFromString("30").Equal(orders[1].Total))
	assert.Equal(t, "u3", orders[2].UserID)
	assert.Equal(t, "9", orders[2].ProductID)
}

func TestClient_ColisionDeClavesPrefiereCanonica(t *testing.T) {
	srv := scriptServer(t, func(map[string]any) (int, any) {
		return http.StatusOK, map[string]any{
			"success": true,
			"orders": []map[string]any{
				{"id": "o1", "UserID": "u-mayus", "user_id": "u-guion", "userId": "u1", "productId": "", "ProductID": "7"},
			},
		}
	})
	client := newClient(srv.URL)

	for i := 0; i < 20; i++ {
		orders, err := client.GetOrders(context.Background())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "u1", orders[0].UserID, "intento %d", i)
		assert.Equal(t, "7", orders[0].ProductID, "un valor vacío no pisa uno presente")
	}
}

func TestClient_GetUsersRolPorDefecto(t *testing.T) {
	srv := scriptServer(t, func(map[string]any) (int, any) {
		return http.StatusOK, map[string]any{
			"success": true,
			"users": []map[string]any{
				{"ID": "1", "Email": "a@test.com", "CreatedAt": "2025-01-01T00:00:00Z"},
				{"id": "2", "email": "admin@test.com", "role": "admin"},
				{"id": "3"},
			},
		}
	})
	users, err := newClient(srv.URL).GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2, "usuarios sin email se descartan")
	assert.Equal(t, entity.RoleCustomer, users[0].Role)
	assert.Equal(t, entity.RoleAdmin, users[1].Role)
}

func TestClient_LecturaDirectaComoRespaldo(t *testing.T) {
	script := scriptServer(t, func(map[string]any) (int, any) {
		return http.StatusBadGateway, nil
	})
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sheet-1/values/Products!A:Z", r.URL.Path)
		assert.Equal(t, "k-123", r.URL.Query().Get("key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"values": [][]string{
				{"ID", "Name", "Description", "Price", "Image"},
				{"10", "Mascara", "Volumen", "19.99", "http://img"},
				{"11", "Perfume"},
			},
		})
	}))
	defer api.Close()

	reader := sheets.NewReader(api.URL, "k-123", "sheet-1", time.Second)
	require.NotNil(t, reader)
	c := sheets.NewClient(sheets.Config{AppsScriptURL: script.URL, Reader: reader}, zerolog.Nop())

	products, err := c.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Mascara", products[0].Name)
	assert.True(t, decimal.RequireFromString("19.99").Equal(products[0].Price))
	assert.Equal(t, "", products[1].Image, "celdas faltantes quedan vacías")
}

func TestNewReader_SinCredencialesEsNil(t *testing.T) {
	assert.Nil(t, sheets.NewReader("", "", "id", 0))
	assert.Nil(t, sheets.NewReader("", "your_google_sheets_api_key", "id", 0))
	assert.Nil(t, sheets.NewReader("", "key", "your_spreadsheet_id", 0))
}
