// Package sheets implementa el espejo remoto de la tienda: un cliente HTTP contra
// el Web App de Apps Script que escribe en la hoja de cálculo, más una ruta opcional
// de solo lectura contra la API de valores de Google Sheets.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/oriflame-store/internal/application/ports"
	"github.com/jhoicas/oriflame-store/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ ports.RemoteMirror     = (*Client)(nil)
	_ ports.RemoteConfigurer = (*Client)(nil)
)

// Acciones del contrato con el script remoto.
const (
	ActionAddUser     = "addUser"
	ActionAddProduct  = "addProduct"
	ActionAddOrder    = "addOrder"
	ActionGetUsers    = "getUsers"
	ActionGetProducts = "getProducts"
	ActionGetOrders   = "getOrders"
)

// PlaceholderURL valor de ejemplo que se trata como "sin configurar".
const PlaceholderURL = "YOUR_APPS_SCRIPT_URL_HERE"

const maxResponseBytes = 4 << 20

// Config parámetros del cliente remoto.
type Config struct {
	AppsScriptURL string
	Timeout       time.Duration // timeout de red por petición; 0 = 15s
	Reader        *Reader       // lectura directa opcional; nil = deshabilitada
}

// Client adaptador que implementa RemoteMirror sobre el Web App de Apps Script.
// Usa net/http de la librería estándar, igual que los demás adaptadores HTTP.
type Client struct {
	mu         sync.RWMutex
	endpoint   string
	httpClient *http.Client
	reader     *Reader
	log        zerolog.Logger
}

// NewClient construye el cliente. Con AppsScriptURL vacío o de ejemplo el cliente
// queda en modo solo lectura directa (si hay Reader) o totalmente deshabilitado.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint:   strings.TrimSpace(cfg.AppsScriptURL),
		httpClient: &http.Client{Timeout: timeout},
		reader:     cfg.Reader,
		log:        log.With().Str("component", "sheets").Logger(),
	}
}

// Endpoint URL actual del script.
func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// SetEndpoint cambia la URL del script en caliente (vacío = deshabilitar).
func (c *Client) SetEndpoint(url string) {
	c.mu.Lock()
	c.endpoint = strings.TrimSpace(url)
	c.mu.Unlock()
	c.log.Info().Bool("configured", c.Configured()).Msg("endpoint del espejo actualizado")
}

// Configured indica si hay un script al que enviar escrituras.
func (c *Client) Configured() bool {
	return usableURL(c.Endpoint())
}

func usableURL(u string) bool {
	return u != "" && u != PlaceholderURL
}

// ── Escrituras ────────────────────────────────────────────────────────────────

// AddUser envía el usuario sin la contraseña.
func (c *Client) AddUser(ctx context.Context, user *entity.User) error {
	_, err := c.call(ctx, ActionAddUser, "user", wireUser{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: formatTime(user.CreatedAt),
	})
	return err
}

// AddProduct envía el producto.
func (c *Client) AddProduct(ctx context.Context, product *entity.Product) error {
	_, err := c.call(ctx, ActionAddProduct, "product", wireProduct{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.String(),
		Image:       product.Image,
		CreatedAt:   formatTime(product.CreatedAt),
	})
	return err
}

// AddOrder envía la orden.
func (c *Client) AddOrder(ctx context.Context, order *entity.Order) error {
	_, err := c.call(ctx, ActionAddOrder, "order", wireOrder{
		ID:        order.ID,
		UserID:    order.UserID,
		ProductID: order.ProductID,
		Date:      formatTime(order.Date),
		Address:   order.Address,
		Total:     order.Total.String(),
		Status:    order.Status,
	})
	return err
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// GetUsers lee usuarios del script y, si falla, de la hoja "Users" por la API directa.
func (c *Client) GetUsers(ctx context.Context) ([]*entity.User, error) {
	rows, err := c.read(ctx, ActionGetUsers, "users", SheetUsers)
	if err != nil {
		return nil, err
	}
	return convert(rows, toUser), nil
}

// GetProducts lee productos del script y, si falla, de la hoja "Products".
func (c *Client) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	rows, err := c.read(ctx, ActionGetProducts, "products", SheetProducts)
	if err != nil {
		return nil, err
	}
	return convert(rows, toProduct), nil
}

// GetOrders lee órdenes del script y, si falla, de la hoja "Orders".
func (c *Client) GetOrders(ctx context.Context) ([]*entity.Order, error) {
	rows, err := c.read(ctx, ActionGetOrders, "orders", SheetOrders)
	if err != nil {
		return nil, err
	}
	return convert(rows, toOrder), nil
}

func (c *Client) read(ctx context.Context, action, field, sheet string) ([]map[string]any, error) {
	env, err := c.call(ctx, action, "", nil)
	if err == nil {
		var rows []map[string]any
		if raw, ok := env[field]; ok && len(raw) > 0 && string(raw) != "null" {
			if derr := decodeNumbers(raw, &rows); derr != nil {
				return nil, fmt.Errorf("%w: %s: campo %s ilegible: %v", ports.ErrRemoteUnavailable, action, field, derr)
			}
		}
		return rows, nil
	}
	if c.reader == nil {
		return nil, err
	}
	c.log.Debug().Err(err).Str("sheet", sheet).Msg("script no disponible, usando lectura directa")
	rows, rerr := c.reader.ReadSheet(ctx, sheet)
	if rerr != nil {
		return nil, fmt.Errorf("%w; lectura directa: %v", err, rerr)
	}
	return rows, nil
}

// ── Transporte ────────────────────────────────────────────────────────────────

// call envía {"action": action, field: payload} y devuelve el sobre de respuesta.
// Cualquier fallo se clasifica como ErrRemoteUnavailable (o ErrRemoteNotConfigured).
func (c *Client) call(ctx context.Context, action, field string, payload any) (map[string]json.RawMessage, error) {
	endpoint := c.Endpoint()
	if !usableURL(endpoint) {
		return nil, ports.ErrRemoteNotConfigured
	}

	reqBody := map[string]any{"action": action}
	if field != "" {
		reqBody[field] = payload
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("sheets: serializar request %s: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, unavailable(action, fmt.Errorf("crear HTTP request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, unavailable(action, fmt.Errorf("timeout o cancelación: %w", ctx.Err()))
		}
		return nil, unavailable(action, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, unavailable(action, fmt.Errorf("leer respuesta: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, unavailable(action, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(string(raw), 200)))
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, unavailable(action, fmt.Errorf("respuesta no JSON: %w", err))
	}
	var ok bool
	if s, found := env["success"]; !found || json.Unmarshal(s, &ok) != nil || !ok {
		var msg string
		_ = json.Unmarshal(env["error"], &msg)
		if msg == "" {
			msg = "error desconocido del script"
		}
		return nil, unavailable(action, fmt.Errorf("success=false: %s", msg))
	}

	c.log.Debug().Str("action", action).Dur("elapsed", time.Since(start)).Msg("espejo remoto ok")
	return env, nil
}

func unavailable(action string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ports.ErrRemoteUnavailable, action, cause)
}

func decodeNumbers(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
