package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Hojas de la planilla, una por entidad.
const (
	SheetUsers    = "Users"
	SheetProducts = "Products"
	SheetOrders   = "Orders"
)

// DefaultSheetsBaseURL API v4 de valores de Google Sheets.
const DefaultSheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// Valores de ejemplo que se tratan como "sin configurar".
const (
	placeholderAPIKey        = "your_google_sheets_api_key"
	placeholderSpreadsheetID = "your_spreadsheet_id"
)

// Reader lectura directa (API key, solo lectura) de una planilla pública.
type Reader struct {
	baseURL       string
	apiKey        string
	spreadsheetID string
	httpClient    *http.Client
}

// NewReader devuelve nil si falta la API key o el id de la planilla.
func NewReader(baseURL, apiKey, spreadsheetID string, timeout time.Duration) *Reader {
	apiKey = strings.TrimSpace(apiKey)
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if apiKey == "" || apiKey == placeholderAPIKey || spreadsheetID == "" || spreadsheetID == placeholderSpreadsheetID {
		return nil
	}
	if baseURL == "" {
		baseURL = DefaultSheetsBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Reader{
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		spreadsheetID: spreadsheetID,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

type valuesResponse struct {
	Values [][]any `json:"values"`
}

// ReadSheet lee la hoja completa (A:Z). La primera fila es la cabecera; cada fila
// siguiente se devuelve como mapa cabecera → celda (celdas faltantes = "").
func (r *Reader) ReadSheet(ctx context.Context, sheet string) ([]map[string]any, error) {
	u := fmt.Sprintf("%s/%s/values/%s?key=%s",
		r.baseURL, url.PathEscape(r.spreadsheetID), url.PathEscape(sheet+"!A:Z"), url.QueryEscape(r.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("sheets api: crear request: %w", err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("sheets api: leer respuesta: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("sheets api: hoja %q no existe o API no habilitada (HTTP 400)", sheet)
	case resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("sheets api: permiso denegado; la planilla debe ser pública (HTTP 403)")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("sheets api: HTTP %d", resp.StatusCode)
	}

	var vr valuesResponse
	if err := json.Unmarshal(raw, &vr); err != nil {
		return nil, fmt.Errorf("sheets api: deserializar: %w", err)
	}
	if len(vr.Values) < 2 {
		return nil, nil
	}
	headers := make([]string, len(vr.Values[0]))
	for i, h := range vr.Values[0] {
		headers[i] = fmt.Sprint(h)
	}
	rows := make([]map[string]any, 0, len(vr.Values)-1)
	for _, line := range vr.Values[1:] {
		row := make(map[string]any, len(headers))
		for i, h := range headers {
			if i < len(line) && line[i] != nil {
				row[h] = fmt.Sprint(line[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
