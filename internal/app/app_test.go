package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-inventory/config"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{AppEnv: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "inventory.db")},
		Report:   config.ReportConfig{LowStockThreshold: 5, SalesWindowDays: 30},
	}
	require.NoError(t, cfg.Validate())

	a, err := New(cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

type client struct {
	t   *testing.T
	srv *httptest.Server
}

func (c *client) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, rd)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestHTTPInventoryLifecycle(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()
	c := &client{t: t, srv: srv}

	var cat struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/categories", map[string]string{"name": "Electronics"}, &cat))
	assert.Equal(t, "Electronics", cat.Name)

	var e errorBody
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/v1/categories", map[string]string{"name": "  "}, &e))
	assert.Equal(t, "validation", e.Code)

	type productResp struct {
		ID           int64           `json:"id"`
		Quantity     int             `json:"quantity"`
		Price        decimal.Decimal `json:"price"`
		CategoryName string          `json:"category_name"`
	}
	var mouse productResp
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Mouse", "price": "20.00", "quantity": 50, "category_name": "Electronics",
	}, &mouse))
	assert.Equal(t, 50, mouse.Quantity)

	var got productResp
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/products/"+itoa(mouse.ID), nil, &got))
	assert.Equal(t, "Electronics", got.CategoryName)

	var purchased struct {
		Record struct {
			Quantity   int             `json:"quantity"`
			TotalPrice decimal.Decimal `json:"total_price"`
		} `json:"record"`
		Duplicate      bool `json:"duplicate"`
		RemainingStock int  `json:"remaining_stock"`
	}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/purchases", map[string]interface{}{
		"product_name": "Mouse", "quantity": 3, "reference": "order-1",
	}, &purchased))
	assert.Equal(t, 47, purchased.RemainingStock)
	assert.True(t, purchased.Record.TotalPrice.Equal(decimal.RequireFromString("60.00")))

	// replay of the same order is acknowledged without a second decrement
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/purchases", map[string]interface{}{
		"product_name": "Mouse", "quantity": 3, "reference": "order-1",
	}, &purchased))
	assert.True(t, purchased.Duplicate)

	e = errorBody{}
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/api/v1/purchases", map[string]interface{}{
		"product_id": mouse.ID, "quantity": 100,
	}, &e))
	assert.Equal(t, "insufficient_stock", e.Code)
	assert.Equal(t, "Not enough stock. Available: 47", e.Message)

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/products/"+itoa(mouse.ID), nil, &got))
	assert.Equal(t, 47, got.Quantity)

	var history []json.RawMessage
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/purchases", nil, &history))
	assert.Len(t, history, 1)

	resp, err := srv.Client().Get(srv.URL + "/api/v1/reports")
	require.NoError(t, err)
	text, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(text), "Inventory Management System Report\n"))
	assert.Contains(t, string(text), "Mouse")

	var removed struct {
		ProductsRemoved int64 `json:"products_removed"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/api/v1/categories/"+itoa(cat.ID), nil, &removed))
	assert.EqualValues(t, 1, removed.ProductsRemoved)

	e = errorBody{}
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/products/"+itoa(mouse.ID), nil, &e))
	assert.Equal(t, "not_found", e.Code)

	// the ledger outlives the product
	history = nil
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/purchases", nil, &history))
	assert.Len(t, history, 1)
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()
	c := &client{t: t, srv: srv}

	var health map[string]string
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/healthz", nil, &health))
	assert.Equal(t, "ok", health["status"])

	var e errorBody
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/nope", nil, &e))
	assert.Equal(t, "not_found", e.Code)
}

func TestStartListenerWithoutBrokers(t *testing.T) {
	a := newTestApp(t)
	assert.False(t, a.StartListener(t.Context()))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
