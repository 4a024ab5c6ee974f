package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltyorg/northwind/internal/config"
	"github.com/saltyorg/northwind/internal/database"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:       8000,
		DBPath:     "unused",
		DBMaxConns: 2,
		LogLevel:   "info",
		Timeouts:   config.DefaultTimeoutConfig(),
	}
}

// newTestServer serves the router over a migrated and seeded database
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "northwind.db"), 2)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Seed(ctx))

	s, err := NewServer(db, testConfig())
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestCategories(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/categories", "")

	assert.Equal(t, http.StatusOK, status)
	categories := body["categories"].([]any)
	require.Len(t, categories, 8)
	assert.Equal(t, map[string]any{"id": float64(1), "name": "Beverages"}, categories[0])
	assert.Equal(t, map[string]any{"id": float64(8), "name": "Seafood"}, categories[7])

	// Repeated reads are identical
	_, again := do(t, ts, http.MethodGet, "/categories", "")
	assert.Equal(t, body, again)
}

func TestCustomers(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/customers", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["customers"], map[string]any{
		"id":           "ALFKI",
		"name":         "Alfreds Futterkiste",
		"full_address": "Obere Str. 57 12209 Berlin Germany",
	})
}

func TestProductByID(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/products/1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"id": float64(1), "name": "Chai"}, body)

	status, _ = do(t, ts, http.MethodGet, "/products/1000", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, ts, http.MethodGet, "/products/chai", "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestEmployees(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/employees", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["employees"], map[string]any{
		"id": float64(1), "last_name": "Davolio", "first_name": "Nancy", "city": "Seattle",
	})

	status, _ = do(t, ts, http.MethodGet, "/employees?order=foo", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, ts, http.MethodGet, "/employees?order=last_name&limit=2", "")
	assert.Equal(t, http.StatusOK, status)
	employees := body["employees"].([]any)
	require.Len(t, employees, 2)
	assert.Equal(t, "Buchanan", employees[0].(map[string]any)["last_name"])
	assert.Equal(t, "Davolio", employees[1].(map[string]any)["last_name"])

	for _, path := range []string{"/employees?offset=5", "/employees?limit=3&offset=5", "/employees?limit=-1&offset=99"} {
		status, body = do(t, ts, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, status, path)
		assert.Empty(t, body["employees"], path)
		assert.NotNil(t, body["employees"], path)
	}
}

func TestProductsExtended(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/products_extended", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["products_extended"], map[string]any{
		"id": float64(1), "name": "Chai", "category": "Beverages", "supplier": "Exotic Liquids",
	})
}

func TestProductOrders(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/products/10/orders", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["orders"], map[string]any{
		"id": float64(10273), "customer": "QUICK-Stop", "quantity": float64(24), "total_price": 565.44,
	})

	status, body = do(t, ts, http.MethodGet, "/products/2/orders", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["orders"])

	status, _ = do(t, ts, http.MethodGet, "/products/1000/orders", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, ts, http.MethodGet, "/products/1000/order", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCategoryLifecycle(t *testing.T) {
	ts := newTestServer(t)

	status, created := do(t, ts, http.MethodPost, "/categories", `{"name":"X"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "X", created["name"])
	id := int64(created["id"].(float64))
	path := "/categories/" + strconv.FormatInt(id, 10)

	status, updated := do(t, ts, http.MethodPut, path, `{"name":"Y"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"id": float64(id), "name": "Y"}, updated)

	status, got := do(t, ts, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Y", got["name"])

	status, deleted := do(t, ts, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"deleted": float64(1)}, deleted)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		status, _ = do(t, ts, method, path, "")
		assert.Equal(t, http.StatusNotFound, status, method)
	}
	status, _ = do(t, ts, http.MethodPut, path, `{"name":"Z"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/suppliers", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found", body["error"])

	status, _ = do(t, ts, http.MethodPatch, "/categories", `{"name":"X"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestIndexAndHealth(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hello!", body["message"])

	status, body = do(t, ts, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestNewServer_InvalidSubnet(t *testing.T) {
	cfg := testConfig()
	cfg.AllowSubnet = "10.0.0.0"

	_, err := NewServer(nil, cfg)

	assert.Error(t, err)
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Bind = "127.0.0.1"
	cfg.Port = freePort(t)

	s, err := NewServer(nil, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	cancel()

	assert.NoError(t, <-done)
}
