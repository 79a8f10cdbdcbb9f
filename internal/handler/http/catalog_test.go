package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthLive(t *testing.T) {
	c := newTestClient(t)
	resp, _ := c.do(http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListProducts_Paginated(t *testing.T) {
	c := newTestClient(t)

	resp, err := c.http.Get(c.server.URL + "/api/v1/products")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var page struct {
		Data       []map[string]any `json:"data"`
		TotalCount int              `json:"total_count"`
		PerPage    int              `json:"per_page"`
		HasNext    bool             `json:"has_next"`
	}
	require.NoError(t, decodeJSON(resp, &page))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=300", resp.Header.Get("Cache-Control"))
	assert.Equal(t, 16, page.TotalCount)
	assert.Equal(t, 12, page.PerPage)
	assert.Len(t, page.Data, 12)
	assert.True(t, page.HasNext)
}

func TestListProducts_FiltersAndRejects(t *testing.T) {
	c := newTestClient(t)

	resp, err := c.http.Get(c.server.URL + "/api/v1/products?category=roses&sort=price_desc&per_page=50")
	require.NoError(t, err)
	var page struct {
		Data []struct {
			Category string `json:"category"`
		} `json:"data"`
	}
	require.NoError(t, decodeJSON(resp, &page))
	_ = resp.Body.Close()
	require.NotEmpty(t, page.Data)
	for _, p := range page.Data {
		assert.Equal(t, "roses", p.Category)
	}

	for _, q := range []string{"sort=popularity", "category=cacti", "in_stock=maybe"} {
		resp, env := c.do(http.MethodGet, "/api/v1/products?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		require.NotNil(t, env.Error, q)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	}
}

func TestGetProduct(t *testing.T) {
	c := newTestClient(t)

	resp, env := c.do(http.MethodGet, "/api/v1/products/2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	product := decodeData[map[string]any](t, env)
	assert.Equal(t, "Sweet Avalanche Rose", product["name"])
	assert.Equal(t, "49.99", product["price"])

	resp, env = c.do(http.MethodGet, "/api/v1/products/99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	resp, env = c.do(http.MethodGet, "/api/v1/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_PARAMETER", env.Error.Code)
}

func TestProductLookups(t *testing.T) {
	c := newTestClient(t)

	for _, path := range []string{"featured", "bestsellers", "categories"} {
		resp, env := c.do(http.MethodGet, "/api/v1/products/"+path, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.NotEmpty(t, decodeData[[]map[string]any](t, env), path)
	}
}

func TestContentTypeJSON(t *testing.T) {
	h := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter", strings.NewReader("email=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/newsletter", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
