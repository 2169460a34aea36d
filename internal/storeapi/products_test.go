package storeapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volubiks/storefront/internal/domain"
	"github.com/volubiks/storefront/internal/localstore"
)

func TestListProducts(t *testing.T) {
	newTestApp(t)

	rec, out := doJSON(t, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(4), out["total"])
	rows := out["data"].([]interface{})
	assert.Len(t, rows, 4)
}

func TestListProductsNameFilter(t *testing.T) {
	newTestApp(t)

	_, out := doJSON(t, http.MethodGet, "/api/products?q=pearl", "")
	assert.Equal(t, float64(1), out["total"])

	// injection characters are stripped before matching
	_, out = doJSON(t, http.MethodGet, "/api/products?q=pe%3Carl", "")
	assert.Equal(t, float64(1), out["total"])
}

func TestListProductsCategoryAndSort(t *testing.T) {
	newTestApp(t)

	_, out := doJSON(t, http.MethodGet, "/api/products?category=jewelries&sort=price-asc", "")
	rows := out["data"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "2", first["id"])
}

func TestListProductsPagination(t *testing.T) {
	newTestApp(t)

	_, out := doJSON(t, http.MethodGet, "/api/products?page=2&perPage=3", "")
	assert.Equal(t, float64(4), out["total"])
	rows := out["data"].([]interface{})
	assert.Len(t, rows, 1)
}

func TestGetProductBySlugRecordsLastView(t *testing.T) {
	a := newTestApp(t)

	rec, out := doJSON(t, http.MethodGet, "/api/products/silk-gown", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", dataOf(t, out)["id"])

	var lastView domain.LastView
	require.True(t, a.kv.GetJSON(localstore.KeyLastView, &lastView))
	assert.Equal(t, "clothings", lastView.Category)
}

func TestGetProductNotFound(t *testing.T) {
	newTestApp(t)

	rec, out := doJSON(t, http.MethodGet, "/api/products/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", out["code"])
}

func TestListFeatured(t *testing.T) {
	newTestApp(t)

	rec, out := doJSON(t, http.MethodGet, "/api/featured", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	shelves := dataOf(t, out)
	assert.Contains(t, shelves, "jewelries")
	assert.Contains(t, shelves, "clothings")
	assert.Contains(t, shelves, "drinks")
	assert.Len(t, shelves["jewelries"].([]interface{}), 1)
}
