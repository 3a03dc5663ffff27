package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCRUD(t *testing.T) {
	ta := setupApp(t, appOptions{})

	var created map[string]interface{}
	status := ta.do(t, http.MethodPost, "/api/v1/products",
		`{"sku":"LAP001","name":"Laptop","category":"Electronics","price":999.99,"quantity":15,"description":"High-performance laptop"}`, &created)
	require.Equal(t, http.StatusCreated, status)
	data := created["data"].(map[string]interface{})
	id := data["id"].(string)
	assert.Equal(t, "medium", data["stock_level"])
	assert.Equal(t, "system", data["created_by"])

	assert.Equal(t, http.StatusConflict, ta.do(t, http.MethodPost, "/api/v1/products", `{"sku":"LAP001","name":"Dup"}`, nil))
	assert.Equal(t, http.StatusBadRequest, ta.do(t, http.MethodPost, "/api/v1/products", `{"sku":"","name":"No SKU"}`, nil))
	assert.Equal(t, http.StatusBadRequest, ta.do(t, http.MethodPost, "/api/v1/products", `{"sku":"X","name":"Neg","quantity":-2}`, nil))

	var updated map[string]interface{}
	status = ta.do(t, http.MethodPut, "/api/v1/products/"+id,
		`{"sku":"LAP001","name":"Laptop","category":"Electronics","price":899.99,"quantity":5}`, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "low", updated["data"].(map[string]interface{})["stock_level"])

	var one map[string]interface{}
	require.Equal(t, http.StatusOK, ta.do(t, http.MethodGet, "/api/v1/products/"+id, "", &one))
	assert.InDelta(t, 899.99, one["price"], 1e-9)

	require.Equal(t, http.StatusOK, ta.do(t, http.MethodDelete, "/api/v1/products/"+id, "", nil))
	assert.Equal(t, http.StatusNotFound, ta.do(t, http.MethodGet, "/api/v1/products/"+id, "", nil))
	assert.Equal(t, http.StatusNotFound, ta.do(t, http.MethodDelete, "/api/v1/products/"+id, "", nil))
	assert.Equal(t, http.StatusBadRequest, ta.do(t, http.MethodGet, "/api/v1/products/123", "", nil))
}

func TestProductListing(t *testing.T) {
	ta := setupApp(t, appOptions{})
	ta.seed(t, "LAP001", "Laptop", 999.99, 15)
	ta.seed(t, "MOU001", "Wireless Mouse", 29.99, 8)
	ta.seed(t, "TSH001", "T-Shirt", 19.99, 50)

	var products []map[string]interface{}
	require.Equal(t, http.StatusOK, ta.do(t, http.MethodGet, "/api/v1/products", "", &products))
	assert.Len(t, products, 3)

	require.Equal(t, http.StatusOK, ta.do(t, http.MethodGet, "/api/v1/products?q=mou", "", &products))
	require.Len(t, products, 1)
	assert.Equal(t, "low", products[0]["stock_level"])

	require.Equal(t, http.StatusOK, ta.do(t, http.MethodGet, "/api/v1/products?category=Clothing", "", &products))
	assert.Empty(t, products)

	var categories []string
	require.Equal(t, http.StatusOK, ta.do(t, http.MethodGet, "/api/v1/products/categories", "", &categories))
	assert.Equal(t, []string{"Electronics"}, categories)

	var alerts map[string]interface{}
	require.Equal(t, http.StatusOK, ta.do(t, http.MethodGet, "/api/v1/alerts/low-stock", "", &alerts))
	assert.EqualValues(t, 1, alerts["count"])
}

func TestProductSKUReusableAfterDelete(t *testing.T) {
	ta := setupApp(t, appOptions{})
	body := `{"sku":"LAP001","name":"Laptop","category":"Electronics","price":999.99,"quantity":15}`

	var first map[string]interface{}
	require.Equal(t, http.StatusCreated, ta.do(t, http.MethodPost, "/api/v1/products", body, &first))
	oldID := first["data"].(map[string]interface{})["id"].(string)

	assert.Equal(t, http.StatusConflict, ta.do(t, http.MethodPost, "/api/v1/products", body, nil))
	require.Equal(t, http.StatusOK, ta.do(t, http.MethodDelete, "/api/v1/products/"+oldID, "", nil))

	var second map[string]interface{}
	require.Equal(t, http.StatusCreated, ta.do(t, http.MethodPost, "/api/v1/products", body, &second))
	newID := second["data"].(map[string]interface{})["id"].(string)
	assert.NotEqual(t, oldID, newID)

	// The revived SKU is live again and guarded like any other.
	assert.Equal(t, http.StatusConflict, ta.do(t, http.MethodPost, "/api/v1/products", body, nil))

	var products []map[string]interface{}
	require.Equal(t, http.StatusOK, ta.do(t, http.MethodGet, "/api/v1/products", "", &products))
	require.Len(t, products, 1)
	assert.Equal(t, newID, products[0]["id"])
}

func TestProductStoreFailureIsServerError(t *testing.T) {
	ta := setupApp(t, appOptions{})
	sqlDB, err := ta.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	var body map[string]interface{}
	status := ta.do(t, http.MethodPost, "/api/v1/products", `{"sku":"LAP001","name":"Laptop","quantity":1}`, &body)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body["error"])

	// Validation still answers before the store is touched.
	assert.Equal(t, http.StatusBadRequest, ta.do(t, http.MethodPost, "/api/v1/products", `{"sku":"","name":"Laptop"}`, nil))
	assert.Equal(t, http.StatusInternalServerError, ta.do(t, http.MethodPut, "/api/v1/products/6f1c9a52-8d7e-4c1b-9f0a-2b3c4d5e6f70",
		`{"sku":"LAP001","name":"Laptop"}`, nil))
}
