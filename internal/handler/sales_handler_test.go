package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-stock-ledger/internal/ledger"
	"go-stock-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingDecrement struct {
	ledger.Store
}

func (failingDecrement) DecrementQuantity(context.Context, uuid.UUID, int, string) (int, error) {
	return 0, errors.New("update timed out")
}

type failingFetch struct {
	ledger.Store
}

func (failingFetch) FetchProduct(context.Context, uuid.UUID) (*model.Product, error) {
	return nil, errors.New("connection refused")
}

func saleBody(id uuid.UUID, qty, price string) string {
	return fmt.Sprintf(`{"product_id":%q,"quantity":%s,"price":%s,"customer_name":"John Doe","payment_method":"credit_card"}`, id, qty, price)
}

func TestCreateSale_Committed(t *testing.T) {
	ta := setupApp(t, appOptions{})
	laptop := ta.seed(t, "LAP001", "Laptop", 999.99, 15)

	var body map[string]interface{}
	status := ta.do(t, http.MethodPost, "/api/v1/sales", saleBody(laptop.ID, "2", "999.99"), &body)
	require.Equal(t, http.StatusCreated, status)

	sale := body["data"].(map[string]interface{})
	assert.EqualValues(t, 2, sale["quantity"])
	assert.InDelta(t, 1999.98, sale["total"], 1e-9)
	assert.Equal(t, "John Doe", sale["customer_name"])
	product := body["product"].(map[string]interface{})
	assert.EqualValues(t, 13, product["quantity"])

	assert.Equal(t, 13, ta.quantityOf(t, laptop))
}

func TestCreateSale_Rejections(t *testing.T) {
	ta := setupApp(t, appOptions{})
	mouse := ta.seed(t, "MOU001", "Wireless Mouse", 29.99, 8)

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"insufficient stock", saleBody(mouse.ID, "9", "29.99"), http.StatusConflict},
		{"zero quantity", saleBody(mouse.ID, "0", "29.99"), http.StatusBadRequest},
		{"negative quantity", saleBody(mouse.ID, "-1", "29.99"), http.StatusBadRequest},
		{"fractional quantity", saleBody(mouse.ID, "1.5", "29.99"), http.StatusBadRequest},
		{"exponent quantity", saleBody(mouse.ID, "1e1", "29.99"), http.StatusBadRequest},
		{"negative price", saleBody(mouse.ID, "1", "-5"), http.StatusBadRequest},
		{"bad product id", `{"product_id":"not-a-uuid","quantity":1,"price":1}`, http.StatusBadRequest},
		{"missing quantity", fmt.Sprintf(`{"product_id":%q,"price":1}`, mouse.ID), http.StatusBadRequest},
		{"malformed json", `{"product_id":`, http.StatusBadRequest},
		{"unknown product", saleBody(uuid.New(), "1", "1"), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body map[string]interface{}
			status := ta.do(t, http.MethodPost, "/api/v1/sales", tc.body, &body)
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, body["error"])
		})
	}

	// Nothing was written by any rejected attempt.
	assert.Equal(t, 8, ta.quantityOf(t, mouse))
	var sales []map[string]interface{}
	require.Equal(t, http.StatusOK, ta.do(t, http.MethodGet, "/api/v1/sales", "", &sales))
	assert.Empty(t, sales)
}

func TestCreateSale_InsufficientStockReportsAvailable(t *testing.T) {
	ta := setupApp(t, appOptions{})
	mouse := ta.seed(t, "MOU001", "Wireless Mouse", 29.99, 8)

	var body map[string]interface{}
	status := ta.do(t, http.MethodPost, "/api/v1/sales", saleBody(mouse.ID, "10", "29.99"), &body)
	require.Equal(t, http.StatusConflict, status)
	assert.EqualValues(t, 8, body["available"])
}

func TestCreateSale_PartialCommit(t *testing.T) {
	ta := setupApp(t, appOptions{wrapStore: func(s ledger.Store) ledger.Store { return failingDecrement{s} }})
	lamp := ta.seed(t, "LAM001", "Desk Lamp", 45.99, 12)

	var body map[string]interface{}
	status := ta.do(t, http.MethodPost, "/api/v1/sales", saleBody(lamp.ID, "2", "45.99"), &body)
	require.Equal(t, http.StatusMultiStatus, status)
	assert.Contains(t, body["warning"], "sale recorded but inventory was not decremented")
	require.NotNil(t, body["sale"])

	assert.Equal(t, 12, ta.quantityOf(t, lamp))
	var sales []map[string]interface{}
	require.Equal(t, http.StatusOK, ta.do(t, http.MethodGet, "/api/v1/sales", "", &sales))
	assert.Len(t, sales, 1)
}

func TestCreateSale_FetchFailure(t *testing.T) {
	ta := setupApp(t, appOptions{wrapStore: func(s ledger.Store) ledger.Store { return failingFetch{s} }})
	lamp := ta.seed(t, "LAM001", "Desk Lamp", 45.99, 12)

	status := ta.do(t, http.MethodPost, "/api/v1/sales", saleBody(lamp.ID, "2", "45.99"), nil)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, 12, ta.quantityOf(t, lamp))
}

func TestSalesEndpoints(t *testing.T) {
	ta := setupApp(t, appOptions{})
	mug := ta.seed(t, "MUG001", "Coffee Mug", 10, 30)

	for _, qty := range []string{"3", "1"} {
		require.Equal(t, http.StatusCreated, ta.do(t, http.MethodPost, "/api/v1/sales", saleBody(mug.ID, qty, "10"), nil))
	}

	var sales []map[string]interface{}
	require.Equal(t, http.StatusOK, ta.do(t, http.MethodGet, "/api/v1/sales", "", &sales))
	require.Len(t, sales, 2)
	first := sales[0]
	assert.Equal(t, "Coffee Mug", first["product"].(map[string]interface{})["name"])

	var summary map[string]interface{}
	require.Equal(t, http.StatusOK, ta.do(t, http.MethodGet, "/api/v1/sales/summary", "", &summary))
	assert.EqualValues(t, 2, summary["total_sales"])
	assert.InDelta(t, 40, summary["total_revenue"], 1e-9)
	assert.InDelta(t, 20, summary["avg_order_value"], 1e-9)

	id := first["id"].(string)
	var one map[string]interface{}
	require.Equal(t, http.StatusOK, ta.do(t, http.MethodGet, "/api/v1/sales/"+id, "", &one))
	assert.Equal(t, id, one["id"])

	require.Equal(t, http.StatusOK, ta.do(t, http.MethodDelete, "/api/v1/sales/"+id, "", nil))
	assert.Equal(t, http.StatusNotFound, ta.do(t, http.MethodDelete, "/api/v1/sales/"+id, "", nil))
	assert.Equal(t, http.StatusNotFound, ta.do(t, http.MethodGet, "/api/v1/sales/"+id, "", nil))
	assert.Equal(t, http.StatusBadRequest, ta.do(t, http.MethodDelete, "/api/v1/sales/xyz", "", nil))

	// Deleting a sale leaves stock where the sales put it.
	assert.Equal(t, 26, ta.quantityOf(t, mug))
}
