package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"go-stock-ledger/internal/ledger"
	"go-stock-ledger/internal/middleware"
	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/service"
	"go-stock-ledger/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nopNotifier struct{}

func (nopNotifier) Publish(ws.Event) {}

type testApp struct {
	app      *fiber.App
	db       *gorm.DB
	products repository.ProductRepository
	sales    repository.SaleRepository
}

type appOptions struct {
	auth      fiber.Handler
	wrapStore func(ledger.Store) ledger.Store
}

func setupApp(t *testing.T, opts appOptions) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Sale{}))

	ta := &testApp{
		db:       db,
		products: repository.NewProductRepo(db),
		sales:    repository.NewSaleRepo(db),
	}
	thresholds := service.Thresholds{Low: 10, Medium: 20}

	var store ledger.Store = repository.NewLedgerStore(ta.products, ta.sales)
	if opts.wrapStore != nil {
		store = opts.wrapStore(store)
	}

	h := Handlers{
		Inventory: NewInventoryHandler(service.NewInventoryService(ta.products, nopNotifier{}, thresholds)),
		Sales:     NewSalesHandler(service.NewSalesService(ledger.New(store), ta.sales, nopNotifier{}, thresholds)),
		Dashboard: NewDashboardHandler(service.NewDashboardService(ta.products, ta.sales, thresholds, 5)),
	}

	auth := opts.auth
	if auth == nil {
		auth = middleware.AnonymousAuth()
	}

	ta.app = fiber.New()
	ta.app.Get("/healthz", Health(db))
	Register(ta.app, h, auth, nil)
	return ta
}

func (ta *testApp) seed(t *testing.T, sku, name string, price float64, qty int) *model.Product {
	t.Helper()
	p := &model.Product{SKU: sku, Name: name, Category: "Electronics", Price: price, Quantity: qty}
	require.NoError(t, ta.products.Create(context.Background(), p))
	return p
}

func (ta *testApp) quantityOf(t *testing.T, p *model.Product) int {
	t.Helper()
	stored, err := ta.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	return stored.Quantity
}

// do sends a request and decodes the JSON body into out when out is non-nil.
func (ta *testApp) do(t *testing.T, method, path, body string, out interface{}, headers ...string) int {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
