package handler

import (
	"go-stock-ledger/internal/ws"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Inventory *InventoryHandler
	Sales     *SalesHandler
	Dashboard *DashboardHandler
}

// Register mounts the API under /api/v1 behind auth, plus /ws when hub is set.
func Register(app *fiber.App, h Handlers, auth fiber.Handler, hub *ws.Hub) {
	api := app.Group("/api/v1", auth)

	// Dashboard
	api.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)
	api.Get("/analytics", h.Dashboard.GetAnalytics)
	api.Get("/alerts/low-stock", h.Inventory.GetLowStock)

	// Products
	api.Get("/products", h.Inventory.GetProducts)
	api.Get("/products/categories", h.Inventory.GetCategories)
	api.Get("/products/:id", h.Inventory.GetProduct)
	api.Post("/products", h.Inventory.CreateProduct)
	api.Put("/products/:id", h.Inventory.UpdateProduct)
	api.Delete("/products/:id", h.Inventory.DeleteProduct)

	// Sales
	api.Get("/sales", h.Sales.GetSales)
	api.Get("/sales/summary", h.Sales.GetSummary)
	api.Get("/sales/:id", h.Sales.GetSale)
	api.Post("/sales", h.Sales.CreateSale)
	api.Delete("/sales/:id", h.Sales.DeleteSale)

	// WebSocket Route
	if hub != nil {
		app.Use("/ws", UpgradeOnly)
		app.Get("/ws", Live(hub))
	}
}
