package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-stock-ledger/internal/config"
	"go-stock-ledger/internal/handler"
	"go-stock-ledger/internal/ledger"
	"go-stock-ledger/internal/logging"
	"go-stock-ledger/internal/middleware"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/service"
	"go-stock-ledger/internal/ws"
	"go-stock-ledger/pkg/database"
	"go-stock-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	// 2. Setup Database
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Wiring Layers
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	if cfg.SeedDemo {
		if _, err := service.SeedDemo(ctx, productRepo, "system"); err != nil {
			log.WithError(err).Warn("failed to seed demo catalog")
		}
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)

	thresholds := service.Thresholds{Low: cfg.LowStockThreshold, Medium: cfg.MediumStockThreshold}
	stockLedger := ledger.New(repository.NewLedgerStore(productRepo, saleRepo))

	invService := service.NewInventoryService(productRepo, wsHub, thresholds)
	salesService := service.NewSalesService(stockLedger, saleRepo, wsHub, thresholds)
	dashService := service.NewDashboardService(productRepo, saleRepo, thresholds, cfg.RecentSalesLimit)

	auth := middleware.AnonymousAuth()
	if cfg.AuthDisabled {
		log.Warn("AUTH_DISABLED is set: every request runs as the system user")
	} else {
		auth = middleware.RequireAuth(jwt.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer))
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	app.Get("/healthz", handler.Health(db))
	handler.Register(app, handler.Handlers{
		Inventory: handler.NewInventoryHandler(invService),
		Sales:     handler.NewSalesHandler(salesService),
		Dashboard: handler.NewDashboardHandler(dashService),
	}, auth, wsHub)

	// 6. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Panic("server stopped")
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}
