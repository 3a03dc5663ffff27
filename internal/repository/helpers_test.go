package repository

import (
	"context"
	"testing"

	"go-stock-ledger/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Sale{}), "failed to migrate test database")
	return db
}

func seedProduct(t *testing.T, repo ProductRepository, sku, name, category string, price float64, qty int) *model.Product {
	t.Helper()
	p := &model.Product{SKU: sku, Name: name, Category: category, Price: price, Quantity: qty}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}
