package service

import (
	"context"
	"sync"
	"testing"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/ws"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Sale{}))
	return db
}

// recordingNotifier keeps every published event in order.
type recordingNotifier struct {
	mu     sync.Mutex
	events []ws.Event
}

func (n *recordingNotifier) Publish(ev ws.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Type)
	}
	return out
}

var testThresholds = Thresholds{Low: 10, Medium: 20}

var testActor = Actor{ID: "user-1", Name: "Alice", Email: "alice@example.com"}

func seedProduct(t *testing.T, repo repository.ProductRepository, sku, name string, price float64, qty int) *model.Product {
	t.Helper()
	p := &model.Product{SKU: sku, Name: name, Category: "General", Price: price, Quantity: qty}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}
