package service

import (
	"context"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"

	log "github.com/sirupsen/logrus"
)

// DemoCatalog is the starter catalog used by SEED_DEMO and `stockctl seed`.
var DemoCatalog = []model.Product{
	{SKU: "LAP001", Name: "Laptop", Category: "Electronics", Price: 999.99, Quantity: 15, Description: "High-performance laptop"},
	{SKU: "TSH001", Name: "T-Shirt", Category: "Clothing", Price: 19.99, Quantity: 50, Description: "Cotton t-shirt"},
	{SKU: "MUG001", Name: "Coffee Mug", Category: "Home & Garden", Price: 12.99, Quantity: 30, Description: "Ceramic coffee mug"},
	{SKU: "MOU001", Name: "Wireless Mouse", Category: "Electronics", Price: 29.99, Quantity: 8, Description: "Ergonomic wireless mouse"},
	{SKU: "LAM001", Name: "Desk Lamp", Category: "Home & Garden", Price: 45.99, Quantity: 12, Description: "LED desk lamp"},
}

// SeedDemo inserts DemoCatalog when the catalog is empty and reports how many
// products were created. The insert is all-or-nothing, so a failed run leaves
// the catalog empty and the next run tries again.
func SeedDemo(ctx context.Context, pRepo repository.ProductRepository, actor string) (int, error) {
	count, err := pRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.WithField("products", count).Info("catalog not empty, skipping seed")
		return 0, nil
	}

	products := make([]model.Product, len(DemoCatalog))
	copy(products, DemoCatalog)
	for i := range products {
		products[i].CreatedBy = actor
		products[i].UpdatedBy = actor
	}
	if err := pRepo.CreateBatch(ctx, products); err != nil {
		return 0, err
	}
	log.WithField("products", len(products)).Info("demo catalog seeded")
	return len(products), nil
}
