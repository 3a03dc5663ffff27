package repository

import (
	"context"

	"go-stock-ledger/internal/model"

	"github.com/google/uuid"
)

// LedgerStore adapts the product and sale repositories to ledger.Store.
type LedgerStore struct {
	Products ProductRepository
	Sales    SaleRepository
}

func NewLedgerStore(products ProductRepository, sales SaleRepository) *LedgerStore {
	return &LedgerStore{Products: products, Sales: sales}
}

func (s *LedgerStore) FetchProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.Products.FindByID(ctx, id)
}

func (s *LedgerStore) InsertSale(ctx context.Context, sale *model.Sale) error {
	return s.Sales.Create(ctx, sale)
}

func (s *LedgerStore) DecrementQuantity(ctx context.Context, id uuid.UUID, qty int, actor string) (int, error) {
	return s.Products.DecrementQuantity(ctx, id, qty, actor)
}
