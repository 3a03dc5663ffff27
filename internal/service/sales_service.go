package service

import (
	"context"
	"fmt"

	"go-stock-ledger/internal/ledger"
	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/ws"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type SalesService interface {
	// RecordSale runs the ledger workflow. The outcome is returned even when
	// err is non-nil so callers can surface a partially committed sale.
	RecordSale(ctx context.Context, req ledger.SaleRequest, actor Actor) (*ledger.Outcome, error)
	GetAllSales(ctx context.Context) ([]model.Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	DeleteSale(ctx context.Context, id uuid.UUID, actor Actor) error
	GetSummary(ctx context.Context) (*repository.SalesSummary, error)
}

type salesService struct {
	ledger     *ledger.Ledger
	saleRepo   repository.SaleRepository
	notifier   Notifier
	thresholds Thresholds
}

func NewSalesService(l *ledger.Ledger, sRepo repository.SaleRepository, notifier Notifier, thresholds Thresholds) SalesService {
	return &salesService{
		ledger:     l,
		saleRepo:   sRepo,
		notifier:   notifier,
		thresholds: thresholds,
	}
}

func (s *salesService) RecordSale(ctx context.Context, req ledger.SaleRequest, actor Actor) (*ledger.Outcome, error) {
	req.Actor = actor.ID
	out, err := s.ledger.Record(ctx, req)

	switch out.State {
	case ledger.Committed:
		s.notifier.Publish(ws.Event{
			Type:    ws.EventSaleRecorded,
			Action:  "sale_created",
			Message: fmt.Sprintf("%s sold %d x '%s'", actor.displayName(), out.Sale.Quantity, out.Product.Name),
			Data: map[string]interface{}{
				"sale":         out.Sale,
				"product_id":   out.Product.ID,
				"old_quantity": out.PreviousQuantity,
				"new_quantity": out.Product.Quantity,
			},
			User: actor.event(),
		})
		if out.Product.Quantity < s.thresholds.Low {
			s.notifier.Publish(ws.Event{
				Type:    ws.EventLowStockAlert,
				Message: fmt.Sprintf("'%s' is running low (%d left)", out.Product.Name, out.Product.Quantity),
				Data:    productEventData(out.Product),
			})
		}

	case ledger.PartiallyCommitted:
		s.notifier.Publish(ws.Event{
			Type:    ws.EventSalePartial,
			Action:  "sale_created",
			Message: fmt.Sprintf("sale of '%s' recorded but inventory was not decremented", out.Product.Name),
			Data: map[string]interface{}{
				"sale":       out.Sale,
				"product_id": out.Product.ID,
			},
			User: actor.event(),
		})
	}
	return out, err
}

func (s *salesService) GetAllSales(ctx context.Context) ([]model.Sale, error) {
	return s.saleRepo.FindAll(ctx)
}

func (s *salesService) GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	return s.saleRepo.FindByID(ctx, id)
}

// DeleteSale removes the sale only; product stock is left as it is.
func (s *salesService) DeleteSale(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.saleRepo.Delete(ctx, id, actor.ID); err != nil {
		return err
	}
	log.WithFields(log.Fields{"sale_id": id, "user_id": actor.ID}).Info("sale deleted")
	s.notifier.Publish(ws.Event{
		Type:    ws.EventSaleDeleted,
		Message: fmt.Sprintf("%s deleted a sale", actor.displayName()),
		Data:    map[string]interface{}{"id": id},
		User:    actor.event(),
	})
	return nil
}

func (s *salesService) GetSummary(ctx context.Context) (*repository.SalesSummary, error) {
	return s.saleRepo.GetSummary(ctx)
}
