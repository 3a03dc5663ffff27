// Package ledger implements the check-and-decrement workflow that turns a
// sale request into a sale row plus a matching reduction of product stock.
//
// The steps run in order: fresh read of the product, validation, sale insert,
// conditional decrement. Nothing is retried. A failure of the decrement after
// the insert succeeded leaves the attempt PartiallyCommitted and is reported
// with ErrPartialCommit so callers can tell it apart from a clean rejection.
package ledger

import (
	"context"
	"time"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/pkg/validator"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Store is the slice of the datastore the workflow needs.
type Store interface {
	// FetchProduct must read the current row, never a cached copy.
	FetchProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	InsertSale(ctx context.Context, sale *model.Sale) error
	// DecrementQuantity subtracts qty only while the stored quantity is at
	// least qty and returns what is left.
	DecrementQuantity(ctx context.Context, id uuid.UUID, qty int, actor string) (int, error)
}

// Outcome describes where an attempt ended. Record always returns one.
type Outcome struct {
	State            State
	Trail            []State
	Sale             *model.Sale
	Product          *model.Product // quantity reflects the decrement when Committed
	PreviousQuantity int
}

type Ledger struct {
	store  Store
	now    func() time.Time
	logger *log.Entry
}

type Option func(*Ledger)

// WithClock overrides the timestamp source for new sale rows.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithLogger(logger *log.Entry) Option {
	return func(l *Ledger) { l.logger = logger }
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
		logger: log.WithField("component", "ledger"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record runs one sale attempt. On any non-committed result the returned
// error is a *Error carrying the failure Kind.
func (l *Ledger) Record(ctx context.Context, req SaleRequest) (*Outcome, error) {
	a := newAttempt()
	out := &Outcome{}
	finish := func(err error) (*Outcome, error) {
		out.State = a.state
		out.Trail = a.trail
		return out, err
	}
	reject := func(kind Kind, err error) (*Outcome, error) {
		a.moveTo(Rejected)
		l.logger.WithFields(log.Fields{
			"product_id": req.ProductID,
			"quantity":   req.Quantity,
			"kind":       kind,
		}).WithError(err).Warn("sale rejected")
		return finish(&Error{Kind: kind, State: Rejected, Err: err})
	}

	a.moveTo(Validating)
	if err := req.Validate(); err != nil {
		return reject(ValidationFailure, err)
	}

	product, err := l.store.FetchProduct(ctx, req.ProductID)
	if err != nil {
		return reject(FetchFailure, err)
	}
	current := product.Quantity
	if current < 0 {
		current = 0
	}
	out.PreviousQuantity = current
	out.Product = product
	if req.Quantity > current {
		return reject(ValidationFailure, ErrInsufficientStock)
	}

	sale := &model.Sale{
		ProductID:     product.ID,
		Quantity:      req.Quantity,
		Price:         req.Price,
		Total:         float64(req.Quantity) * req.Price,
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
	}
	sale.CreatedAt = l.now()
	sale.UpdatedAt = sale.CreatedAt
	sale.CreatedBy = req.Actor
	sale.UpdatedBy = req.Actor

	// The row itself must pass its tags before anything is written.
	if err := validator.Validate(sale); err != nil {
		return reject(ValidationFailure, err)
	}

	a.moveTo(Committing)
	if err := l.store.InsertSale(ctx, sale); err != nil {
		return reject(InsertFailure, err)
	}
	out.Sale = sale

	remaining, err := l.store.DecrementQuantity(ctx, product.ID, req.Quantity, req.Actor)
	if err != nil {
		a.moveTo(PartiallyCommitted)
		l.logger.WithFields(log.Fields{
			"product_id": product.ID,
			"sale_id":    sale.ID,
			"quantity":   req.Quantity,
		}).WithError(err).Error("sale inserted but inventory update failed")
		return finish(&Error{Kind: UpdateFailure, State: PartiallyCommitted, Sale: sale, Err: err})
	}

	a.moveTo(Committed)
	updated := *product
	updated.Quantity = remaining
	out.Product = &updated
	sale.Product = &updated

	l.logger.WithFields(log.Fields{
		"product_id":   product.ID,
		"sale_id":      sale.ID,
		"quantity":     req.Quantity,
		"old_quantity": current,
		"new_quantity": remaining,
	}).Info("sale committed")
	return finish(nil)
}
