package ledger

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SaleRequest is a parsed, typed sale submission.
type SaleRequest struct {
	ProductID     uuid.UUID
	Quantity      int
	Price         float64
	CustomerName  string
	PaymentMethod string

	// Actor is recorded as created_by / updated_by on the rows written.
	Actor string
}

// ParseSaleRequest converts raw form values into a SaleRequest. Quantity must
// be a base-10 integer ("5", not "5.0" or "5abc"); price must parse as a
// finite float. Both are then checked by Validate.
func ParseSaleRequest(productID, quantity, price string) (SaleRequest, error) {
	var req SaleRequest

	id, err := uuid.Parse(strings.TrimSpace(productID))
	if err != nil {
		return req, ErrInvalidProduct
	}
	req.ProductID = id

	qty, err := strconv.ParseInt(strings.TrimSpace(quantity), 10, 32)
	if err != nil {
		return req, ErrInvalidQuantity
	}
	req.Quantity = int(qty)

	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return req, ErrInvalidPrice
	}
	req.Price = p

	return req, req.Validate()
}

// Validate checks the request without touching the store.
func (r SaleRequest) Validate() error {
	if r.ProductID == uuid.Nil {
		return ErrInvalidProduct
	}
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if math.IsNaN(r.Price) || math.IsInf(r.Price, 0) || r.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}
