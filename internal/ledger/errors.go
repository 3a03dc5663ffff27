package ledger

import (
	"errors"
	"fmt"

	"go-stock-ledger/internal/model"
)

// Kind classifies why a sale attempt did not reach Committed.
type Kind string

const (
	FetchFailure      Kind = "fetch_failure"
	ValidationFailure Kind = "validation_failure"
	InsertFailure     Kind = "insert_failure"
	UpdateFailure     Kind = "update_failure"
)

var (
	ErrInvalidProduct    = errors.New("product reference is required")
	ErrInvalidQuantity   = errors.New("quantity must be a positive whole number")
	ErrInvalidPrice      = errors.New("price must be a finite, non-negative number")
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrPartialCommit matches any UpdateFailure: the sale row exists but the
	// product quantity was not reduced.
	ErrPartialCommit = errors.New("sale recorded but inventory was not decremented")
)

// Error is returned by Ledger.Record for every non-committed outcome.
type Error struct {
	Kind  Kind
	State State

	// Sale is set only for UpdateFailure, where the sale row was persisted.
	Sale *model.Sale
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case UpdateFailure:
		return fmt.Sprintf("%s: %v", ErrPartialCommit.Error(), e.Err)
	case FetchFailure:
		return fmt.Sprintf("fetch product: %v", e.Err)
	case InsertFailure:
		return fmt.Sprintf("insert sale: %v", e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == ErrPartialCommit && e.Kind == UpdateFailure
}

// KindOf extracts the failure kind from err, if err came from the ledger.
func KindOf(err error) (Kind, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind, true
	}
	return "", false
}

// IsPartial reports whether err describes a partial commit.
func IsPartial(err error) bool {
	return errors.Is(err, ErrPartialCommit)
}
