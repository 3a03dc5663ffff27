package repository

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSaleNotFound    = errors.New("sale not found")
	// ErrStockConflict means the conditional decrement matched no row: the
	// product's quantity was already below the requested amount at write time.
	ErrStockConflict = errors.New("stock changed concurrently; quantity no longer covers the sale")
)
