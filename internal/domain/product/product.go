package product

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is a persisted catalog record. The ID is assigned by the store on
// save and never changes afterwards.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
}

// Repository defines persistence operations for products.
type Repository interface {
	// Save persists a new product and returns a copy with the store-assigned
	// ID filled in. The input value is not modified.
	Save(ctx context.Context, p Product) (Product, error)
	// List returns every stored product in insertion order. An empty catalog
	// yields an empty slice, not an error.
	List(ctx context.Context) ([]Product, error)
}
