package order

import (
	"context"

	"github.com/shopspring/decimal"
)

// Order is a persisted order aggregate. Line items belong exclusively to
// their order: they are written and removed together with it and are never
// addressable on their own.
type Order struct {
	ID          string
	OrderNumber string
	Items       []LineItem
}

// LineItem is a single position within an order.
type LineItem struct {
	ID       int64
	SkuCode  string
	Price    decimal.Decimal
	Quantity int
}

// Repository defines persistence operations for orders.
type Repository interface {
	// Create persists the order together with all of its line items as one
	// atomic unit and returns a copy with store-assigned IDs filled in.
	// Either every record is durable after a nil return, or none is.
	Create(ctx context.Context, o Order) (Order, error)
}
