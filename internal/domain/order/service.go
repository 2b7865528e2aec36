package order

import (
	"context"
	"fmt"

	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sentinel errors for order validation.
var (
	ErrEmptyItems      = fmt.Errorf("order line items required")
	ErrSkuCodeRequired = fmt.Errorf("skuCode required")
)

// InvalidQuantityError indicates a line item with a negative quantity.
type InvalidQuantityError struct {
	SkuCode string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must not be negative for sku %s", e.SkuCode)
}

// Service encapsulates order registration logic: DTO mapping, order number
// generation, and persistence. SKU codes are deliberately not checked against
// the product catalog.
type Service struct {
	orders Repository

	// newOrderNumber generates the external-facing order token. Overridable
	// in tests.
	newOrderNumber func() string
}

// NewService creates an order Service backed by the given repository.
func NewService(orders Repository) *Service {
	return &Service{
		orders: orders,
		newOrderNumber: func() string {
			return uuid.New().String()
		},
	}
}

// PlaceOrder maps the request line items onto a new order aggregate one to
// one, generates a unique order number, and persists everything as a single
// unit. The returned order carries all store-assigned identifiers.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	items := make([]LineItem, len(req.Items))
	for i, dto := range req.Items {
		if dto.SkuCode == "" {
			return nil, ErrSkuCodeRequired
		}
		if dto.Quantity < 0 {
			return nil, &InvalidQuantityError{SkuCode: dto.SkuCode}
		}
		items[i] = LineItem{
			SkuCode:  dto.SkuCode,
			Price:    dto.Price,
			Quantity: dto.Quantity,
		}
	}

	created, err := s.orders.Create(ctx, Order{
		OrderNumber: s.newOrderNumber(),
		Items:       items,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	zctx.From(ctx).Info("Order placed",
		zap.String("id", created.ID),
		zap.String("order_number", created.OrderNumber),
		zap.Int("items", len(created.Items)),
	)
	return &created, nil
}
