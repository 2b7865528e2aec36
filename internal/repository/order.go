package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storefront-labs/shop-api/internal/domain/order"
)

const (
	insertOrderSQL = `INSERT INTO orders (order_number)
		VALUES ($1) RETURNING id`

	insertLineItemSQL = `INSERT INTO order_line_items (order_id, sku_code, price, quantity)
		VALUES ($1, $2, $3, $4) RETURNING id`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists the order and all of its line items inside a single
// transaction. Readers never observe a partially written order: on any
// failure the transaction is rolled back and no rows remain.
func (r *OrderRepository) Create(ctx context.Context, o order.Order) (order.Order, error) {
	// Work on a private copy of the items so the caller's value stays intact.
	items := make([]order.LineItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return order.Order{}, fmt.Errorf("beginning order transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, insertOrderSQL, o.OrderNumber).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("creating order %q: %w", o.OrderNumber, err)
	}

	batch := &pgx.Batch{}
	for _, item := range o.Items {
		batch.Queue(insertLineItemSQL, o.ID, item.SkuCode, item.Price, item.Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range o.Items {
		if err := results.QueryRow().Scan(&o.Items[i].ID); err != nil {
			_ = results.Close()
			return order.Order{}, fmt.Errorf("creating line item %q: %w", o.Items[i].SkuCode, err)
		}
	}
	if err := results.Close(); err != nil {
		return order.Order{}, fmt.Errorf("closing line item batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, fmt.Errorf("committing order %q: %w", o.OrderNumber, err)
	}
	return o, nil
}
