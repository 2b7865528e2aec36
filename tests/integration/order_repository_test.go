//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/storefront-labs/shop-api/internal/domain/order"
	"github.com/storefront-labs/shop-api/internal/repository"
)

// Orders have no read endpoint, so the atomicity guarantees are verified
// against the database directly, through the real repository.

func openPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := repository.NewPool(context.Background(), databaseURL)
	if err != nil {
		t.Fatalf("connect to postgres: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func countOrders(t *testing.T, pool *pgxpool.Pool, orderNumber string) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM orders WHERE order_number = $1`, orderNumber).Scan(&n)
	if err != nil {
		t.Fatalf("count orders: %v", err)
	}
	return n
}

func countLineItems(t *testing.T, pool *pgxpool.Pool, skuCode string) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM order_line_items WHERE sku_code = $1`, skuCode).Scan(&n)
	if err != nil {
		t.Fatalf("count line items: %v", err)
	}
	return n
}

func TestOrderRepository_CreateWritesAllRows(t *testing.T) {
	ctx := context.Background()
	pool := openPool(t)
	repo := repository.NewOrderRepository(pool)

	number := uuid.New().String()
	created, err := repo.Create(ctx, order.Order{
		OrderNumber: number,
		Items: []order.LineItem{
			{SkuCode: "SKU-" + number + "-A", Price: decimal.RequireFromString("10.50"), Quantity: 1},
			{SkuCode: "SKU-" + number + "-B", Price: decimal.RequireFromString("3.99"), Quantity: 2},
			{SkuCode: "SKU-" + number + "-C", Price: decimal.RequireFromString("100.00"), Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if got := countOrders(t, pool, number); got != 1 {
		t.Fatalf("expected exactly 1 order row, got %d", got)
	}

	rows, err := pool.Query(ctx,
		`SELECT id FROM order_line_items WHERE order_id = $1`, created.ID)
	if err != nil {
		t.Fatalf("query line items: %v", err)
	}
	defer rows.Close()

	persisted := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("scan line item id: %v", err)
		}
		if _, dup := persisted[id]; dup {
			t.Errorf("line item id %d persisted twice", id)
		}
		persisted[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate line items: %v", err)
	}

	if len(persisted) != 3 {
		t.Fatalf("expected 3 line item rows with distinct ids, got %d", len(persisted))
	}
	for _, item := range created.Items {
		if _, ok := persisted[item.ID]; !ok {
			t.Errorf("returned line item id %d has no matching row", item.ID)
		}
	}
}

func TestOrderRepository_FailedCreateLeavesNoRows(t *testing.T) {
	ctx := context.Background()
	pool := openPool(t)
	repo := repository.NewOrderRepository(pool)

	// The second item violates the quantity check constraint, so the batch
	// fails after the order row and the first item were already written
	// inside the transaction.
	number := uuid.New().String()
	goodSku := "SKU-" + number + "-GOOD"
	badSku := "SKU-" + number + "-BAD"

	_, err := repo.Create(ctx, order.Order{
		OrderNumber: number,
		Items: []order.LineItem{
			{SkuCode: goodSku, Price: decimal.RequireFromString("5.00"), Quantity: 1},
			{SkuCode: badSku, Price: decimal.RequireFromString("5.00"), Quantity: -1},
		},
	})
	if err == nil {
		t.Fatal("expected create to fail on the check constraint")
	}

	if got := countOrders(t, pool, number); got != 0 {
		t.Errorf("expected 0 order rows after rollback, got %d", got)
	}
	if got := countLineItems(t, pool, goodSku); got != 0 {
		t.Errorf("expected 0 line item rows for %s after rollback, got %d", goodSku, got)
	}
	if got := countLineItems(t, pool, badSku); got != 0 {
		t.Errorf("expected 0 line item rows for %s after rollback, got %d", badSku, got)
	}
}
