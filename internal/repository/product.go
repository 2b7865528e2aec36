package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storefront-labs/shop-api/internal/domain/product"
)

const (
	insertProductSQL = `INSERT INTO products (name, description, price)
		VALUES ($1, $2, $3) RETURNING id`

	listProductsSQL = `SELECT id, name, description, price
		FROM products ORDER BY created_at, id`
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Save inserts the product and returns a copy carrying the database-assigned
// ID.
func (r *ProductRepository) Save(ctx context.Context, p product.Product) (product.Product, error) {
	row := r.pool.QueryRow(ctx, insertProductSQL, p.Name, p.Description, p.Price)
	if err := row.Scan(&p.ID); err != nil {
		return product.Product{}, fmt.Errorf("saving product %q: %w", p.Name, err)
	}
	return p, nil
}

// List returns all products in insertion order.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

func scanProduct(row pgx.CollectableRow) (product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price)
	return p, err
}
