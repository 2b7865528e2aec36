// Package handler exposes the product and order services over HTTP,
// translating JSON bodies to the domain DTO shapes and domain errors to
// {code, message} responses.
package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/storefront-labs/shop-api/internal/domain/order"
	"github.com/storefront-labs/shop-api/internal/domain/product"
)

// Handler serves the HTTP API endpoints.
type Handler struct {
	products *product.Service
	orders   *order.Service
}

// New constructs a Handler with the required domain services.
func New(products *product.Service, orders *order.Service) *Handler {
	return &Handler{
		products: products,
		orders:   orders,
	}
}

// Routes returns a router with every API endpoint mounted under /api.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/product", h.CreateProduct)
		r.Get("/product", h.ListProducts)
		r.Post("/order", h.PlaceOrder)
	})
	return r
}
