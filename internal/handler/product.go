package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/storefront-labs/shop-api/internal/domain/product"
)

// CreateProduct handles POST /api/product. Creation is fire-and-forget: the
// response carries no body and no assigned identifier, only 201.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req product.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.products.Create(ctx, req); err != nil {
		if isProductValidationErr(err) {
			respondError(ctx, w, http.StatusBadRequest, err.Error())
			return
		}
		zctx.From(ctx).Error("Creating product", zap.Error(err))
		respondError(ctx, w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// ListProducts handles GET /api/product. An empty catalog yields a literal
// empty JSON array, never null and never an error.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.products.ListAll(ctx)
	if err != nil {
		zctx.From(ctx).Error("Listing products", zap.Error(err))
		respondError(ctx, w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(ctx, w, http.StatusOK, products)
}

func isProductValidationErr(err error) bool {
	return errors.Is(err, product.ErrNameRequired) ||
		errors.Is(err, product.ErrDescriptionRequired) ||
		errors.Is(err, product.ErrNegativePrice)
}
