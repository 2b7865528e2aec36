package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/storefront-labs/shop-api/internal/domain/order"
)

// placeOrderResponse returns the generated order number as the external
// correlation token. The internal order ID stays internal.
type placeOrderResponse struct {
	OrderNumber string `json:"orderNumber"`
}

// PlaceOrder handles POST /api/order.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req order.PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	placed, err := h.orders.PlaceOrder(ctx, req)
	if err != nil {
		status, msg := orderErrorStatus(err)
		if status == http.StatusInternalServerError {
			zctx.From(ctx).Error("Placing order", zap.Error(err))
		}
		respondError(ctx, w, status, msg)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, placeOrderResponse{
		OrderNumber: placed.OrderNumber,
	})
}

// orderErrorStatus maps domain errors to HTTP statuses: an empty request is
// 400, per-item failures are 422, everything else is a 500.
func orderErrorStatus(err error) (int, string) {
	if errors.Is(err, order.ErrEmptyItems) {
		return http.StatusBadRequest, err.Error()
	}
	if errors.Is(err, order.ErrSkuCodeRequired) {
		return http.StatusUnprocessableEntity, err.Error()
	}

	var iqErr *order.InvalidQuantityError
	if errors.As(err, &iqErr) {
		return http.StatusUnprocessableEntity, iqErr.Error()
	}

	return http.StatusInternalServerError, "internal error"
}
