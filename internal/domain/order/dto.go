package order

import "github.com/shopspring/decimal"

// LineItemDto is the external input shape for a single line item. It mirrors
// LineItem without the store-assigned ID.
type LineItemDto struct {
	SkuCode  string          `json:"skuCode"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// PlaceRequest holds the input for registering an order.
type PlaceRequest struct {
	Items []LineItemDto `json:"orderLineItems"`
}
