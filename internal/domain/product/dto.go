package product

import "github.com/shopspring/decimal"

// CreateRequest is the external input shape for registering a product. It has
// no ID field: callers cannot choose or override identity.
type CreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Response is the external read projection of a Product. It carries exactly
// the entity fields and nothing else.
type Response struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ToEntity builds a Product from a create request, leaving the ID empty for
// the store to assign.
func ToEntity(req CreateRequest) Product {
	return Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
}

// ToResponse projects a stored Product into its response shape.
func ToResponse(p Product) Response {
	return Response{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
}
