package product

import (
	"context"
	"fmt"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// Sentinel errors for create validation.
var (
	ErrNameRequired        = fmt.Errorf("name required")
	ErrDescriptionRequired = fmt.Errorf("description required")
	ErrNegativePrice       = fmt.Errorf("price must not be negative")
)

// Service mediates between the external request/response shapes and the
// Product entity. It owns no state beyond the repository reference.
type Service struct {
	repo Repository
}

// NewService creates a product Service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new product. The store-assigned ID is logged but not
// returned to the caller.
func (s *Service) Create(ctx context.Context, req CreateRequest) error {
	if err := validateCreate(req); err != nil {
		return err
	}

	saved, err := s.repo.Save(ctx, ToEntity(req))
	if err != nil {
		return fmt.Errorf("save product: %w", err)
	}

	zctx.From(ctx).Info("Product created",
		zap.String("id", saved.ID),
		zap.String("name", saved.Name),
	)
	return nil
}

// ListAll returns every registered product as a response projection,
// preserving store order.
func (s *Service) ListAll(ctx context.Context) ([]Response, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]Response, len(products))
	for i, p := range products {
		out[i] = ToResponse(p)
	}
	return out, nil
}

func validateCreate(req CreateRequest) error {
	if req.Name == "" {
		return ErrNameRequired
	}
	if req.Description == "" {
		return ErrDescriptionRequired
	}
	if req.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
