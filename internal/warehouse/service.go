// Package warehouse tracks on-hand stock. The backend keeps at most one
// entry per product and only supports listing and a quantity update; no
// create or delete exists.
package warehouse

import (
	"context"
	"fmt"

	"github.com/partsdesk/partsdesk/internal/platform/rest"
)

// Entry is the authoritative on-hand stock for one product.
type Entry struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// Service exposes the warehouse accessor.
type Service struct {
	api *rest.Client
}

// NewService constructs a Service.
func NewService(api *rest.Client) *Service {
	return &Service{api: api}
}

// List returns every warehouse entry.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := s.api.Get(ctx, "/WareHouse", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetQuantity replaces a product's on-hand quantity. The backend expects
// the new quantity as a bare JSON integer body.
func (s *Service) SetQuantity(ctx context.Context, productID, quantity int64) error {
	if productID <= 0 {
		return rest.Validationf("missing product id")
	}
	if quantity < 0 {
		return rest.Validationf("quantity must not be negative")
	}
	return s.api.Put(ctx, fmt.Sprintf("/WareHouse/%d", productID), quantity, nil)
}
