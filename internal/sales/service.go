package sales

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/partsdesk/partsdesk/internal/platform/rest"
	"github.com/partsdesk/partsdesk/internal/shared"
)

// Service exposes the order accessor.
type Service struct {
	api      *rest.Client
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(api *rest.Client) *Service {
	return &Service{api: api, validate: validator.New()}
}

// List returns every order.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := s.api.Get(ctx, "/Orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Create records a new sale. The sale date defaults to now when omitted.
func (s *Service) Create(ctx context.Context, input OrderInput) error {
	if err := s.validate.Struct(input); err != nil {
		return rest.Validationf(err.Error())
	}
	if input.Price.IsNegative() {
		return rest.Validationf("price must not be negative")
	}
	if input.UserID <= 0 {
		return rest.Validationf("missing user id")
	}
	if input.Date.IsZero() {
		input.Date = shared.Now()
	}
	return s.api.Post(ctx, "/Orders", input, nil)
}

// Update changes an order's price and quantity. No other field is
// mutable after creation.
func (s *Service) Update(ctx context.Context, id int64, update OrderUpdate) error {
	if id <= 0 {
		return rest.Validationf("missing order id")
	}
	if err := s.validate.Struct(update); err != nil {
		return rest.Validationf(err.Error())
	}
	if update.Price.IsNegative() {
		return rest.Validationf("price must not be negative")
	}
	return s.api.Put(ctx, fmt.Sprintf("/Orders/%d", id), update, nil)
}

// Delete removes an order.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return rest.Validationf("missing order id")
	}
	return s.api.Delete(ctx, fmt.Sprintf("/Orders/%d", id))
}
