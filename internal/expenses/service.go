package expenses

import (
	"context"
	"fmt"

	"github.com/partsdesk/partsdesk/internal/platform/rest"
	"github.com/partsdesk/partsdesk/internal/shared"
)

// Service exposes the expense accessor.
type Service struct {
	api *rest.Client
}

// NewService constructs a Service.
func NewService(api *rest.Client) *Service {
	return &Service{api: api}
}

// List returns every expense, translated to the domain shape.
func (s *Service) List(ctx context.Context) ([]Expense, error) {
	var wires []wireExpense
	if err := s.api.Get(ctx, "/Expenses", &wires); err != nil {
		return nil, err
	}
	expenses := make([]Expense, 0, len(wires))
	for _, w := range wires {
		expenses = append(expenses, fromWire(w))
	}
	return expenses, nil
}

// Create records a new expense. The date defaults to now when omitted.
func (s *Service) Create(ctx context.Context, expense Expense) error {
	if err := validate(expense); err != nil {
		return err
	}
	wire := toWire(expense)
	if wire.Date.IsZero() {
		wire.Date = shared.Now()
	}
	return s.api.Post(ctx, "/Expenses", wire, nil)
}

// Update replaces an expense.
func (s *Service) Update(ctx context.Context, id int64, expense Expense) error {
	if id <= 0 {
		return rest.Validationf("missing expense id")
	}
	if err := validate(expense); err != nil {
		return err
	}
	wire := toWire(expense)
	if wire.Date.IsZero() {
		wire.Date = shared.Now()
	}
	return s.api.Put(ctx, fmt.Sprintf("/Expenses/%d", id), wire, nil)
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return rest.Validationf("missing expense id")
	}
	return s.api.Delete(ctx, fmt.Sprintf("/Expenses/%d", id))
}

func validate(expense Expense) error {
	if expense.Description == "" {
		return rest.Validationf("expense description is required")
	}
	if expense.Amount.IsNegative() {
		return rest.Validationf("amount must not be negative")
	}
	return nil
}
