package profit

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/partsdesk/partsdesk/internal/expenses"
	"github.com/partsdesk/partsdesk/internal/sales"
)

// OrderLister supplies the raw order collection.
type OrderLister interface {
	List(ctx context.Context) ([]sales.Order, error)
}

// ExpenseLister supplies the raw expense collection.
type ExpenseLister interface {
	List(ctx context.Context) ([]expenses.Expense, error)
}

// Service fetches the raw collections and computes the summary. Both
// fetches run concurrently and each degrades to an empty collection on
// failure, so a broken expense feed still yields a sales-only report.
type Service struct {
	orders   OrderLister
	expenses ExpenseLister
	logger   *slog.Logger
}

// NewService constructs a Service.
func NewService(orders OrderLister, costs ExpenseLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{orders: orders, expenses: costs, logger: logger}
}

// Summary fetches orders and expenses and computes the report for the
// window. A window change needs no refetch; callers holding the raw
// collections can call ComputeSummary directly.
func (s *Service) Summary(ctx context.Context, window Window) (Summary, error) {
	var (
		orders []sales.Order
		costs  []expenses.Expense
	)

	var g errgroup.Group
	g.Go(func() error {
		fetched, err := s.orders.List(ctx)
		if err != nil {
			s.logger.Warn("orders fetch degraded to empty", "error", err)
			return nil
		}
		orders = fetched
		return nil
	})
	g.Go(func() error {
		fetched, err := s.expenses.List(ctx)
		if err != nil {
			s.logger.Warn("expenses fetch degraded to empty", "error", err)
			return nil
		}
		costs = fetched
		return nil
	})
	_ = g.Wait()

	return ComputeSummary(orders, costs, window), nil
}
