package profit

import (
	"github.com/shopspring/decimal"

	"github.com/partsdesk/partsdesk/internal/expenses"
	"github.com/partsdesk/partsdesk/internal/sales"
)

// Summary is the computed profit report for one window.
type Summary struct {
	Window         Window          `json:"window"`
	TotalSales     decimal.Decimal `json:"totalSales"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	Profit         decimal.Decimal `json:"profit"`
	ProfitMargin   decimal.Decimal `json:"profitMargin"`
	SalesCount     int             `json:"salesCount"`
	ExpenseCount   int             `json:"expenseCount"`
	AverageSale    decimal.Decimal `json:"averageSale"`
	AverageExpense decimal.Decimal `json:"averageExpense"`
}

var hundred = decimal.NewFromInt(100)

// ComputeSummary filters both collections to the window and totals them.
// It is a pure function: permuting the inputs yields identical results,
// and zero-valued records contribute zero rather than poisoning the
// totals. The margin is exactly zero when there are no sales, never a
// division artifact.
func ComputeSummary(orders []sales.Order, costs []expenses.Expense, window Window) Summary {
	summary := Summary{Window: window}

	for _, order := range orders {
		if !window.Contains(order.Date.Time) {
			continue
		}
		summary.SalesCount++
		line := order.Price.Mul(decimal.NewFromInt(order.Quantity))
		summary.TotalSales = summary.TotalSales.Add(line)
	}
	for _, cost := range costs {
		if !window.Contains(cost.Date.Time) {
			continue
		}
		summary.ExpenseCount++
		summary.TotalExpenses = summary.TotalExpenses.Add(cost.Amount)
	}

	summary.Profit = summary.TotalSales.Sub(summary.TotalExpenses)
	if summary.TotalSales.IsPositive() {
		summary.ProfitMargin = summary.Profit.Div(summary.TotalSales).Mul(hundred).Round(4)
	}
	if summary.SalesCount > 0 {
		summary.AverageSale = summary.TotalSales.Div(decimal.NewFromInt(int64(summary.SalesCount))).Round(2)
	}
	if summary.ExpenseCount > 0 {
		summary.AverageExpense = summary.TotalExpenses.Div(decimal.NewFromInt(int64(summary.ExpenseCount))).Round(2)
	}
	return summary
}
