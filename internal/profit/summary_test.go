package profit

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/partsdesk/partsdesk/internal/expenses"
	"github.com/partsdesk/partsdesk/internal/sales"
	"github.com/partsdesk/partsdesk/internal/shared"
)

func ts(year int, month time.Month, day int) shared.Timestamp {
	return shared.Timestamp{Time: time.Date(year, month, day, 14, 30, 0, 0, time.UTC)}
}

func TestComputeSummaryDayWindow(t *testing.T) {
	orders := []sales.Order{
		{ID: 1, Quantity: 2, Price: decimal.NewFromInt(50), Date: ts(2024, time.March, 10)},
	}
	costs := []expenses.Expense{
		{ID: 1, Amount: decimal.NewFromInt(30), Date: ts(2024, time.March, 10)},
	}

	window, err := DayWindow(2024, time.March, 10)
	require.NoError(t, err)

	summary := ComputeSummary(orders, costs, window)
	require.True(t, summary.TotalSales.Equal(decimal.NewFromInt(100)), "sales = %s", summary.TotalSales)
	require.True(t, summary.TotalExpenses.Equal(decimal.NewFromInt(30)))
	require.True(t, summary.Profit.Equal(decimal.NewFromInt(70)))
	require.True(t, summary.ProfitMargin.Equal(decimal.NewFromInt(70)), "margin = %s", summary.ProfitMargin)
	require.Equal(t, 1, summary.SalesCount)
	require.Equal(t, 1, summary.ExpenseCount)
}

func TestComputeSummaryMonthWindowIncludesWholeMonth(t *testing.T) {
	orders := []sales.Order{
		{Quantity: 1, Price: decimal.NewFromInt(10), Date: ts(2024, time.March, 1)},
		{Quantity: 1, Price: decimal.NewFromInt(20), Date: ts(2024, time.March, 31)},
		{Quantity: 1, Price: decimal.NewFromInt(99), Date: ts(2024, time.April, 1)},
	}

	window, err := MonthWindow(2024, time.March)
	require.NoError(t, err)

	summary := ComputeSummary(orders, nil, window)
	require.True(t, summary.TotalSales.Equal(decimal.NewFromInt(30)))
	require.Equal(t, 2, summary.SalesCount)
}

func TestComputeSummaryNoSalesMarginExactlyZero(t *testing.T) {
	costs := []expenses.Expense{
		{Amount: decimal.NewFromInt(30), Date: ts(2024, time.March, 10)},
	}
	window, err := DayWindow(2024, time.March, 10)
	require.NoError(t, err)

	summary := ComputeSummary(nil, costs, window)
	require.True(t, summary.TotalSales.IsZero())
	require.True(t, summary.Profit.Equal(decimal.NewFromInt(-30)))
	require.True(t, summary.ProfitMargin.IsZero())
	require.True(t, summary.AverageSale.IsZero())
}

func TestComputeSummaryPermutationInvariant(t *testing.T) {
	window, err := MonthWindow(2024, time.March)
	require.NoError(t, err)

	orders := make([]sales.Order, 0, 20)
	costs := make([]expenses.Expense, 0, 20)
	for i := 1; i <= 20; i++ {
		orders = append(orders, sales.Order{
			Quantity: int64(i),
			Price:    decimal.NewFromFloat(float64(i) * 1.5),
			Date:     ts(2024, time.March, (i%28)+1),
		})
		costs = append(costs, expenses.Expense{
			Amount: decimal.NewFromFloat(float64(i) * 0.75),
			Date:   ts(2024, time.March, (i%28)+1),
		})
	}
	want := ComputeSummary(orders, costs, window)

	rng := rand.New(rand.NewSource(42))
	rng.Shuffle(len(orders), func(i, j int) { orders[i], orders[j] = orders[j], orders[i] })
	rng.Shuffle(len(costs), func(i, j int) { costs[i], costs[j] = costs[j], costs[i] })

	got := ComputeSummary(orders, costs, window)
	require.True(t, want.TotalSales.Equal(got.TotalSales))
	require.True(t, want.TotalExpenses.Equal(got.TotalExpenses))
	require.True(t, want.ProfitMargin.Equal(got.ProfitMargin))
	require.Equal(t, want.SalesCount, got.SalesCount)
}

func TestComputeSummaryZeroDatesExcluded(t *testing.T) {
	orders := []sales.Order{
		{Quantity: 3, Price: decimal.NewFromInt(10)}, // no date at all
		{Quantity: 1, Price: decimal.NewFromInt(5), Date: ts(2024, time.March, 2)},
	}
	window, err := MonthWindow(2024, time.March)
	require.NoError(t, err)

	summary := ComputeSummary(orders, nil, window)
	require.Equal(t, 1, summary.SalesCount)
	require.True(t, summary.TotalSales.Equal(decimal.NewFromInt(5)))
}

func TestComputeSummaryAverages(t *testing.T) {
	orders := []sales.Order{
		{Quantity: 1, Price: decimal.NewFromInt(10), Date: ts(2024, time.March, 2)},
		{Quantity: 1, Price: decimal.NewFromInt(15), Date: ts(2024, time.March, 3)},
	}
	costs := []expenses.Expense{
		{Amount: decimal.NewFromInt(9), Date: ts(2024, time.March, 4)},
		{Amount: decimal.NewFromInt(1), Date: ts(2024, time.March, 5)},
		{Amount: decimal.NewFromInt(2), Date: ts(2024, time.March, 6)},
	}
	window, err := MonthWindow(2024, time.March)
	require.NoError(t, err)

	summary := ComputeSummary(orders, costs, window)
	require.True(t, summary.AverageSale.Equal(decimal.NewFromFloat(12.5)))
	require.True(t, summary.AverageExpense.Equal(decimal.NewFromInt(4)))
}

func TestWindowValidation(t *testing.T) {
	_, err := MonthWindow(1999, time.March)
	require.Error(t, err)

	_, err = MonthWindow(2024, time.Month(13))
	require.Error(t, err)

	_, err = DayWindow(2024, time.March, 0)
	require.Error(t, err)

	_, err = DayWindow(2024, time.March, 32)
	require.Error(t, err)

	w, err := DayWindow(2024, time.February, 29)
	require.NoError(t, err)
	require.Equal(t, 29, w.Day)
}

func TestWindowContains(t *testing.T) {
	day, err := DayWindow(2024, time.March, 10)
	require.NoError(t, err)
	require.True(t, day.Contains(time.Date(2024, time.March, 10, 23, 59, 0, 0, time.UTC)))
	require.False(t, day.Contains(time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)))
	require.False(t, day.Contains(time.Time{}))

	month, err := MonthWindow(2024, time.March)
	require.NoError(t, err)
	require.True(t, month.Contains(time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)))
	require.False(t, month.Contains(time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC)))
}
