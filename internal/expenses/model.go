// Package expenses provides the expense accessor. The backend's wire
// fields "name" and "message" map to the domain's description and notes;
// the translation lives entirely in this package's wire type.
package expenses

import (
	"github.com/shopspring/decimal"

	"github.com/partsdesk/partsdesk/internal/shared"
)

// Expense is a recorded business expense.
type Expense struct {
	ID          int64            `json:"id"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Date        shared.Timestamp `json:"date"`
	Notes       string           `json:"notes"`
}

// wireExpense is the backend's shape for an expense, in both directions.
type wireExpense struct {
	ID      int64            `json:"id,omitempty"`
	Name    string           `json:"name"`
	Amount  decimal.Decimal  `json:"amount"`
	Date    shared.Timestamp `json:"date"`
	Message string           `json:"message"`
}

func fromWire(w wireExpense) Expense {
	return Expense{
		ID:          w.ID,
		Description: w.Name,
		Amount:      w.Amount,
		Date:        w.Date,
		Notes:       w.Message,
	}
}

func toWire(e Expense) wireExpense {
	return wireExpense{
		Name:    e.Description,
		Amount:  e.Amount,
		Date:    e.Date,
		Message: e.Notes,
	}
}
