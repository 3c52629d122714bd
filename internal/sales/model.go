// Package sales provides the order accessor. Orders are immutable in
// product and creator after creation; only price and quantity may change.
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/partsdesk/partsdesk/internal/shared"
)

// Order is a recorded sale. Price is the unit price at the time of sale.
type Order struct {
	ID           int64            `json:"id"`
	ProductID    int64            `json:"productID"`
	UserID       int64            `json:"userID"`
	Quantity     int64            `json:"quantity"`
	Price        decimal.Decimal  `json:"price"`
	Date         shared.Timestamp `json:"date"`
	CustomerName string           `json:"customerName"`
}

// OrderInput is the creation payload. UserID defaults to the session
// user when the dashboard leaves it empty.
type OrderInput struct {
	Quantity     int64            `json:"quantity" validate:"gt=0"`
	Price        decimal.Decimal  `json:"price"`
	Date         shared.Timestamp `json:"date"`
	CustomerName string           `json:"customerName"`
	ProductID    int64            `json:"productID" validate:"gt=0"`
	UserID       int64            `json:"userID"`
}

// OrderUpdate carries the only two fields the backend accepts on update;
// anything else submitted there is silently ignored upstream, so it is
// not modelled at all.
type OrderUpdate struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity" validate:"gt=0"`
}
