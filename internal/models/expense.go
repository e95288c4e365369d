package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single shared cost recorded against a group.
// Expenses are immutable once created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description says what the money was spent on.
	Description string

	// Amount is the positive cost, in the group's single implicit currency.
	Amount decimal.Decimal

	// PaidBy is the member name of whoever paid.
	PaidBy string

	// Participants are the member names sharing the cost equally.
	// Duplicates are kept as given.
	Participants []string

	// Date is the calendar date the expense happened on, as entered.
	// It is distinct from CreatedAt.
	Date string

	// CreatedAt is when the record was stored.
	CreatedAt time.Time

	// CreatedBy is the user ID that recorded the expense.
	CreatedBy string
}
