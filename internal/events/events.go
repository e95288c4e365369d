// Package events announces domain changes to other systems.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mmynk/groupsplit/internal/models"
)

// Publisher announces persisted expenses.
type Publisher interface {
	PublishExpenseCreated(ctx context.Context, expense *models.Expense) error
	Close() error
}

// ExpenseCreatedMessage is the body of an expense.created event.
// Amount is a decimal string so consumers do not lose precision.
type ExpenseCreatedMessage struct {
	ExpenseID    string    `json:"expenseId"`
	GroupID      string    `json:"groupId"`
	Description  string    `json:"description"`
	Amount       string    `json:"amount"`
	PaidBy       string    `json:"paidBy"`
	Participants []string  `json:"participants"`
	Date         string    `json:"date"`
	CreatedBy    string    `json:"createdBy"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewExpenseCreatedMessage builds the event for a stored expense.
func NewExpenseCreatedMessage(e *models.Expense) *ExpenseCreatedMessage {
	return &ExpenseCreatedMessage{
		ExpenseID:    e.ID,
		GroupID:      e.GroupID,
		Description:  e.Description,
		Amount:       e.Amount.StringFixed(2),
		PaidBy:       e.PaidBy,
		Participants: e.Participants,
		Date:         e.Date,
		CreatedBy:    e.CreatedBy,
		Timestamp:    e.CreatedAt,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseCreatedMessageFromJSON decodes a message body.
func ExpenseCreatedMessageFromJSON(data []byte) (*ExpenseCreatedMessage, error) {
	var msg ExpenseCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishExpenseCreated(context.Context, *models.Expense) error { return nil }

func (NopPublisher) Close() error { return nil }
