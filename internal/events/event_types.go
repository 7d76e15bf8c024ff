package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/behnamfe76/finance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventAccountCreated     EventType = "account_created"
	EventAccountDeleted     EventType = "account_deleted"
	EventTransactionCreated EventType = "transaction_created"
	EventBudgetExceeded     EventType = "budget_exceeded"
	EventRecurringDue       EventType = "recurring_due"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, userID int64, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// AccountPayload is shared by account lifecycle events.
type AccountPayload struct {
	AccountID int64  `json:"account_id"`
	Name      string `json:"name"`
}

// TransactionCreatedPayload payload.
type TransactionCreatedPayload struct {
	TransactionID int64            `json:"transaction_id"`
	AccountID     int64            `json:"account_id"`
	Amount        domain.Money     `json:"amount"`
	Frequency     domain.Frequency `json:"frequency"`
}

// BudgetExceededPayload payload.
type BudgetExceededPayload struct {
	BudgetID   int64        `json:"budget_id"`
	AccountID  int64        `json:"account_id"`
	CategoryID int64        `json:"category_id"`
	Limit      domain.Money `json:"limit"`
	Spent      domain.Money `json:"spent"`
}

// RecurringDuePayload payload.
type RecurringDuePayload struct {
	TransactionID int64            `json:"transaction_id"`
	AccountID     int64            `json:"account_id"`
	Amount        domain.Money     `json:"amount"`
	Frequency     domain.Frequency `json:"frequency"`
	DueDate       time.Time        `json:"due_date"`
	NextDueDate   time.Time        `json:"next_due_date"`
}
