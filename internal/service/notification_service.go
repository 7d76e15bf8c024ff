package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/behnamfe76/finance-service/internal/config"
	"github.com/behnamfe76/finance-service/internal/events"
)

// Notification is what would be delivered to the user for one event.
type Notification struct {
	UserID  int64
	Subject string
	Email   bool
	Webhook bool
}

// NotificationService turns domain events into email and webhook notifications.
// Delivery is stubbed out with log lines.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{dispatcher: dispatcher, logger: logger, cfg: cfg}
}

// RegisterHandlers subscribes to every event that produces a notification.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventAccountCreated,
		events.EventAccountDeleted,
		events.EventTransactionCreated,
		events.EventBudgetExceeded,
		events.EventRecurringDue,
	} {
		n.dispatcher.Subscribe(eventType, n.handle)
	}
}

func (n *NotificationService) handle(ctx context.Context, event events.Event) error {
	note, ok := Render(event)
	if !ok {
		return nil
	}
	n.logger.Info("notification",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
		zap.Int64("user_id", note.UserID),
		zap.String("subject", note.Subject))

	if note.Email {
		n.sendEmailStub(ctx, event, note)
	}
	if note.Webhook {
		n.sendWebhookStub(ctx, event, note)
	}
	return nil
}

// Render builds the notification for an event. Unknown events or payloads report false.
func Render(event events.Event) (Notification, bool) {
	note := Notification{UserID: event.UserID}
	switch p := event.Payload.(type) {
	case events.UserRegisteredPayload:
		note.Subject = fmt.Sprintf("Welcome, %s", p.Username)
		note.Email = true
	case events.AccountPayload:
		verb := "opened"
		if event.Type == events.EventAccountDeleted {
			verb = "closed"
		}
		note.Subject = fmt.Sprintf("Account %q %s", p.Name, verb)
		note.Webhook = true
	case events.TransactionCreatedPayload:
		note.Subject = fmt.Sprintf("Transaction of %s recorded", p.Amount)
		note.Webhook = true
	case events.BudgetExceededPayload:
		note.Subject = fmt.Sprintf("Budget exceeded: spent %s of %s", p.Spent, p.Limit)
		note.Email = true
		note.Webhook = true
	case events.RecurringDuePayload:
		note.Subject = fmt.Sprintf("Recurring %s payment of %s due %s",
			p.Frequency, p.Amount, p.DueDate.Format("2006-01-02"))
		note.Email = true
	default:
		return Notification{}, false
	}
	return note, true
}

func (n *NotificationService) sendEmailStub(_ context.Context, event events.Event, note Notification) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("email notification stub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("user_id", note.UserID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookStub(_ context.Context, event events.Event, note Notification) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification stub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("user_id", note.UserID),
		zap.String("event_type", string(event.Type)))
}
