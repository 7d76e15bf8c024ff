package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/behnamfe76/finance-service/internal/config"
	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/events"
)

func TestRenderNotifications(t *testing.T) {
	note, ok := Render(events.New(events.EventBudgetExceeded, 7, events.BudgetExceededPayload{Limit: 10000, Spent: 12550}))
	require.True(t, ok)
	assert.Equal(t, int64(7), note.UserID)
	assert.Equal(t, "Budget exceeded: spent 125.50 of 100.00", note.Subject)
	assert.True(t, note.Email)
	assert.True(t, note.Webhook)

	note, ok = Render(events.New(events.EventAccountDeleted, 7, events.AccountPayload{Name: "Savings"}))
	require.True(t, ok)
	assert.Equal(t, `Account "Savings" closed`, note.Subject)
	assert.False(t, note.Email)

	note, ok = Render(events.New(events.EventRecurringDue, 7, events.RecurringDuePayload{
		Amount:    -120000,
		Frequency: domain.FrequencyMonthly,
		DueDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.True(t, ok)
	assert.Equal(t, "Recurring monthly payment of -1200.00 due 2024-02-01", note.Subject)

	_, ok = Render(events.New("unknown", 7, "payload"))
	assert.False(t, ok)
}

func TestNotificationServiceHandlesPublishedEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop(), nil)
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{EmailFrom: "noreply@example.com"})
	svc.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(),
		events.New(events.EventUserRegistered, 3, events.UserRegisteredPayload{Username: "alice"})))

	require.Equal(t, 1, logs.FilterMessage("notification").Len())
	entry := logs.FilterMessage("notification").All()[0]
	assert.Equal(t, "Welcome, alice", entry.ContextMap()["subject"])
	assert.Equal(t, 1, logs.FilterMessage("email notification stub").Len())
	assert.Zero(t, logs.FilterMessage("webhook notification stub").Len())
}
