package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/behnamfe76/finance-service/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// DueProcessor advances recurring transactions whose due date has passed.
type DueProcessor interface {
	ProcessDue(ctx context.Context, now time.Time, batch int) (int, error)
}

// RecurringScheduler periodically announces due recurring transactions.
type RecurringScheduler struct {
	processor DueProcessor
	interval  time.Duration
	batch     int
	logger    *zap.Logger
	now       func() time.Time
}

// NewRecurringScheduler builds a scheduler. A non-positive interval disables it.
func NewRecurringScheduler(processor DueProcessor, interval time.Duration, batch int, logger *zap.Logger) *RecurringScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if batch <= 0 {
		batch = 100
	}
	return &RecurringScheduler{
		processor: processor,
		interval:  interval,
		batch:     batch,
		logger:    logger,
		now:       time.Now,
	}
}

// Run blocks until ctx is cancelled, scanning once at start and then on every tick.
func (s *RecurringScheduler) Run(ctx context.Context) {
	if s == nil || s.processor == nil || s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("recurring scheduler started", zap.Duration("interval", s.interval))
	for {
		s.RunOnce(ctx)
		select {
		case <-ctx.Done():
			s.logger.Info("recurring scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce drains due transactions in batches until none remain or ctx ends.
func (s *RecurringScheduler) RunOnce(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		advanced, err := s.processor.ProcessDue(ctx, s.now(), s.batch)
		total += advanced
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Warn("recurring scan failed", zap.Error(err))
			}
			break
		}
		if advanced < s.batch {
			break
		}
	}
	if total > 0 {
		s.logger.Info("recurring transactions advanced", zap.Int("count", total))
	}
	return total
}
