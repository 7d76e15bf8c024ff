package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/behnamfe76/finance-service/internal/events"
	"github.com/behnamfe76/finance-service/internal/repository"
	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

// storeError maps repository sentinels onto API errors for the named resource.
func storeError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsNotFound(err):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict(resource+" already exists", nil)
	default:
		return err
	}
}

// publish hands the event to the dispatcher. Dispatch problems are logged only.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("publish event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
