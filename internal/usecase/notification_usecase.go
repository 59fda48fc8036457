package usecase

import (
	"context"

	"burgerhub/internal/domain/service"
	"burgerhub/internal/errors"
)

// OrderNotificationUsecase turns order events into push notifications.
type OrderNotificationUsecase interface {
	// HandleOrderEvent notifies the customer's active devices. Failures worth
	// redelivering are reported as retryable.
	HandleOrderEvent(ctx context.Context, event *service.OrderEventMessage) error
}

// NewRetryableError marks err so the push handler answers 503 and the kafka
// consumer retries before committing.
func NewRetryableError(err error) error {
	return errors.Retryable(err)
}

func IsRetryableError(err error) bool {
	return errors.IsRetryable(err)
}
