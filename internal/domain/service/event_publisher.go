package service

import (
	"context"

	"burgerhub/internal/domain/entity"
)

// OrderEventMessage is the payload carried by the message queue. RequestID
// lets the worker correlate its logs with the originating API request.
type OrderEventMessage struct {
	RequestID string `json:"request_id,omitempty"`
	*entity.OrderEvent
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEventMessage) error

	// Close releases any resources held by the publisher
	Close() error
}
