package pubsub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"burgerhub/internal/domain/entity"
	"burgerhub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKafkaWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)

	return nil
}

func (w *fakeKafkaWriter) Close() error {
	w.closed = true

	return nil
}

func testEvent() *service.OrderEventMessage {
	return &service.OrderEventMessage{
		RequestID: "req-1",
		OrderEvent: &entity.OrderEvent{
			Type:       entity.OrderEventCreated,
			OrderID:    uuid.New(),
			CustomerID: uuid.New(),
			Status:     entity.OrderStatusCooking,
			TotalPrice: decimal.NewFromInt(36000),
			OccurredAt: time.Now().UTC(),
		},
	}
}

func TestKafkaPublisher_KeysByOrderID(t *testing.T) {
	writer := &fakeKafkaWriter{}
	publisher := newKafkaPublisher(writer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	event := testEvent()

	require.NoError(t, publisher.PublishOrderEvent(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, event.OrderID.String(), string(msg.Key))

	var decoded service.OrderEventMessage
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "req-1", decoded.RequestID)
	assert.Equal(t, event.OrderID, decoded.OrderID)
	assert.True(t, event.TotalPrice.Equal(decoded.TotalPrice))

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "order.created", headers["type"])
	assert.Equal(t, "req-1", headers["request_id"])

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	writer := &fakeKafkaWriter{err: errors.New("broker down")}
	publisher := newKafkaPublisher(writer, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := publisher.PublishOrderEvent(context.Background(), testEvent())
	assert.ErrorContains(t, err, "broker down")
}
