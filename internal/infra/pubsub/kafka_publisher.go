package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"burgerhub/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// kafkaWriter is the part of *kafka.Writer the publisher needs.
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher implements EventPublisher on a kafka topic. Messages are
// keyed by order id so every event of an order lands on the same partition.
type kafkaPublisher struct {
	writer kafkaWriter
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.EventPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}, logger)
}

func newKafkaPublisher(writer kafkaWriter, logger *slog.Logger) *kafkaPublisher {
	return &kafkaPublisher{writer: writer, logger: logger}
}

func (p *kafkaPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEventMessage) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	attributes := EventAttributes(event)
	headers := make([]kafka.Header, 0, len(attributes))
	for k, v := range attributes {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	msg := kafka.Message{
		Key:     []byte(event.OrderID.String()),
		Value:   data,
		Headers: headers,
		Time:    time.Now().UTC(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to write kafka message")
	}

	p.logger.Info("[Kafka] Event published",
		slog.String("type", string(event.Type)),
		slog.Any("order_id", event.OrderID),
	)

	return nil
}

func (p *kafkaPublisher) Close() error {
	return errors.WithStack(p.writer.Close())
}
