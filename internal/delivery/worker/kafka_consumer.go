package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"burgerhub/config"
	"burgerhub/internal/delivery"
	"burgerhub/internal/delivery/worker/handler"
	"burgerhub/internal/domain/constants"
	"burgerhub/internal/infra/pubsub"
	"burgerhub/internal/usecase"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
)

const (
	maxHandleAttempts = 3
	retryBackoff      = 2 * time.Second
)

// messageReader is the part of *kafka.Reader the consumer needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaConsumer struct {
	reader         messageReader
	notificationUC usecase.OrderNotificationUsecase
	logger         *slog.Logger
	backoff        time.Duration
	started        atomic.Bool
	quit           chan struct{}
	quitOnce       sync.Once
	done           chan struct{}
}

// ConsumerParams holds dependencies for the kafka consumer
type ConsumerParams struct {
	fx.In

	Lc             fx.Lifecycle
	Cfg            *config.Config
	Logger         *slog.Logger
	NotificationUC usecase.OrderNotificationUsecase
}

// NewKafkaConsumer creates the order event consumer. When the event provider
// is not kafka the returned delivery exits immediately.
func NewKafkaConsumer(params ConsumerParams) delivery.Delivery {
	pubsubCfg := params.Cfg.PubSub
	kafkaCfg := params.Cfg.Kafka
	if pubsubCfg == nil || pubsubCfg.Provider != constants.PubSubProviderKafka || kafkaCfg == nil {
		return disabledDelivery{logger: params.Logger}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  kafkaCfg.Brokers,
		Topic:    kafkaCfg.Topic,
		GroupID:  kafkaCfg.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})

	consumer := newKafkaConsumer(reader, params.NotificationUC, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: consumer.stop,
	})

	return consumer
}

func newKafkaConsumer(reader messageReader, notificationUC usecase.OrderNotificationUsecase, logger *slog.Logger) *kafkaConsumer {
	return &kafkaConsumer{
		reader:         reader,
		notificationUC: notificationUC,
		logger:         logger,
		backoff:        retryBackoff,
		quit:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// Serve fetches messages until ctx is cancelled or the consumer is stopped.
func (k *kafkaConsumer) Serve(ctx context.Context) error {
	k.started.Store(true)
	defer close(k.done)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-k.quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	k.logger.Info("Starting Kafka order event consumer")

	for {
		msg, err := k.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return errors.Wrap(err, "failed to fetch kafka message")
		}

		k.handle(ctx, msg)

		if err := k.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			k.logger.Error("[Worker] Failed to commit kafka message",
				slog.Int64("offset", msg.Offset),
				slog.Any("error", err),
			)
		}
	}
}

// handle processes one message. Retryable failures are retried in place, the
// message is committed afterwards either way.
func (k *kafkaConsumer) handle(ctx context.Context, msg kafka.Message) {
	event, err := pubsub.DecodeOrderEvent(msg.Value)
	if err != nil {
		k.logger.Error("[Worker] Dropping undecodable kafka message",
			slog.Int64("offset", msg.Offset),
			slog.Any("error", err),
		)

		return
	}

	requestID := event.RequestID
	for _, header := range msg.Headers {
		if header.Key == "request_id" && len(header.Value) > 0 {
			requestID = string(header.Value)
		}
	}
	ctx, reqLogger := handler.ScopeEvent(ctx, k.logger, requestID, event)

	for attempt := 1; attempt <= maxHandleAttempts; attempt++ {
		err = k.notificationUC.HandleOrderEvent(ctx, event)
		if err == nil {
			reqLogger.Info("[Worker] Order event processed", slog.Int64("offset", msg.Offset))

			return
		}

		retryable := usecase.IsRetryableError(err)
		reqLogger.Error("[Worker] Failed to process order event",
			slog.Int("attempt", attempt),
			slog.Bool("retryable", retryable),
			slog.Any("error", err),
		)
		if !retryable || attempt == maxHandleAttempts {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(k.backoff):
		}
	}
}

func (k *kafkaConsumer) stop(ctx context.Context) error {
	k.logger.Info("Stopping Kafka order event consumer")

	k.quitOnce.Do(func() { close(k.quit) })
	if k.started.Load() {
		select {
		case <-k.done:
		case <-ctx.Done():
		}
	}

	return errors.WithStack(k.reader.Close())
}

// disabledDelivery stands in for the consumer when kafka is not configured.
type disabledDelivery struct {
	logger *slog.Logger
}

func (d disabledDelivery) Serve(context.Context) error {
	d.logger.Info("Kafka consumer disabled, order events arrive through the push endpoint")

	return nil
}
