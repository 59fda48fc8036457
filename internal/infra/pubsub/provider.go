// Package pubsub publishes order events for the notifier worker.
package pubsub

import (
	"context"
	"log/slog"

	"burgerhub/config"
	"burgerhub/internal/domain/constants"
	"burgerhub/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopPublisher drops events when no provider is configured.
type noopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) service.EventPublisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) PublishOrderEvent(_ context.Context, event *service.OrderEventMessage) error {
	p.logger.Debug("Event publishing disabled, dropping order event",
		slog.String("type", string(event.Type)),
		slog.String("order_id", event.OrderID.String()),
	)

	return nil
}

func (p *noopPublisher) Close() error { return nil }

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher builds the publisher for pubsub.provider and closes it on shutdown.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	publisher, err := openPublisher(context.Background(), params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}

func openPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.EventPublisher, error) {
	if err := checkPublisherConfig(cfg); err != nil {
		return nil, err
	}

	provider := ""
	if cfg.PubSub != nil {
		provider = cfg.PubSub.Provider
	}
	logger.Info("Order event publisher selected", slog.String("provider", providerName(provider)))

	switch provider {
	case constants.PubSubProviderLocal:
		return NewLocalHTTPPublisher(cfg.PubSub.LocalEndpoint, logger), nil
	case constants.PubSubProviderGoogle:
		return NewGooglePubSubPublisher(ctx, cfg.PubSub.ProjectID, cfg.PubSub.TopicID, logger)
	case constants.PubSubProviderKafka:
		return NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger), nil
	default:
		return NewNoopPublisher(logger), nil
	}
}

// checkPublisherConfig reports the first setting the chosen provider is missing.
func checkPublisherConfig(cfg *config.Config) error {
	ps := cfg.PubSub
	if ps == nil || ps.Provider == "" {
		return nil
	}

	switch ps.Provider {
	case constants.PubSubProviderLocal:
		if ps.LocalEndpoint == "" {
			return errors.New("pubsub.localEndpoint is required for the local provider")
		}
	case constants.PubSubProviderGoogle:
		if ps.ProjectID == "" || ps.TopicID == "" {
			return errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}
	case constants.PubSubProviderKafka:
		if cfg.Kafka == nil || len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "" {
			return errors.New("kafka.brokers and kafka.topic are required for the kafka provider")
		}
	default:
		return errors.Errorf("unknown pubsub provider %q", ps.Provider)
	}

	return nil
}

func providerName(provider string) string {
	if provider == "" {
		return "none"
	}

	return provider
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
