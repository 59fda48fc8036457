package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "burgerhub/internal/delivery/context"
	"burgerhub/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	localSubscription   = "projects/local/subscriptions/order-events-push"
	localPublishTimeout = 10 * time.Second
)

// localHTTPPublisher POSTs each event straight to the notifier's /push
// endpoint in push format, standing in for Pub/Sub during development.
type localHTTPPublisher struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: localPublishTimeout},
		logger:   logger,
	}
}

func (p *localHTTPPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEventMessage) error {
	env, err := NewPushEnvelope(event, localSubscription)
	if err != nil {
		return err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, event.RequestID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "notifier unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return errors.Errorf("notifier answered %d", resp.StatusCode)
	}

	deliverycontext.GetLoggerOrDefault(ctx, p.logger).Debug("Order event pushed to notifier",
		slog.String("type", string(event.Type)),
		slog.String("order_id", event.OrderID.String()),
		slog.String("message_id", env.Message.MessageID),
	)

	return nil
}

func (p *localHTTPPublisher) Close() error {
	p.client.CloseIdleConnections()

	return nil
}
