// Package notification sends push notifications to customer devices.
package notification

import (
	"context"
	"log/slog"

	"burgerhub/config"
	"burgerhub/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// Firebase limits multicast messages to 500 tokens.
const maxMulticastTokens = 500

type firebaseService struct {
	client *messaging.Client
}

// Params holds the dependencies of the notification service.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New returns the Firebase service when firebase is configured, otherwise a
// service that only logs what it would send.
func New(params Params) (service.NotificationService, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.CredentialsPath == "" {
		params.Logger.Warn("Firebase not configured, push notifications are only logged")

		return NewLogOnlyService(params.Logger), nil
	}

	return NewFirebaseService(context.Background(), cfg)
}

// NewFirebaseService creates a new Firebase notification service instance
func NewFirebaseService(ctx context.Context, cfg *config.FirebaseConfig) (service.NotificationService, error) {
	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, option.WithCredentialsFile(cfg.CredentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{client: client}, nil
}

// Multicast fans msg out to tokens with SendEachForMulticast.
func (s *firebaseService) Multicast(ctx context.Context, tokens []string, msg service.PushMessage) (service.PushResult, error) {
	if len(tokens) == 0 {
		return service.PushResult{}, nil
	}
	if len(tokens) > service.MaxPushTokens {
		return service.PushResult{}, errors.Errorf("token count exceeds limit: %d (max %d)", len(tokens), service.MaxPushTokens)
	}

	response, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	})
	if err != nil {
		return service.PushResult{}, errors.Wrap(err, "failed to send multicast notification")
	}

	result := service.PushResult{
		Sent:   response.SuccessCount,
		Failed: response.FailureCount,
	}
	for idx, sendResponse := range response.Responses {
		if sendResponse.Error == nil {
			continue
		}
		if messaging.IsInvalidArgument(sendResponse.Error) || messaging.IsUnregistered(sendResponse.Error) {
			result.InvalidTokens = append(result.InvalidTokens, tokens[idx])
		}
	}

	return result, nil
}

// logOnlyService stands in for Firebase on local runs.
type logOnlyService struct {
	logger *slog.Logger
}

// NewLogOnlyService returns a NotificationService that reports every token as delivered.
func NewLogOnlyService(logger *slog.Logger) service.NotificationService {
	return &logOnlyService{logger: logger}
}

func (s *logOnlyService) Multicast(_ context.Context, tokens []string, msg service.PushMessage) (service.PushResult, error) {
	s.logger.Info("Push notification (log only)",
		slog.String("title", msg.Title),
		slog.String("body", msg.Body),
		slog.Int("tokens", len(tokens)),
	)

	return service.PushResult{Sent: len(tokens)}, nil
}
