package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"burgerhub/config"
	deliverycontext "burgerhub/internal/delivery/context"
	"burgerhub/internal/domain/constants"
	"burgerhub/internal/domain/service"
	"burgerhub/internal/infra/pubsub"
	"burgerhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// tokenValidator checks a Google signed OIDC token for the expected audience.
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler handles Pub/Sub push messages carrying order events
type PushHandler struct {
	verifyPushAuth bool
	audience       string
	validate       tokenValidator
	logger         *slog.Logger
	notificationUC usecase.OrderNotificationUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config         *config.Config
	Logger         *slog.Logger
	NotificationUC usecase.OrderNotificationUsecase
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	cfg := params.Config.PubSub

	// Determine if we need to verify push auth based on config
	verifyPushAuth := cfg != nil &&
		cfg.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	audience := ""
	if cfg != nil {
		audience = cfg.PushAudience
	}

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		audience:       audience,
		validate:       idtoken.Validate,
		logger:         params.Logger,
		notificationUC: params.NotificationUC,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	// Verify Pub/Sub token in production for Google provider
	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var envelope pubsub.PushEnvelope
	if err := c.Bind(&envelope); err != nil {
		h.logger.Warn("[Worker] Malformed push body", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// A bad payload is acknowledged with 400 so Pub/Sub dead-letters it.
	event, err := envelope.OrderEvent()
	if err != nil {
		h.logger.Warn("[Worker] Undecodable order event",
			slog.String("message_id", envelope.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := event.RequestID
	if requestID == "" {
		requestID = deliverycontext.GetRequestIDFromContext(ctx)
	}

	ctx, reqLogger := ScopeEvent(ctx, h.logger, requestID, event)

	if err := h.notificationUC.HandleOrderEvent(ctx, event); err != nil {
		retryable := usecase.IsRetryableError(err)
		reqLogger.Error("[Worker] Failed to process order event",
			slog.Any("error", err),
			slog.Bool("retryable", retryable),
		)
		// Return 503 for retryable errors to trigger Pub/Sub retry
		// Return 200 for non-retryable errors to prevent infinite retries
		if retryable {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Order event processed")

	return c.NoContent(http.StatusOK)
}

// ScopeEvent stores the request id and a request scoped logger in ctx.
func ScopeEvent(ctx context.Context, logger *slog.Logger, requestID string, event *service.OrderEventMessage) (context.Context, *slog.Logger) {
	if requestID == "" {
		requestID = uuid.New().String()
	}

	reqLogger := logger.With(
		slog.String("request_id", requestID),
		slog.String("type", string(event.Type)),
		slog.String("order_id", event.OrderID.String()),
	)

	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	return ctx, reqLogger
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience defaults to the URL of this endpoint
	audience := h.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http" // For local development
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := h.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	// The issuer should be accounts.google.com
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
