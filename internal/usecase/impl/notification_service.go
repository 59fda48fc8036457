package impl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	deliverycontext "burgerhub/internal/delivery/context"
	"burgerhub/internal/domain/entity"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/domain/service"
	"burgerhub/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type orderNotificationService struct {
	deviceRepo      repository.DeviceRepository
	notificationSvc service.NotificationService
	logger          *slog.Logger
}

// OrderNotificationServiceParams holds dependencies for the order notification use case.
type OrderNotificationServiceParams struct {
	fx.In

	DeviceRepo      repository.DeviceRepository
	NotificationSvc service.NotificationService
	Logger          *slog.Logger
}

// NewOrderNotificationService creates the use case the worker runs for every order event.
func NewOrderNotificationService(params OrderNotificationServiceParams) usecase.OrderNotificationUsecase {
	return &orderNotificationService{
		deviceRepo:      params.DeviceRepo,
		notificationSvc: params.NotificationSvc,
		logger:          params.Logger,
	}
}

func (s *orderNotificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

func (s *orderNotificationService) HandleOrderEvent(ctx context.Context, msg *service.OrderEventMessage) error {
	if msg == nil || msg.OrderEvent == nil {
		return errors.New("empty order event")
	}
	event := msg.OrderEvent

	devices, err := s.deviceRepo.FindActiveDevicesByCustomer(ctx, event.CustomerID)
	if err != nil {
		// Storage hiccups are worth a redelivery.
		return usecase.NewRetryableError(errors.Wrap(err, "failed to load devices"))
	}
	if len(devices) == 0 {
		s.log(ctx).Debug("[Worker] Customer has no active devices", slog.Any("customerID", event.CustomerID))

		return nil
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	push := orderPushMessage(event)

	var (
		totalSent     int
		totalFailed   int
		invalidTokens []string
		lastErr       error
	)
	for batch := range slices.Chunk(tokens, service.MaxPushTokens) {
		result, err := s.notificationSvc.Multicast(ctx, batch, push)
		if err != nil {
			s.log(ctx).Warn("[Worker] Batch send failed", slog.Int("batch_size", len(batch)), slog.Any("error", err))
			totalFailed += len(batch)
			lastErr = err

			continue
		}
		totalSent += result.Sent
		totalFailed += result.Failed
		invalidTokens = append(invalidTokens, result.InvalidTokens...)
	}

	if len(invalidTokens) > 0 {
		if err := s.deviceRepo.DeactivateByTokens(ctx, invalidTokens); err != nil {
			s.log(ctx).Warn("[Worker] Failed to deactivate invalid tokens", slog.Int("count", len(invalidTokens)), slog.Any("error", err))
		}
	}

	s.log(ctx).Info("[Worker] Order notification sent",
		slog.Any("orderID", event.OrderID),
		slog.Int("sent", totalSent),
		slog.Int("failed", totalFailed),
		slog.Int("invalid_tokens", len(invalidTokens)),
	)

	if totalSent == 0 && lastErr != nil {
		return usecase.NewRetryableError(errors.Wrap(lastErr, "no notification delivered"))
	}

	return nil
}

func orderPushMessage(event *entity.OrderEvent) service.PushMessage {
	msg := service.PushMessage{
		Title: "Tu pedido cambió de estado",
		Body:  fmt.Sprintf("Estado actual: %s", event.Status),
		Data: map[string]string{
			"type":     string(event.Type),
			"order_id": event.OrderID.String(),
			"status":   event.Status,
			"total":    event.TotalPrice.String(),
		},
	}
	if event.Type == entity.OrderEventCreated {
		msg.Title = "Pedido recibido"
		msg.Body = fmt.Sprintf("Tu pedido por $%s está en preparación", event.TotalPrice.StringFixed(0))
	}

	return msg
}
