package impl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"burgerhub/internal/domain/entity"
	"burgerhub/internal/domain/service"
	mockRepo "burgerhub/internal/mocks/repository"
	mockSvc "burgerhub/internal/mocks/service"
	"burgerhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notificationFixtures struct {
	service    usecase.OrderNotificationUsecase
	deviceRepo *mockRepo.MockDeviceRepository
	notifier   *mockSvc.MockNotificationService
}

func createTestNotificationService(t *testing.T) *notificationFixtures {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	notifier := mockSvc.NewMockNotificationService(t)

	return &notificationFixtures{
		service: NewOrderNotificationService(OrderNotificationServiceParams{
			DeviceRepo:      deviceRepo,
			NotificationSvc: notifier,
			Logger:          newDiscardLogger(),
		}),
		deviceRepo: deviceRepo,
		notifier:   notifier,
	}
}

func createdEvent(customerID uuid.UUID) *service.OrderEventMessage {
	return &service.OrderEventMessage{
		RequestID: "req-1",
		OrderEvent: &entity.OrderEvent{
			Type:       entity.OrderEventCreated,
			OrderID:    uuid.New(),
			CustomerID: customerID,
			Status:     entity.OrderStatusCooking,
			TotalPrice: decimal.NewFromInt(36000),
			OccurredAt: time.Now(),
		},
	}
}

func devicesWithTokens(customerID uuid.UUID, n int) []*entity.CustomerDevice {
	devices := make([]*entity.CustomerDevice, 0, n)
	for i := range n {
		devices = append(devices, &entity.CustomerDevice{
			ID:         uuid.New(),
			CustomerID: customerID,
			FCMToken:   fmt.Sprintf("token-%d", i),
			IsActive:   true,
		})
	}

	return devices
}

func TestOrderNotificationService_SendsToActiveDevices(t *testing.T) {
	f := createTestNotificationService(t)
	customerID := uuid.New()
	msg := createdEvent(customerID)

	f.deviceRepo.EXPECT().FindActiveDevicesByCustomer(mock.Anything, customerID).Return(devicesWithTokens(customerID, 2), nil).Once()
	f.notifier.EXPECT().
		Multicast(mock.Anything, []string{"token-0", "token-1"}, mock.MatchedBy(func(push service.PushMessage) bool {
			return push.Title == "Pedido recibido" &&
				push.Body == "Tu pedido por $36000 está en preparación" &&
				push.Data["order_id"] == msg.OrderID.String() &&
				push.Data["status"] == entity.OrderStatusCooking
		})).
		Return(service.PushResult{Sent: 1, Failed: 1, InvalidTokens: []string{"token-1"}}, nil).
		Once()
	f.deviceRepo.EXPECT().DeactivateByTokens(mock.Anything, []string{"token-1"}).Return(nil).Once()

	require.NoError(t, f.service.HandleOrderEvent(context.Background(), msg))
}

func TestOrderNotificationService_Batches(t *testing.T) {
	f := createTestNotificationService(t)
	customerID := uuid.New()

	f.deviceRepo.EXPECT().FindActiveDevicesByCustomer(mock.Anything, customerID).Return(devicesWithTokens(customerID, 501), nil).Once()
	f.notifier.EXPECT().
		Multicast(mock.Anything, mock.MatchedBy(func(tokens []string) bool { return len(tokens) == service.MaxPushTokens }), mock.Anything).
		Return(service.PushResult{Sent: service.MaxPushTokens}, nil).
		Once()
	f.notifier.EXPECT().
		Multicast(mock.Anything, []string{"token-500"}, mock.Anything).
		Return(service.PushResult{Sent: 1}, nil).
		Once()

	require.NoError(t, f.service.HandleOrderEvent(context.Background(), createdEvent(customerID)))
}

func TestOrderNotificationService_NoDevices(t *testing.T) {
	f := createTestNotificationService(t)
	customerID := uuid.New()

	f.deviceRepo.EXPECT().FindActiveDevicesByCustomer(mock.Anything, customerID).Return([]*entity.CustomerDevice{}, nil).Once()

	require.NoError(t, f.service.HandleOrderEvent(context.Background(), createdEvent(customerID)))
}

func TestOrderNotificationService_RetryableFailures(t *testing.T) {
	t.Run("device lookup fails", func(t *testing.T) {
		f := createTestNotificationService(t)
		customerID := uuid.New()
		f.deviceRepo.EXPECT().FindActiveDevicesByCustomer(mock.Anything, customerID).Return(nil, errors.New("connection reset")).Once()

		err := f.service.HandleOrderEvent(context.Background(), createdEvent(customerID))
		require.Error(t, err)
		assert.True(t, usecase.IsRetryableError(err))
	})

	t.Run("every batch fails", func(t *testing.T) {
		f := createTestNotificationService(t)
		customerID := uuid.New()
		f.deviceRepo.EXPECT().FindActiveDevicesByCustomer(mock.Anything, customerID).Return(devicesWithTokens(customerID, 1), nil).Once()
		f.notifier.EXPECT().
			Multicast(mock.Anything, mock.Anything, mock.Anything).
			Return(service.PushResult{}, errors.New("fcm unavailable")).
			Once()

		err := f.service.HandleOrderEvent(context.Background(), createdEvent(customerID))
		require.Error(t, err)
		assert.True(t, usecase.IsRetryableError(err))
	})

	t.Run("empty message is not retried", func(t *testing.T) {
		f := createTestNotificationService(t)

		err := f.service.HandleOrderEvent(context.Background(), &service.OrderEventMessage{})
		require.Error(t, err)
		assert.False(t, usecase.IsRetryableError(err))
	})
}
