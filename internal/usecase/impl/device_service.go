package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "burgerhub/internal/delivery/context"
	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type deviceService struct {
	deviceRepo repository.DeviceRepository
	logger     *slog.Logger
}

// DeviceServiceParams holds dependencies for DeviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	DeviceRepo repository.DeviceRepository
	Logger     *slog.Logger
}

// NewDeviceService creates a new device service instance
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: params.DeviceRepo,
		logger:     params.Logger,
	}
}

func (s *deviceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// RegisterDevice registers a new device or updates an existing one
func (s *deviceService) RegisterDevice(ctx context.Context, customerID uuid.UUID, deviceInfo *usecase.DeviceInfo) (*entity.CustomerDevice, error) {
	if customerID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}
	if deviceInfo == nil || strings.TrimSpace(deviceInfo.FCMToken) == "" || strings.TrimSpace(deviceInfo.DeviceID) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("fcm_token y device_id son obligatorios")
	}
	platform := strings.ToLower(strings.TrimSpace(deviceInfo.Platform))
	if platform != entity.PlatformIOS && platform != entity.PlatformAndroid {
		return nil, domainerrors.ErrValidationFailed.WithDetails("platform debe ser ios o android")
	}

	existing, err := s.deviceRepo.FindDeviceByCustomerAndDeviceID(ctx, customerID, deviceInfo.DeviceID)
	if err == nil {
		// Same physical device: refresh its token and reactivate it.
		existing.FCMToken = deviceInfo.FCMToken
		existing.Platform = platform
		existing.IsActive = true
		if err := s.deviceRepo.UpdateDevice(ctx, existing); err != nil {
			return nil, errors.Wrap(err, "failed to update device")
		}

		s.log(ctx).Debug("Device token refreshed", slog.Any("deviceID", existing.ID))

		return s.deviceRepo.FindDeviceByID(ctx, existing.ID)
	}
	if !errors.Is(err, repository.ErrDeviceNotFound) {
		return nil, errors.Wrap(err, "failed to find device")
	}

	device := &entity.CustomerDevice{
		CustomerID: customerID,
		FCMToken:   deviceInfo.FCMToken,
		DeviceID:   deviceInfo.DeviceID,
		Platform:   platform,
		IsActive:   true,
	}
	if err := s.deviceRepo.CreateDevice(ctx, device); err != nil {
		return nil, errors.Wrap(err, "failed to create device")
	}

	s.log(ctx).Info("Device registered", slog.Any("deviceID", device.ID), slog.String("platform", platform))

	return device, nil
}

// GetCustomerDevices retrieves all active devices for a customer
func (s *deviceService) GetCustomerDevices(ctx context.Context, customerID uuid.UUID) ([]*entity.CustomerDevice, error) {
	devices, err := s.deviceRepo.FindActiveDevicesByCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active devices by customer")
	}

	return devices, nil
}

// DeactivateDevice removes a device after checking the customer owns it
func (s *deviceService) DeactivateDevice(ctx context.Context, customerID, deviceID uuid.UUID) error {
	device, err := s.deviceRepo.FindDeviceByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return domainerrors.ErrDeviceNotFound
		}

		return errors.Wrap(err, "failed to find device by ID")
	}

	if device.CustomerID != customerID {
		return domainerrors.ErrDeviceOwnership
	}

	if err := s.deviceRepo.DeleteDevice(ctx, deviceID); err != nil {
		return errors.Wrap(err, "failed to delete device")
	}

	return nil
}
