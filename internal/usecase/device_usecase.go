package usecase

import (
	"context"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
)

// DeviceInfo represents device information for registration
type DeviceInfo struct {
	FCMToken string `json:"fcm_token"`
	DeviceID string `json:"device_id"`
	Platform string `json:"platform"`
}

// DeviceUsecase defines the interface for device management use cases
type DeviceUsecase interface {
	// RegisterDevice registers a new device or updates an existing one
	RegisterDevice(ctx context.Context, customerID uuid.UUID, deviceInfo *DeviceInfo) (*entity.CustomerDevice, error)

	// GetCustomerDevices retrieves all active devices for a customer
	GetCustomerDevices(ctx context.Context, customerID uuid.UUID) ([]*entity.CustomerDevice, error)

	// DeactivateDevice removes a device owned by the customer
	DeactivateDevice(ctx context.Context, customerID, deviceID uuid.UUID) error
}
