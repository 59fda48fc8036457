// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for device persistence.
var (
	// ErrDeviceNotFound is returned when a device is not found.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrDuplicateDevice is returned when trying to create a device that already exists.
	ErrDuplicateDevice = errors.New("device already exists")
)

// DeviceRepository defines the interface for device-related database operations.
type DeviceRepository interface {
	// CreateDevice persists a new device for a customer.
	CreateDevice(ctx context.Context, device *entity.CustomerDevice) error

	// FindDeviceByID retrieves a device by its unique ID.
	FindDeviceByID(ctx context.Context, id uuid.UUID) (*entity.CustomerDevice, error)

	// FindDeviceByCustomerAndDeviceID retrieves the device a client registered under deviceID.
	FindDeviceByCustomerAndDeviceID(ctx context.Context, customerID uuid.UUID, deviceID string) (*entity.CustomerDevice, error)

	// FindDevicesByCustomer retrieves all devices for a specific customer (including inactive).
	FindDevicesByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.CustomerDevice, error)

	// FindActiveDevicesByCustomer retrieves all active devices for a specific customer.
	FindActiveDevicesByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.CustomerDevice, error)

	// UpdateDevice saves the token, platform and active flag of an existing device.
	UpdateDevice(ctx context.Context, device *entity.CustomerDevice) error

	// DeactivateByTokens marks every device holding one of the tokens as inactive.
	DeactivateByTokens(ctx context.Context, tokens []string) error

	// DeleteDevice removes a device by its ID.
	DeleteDevice(ctx context.Context, id uuid.UUID) error
}
