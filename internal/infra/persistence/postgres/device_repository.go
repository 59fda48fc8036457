package postgres

import (
	"context"

	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// deviceRepository implements the repository.DeviceRepository interface.
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository is the constructor for deviceRepository.
func NewDeviceRepository(db *gorm.DB) repository.DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

// CreateDevice persists a new device for a customer.
func (repo *deviceRepository) CreateDevice(ctx context.Context, device *entity.CustomerDevice) error {
	deviceM := fromDeviceDomain(device)

	if err := repo.db.WithContext(ctx).Create(deviceM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateDevice
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCustomerNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create device")
	}

	device.ID = deviceM.ID
	device.CreatedAt = deviceM.CreatedAt
	device.UpdatedAt = deviceM.UpdatedAt

	return nil
}

// FindDeviceByID retrieves a device by its unique ID.
func (repo *deviceRepository) FindDeviceByID(ctx context.Context, id uuid.UUID) (*entity.CustomerDevice, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindDeviceByCustomerAndDeviceID retrieves the device a client registered under deviceID.
func (repo *deviceRepository) FindDeviceByCustomerAndDeviceID(ctx context.Context, customerID uuid.UUID, deviceID string) (*entity.CustomerDevice, error) {
	return repo.findOne(ctx, "customer_id = ? AND device_id = ?", customerID, deviceID)
}

func (repo *deviceRepository) findOne(ctx context.Context, query string, args ...any) (*entity.CustomerDevice, error) {
	var deviceM model.CustomerDeviceModel

	if err := repo.db.WithContext(ctx).
		Where(query, args...).
		First(&deviceM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeviceNotFound
		}

		return nil, errors.Wrap(err, "failed to find device")
	}

	return toDeviceDomain(&deviceM), nil
}

// FindDevicesByCustomer retrieves all devices for a customer (including inactive).
func (repo *deviceRepository) FindDevicesByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.CustomerDevice, error) {
	return repo.findMany(ctx, "customer_id = ?", customerID)
}

// FindActiveDevicesByCustomer retrieves all active devices for a customer.
func (repo *deviceRepository) FindActiveDevicesByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.CustomerDevice, error) {
	return repo.findMany(ctx, "customer_id = ? AND is_active = ?", customerID, true)
}

func (repo *deviceRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.CustomerDevice, error) {
	var deviceModels []*model.CustomerDeviceModel

	if err := repo.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC").
		Find(&deviceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find devices")
	}

	devices := make([]*entity.CustomerDevice, 0, len(deviceModels))
	for _, deviceM := range deviceModels {
		devices = append(devices, toDeviceDomain(deviceM))
	}

	return devices, nil
}

// UpdateDevice saves the token, platform and active flag of an existing device.
func (repo *deviceRepository) UpdateDevice(ctx context.Context, device *entity.CustomerDevice) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CustomerDeviceModel{ID: device.ID}).
		Select("fcm_token", "platform", "is_active").
		Updates(fromDeviceDomain(device))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update device")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// DeactivateByTokens marks every device holding one of the tokens as inactive.
func (repo *deviceRepository) DeactivateByTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.CustomerDeviceModel{}).
		Where("fcm_token IN ?", tokens).
		Update("is_active", false).Error; err != nil {
		return errors.Wrap(err, "failed to deactivate devices")
	}

	return nil
}

// DeleteDevice removes a device by its ID so the client can register the same
// device id again.
func (repo *deviceRepository) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CustomerDeviceModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete device")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toDeviceDomain converts a GORM CustomerDeviceModel to a domain CustomerDevice entity.
func toDeviceDomain(data *model.CustomerDeviceModel) *entity.CustomerDevice {
	if data == nil {
		return nil
	}

	return &entity.CustomerDevice{
		ID:         data.ID,
		CustomerID: data.CustomerID,
		FCMToken:   data.FCMToken,
		DeviceID:   data.DeviceID,
		Platform:   data.Platform,
		IsActive:   data.IsActive,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromDeviceDomain converts a domain CustomerDevice entity to a GORM CustomerDeviceModel.
func fromDeviceDomain(data *entity.CustomerDevice) *model.CustomerDeviceModel {
	if data == nil {
		return nil
	}

	return &model.CustomerDeviceModel{
		ID:         data.ID,
		CustomerID: data.CustomerID,
		FCMToken:   data.FCMToken,
		DeviceID:   data.DeviceID,
		Platform:   data.Platform,
		IsActive:   data.IsActive,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
