package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerDeviceModel is the GORM-specific struct for the 'customer_devices' table.
// It represents a customer's device registered for push notifications.
type CustomerDeviceModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_customer_devices_device"`
	FCMToken   string    `gorm:"type:varchar(255);not null;index"`
	DeviceID   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_customer_devices_device"`
	Platform   string    `gorm:"type:varchar(50);not null"`
	IsActive   bool      `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerDeviceModel) TableName() string {
	return "customer_devices"
}

// BeforeCreate assigns a time-ordered id.
func (m *CustomerDeviceModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID, err = newID(m.ID)

	return err
}
