package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerModel mirrors the 'customers' table. Email is stored lower case so
// the unique index is case-insensitive.
type CustomerModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Surname      string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_customers_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Phone        string    `gorm:"type:varchar(16)"`
	Address      string    `gorm:"type:varchar(200)"`
	Active       bool      `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Carts   []CartModel           `gorm:"foreignKey:CustomerID"`
	Orders  []OrderModel          `gorm:"foreignKey:CustomerID"`
	Devices []CustomerDeviceModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}

// BeforeCreate assigns a time-ordered id.
func (m *CustomerModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID, err = newID(m.ID)

	return err
}
