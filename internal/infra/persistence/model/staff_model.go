package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OperatorModel mirrors the 'operators' table.
type OperatorModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(120);not null"`
	IDNumber  string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_operators_id_number"`
	Available bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Couriers []CourierModel `gorm:"foreignKey:OperatorID;constraint:OnDelete:SET NULL"`
	Orders   []OrderModel   `gorm:"foreignKey:OperatorID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (OperatorModel) TableName() string {
	return "operators"
}

// BeforeCreate assigns a time-ordered id.
func (m *OperatorModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID, err = newID(m.ID)

	return err
}

// CourierModel mirrors the 'couriers' table.
type CourierModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"type:varchar(120);not null"`
	IDNumber   string     `gorm:"type:varchar(30);not null;uniqueIndex:idx_couriers_id_number"`
	Available  bool       `gorm:"not null"`
	OperatorID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Orders []OrderModel `gorm:"foreignKey:CourierID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (CourierModel) TableName() string {
	return "couriers"
}

// BeforeCreate assigns a time-ordered id.
func (m *CourierModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID, err = newID(m.ID)

	return err
}
