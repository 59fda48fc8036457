package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderModel mirrors the 'orders' table. CartID is unique so a cart converts
// into at most one order.
type OrderModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt   time.Time `gorm:"not null;index"`
	DeliveredAt *time.Time
	Status      string          `gorm:"type:varchar(60);not null;index"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CourierID   *uuid.UUID      `gorm:"type:uuid;index"`
	OperatorID  *uuid.UUID      `gorm:"type:uuid;index"`
	CartID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_orders_cart"`
	UpdatedAt   time.Time

	Lines []OrderLineModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// BeforeCreate assigns a time-ordered id.
func (m *OrderModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID, err = newID(m.ID)

	return err
}

// OrderLineModel mirrors the 'order_lines' table.
type OrderLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(120);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AddOnNames  []string        `gorm:"serializer:json;type:text"`
}

// TableName explicitly sets the table name for GORM.
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// BeforeCreate assigns a time-ordered id.
func (m *OrderLineModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID, err = newID(m.ID)

	return err
}
