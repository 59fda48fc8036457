package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartModel mirrors the 'carts' table. The partial unique index allows a single
// open cart per customer.
type CartModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	State      bool            `gorm:"not null;index"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_carts_open_customer,where:state = true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	Order *OrderModel     `gorm:"foreignKey:CartID"`
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}

// BeforeCreate assigns a time-ordered id.
func (m *CartModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID, err = newID(m.ID)

	return err
}

// CartItemModel mirrors the 'cart_items' table.
type CartItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null;check:chk_cart_items_quantity,quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time

	AddOns []CartItemAddOnModel `gorm:"foreignKey:CartItemID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}

// BeforeCreate assigns a time-ordered id.
func (m *CartItemModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID, err = newID(m.ID)

	return err
}

// CartItemAddOnModel mirrors the 'cart_item_add_ons' table, one row per add-on
// selected for an item.
type CartItemAddOnModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	AddOnID    uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (CartItemAddOnModel) TableName() string {
	return "cart_item_add_ons"
}

// BeforeCreate assigns a time-ordered id.
func (m *CartItemAddOnModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID, err = newID(m.ID)

	return err
}
