package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(120);not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description string          `gorm:"type:text"`
	ImageKey    string          `gorm:"type:varchar(255)"`
	Category    string          `gorm:"type:varchar(40);not null;index"`
	Ingredients []string        `gorm:"serializer:json;type:text"`
	Stock       int             `gorm:"not null;default:0;check:chk_products_stock,stock >= 0"`
	Active      bool            `gorm:"not null"`
	New         bool            `gorm:"not null"`
	Popular     bool            `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	AllowedAddOns []AllowedAddOnModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// BeforeCreate assigns a time-ordered id.
func (m *ProductModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID, err = newID(m.ID)

	return err
}

// AddOnModel mirrors the 'add_ons' table.
type AddOnModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name       string          `gorm:"type:varchar(120);not null;index"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Active     bool            `gorm:"not null"`
	Categories []string        `gorm:"serializer:json;type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	AllowedProducts []AllowedAddOnModel `gorm:"foreignKey:AddOnID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (AddOnModel) TableName() string {
	return "add_ons"
}

// BeforeCreate assigns a time-ordered id.
func (m *AddOnModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID, err = newID(m.ID)

	return err
}

// AllowedAddOnModel mirrors the 'allowed_add_ons' join table.
type AllowedAddOnModel struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	AddOnID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName explicitly sets the table name for GORM.
func (AllowedAddOnModel) TableName() string {
	return "allowed_add_ons"
}
