// Package model holds the GORM structs mirroring the database tables.
// The types are exported so the GORM Gen tool can read them from cmd/gen.
package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID returns id, or a fresh time-ordered UUID when id is unset.
func newID(id uuid.UUID) (uuid.UUID, error) {
	if id != uuid.Nil {
		return id, nil
	}

	return uuid.NewV7()
}

// All returns every model in migration order.
func All() []any {
	return []any{
		&OperatorModel{},
		&CourierModel{},
		&CustomerModel{},
		&CustomerDeviceModel{},
		&ProductModel{},
		&AddOnModel{},
		&AllowedAddOnModel{},
		&CartModel{},
		&CartItemModel{},
		&CartItemAddOnModel{},
		&OrderModel{},
		&OrderLineModel{},
	}
}

// AutoMigrate creates or updates every table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
