package repository

import (
	"context"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrAddOnNotFound is returned when an add-on is not found.
	ErrAddOnNotFound = errors.New("add-on not found")
	// ErrInsufficientStock is returned when a stock adjustment would go below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines the persistence operations for products.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *entity.Product) error
	UpdateProduct(ctx context.Context, product *entity.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindProductNames maps ids to names, soft-deleted products included.
	FindProductNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)

	ListProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)

	// AdjustStock adds delta to the stock and returns the new value. It fails
	// with ErrInsufficientStock when the result would be negative.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

// AddOnRepository defines the persistence operations for add-ons and their
// allowed product links.
type AddOnRepository interface {
	CreateAddOn(ctx context.Context, addOn *entity.AddOn) error
	UpdateAddOn(ctx context.Context, addOn *entity.AddOn) error
	DeleteAddOn(ctx context.Context, id uuid.UUID) error
	FindAddOnByID(ctx context.Context, id uuid.UUID) (*entity.AddOn, error)
	FindAddOnsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.AddOn, error)

	// FindAddOnNames maps ids to names, soft-deleted add-ons included.
	FindAddOnNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)

	// FindAddOnByName looks the name up ignoring case.
	FindAddOnByName(ctx context.Context, name string) (*entity.AddOn, error)

	SearchAddOns(ctx context.Context, name string) ([]*entity.AddOn, error)
	ListAddOns(ctx context.Context) ([]*entity.AddOn, error)

	// ListAddOnsForProduct returns the add-ons linked to the product.
	ListAddOnsForProduct(ctx context.Context, productID uuid.UUID) ([]*entity.AddOn, error)

	// ReplaceAllowedAddOns drops every allowed link and stores links instead.
	ReplaceAllowedAddOns(ctx context.Context, links []*entity.AllowedAddOn) error
}
