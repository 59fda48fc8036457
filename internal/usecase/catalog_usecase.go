// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"io"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Category    string
	Ingredients []string
	Stock       int
	Active      bool
	New         bool
	Popular     bool
}

// AddOnInput carries the editable fields of an add-on.
type AddOnInput struct {
	Name       string
	Price      decimal.Decimal
	Active     bool
	Categories []string
}

// ImageUpload is a product picture received from a client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// --- Output DTOs ---

// MenuProduct is a product together with the add-ons offered with it.
type MenuProduct struct {
	*entity.Product
	AddOns []*entity.AddOn `json:"add_ons"`
}

// MenuSection groups the menu by category.
type MenuSection struct {
	Category entity.Category `json:"category"`
	Products []*MenuProduct  `json:"products"`
}

// CatalogUsecase manages products and add-ons.
type CatalogUsecase interface {
	CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)

	// SearchProducts matches the query against name, description, category and ingredients.
	SearchProducts(ctx context.Context, query string) ([]*entity.Product, error)

	// AdjustStock adds delta (negative to subtract) to the product stock.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*entity.Product, error)

	// UploadProductImage stores the picture and replaces the previous one.
	UploadProductImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (*entity.Product, error)

	CreateAddOn(ctx context.Context, input AddOnInput) (*entity.AddOn, error)
	UpdateAddOn(ctx context.Context, id uuid.UUID, input AddOnInput) (*entity.AddOn, error)
	DeleteAddOn(ctx context.Context, id uuid.UUID) error
	GetAddOn(ctx context.Context, id uuid.UUID) (*entity.AddOn, error)
	SearchAddOns(ctx context.Context, name string) ([]*entity.AddOn, error)
	ListAddOnsForProduct(ctx context.Context, productID uuid.UUID) ([]*entity.AddOn, error)

	// Menu returns the active products grouped by category with their active add-ons.
	Menu(ctx context.Context) ([]*MenuSection, error)
}
