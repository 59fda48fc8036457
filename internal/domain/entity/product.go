// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxNameLength bounds product, add-on and staff names, in characters.
const MaxNameLength = 120

var (
	// MaxAddOnPrice is the highest price an add-on may carry.
	MaxAddOnPrice = decimal.NewFromInt(500000)
	// MaxPrice is the largest product or cart item unit price a price column holds.
	MaxPrice = decimal.RequireFromString("9999999999.99")
)

// ValidPrice reports whether price is positive, at most max and has no more
// than two decimal places.
func ValidPrice(price, max decimal.Decimal) bool {
	return price.IsPositive() && !price.GreaterThan(max) && price.Equal(price.Round(2))
}

// Product is a sellable menu item.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageKey    string          `json:"image_key,omitempty"` // Object key in the image storage, empty when the product has no picture.
	ImageURL    string          `json:"image_url,omitempty"` // Resolved on read, never persisted.
	Category    Category        `json:"category"`
	Ingredients []string        `json:"ingredients"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	New         bool            `json:"new"`
	Popular     bool            `json:"popular"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Matches reports whether query appears, ignoring case, in the product name,
// description, category or any ingredient.
func (p *Product) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(string(p.Category)), q) {
		return true
	}
	for _, ingredient := range p.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), q) {
			return true
		}
	}

	return false
}

// AddOn is an optional extra that can be bought with products of certain categories.
type AddOn struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Active     bool            `json:"active"`
	Categories []Category      `json:"categories"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AppliesTo reports whether the add-on can be sold with products of category c.
func (a *AddOn) AppliesTo(c Category) bool {
	for _, category := range a.Categories {
		if category == c {
			return true
		}
	}

	return false
}

// AllowedAddOn links a product with an add-on that applies to its category.
type AllowedAddOn struct {
	ProductID uuid.UUID `json:"product_id"`
	AddOnID   uuid.UUID `json:"add_on_id"`
}

// ProductFilter narrows product listings. Zero values do not filter.
type ProductFilter struct {
	Category    Category
	ActiveOnly  bool
	NewOnly     bool
	PopularOnly bool
}
