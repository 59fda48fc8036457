package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxCartTotal is the largest total a cart or order column can hold.
var MaxCartTotal = decimal.RequireFromString("999999999999.99")

// Cart is a customer's basket. State true means open.
type Cart struct {
	ID         uuid.UUID       `json:"id"`
	State      bool            `json:"state"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Items      []*CartItem     `json:"items"`
	OrderID    *uuid.UUID      `json:"order_id,omitempty"` // Set once the cart has been converted into an order.
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// IsOpen reports whether the cart still accepts changes.
func (c *Cart) IsOpen() bool {
	return c.State
}

// HasItem reports whether itemID belongs to the cart.
func (c *Cart) HasItem(itemID uuid.UUID) bool {
	for _, item := range c.Items {
		if item.ID == itemID {
			return true
		}
	}

	return false
}

// LineSum adds unit price times quantity over every item.
func (c *Cart) LineSum() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}

	return total
}

// CartItem is one product line inside a cart.
type CartItem struct {
	ID        uuid.UUID        `json:"id"`
	CartID    uuid.UUID        `json:"cart_id"`
	ProductID uuid.UUID        `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"` // Product price plus the price of every selected add-on.
	AddOns    []*CartItemAddOn `json:"add_ons"`
	CreatedAt time.Time        `json:"created_at"`
}

// LineTotal is unit price times quantity.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartItemAddOn records one add-on selected for a cart item.
type CartItemAddOn struct {
	ID         uuid.UUID `json:"id"`
	CartItemID uuid.UUID `json:"cart_item_id"`
	AddOnID    uuid.UUID `json:"add_on_id"`
}
