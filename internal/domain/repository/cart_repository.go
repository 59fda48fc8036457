package repository

import (
	"context"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrCartNotFound is returned when a cart is not found.
	ErrCartNotFound = errors.New("cart not found")
	// ErrOpenCartExists is returned when the customer already has an open cart.
	ErrOpenCartExists = errors.New("customer already has an open cart")
	// ErrCartItemNotFound is returned when a cart item is not found.
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines the persistence operations for carts, their items
// and the add-on selections of each item.
type CartRepository interface {
	// CreateCart inserts the cart. It fails with ErrOpenCartExists when the
	// customer already owns an open cart.
	CreateCart(ctx context.Context, cart *entity.Cart) error

	// FindCartByID loads the cart with its items and add-on selections.
	FindCartByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)

	// FindOpenCartByCustomer loads the customer's open cart.
	FindOpenCartByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error)

	// FindLatestClosedCartWithoutOrder returns the closed cart with the highest
	// id that has not been converted into an order.
	FindLatestClosedCartWithoutOrder(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error)

	UpdateCartTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error
	UpdateCartState(ctx context.Context, id uuid.UUID, open bool) error
	CountOpenCarts(ctx context.Context) (int64, error)

	// CreateItem inserts the item together with its add-on selections.
	CreateItem(ctx context.Context, item *entity.CartItem) error

	// DeleteItem removes the item and its add-on selections.
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error

	// DeleteItems removes every item of the cart and their add-on selections.
	DeleteItems(ctx context.Context, cartID uuid.UUID) error
}
