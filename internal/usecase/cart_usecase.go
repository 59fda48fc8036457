package usecase

import (
	"context"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
)

// AddItemInput describes one product line to add to a cart. A nil CartID
// targets the customer's active cart, creating it if needed.
type AddItemInput struct {
	CustomerID uuid.UUID
	ProductID  uuid.UUID
	AddOnIDs   []uuid.UUID
	Quantity   int
	CartID     *uuid.UUID
}

// CartUsecase drives the cart lifecycle.
type CartUsecase interface {
	// GetOrCreateActiveCart returns the customer's open cart, creating an empty one if none exists.
	GetOrCreateActiveCart(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error)

	// FindActiveCart returns the customer's open cart without creating one.
	FindActiveCart(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error)

	AddItem(ctx context.Context, input AddItemInput) (*entity.Cart, error)
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (*entity.Cart, error)
	EmptyCart(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error)

	// CloseCart marks a non-empty open cart as closed so it can become an order.
	CloseCart(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error)

	// MostRecentClosedCartWithoutOrder returns the newest closed cart not yet converted.
	MostRecentClosedCartWithoutOrder(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error)

	GetCart(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error)
}
