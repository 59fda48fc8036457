package repository

import (
	"context"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateOrder is returned when the cart already has an order.
	ErrDuplicateOrder = errors.New("cart already has an order")
)

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	// CreateOrder inserts the order and its lines. It fails with
	// ErrDuplicateOrder when the cart was already converted.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// UpdateOrder saves status, delivery date and assignments.
	UpdateOrder(ctx context.Context, order *entity.Order) error

	FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindOrderByCartID(ctx context.Context, cartID uuid.UUID) (*entity.Order, error)
	ListOrders(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, error)

	// Stats aggregates order counts, revenue and best sellers.
	Stats(ctx context.Context, topProducts int) (*entity.DashboardStats, error)
}
