package usecase

import (
	"context"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase derives orders from closed carts and moves them through their statuses.
type OrderUsecase interface {
	// CreateOrder converts a closed, non-empty cart into an order in status Cocinando.
	CreateOrder(ctx context.Context, cartID uuid.UUID) (*entity.Order, error)

	// Checkout closes the customer's active cart and creates its order in one step.
	Checkout(ctx context.Context, customerID uuid.UUID) (*entity.Order, error)

	// AdvanceStatus sets the status. Entregado, in any case, stamps the delivery time.
	AdvanceStatus(ctx context.Context, orderID uuid.UUID, status string) (*entity.Order, error)

	GetByID(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
	AssignCourier(ctx context.Context, orderID, courierID uuid.UUID) (*entity.Order, error)
	AssignOperator(ctx context.Context, orderID, operatorID uuid.UUID) (*entity.Order, error)
	ListOrders(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, error)

	// TrackingQR returns a PNG QR code linking to the order.
	TrackingQR(ctx context.Context, orderID uuid.UUID) ([]byte, error)
}
