package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Well known order statuses. Status is free text, these are the values the
// kitchen and dispatch screens use.
const (
	OrderStatusCooking   = "Cocinando"
	OrderStatusOnTheWay  = "En camino"
	OrderStatusDelivered = "Entregado"
)

// MaxStatusLength bounds an order status, in characters.
const MaxStatusLength = 60

// IsDeliveredStatus reports whether status marks the order as delivered.
func IsDeliveredStatus(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), OrderStatusDelivered)
}

// Order is a purchase derived from a closed cart.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	DeliveredAt *time.Time      `json:"delivered_at"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	CourierID   *uuid.UUID      `json:"courier_id,omitempty"`
	OperatorID  *uuid.UUID      `json:"operator_id,omitempty"`
	CartID      uuid.UUID       `json:"cart_id"`
	Lines       []*OrderLine    `json:"lines"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderLine is a snapshot of a cart item at the moment the order was placed.
type OrderLine struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	AddOnNames  []string        `json:"add_on_names"`
}

// OrderFilter narrows order listings. Zero values do not filter.
type OrderFilter struct {
	Status     string
	CustomerID *uuid.UUID
}

// OrderEventType names what happened to an order.
type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)

// OrderEvent is published whenever an order is created or changes status.
type OrderEvent struct {
	Type       OrderEventType  `json:"type"`
	OrderID    uuid.UUID       `json:"order_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	OccurredAt time.Time       `json:"occurred_at"`
}
