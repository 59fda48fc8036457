package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats summarizes the store activity.
type DashboardStats struct {
	TotalOrders      int64            `json:"total_orders"`
	OrdersByStatus   map[string]int64 `json:"orders_by_status"`
	TotalRevenue     decimal.Decimal  `json:"total_revenue"`
	DeliveredRevenue decimal.Decimal  `json:"delivered_revenue"`
	TopProducts      []*ProductSales  `json:"top_products"`
	CustomerCount    int64            `json:"customer_count"`
	OpenCartCount    int64            `json:"open_cart_count"`
}

// ProductSales is the ordered quantity of one product.
type ProductSales struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
}
