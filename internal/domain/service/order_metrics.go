package service

// OrderMetrics records business counters for orders.
type OrderMetrics interface {
	OrderCreated()
	StatusChanged(status string)
}
