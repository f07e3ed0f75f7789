package domain

import "time"

// Event is the base interface for order domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderPlaced is raised once the restaurant accepted an order.
type OrderPlaced struct {
	BaseEvent
	OrderID           string
	Customer          string
	Priority          bool
	ItemCount         int
	OrderPrice        string
	PriorityPrice     string
	EstimatedDelivery time.Time
}

func (e OrderPlaced) EventName() string {
	return "orders.order.placed"
}

// NewOrderPlaced builds the event for an accepted order.
func NewOrderPlaced(order *PlacedOrder, at time.Time) OrderPlaced {
	return OrderPlaced{
		BaseEvent:         BaseEvent{Timestamp: at},
		OrderID:           order.ID,
		Customer:          order.Customer,
		Priority:          order.Priority,
		ItemCount:         order.Cart.TotalQuantity(),
		OrderPrice:        order.OrderPrice.StringFixed(2),
		PriorityPrice:     order.PriorityPrice.StringFixed(2),
		EstimatedDelivery: order.EstimatedDelivery,
	}
}
