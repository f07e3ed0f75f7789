package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	addressdomain "github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	cartdomain "github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
)

// Status enumerates the progression of a placed order.
type Status string

const (
	StatusPreparing Status = "preparing"
	StatusDelivered Status = "delivered"
)

var (
	ErrInvalidOrderID = errors.New("order id is required")
	ErrEmptyOrderCart = errors.New("order cart must contain at least one item")
)

// DefaultDeliveryWindow is the time to delivery of a regular order.
const DefaultDeliveryWindow = 45 * time.Minute

// PlacedOrder is the order as accepted by the restaurant.
type PlacedOrder struct {
	ID                string
	Customer          string
	Phone             string
	Address           string
	Position          *addressdomain.Position
	Priority          bool
	Cart              cartdomain.Cart
	Status            Status
	OrderPrice        decimal.Decimal
	PriorityPrice     decimal.Decimal
	EstimatedDelivery time.Time
}

// Place turns a draft into an accepted order. Prices are recomputed from the cart;
// priority orders pay PriorityRate on top and are delivered in two thirds of the window.
func Place(id string, draft Draft, placedAt time.Time, window time.Duration) (*PlacedOrder, error) {
	if id == "" {
		return nil, ErrInvalidOrderID
	}
	if draft.Cart.IsEmpty() {
		return nil, ErrEmptyOrderCart
	}
	if window <= 0 {
		window = DefaultDeliveryWindow
	}
	pricing := PriceFor(draft.Cart.TotalPrice(), draft.Priority)
	if draft.Priority {
		window = window * 2 / 3
	}
	return &PlacedOrder{
		ID:                id,
		Customer:          draft.Customer,
		Phone:             draft.Phone,
		Address:           draft.Address,
		Position:          draft.Position,
		Priority:          draft.Priority,
		Cart:              draft.Cart.Clone(),
		Status:            StatusPreparing,
		OrderPrice:        pricing.CartTotal,
		PriorityPrice:     pricing.PrioritySurcharge,
		EstimatedDelivery: placedAt.Add(window),
	}, nil
}

// Validate enforces invariants on a persisted or decoded order.
func (o *PlacedOrder) Validate() error {
	if o.ID == "" {
		return ErrInvalidOrderID
	}
	if o.Cart.IsEmpty() {
		return ErrEmptyOrderCart
	}
	return nil
}

// Total is what the customer pays.
func (o *PlacedOrder) Total() decimal.Decimal {
	return o.OrderPrice.Add(o.PriorityPrice)
}

// Delivered reports whether the estimated delivery time has passed.
func (o *PlacedOrder) Delivered(now time.Time) bool {
	return !now.Before(o.EstimatedDelivery)
}
