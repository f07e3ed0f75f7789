package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	addressdomain "github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	cartdomain "github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

// CreateOrder is the body of POST /api/order.
type CreateOrder struct {
	Customer string          `json:"customer" binding:"required"`
	Phone    string          `json:"phone"`
	Address  string          `json:"address" binding:"required"`
	Priority bool            `json:"priority"`
	Position string          `json:"position"`
	Cart     json.RawMessage `json:"cart" binding:"required"`
}

// Order is the JSON representation of a placed order.
type Order struct {
	ID                string          `json:"id"`
	Customer          string          `json:"customer"`
	Phone             string          `json:"phone"`
	Address           string          `json:"address"`
	Priority          bool            `json:"priority"`
	Position          string          `json:"position"`
	Cart              json.RawMessage `json:"cart"`
	Status            string          `json:"status"`
	OrderPrice        json.Number     `json:"orderPrice"`
	PriorityPrice     json.Number     `json:"priorityPrice"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
}

// Envelope wraps every restaurant response.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success wraps data in the success envelope.
func Success[T any](data T) Envelope[T] {
	return Envelope[T]{Status: "success", Data: data}
}

// FromDomainDraft converts a composed draft into the creation payload.
func FromDomainDraft(draft orderdomain.Draft) (CreateOrder, error) {
	cart, err := cartdomain.Encode(draft.Cart)
	if err != nil {
		return CreateOrder{}, err
	}
	payload := CreateOrder{
		Customer: draft.Customer,
		Phone:    draft.Phone,
		Address:  draft.Address,
		Priority: draft.Priority,
		Cart:     json.RawMessage(cart),
	}
	if draft.Position != nil {
		payload.Position = draft.Position.String()
	}
	return payload, nil
}

// ToDomainDraft decodes the creation payload. Cart lines are re-validated.
func ToDomainDraft(payload CreateOrder) (orderdomain.Draft, error) {
	cart, err := cartdomain.Decode(string(payload.Cart))
	if err != nil {
		return orderdomain.Draft{}, err
	}
	position, err := addressdomain.ParsePosition(payload.Position)
	if err != nil {
		return orderdomain.Draft{}, err
	}
	draft := orderdomain.Draft{
		Customer: payload.Customer,
		Phone:    payload.Phone,
		Address:  payload.Address,
		Priority: payload.Priority,
		Cart:     cart,
		Pricing:  orderdomain.PriceFor(cart.TotalPrice(), payload.Priority),
	}
	if position.Complete() {
		draft.Position = &position
	}
	return draft, nil
}

// FromDomainOrder converts a placed order for responses.
func FromDomainOrder(order *orderdomain.PlacedOrder) (Order, error) {
	if order == nil {
		return Order{}, fmt.Errorf("order is nil")
	}
	cart, err := cartdomain.Encode(order.Cart)
	if err != nil {
		return Order{}, err
	}
	out := Order{
		ID:                order.ID,
		Customer:          order.Customer,
		Phone:             order.Phone,
		Address:           order.Address,
		Priority:          order.Priority,
		Cart:              json.RawMessage(cart),
		Status:            string(order.Status),
		OrderPrice:        json.Number(order.OrderPrice.String()),
		PriorityPrice:     json.Number(order.PriorityPrice.String()),
		EstimatedDelivery: order.EstimatedDelivery,
	}
	if order.Position != nil {
		out.Position = order.Position.String()
	}
	return out, nil
}

// ToDomainOrder decodes a placed order received from the restaurant.
func ToDomainOrder(in Order) (*orderdomain.PlacedOrder, error) {
	cart, err := cartdomain.Decode(string(in.Cart))
	if err != nil {
		return nil, err
	}
	position, err := addressdomain.ParsePosition(in.Position)
	if err != nil {
		return nil, err
	}
	orderPrice, err := decimalOrZero(in.OrderPrice)
	if err != nil {
		return nil, fmt.Errorf("orderPrice: %w", err)
	}
	priorityPrice, err := decimalOrZero(in.PriorityPrice)
	if err != nil {
		return nil, fmt.Errorf("priorityPrice: %w", err)
	}
	order := &orderdomain.PlacedOrder{
		ID:                in.ID,
		Customer:          in.Customer,
		Phone:             in.Phone,
		Address:           in.Address,
		Priority:          in.Priority,
		Cart:              cart,
		Status:            orderdomain.Status(in.Status),
		OrderPrice:        orderPrice,
		PriorityPrice:     priorityPrice,
		EstimatedDelivery: in.EstimatedDelivery,
	}
	if position.Complete() {
		order.Position = &position
	}
	return order, nil
}

func decimalOrZero(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}
