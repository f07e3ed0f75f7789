package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformedCart is returned when a carried cart representation cannot be decoded.
var ErrMalformedCart = errors.New("cart payload is malformed")

// wireItem is the representation carried in the hidden cart form field and
// sent to the restaurant backend. Prices travel as JSON numbers.
type wireItem struct {
	ProductID  int64       `json:"pizzaId"`
	Name       string      `json:"name"`
	Quantity   int         `json:"quantity"`
	UnitPrice  json.Number `json:"unitPrice"`
	TotalPrice json.Number `json:"totalPrice"`
}

// Encode serializes the cart into its carried JSON representation.
func Encode(c Cart) (string, error) {
	wire := make([]wireItem, 0, len(c))
	for _, item := range c {
		wire = append(wire, wireItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  json.Number(item.UnitPrice.String()),
			TotalPrice: json.Number(item.TotalPrice.String()),
		})
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Decode parses the carried JSON representation. A blank payload is an empty cart.
// Every line is re-validated, so a tampered total is rejected rather than trusted.
func Decode(raw string) (Cart, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Cart{}, nil
	}
	var wire []wireItem
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCart, err)
	}
	items := make([]Item, 0, len(wire))
	for i, w := range wire {
		unit, err := decimal.NewFromString(w.UnitPrice.String())
		if err != nil {
			return nil, fmt.Errorf("%w: line %d unit price: %w", ErrMalformedCart, i, err)
		}
		item, err := NewItem(w.ProductID, w.Name, w.Quantity, unit)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedCart, i, err)
		}
		if w.TotalPrice != "" {
			total, err := decimal.NewFromString(w.TotalPrice.String())
			if err != nil || !total.Equal(item.TotalPrice) {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedCart, i, ErrTotalMismatch)
			}
		}
		items = append(items, item)
	}
	cart, err := NewCart(items...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCart, err)
	}
	return cart, nil
}
