package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	cartdomain "github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
)

// CartItem is the HTTP representation of a cart line.
type CartItem struct {
	PizzaID    int64       `json:"pizzaId"`
	Name       string      `json:"name"`
	Quantity   int         `json:"quantity"`
	UnitPrice  json.Number `json:"unitPrice"`
	TotalPrice json.Number `json:"totalPrice"`
}

// Cart is the HTTP representation of the session cart and its derived totals.
type Cart struct {
	Items         []CartItem  `json:"items"`
	TotalPrice    json.Number `json:"totalPrice"`
	TotalQuantity int         `json:"totalQuantity"`
}

// AddItem carries the "add to cart" payload sent by the menu view.
type AddItem struct {
	PizzaID   int64       `json:"pizzaId" binding:"required"`
	Name      string      `json:"name" binding:"required"`
	Quantity  int         `json:"quantity"`
	UnitPrice json.Number `json:"unitPrice" binding:"required"`
}

// SetQuantity carries a quantity update. Zero removes the line.
type SetQuantity struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ToDomainItem converts the add payload into a validated cart line. Quantity defaults to one.
func ToDomainItem(payload AddItem) (cartdomain.Item, error) {
	unit, err := decimal.NewFromString(payload.UnitPrice.String())
	if err != nil {
		return cartdomain.Item{}, fmt.Errorf("unitPrice: %w", err)
	}
	quantity := payload.Quantity
	if quantity == 0 {
		quantity = 1
	}
	return cartdomain.NewItem(payload.PizzaID, payload.Name, quantity, unit)
}

// FromDomainCart converts the domain cart for responses.
func FromDomainCart(cart cartdomain.Cart) Cart {
	items := make([]CartItem, 0, len(cart))
	for _, item := range cart {
		items = append(items, FromDomainItem(item))
	}
	return Cart{
		Items:         items,
		TotalPrice:    json.Number(cart.TotalPrice().StringFixed(2)),
		TotalQuantity: cart.TotalQuantity(),
	}
}

// FromDomainItem converts a single line.
func FromDomainItem(item cartdomain.Item) CartItem {
	return CartItem{
		PizzaID:    item.ProductID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		UnitPrice:  json.Number(item.UnitPrice.String()),
		TotalPrice: json.Number(item.TotalPrice.String()),
	}
}
