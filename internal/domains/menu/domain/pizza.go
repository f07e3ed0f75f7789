package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	cartdomain "github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
)

var (
	ErrInvalidPizzaID = errors.New("pizza id must be greater than zero")
	ErrMissingName    = errors.New("pizza name is required")
	ErrNegativePrice  = errors.New("pizza price must not be negative")
	ErrSoldOut        = errors.New("pizza is sold out")
)

// Pizza is a menu entry.
type Pizza struct {
	ID          int64
	Name        string
	UnitPrice   decimal.Decimal
	ImageURL    string
	Ingredients []string
	SoldOut     bool
}

// Validate enforces the menu entry invariants.
func (p Pizza) Validate() error {
	if p.ID <= 0 {
		return ErrInvalidPizzaID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	if p.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// CartItem builds the cart line added by "Add to cart".
func (p Pizza) CartItem(quantity int) (cartdomain.Item, error) {
	if p.SoldOut {
		return cartdomain.Item{}, ErrSoldOut
	}
	return cartdomain.NewItem(p.ID, p.Name, quantity, p.UnitPrice)
}

// Clone copies the ingredient slice.
func (p Pizza) Clone() Pizza {
	p.Ingredients = append([]string(nil), p.Ingredients...)
	return p
}
