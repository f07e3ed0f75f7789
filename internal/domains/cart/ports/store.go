package ports

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
)

// Store holds the cart of one shopping session. Mutations are synchronous and
// the derived totals are consistent as soon as a call returns.
type Store interface {
	// AddItem appends the line, or increases the quantity when the product is already present.
	AddItem(item domain.Item) error
	RemoveItem(productID int64)
	// SetQuantity replaces a line quantity. A quantity of zero or less removes the line.
	SetQuantity(productID int64, quantity int)
	// Clear empties the cart. Calling it on an empty cart is a no-op.
	Clear()
	Items() domain.Cart
	TotalPrice() decimal.Decimal
	IsEmpty() bool
}

// Sessions hands out the cart store bound to a shopping session.
type Sessions interface {
	ForSession(sessionID string) Store
	// Lookup returns the session store only when the session already has one.
	Lookup(sessionID string) (Store, bool)
}
