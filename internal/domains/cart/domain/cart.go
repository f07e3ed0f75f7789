package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be at least one")
	ErrNegativePrice    = errors.New("unit price must not be negative")
	ErrTotalMismatch    = errors.New("line total does not match quantity times unit price")
	ErrDuplicateProduct = errors.New("cart already contains the product")
)

// Item is a single cart line. TotalPrice is always Quantity × UnitPrice.
type Item struct {
	ProductID  int64
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// NewItem validates the line and derives its total.
func NewItem(productID int64, name string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	item := Item{
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	item.TotalPrice = item.lineTotal()
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Validate enforces the line invariants.
func (i Item) Validate() error {
	if i.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if i.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if i.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	if !i.TotalPrice.Equal(i.lineTotal()) {
		return ErrTotalMismatch
	}
	return nil
}

// WithQuantity returns a copy of the line with the quantity replaced and the total recomputed.
func (i Item) WithQuantity(quantity int) Item {
	i.Quantity = quantity
	i.TotalPrice = i.lineTotal()
	return i
}

func (i Item) lineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered sequence of lines keyed by product id.
type Cart []Item

// NewCart validates every line and rejects duplicate products.
func NewCart(items ...Item) (Cart, error) {
	cart := make(Cart, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if cart.Contains(item.ProductID) {
			return nil, ErrDuplicateProduct
		}
		cart = append(cart, item)
	}
	return cart, nil
}

// TotalPrice sums the line totals.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.TotalPrice)
	}
	return total
}

// TotalQuantity sums the line quantities.
func (c Cart) TotalQuantity() int {
	total := 0
	for _, item := range c {
		total += item.Quantity
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Contains reports whether a line for the product exists.
func (c Cart) Contains(productID int64) bool {
	return c.indexOf(productID) >= 0
}

// Find returns the line for the product, if present.
func (c Cart) Find(productID int64) (Item, bool) {
	if idx := c.indexOf(productID); idx >= 0 {
		return c[idx], true
	}
	return Item{}, false
}

// Clone returns an independent copy of the cart.
func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	return append(Cart{}, c...)
}

func (c Cart) indexOf(productID int64) int {
	for i, item := range c {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
