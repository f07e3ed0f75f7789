package domain

import (
	"github.com/shopspring/decimal"

	addressdomain "github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	cartdomain "github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
)

// PriorityRate is the surcharge applied to priority orders.
var PriorityRate = decimal.RequireFromString("0.2")

// Pricing carries the derived amounts of a draft. The cart itself never holds the surcharge.
type Pricing struct {
	CartTotal         decimal.Decimal
	PrioritySurcharge decimal.Decimal
	FinalPrice        decimal.Decimal
}

// PriceFor computes the final price. Priority adds PriorityRate of the cart total, rounded to cents.
func PriceFor(cartTotal decimal.Decimal, priority bool) Pricing {
	if !priority {
		return Pricing{CartTotal: cartTotal, PrioritySurcharge: decimal.Zero, FinalPrice: cartTotal}
	}
	final := cartTotal.Mul(decimal.NewFromInt(1).Add(PriorityRate)).Round(2)
	return Pricing{
		CartTotal:         cartTotal,
		PrioritySurcharge: final.Sub(cartTotal),
		FinalPrice:        final,
	}
}

// Draft is the order payload handed to the order-creation collaborator.
type Draft struct {
	Customer string
	Phone    string
	Address  string
	Position *addressdomain.Position
	Priority bool
	Cart     cartdomain.Cart
	Pricing  Pricing
}

// Compose merges the typed form, the cart, the latest resolution and the priority flag.
// A position is only attached when both coordinates are known.
func Compose(form Form, cart cartdomain.Cart, resolution addressdomain.Resolution, priority bool) Draft {
	draft := Draft{
		Customer: form.Customer,
		Phone:    form.Phone,
		Address:  form.Address,
		Priority: priority,
		Cart:     cart.Clone(),
		Pricing:  PriceFor(cart.TotalPrice(), priority),
	}
	if draft.Address == "" {
		draft.Address = resolution.Address
	}
	switch {
	case resolution.Position.Complete():
		position := resolution.Position
		draft.Position = &position
	case form.Position.Complete():
		position := form.Position
		draft.Position = &position
	}
	return draft
}

// ComposeForm is Compose for a submission whose hidden fields already carry the cart and position.
func ComposeForm(form Form) Draft {
	return Compose(form, form.Cart, addressdomain.Resolution{}, form.Priority)
}
