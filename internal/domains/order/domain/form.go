package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	addressdomain "github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	cartdomain "github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
)

// Recognised submission fields.
const (
	FieldCustomer = "customer"
	FieldPhone    = "phone"
	FieldAddress  = "address"
	FieldPriority = "priority"
	FieldCart     = "cart"
	FieldPosition = "position"
)

// PriorityMarker is the only value a checked priority box submits.
const PriorityMarker = "on"

var (
	// ErrMalformedSubmission signals the raw submission could not be decoded into a form.
	ErrMalformedSubmission = errors.New("order submission is malformed")
	// ErrMissingField signals a required visible field was left blank.
	ErrMissingField = errors.New("required field is missing")
)

// RawForm is the untyped key/value submission as received from the order page.
type RawForm map[string]string

// Form is the typed submission record.
type Form struct {
	Customer string
	Phone    string
	Address  string
	Priority bool
	Cart     cartdomain.Cart
	Position addressdomain.Position
}

// ParseForm decodes the raw submission. Unknown fields, a malformed cart or position
// and unexpected priority markers are rejected; the phone number is left to Validate.
func ParseForm(raw RawForm) (Form, error) {
	if unknown := unknownFields(raw); len(unknown) > 0 {
		return Form{}, fmt.Errorf("%w: unknown fields %s", ErrMalformedSubmission, strings.Join(unknown, ", "))
	}

	form := Form{
		Customer: strings.TrimSpace(raw[FieldCustomer]),
		Phone:    strings.TrimSpace(raw[FieldPhone]),
		Address:  strings.TrimSpace(raw[FieldAddress]),
	}

	switch marker, ok := raw[FieldPriority]; {
	case !ok || marker == "":
	case marker == PriorityMarker:
		form.Priority = true
	default:
		return Form{}, fmt.Errorf("%w: priority marker %q", ErrMalformedSubmission, marker)
	}

	cart, err := cartdomain.Decode(raw[FieldCart])
	if err != nil {
		return Form{}, fmt.Errorf("%w: %w", ErrMalformedSubmission, err)
	}
	form.Cart = cart

	position, err := addressdomain.ParsePosition(raw[FieldPosition])
	if err != nil {
		return Form{}, fmt.Errorf("%w: %w", ErrMalformedSubmission, err)
	}
	form.Position = position

	if form.Customer == "" {
		return Form{}, fmt.Errorf("%w: %s", ErrMissingField, FieldCustomer)
	}
	if form.Address == "" {
		return Form{}, fmt.Errorf("%w: %s", ErrMissingField, FieldAddress)
	}
	return form, nil
}

func unknownFields(raw RawForm) []string {
	var unknown []string
	for key := range raw {
		switch key {
		case FieldCustomer, FieldPhone, FieldAddress, FieldPriority, FieldCart, FieldPosition:
		default:
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}
