package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, id int64, name string, qty int, unit int64) Item {
	t.Helper()
	item, err := NewItem(id, name, qty, decimal.NewFromInt(unit))
	require.NoError(t, err)
	return item
}

func TestNewItem_DerivesTotal(t *testing.T) {
	item := mustItem(t, 12, "Mediterranean", 2, 16)
	require.True(t, item.TotalPrice.Equal(decimal.NewFromInt(32)))
}

func TestNewItem_RejectsInvalidLines(t *testing.T) {
	_, err := NewItem(0, "Ghost", 1, decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrInvalidProductID)

	_, err = NewItem(1, "Empty", 0, decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewItem(1, "Refund", 1, decimal.NewFromInt(-1))
	require.ErrorIs(t, err, ErrNegativePrice)
}

func TestCart_TotalPriceIsSumOfLines(t *testing.T) {
	cart, err := NewCart(
		mustItem(t, 12, "Mediterranean", 2, 16),
		mustItem(t, 6, "Vegetale", 1, 13),
		mustItem(t, 11, "Spinach and Mushroom", 1, 15),
	)
	require.NoError(t, err)

	expected := decimal.Zero
	for _, item := range cart {
		expected = expected.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	require.True(t, cart.TotalPrice().Equal(expected))
	require.True(t, cart.TotalPrice().Equal(decimal.NewFromInt(60)))
	require.Equal(t, 4, cart.TotalQuantity())
}

func TestNewCart_RejectsDuplicateProducts(t *testing.T) {
	_, err := NewCart(mustItem(t, 1, "A", 1, 10), mustItem(t, 1, "A", 2, 10))
	require.ErrorIs(t, err, ErrDuplicateProduct)
}

func TestCodec_RoundTripKeepsOrderAndPrices(t *testing.T) {
	cart, err := NewCart(mustItem(t, 12, "Mediterranean", 2, 16), mustItem(t, 6, "Vegetale", 1, 13))
	require.NoError(t, err)

	raw, err := Encode(cart)
	require.NoError(t, err)
	require.Contains(t, raw, `"pizzaId":12`)
	require.Contains(t, raw, `"unitPrice":16`)

	decoded, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	require.Equal(t, int64(12), decoded[0].ProductID)
	require.True(t, decoded.TotalPrice().Equal(decimal.NewFromInt(45)))
}

func TestDecode_BlankIsEmptyCart(t *testing.T) {
	cart, err := Decode("  ")
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
}

func TestDecode_RejectsMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"not json":       `{"pizzaId":`,
		"object":         `{"pizzaId":1}`,
		"unknown field":  `[{"pizzaId":1,"name":"A","quantity":1,"unitPrice":1,"totalPrice":1,"extra":true}]`,
		"tampered total": `[{"pizzaId":1,"name":"A","quantity":2,"unitPrice":5,"totalPrice":1}]`,
		"zero quantity":  `[{"pizzaId":1,"name":"A","quantity":0,"unitPrice":5,"totalPrice":0}]`,
		"duplicate":      `[{"pizzaId":1,"name":"A","quantity":1,"unitPrice":5},{"pizzaId":1,"name":"A","quantity":1,"unitPrice":5}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(raw)
			require.ErrorIs(t, err, ErrMalformedCart)
		})
	}
}
