package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/Apurer/go-gin-order-flow/internal/domains/cart/adapters/memory"
	cartdomain "github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

type fakeCreator struct {
	mu     sync.Mutex
	id     string
	err    error
	drafts []orderdomain.Draft
	gate   chan struct{}
	begun  chan struct{}
}

func (f *fakeCreator) CreateOrder(ctx context.Context, draft orderdomain.Draft) (*orderdomain.PlacedOrder, error) {
	f.mu.Lock()
	f.drafts = append(f.drafts, draft)
	f.mu.Unlock()
	if f.begun != nil {
		f.begun <- struct{}{}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &orderdomain.PlacedOrder{ID: f.id, Customer: draft.Customer, Cart: draft.Cart, Priority: draft.Priority}, nil
}

func (f *fakeCreator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.drafts)
}

type recordingNavigator struct {
	targets []string
}

func (r *recordingNavigator) ToOrder(orderID string) {
	r.targets = append(r.targets, orderID)
}

func mediterraneanCart(t *testing.T) (*cartmemory.Store, string) {
	t.Helper()
	store := cartmemory.NewStore()
	item, err := cartdomain.NewItem(12, "Mediterranean", 2, decimal.NewFromInt(16))
	require.NoError(t, err)
	require.NoError(t, store.AddItem(item))
	encoded, err := cartdomain.Encode(store.Items())
	require.NoError(t, err)
	return store, encoded
}

func validForm(cart string) orderdomain.RawForm {
	return orderdomain.RawForm{
		orderdomain.FieldCustomer: "Jonas",
		orderdomain.FieldPhone:    "+1-555-123-4567",
		orderdomain.FieldAddress:  "Rambla 1, Barcelona",
		orderdomain.FieldCart:     cart,
	}
}

func TestPipeline_InvalidPhoneMakesNoCallAndKeepsCart(t *testing.T) {
	store, encoded := mediterraneanCart(t)
	creator := &fakeCreator{id: "42"}
	nav := &recordingNavigator{}
	pipeline := NewPipeline(creator, store)

	raw := validForm(encoded)
	raw[orderdomain.FieldPhone] = "notaphone"
	outcome, err := pipeline.Submit(context.Background(), raw, nav)
	require.NoError(t, err)
	require.False(t, outcome.Accepted())
	require.Equal(t, []string{orderdomain.FieldPhone}, outcome.Errors.Fields())
	require.Equal(t, orderdomain.PhoneMessage, outcome.Errors[orderdomain.FieldPhone])
	require.Zero(t, creator.calls())
	require.Empty(t, nav.targets)
	require.Equal(t, 2, store.Items().TotalQuantity())
}

func TestPipeline_SuccessClearsCartAndNavigates(t *testing.T) {
	store, encoded := mediterraneanCart(t)
	creator := &fakeCreator{id: "42"}
	nav := &recordingNavigator{}
	pipeline := NewPipeline(creator, store)

	outcome, err := pipeline.Submit(context.Background(), validForm(encoded), nav)
	require.NoError(t, err)
	require.True(t, outcome.Accepted())
	require.Equal(t, "42", outcome.Order.ID)
	require.Equal(t, "/order/42", outcome.Redirect)
	require.Equal(t, []string{"42"}, nav.targets)
	require.True(t, store.IsEmpty())
}

func TestPipeline_PriorityDraftCarriesSurcharge(t *testing.T) {
	store, encoded := mediterraneanCart(t)
	creator := &fakeCreator{id: "7"}
	pipeline := NewPipeline(creator, store)

	raw := validForm(encoded)
	raw[orderdomain.FieldPriority] = orderdomain.PriorityMarker
	_, err := pipeline.Submit(context.Background(), raw, nil)
	require.NoError(t, err)

	require.Len(t, creator.drafts, 1)
	draft := creator.drafts[0]
	require.True(t, draft.Priority)
	require.Equal(t, "32.00", draft.Pricing.CartTotal.StringFixed(2))
	require.Equal(t, "38.40", draft.Pricing.FinalPrice.StringFixed(2))
}

func TestPipeline_CollaboratorFailureLeavesCart(t *testing.T) {
	store, encoded := mediterraneanCart(t)
	creator := &fakeCreator{err: errors.New("restaurant unavailable")}
	nav := &recordingNavigator{}
	pipeline := NewPipeline(creator, store)

	outcome, err := pipeline.Submit(context.Background(), validForm(encoded), nav)
	require.ErrorIs(t, err, ErrOrderCreation)
	require.Nil(t, outcome)
	require.Empty(t, nav.targets)
	require.False(t, store.IsEmpty())
}

func TestPipeline_EmptyCartIsRejected(t *testing.T) {
	store := cartmemory.NewStore()
	creator := &fakeCreator{id: "1"}
	pipeline := NewPipeline(creator, store)

	_, err := pipeline.Submit(context.Background(), validForm("[]"), nil)
	require.ErrorIs(t, err, ErrEmptyCart)
	require.Zero(t, creator.calls())
}

func TestPipeline_MalformedSubmission(t *testing.T) {
	store, encoded := mediterraneanCart(t)
	creator := &fakeCreator{id: "1"}
	pipeline := NewPipeline(creator, store)

	cases := map[string]orderdomain.RawForm{
		"unknown field":   func() orderdomain.RawForm { r := validForm(encoded); r["coupon"] = "FREE"; return r }(),
		"bad priority":    func() orderdomain.RawForm { r := validForm(encoded); r[orderdomain.FieldPriority] = "yes"; return r }(),
		"bad cart":        validForm("{not json"),
		"bad position":    func() orderdomain.RawForm { r := validForm(encoded); r[orderdomain.FieldPosition] = "north"; return r }(),
		"missing name":    func() orderdomain.RawForm { r := validForm(encoded); delete(r, orderdomain.FieldCustomer); return r }(),
		"missing address": func() orderdomain.RawForm { r := validForm(encoded); r[orderdomain.FieldAddress] = " "; return r }(),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := pipeline.Submit(context.Background(), raw, nil)
			require.Error(t, err)
			require.True(t, errors.Is(err, orderdomain.ErrMalformedSubmission) || errors.Is(err, orderdomain.ErrMissingField))
		})
	}
	require.Zero(t, creator.calls())
	require.False(t, store.IsEmpty())
}
