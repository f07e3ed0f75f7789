package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	addressapp "github.com/Apurer/go-gin-order-flow/internal/domains/address/application"
	addressdomain "github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	cartmemory "github.com/Apurer/go-gin-order-flow/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-gin-order-flow/internal/domains/checkout/application"
	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

type noPosition struct{}

func (noPosition) CurrentPosition(context.Context) (addressdomain.Coordinates, error) {
	return addressdomain.Coordinates{}, context.Canceled
}

type noAddress struct{}

func (noAddress) ReverseGeocode(context.Context, addressdomain.Coordinates) (string, error) {
	return "", nil
}

type noCreator struct{}

func (noCreator) CreateOrder(context.Context, orderdomain.Draft) (*orderdomain.PlacedOrder, error) {
	return &orderdomain.PlacedOrder{ID: "1"}, nil
}

func newFlows() *Flows {
	carts := cartmemory.NewRegistry()
	return NewFlows(func(flowID, sessionID string) *application.Flow {
		store := carts.ForSession(sessionID)
		resolver := addressapp.NewResolver(noPosition{}, noAddress{})
		return application.NewFlow(flowID, store, resolver, application.NewPipeline(noCreator{}, store))
	})
}

func TestFlows_OpenAbandonsPreviousSessionFlow(t *testing.T) {
	flows := newFlows()
	first := flows.Open("s1")
	second := flows.Open("s1")
	require.NotEqual(t, first.ID(), second.ID())

	_, ok := flows.Get(first.ID(), "s1")
	require.False(t, ok)
	require.False(t, first.Controls().SubmitEnabled)

	got, ok := flows.Get(second.ID(), "s1")
	require.True(t, ok)
	require.Same(t, second, got)
}

func TestFlows_GetChecksSession(t *testing.T) {
	flows := newFlows()
	flow := flows.Open("s1")
	_, ok := flows.Get(flow.ID(), "s2")
	require.False(t, ok)
	require.False(t, flows.Close(flow.ID(), "s2"))
}

func TestFlows_CloseAbandons(t *testing.T) {
	flows := newFlows()
	flow := flows.Open("s1")
	require.True(t, flows.Close(flow.ID(), "s1"))
	require.False(t, flows.Close(flow.ID(), "s1"))

	_, err := flow.Submit(context.Background(), orderdomain.RawForm{}, nil)
	require.ErrorIs(t, err, application.ErrFlowAbandoned)
}

func TestFlows_EvictAbandonsIdleFlows(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	flows := newFlows()
	flows.now = func() time.Time { return at }

	idle := flows.Open("s1")
	active := flows.Open("s2")
	require.True(t, flows.HasSession("s1"))

	at = at.Add(45 * time.Minute)
	_, ok := flows.Get(active.ID(), "s2")
	require.True(t, ok)

	require.Equal(t, 1, flows.Evict(30*time.Minute))
	require.False(t, flows.HasSession("s1"))
	require.True(t, flows.HasSession("s2"))

	_, ok = flows.Get(idle.ID(), "s1")
	require.False(t, ok)
	_, err := idle.Submit(context.Background(), orderdomain.RawForm{}, nil)
	require.ErrorIs(t, err, application.ErrFlowAbandoned)
}
