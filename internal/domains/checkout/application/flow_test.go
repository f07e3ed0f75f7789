package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	addressapp "github.com/Apurer/go-gin-order-flow/internal/domains/address/application"
	addressdomain "github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

type stubGeolocator struct {
	coords  addressdomain.Coordinates
	err     error
	started chan struct{}
	release chan struct{}
}

func (s *stubGeolocator) CurrentPosition(ctx context.Context) (addressdomain.Coordinates, error) {
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return s.coords, s.err
}

type stubGeocoder struct {
	address string
}

func (s stubGeocoder) ReverseGeocode(context.Context, addressdomain.Coordinates) (string, error) {
	return s.address, nil
}

func visibleFields() orderdomain.RawForm {
	return orderdomain.RawForm{
		orderdomain.FieldCustomer: "Jonas",
		orderdomain.FieldPhone:    "020 7946 0958",
	}
}

func TestFlow_SubmitUsesLatestCartAndResolution(t *testing.T) {
	store, _ := mediterraneanCart(t)
	creator := &fakeCreator{id: "42"}
	geo := &stubGeolocator{coords: addressdomain.Coordinates{Latitude: 41.39, Longitude: 2.17}}
	resolver := addressapp.NewResolver(geo, stubGeocoder{address: "Ciutat Vella, Barcelona 08002, Spain"})
	flow := NewFlow("f1", store, resolver, NewPipeline(creator, store))

	_, err := flow.ResolveAddress(context.Background())
	require.NoError(t, err)
	view, err := flow.Form()
	require.NoError(t, err)
	require.Equal(t, "Ciutat Vella, Barcelona 08002, Spain", view.Address)
	require.Equal(t, "41.39,2.17", view.Position)
	require.Equal(t, "32.00", view.CartTotal)
	require.Equal(t, "6.40", view.PriorityCost)

	nav := &recordingNavigator{}
	raw := visibleFields()
	raw[orderdomain.FieldCart] = "[]"
	outcome, err := flow.Submit(context.Background(), raw, nav)
	require.NoError(t, err)
	require.True(t, outcome.Accepted())
	require.Equal(t, []string{"42"}, nav.targets)
	require.True(t, store.IsEmpty())

	draft := creator.drafts[0]
	require.Equal(t, "Ciutat Vella, Barcelona 08002, Spain", draft.Address)
	require.NotNil(t, draft.Position)
	require.Equal(t, 2, draft.Cart.TotalQuantity())
}

func TestFlow_SubmitDisabledWhileResolving(t *testing.T) {
	store, _ := mediterraneanCart(t)
	creator := &fakeCreator{id: "1"}
	geo := &stubGeolocator{
		coords:  addressdomain.Coordinates{Latitude: 1, Longitude: 2},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	resolver := addressapp.NewResolver(geo, stubGeocoder{address: "Somewhere"})
	flow := NewFlow("f2", store, resolver, NewPipeline(creator, store))

	done := make(chan error, 1)
	go func() {
		_, err := flow.ResolveAddress(context.Background())
		done <- err
	}()
	<-geo.started

	controls := flow.Controls()
	require.Equal(t, PhaseResolving, controls.Phase)
	require.False(t, controls.SubmitEnabled)
	require.False(t, controls.ResolveEnabled)

	raw := visibleFields()
	raw[orderdomain.FieldAddress] = "Typed Street 1"
	_, err := flow.Submit(context.Background(), raw, nil)
	require.ErrorIs(t, err, ErrFlowBusy)
	require.Zero(t, creator.calls())

	close(geo.release)
	require.NoError(t, <-done)
	require.True(t, flow.Controls().SubmitEnabled)
}

func TestFlow_ResolveDisabledWhileSubmitting(t *testing.T) {
	store, _ := mediterraneanCart(t)
	creator := &fakeCreator{id: "9", gate: make(chan struct{}), begun: make(chan struct{}, 1)}
	resolver := addressapp.NewResolver(&stubGeolocator{}, stubGeocoder{address: "x"})
	flow := NewFlow("f3", store, resolver, NewPipeline(creator, store))

	raw := visibleFields()
	raw[orderdomain.FieldAddress] = "Typed Street 1"
	done := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background(), raw, nil)
		done <- err
	}()
	<-creator.begun

	controls := flow.Controls()
	require.Equal(t, LabelSubmitting, controls.SubmitLabel)
	require.False(t, controls.ResolveEnabled)
	_, err := flow.ResolveAddress(context.Background())
	require.ErrorIs(t, err, ErrFlowBusy)
	_, err = flow.Submit(context.Background(), raw, nil)
	require.ErrorIs(t, err, ErrFlowBusy)

	close(creator.gate)
	require.NoError(t, <-done)
	require.Equal(t, LabelSubmit, flow.Controls().SubmitLabel)
	require.Equal(t, 1, creator.calls())
}

func TestFlow_AbandonDuringSubmitSkipsClearAndNavigation(t *testing.T) {
	store, _ := mediterraneanCart(t)
	creator := &fakeCreator{id: "77", gate: make(chan struct{}), begun: make(chan struct{}, 1)}
	resolver := addressapp.NewResolver(&stubGeolocator{}, stubGeocoder{})
	flow := NewFlow("f4", store, resolver, NewPipeline(creator, store))

	raw := visibleFields()
	raw[orderdomain.FieldAddress] = "Typed Street 1"
	nav := &recordingNavigator{}
	done := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background(), raw, nav)
		done <- err
	}()
	<-creator.begun
	flow.Abandon()
	close(creator.gate)

	err := <-done
	require.ErrorIs(t, err, ErrFlowAbandoned)
	var abandoned *AbandonedError
	require.True(t, errors.As(err, &abandoned))
	require.Equal(t, "77", abandoned.OrderID)
	require.Empty(t, nav.targets)
	require.False(t, store.IsEmpty())

	_, err = flow.Submit(context.Background(), raw, nav)
	require.ErrorIs(t, err, ErrFlowAbandoned)
	require.False(t, flow.Controls().SubmitEnabled)
}

func TestFlow_AbandonDiscardsPendingResolution(t *testing.T) {
	store, _ := mediterraneanCart(t)
	geo := &stubGeolocator{
		coords:  addressdomain.Coordinates{Latitude: 1, Longitude: 2},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	resolver := addressapp.NewResolver(geo, stubGeocoder{address: "Late Lane"})
	flow := NewFlow("f5", store, resolver, NewPipeline(&fakeCreator{}, store))

	done := make(chan error, 1)
	go func() {
		_, err := flow.ResolveAddress(context.Background())
		done <- err
	}()
	<-geo.started
	flow.Abandon()
	close(geo.release)

	require.ErrorIs(t, <-done, ErrFlowAbandoned)
	require.Equal(t, addressdomain.StatusIdle, flow.Resolution().Status)
}

func TestFlow_ResolutionFailureKeepsTypedAddressUsable(t *testing.T) {
	store, _ := mediterraneanCart(t)
	creator := &fakeCreator{id: "5"}
	resolver := addressapp.NewResolver(&stubGeolocator{err: errors.New("denied")}, stubGeocoder{})
	flow := NewFlow("f6", store, resolver, NewPipeline(creator, store))

	res, err := flow.ResolveAddress(context.Background())
	require.ErrorIs(t, err, addressapp.ErrResolutionFailed)
	require.Equal(t, addressapp.MessagePositionFailed, res.Error)
	require.True(t, flow.Controls().ResolveEnabled)

	raw := visibleFields()
	raw[orderdomain.FieldAddress] = "Typed Street 1"
	outcome, err := flow.Submit(context.Background(), raw, nil)
	require.NoError(t, err)
	require.True(t, outcome.Accepted())
	require.Nil(t, creator.drafts[0].Position)
}

func TestFlow_OutOfRangePositionDoesNotBlockSubmit(t *testing.T) {
	store, _ := mediterraneanCart(t)
	creator := &fakeCreator{id: "6"}
	geo := &stubGeolocator{coords: addressdomain.Coordinates{Latitude: 41.39, Longitude: 2.17}}
	resolver := addressapp.NewResolver(geo, stubGeocoder{address: "Rambla 1, Barcelona"})
	flow := NewFlow("f7", store, resolver, NewPipeline(creator, store))

	_, err := flow.ResolveAddress(context.Background())
	require.NoError(t, err)

	geo.coords = addressdomain.Coordinates{Latitude: 95, Longitude: 2}
	res, err := flow.ResolveAddress(context.Background())
	require.ErrorIs(t, err, addressapp.ErrResolutionFailed)
	require.Equal(t, addressdomain.StatusError, res.Status)
	require.Equal(t, "41.39,2.17", res.Position.String())

	view, err := flow.Form()
	require.NoError(t, err)
	require.Equal(t, "41.39,2.17", view.Position)

	outcome, err := flow.Submit(context.Background(), visibleFields(), nil)
	require.NoError(t, err)
	require.True(t, outcome.Accepted())
	require.Equal(t, "41.39,2.17", creator.drafts[0].Position.String())
}
