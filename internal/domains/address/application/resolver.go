package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/address/ports"
)

const (
	// MessagePositionFailed is shown next to the address field when the device position cannot be read.
	MessagePositionFailed = "There was a problem getting your position. Make sure to fill this field!"
	// MessageAddressFailed is shown when the position was read but no address could be found for it.
	MessageAddressFailed = "There was a problem getting your address. Make sure to fill this field!"
)

var (
	// ErrResolutionInFlight is returned when a resolution is requested while one is loading.
	ErrResolutionInFlight = errors.New("address resolution already in progress")
	// ErrResolutionFailed wraps geolocation or reverse-geocode failures. The resolver is left in the error state.
	ErrResolutionFailed = errors.New("address resolution failed")
	// ErrResolutionDiscarded is returned when the resolver was reset while the lookup was in flight.
	ErrResolutionDiscarded = errors.New("address resolution discarded after reset")
)

// Resolver drives at most one geolocation + reverse-geocode lookup at a time.
type Resolver struct {
	geolocator ports.Geolocator
	geocoder   ports.ReverseGeocoder

	mu         sync.Mutex
	state      domain.Resolution
	generation uint64
}

// NewResolver wires the resolver with its collaborators. It starts idle.
func NewResolver(geolocator ports.Geolocator, geocoder ports.ReverseGeocoder) *Resolver {
	return &Resolver{
		geolocator: geolocator,
		geocoder:   geocoder,
		state:      domain.Resolution{Status: domain.StatusIdle},
	}
}

// Snapshot returns the latest resolution state.
func (r *Resolver) Snapshot() domain.Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// CanResolve reports whether the trigger control should be enabled.
func (r *Resolver) CanResolve() bool {
	return !r.Snapshot().Loading()
}

// Reset returns the resolver to idle and discards the result of any lookup in flight.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.state = domain.Resolution{Status: domain.StatusIdle}
}

// Resolve reads the device position, reverse geocodes it and records the outcome.
// A failure moves the state to error but keeps the previously resolved address and position.
func (r *Resolver) Resolve(ctx context.Context) (domain.Resolution, error) {
	if r.geolocator == nil || r.geocoder == nil {
		return r.Snapshot(), errors.New("address resolver not configured")
	}
	r.mu.Lock()
	if r.state.Loading() {
		snapshot := r.state
		r.mu.Unlock()
		return snapshot, ErrResolutionInFlight
	}
	r.state.Status = domain.StatusLoading
	r.state.Error = ""
	generation := r.generation
	r.mu.Unlock()

	coords, err := r.geolocator.CurrentPosition(ctx)
	if err == nil && !coords.Valid() {
		err = fmt.Errorf("%w: coordinates %v out of range", ports.ErrPositionUnavailable, coords)
	}
	if err != nil {
		return r.fail(generation, MessagePositionFailed, err)
	}
	address, err := r.geocoder.ReverseGeocode(ctx, coords)
	if err != nil {
		return r.fail(generation, MessageAddressFailed, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if generation != r.generation {
		return r.state, ErrResolutionDiscarded
	}
	r.state = domain.Resolution{
		Status:   domain.StatusReady,
		Address:  address,
		Position: domain.PositionFrom(coords),
	}
	return r.state, nil
}

func (r *Resolver) fail(generation uint64, message string, cause error) (domain.Resolution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if generation != r.generation {
		return r.state, ErrResolutionDiscarded
	}
	r.state.Status = domain.StatusError
	r.state.Error = message
	return r.state, fmt.Errorf("%w: %w", ErrResolutionFailed, cause)
}
