package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
)

var (
	// ErrPositionUnavailable signals the device could not or would not report a position.
	ErrPositionUnavailable = errors.New("position unavailable")
	// ErrAddressNotFound signals the reverse geocoder had no address for the coordinates.
	ErrAddressNotFound = errors.New("no address found for position")
)

// Geolocator reads the current device position.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (domain.Coordinates, error)
}

// ReverseGeocoder turns coordinates into a display address.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, coords domain.Coordinates) (string, error)
}
