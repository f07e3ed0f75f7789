package device

import (
	"context"

	"github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/address/ports"
)

var _ ports.Geolocator = Reported{}

type reportedKey struct{}

// WithReportedPosition attaches the coordinates the device sent with the resolve request.
func WithReportedPosition(ctx context.Context, coords domain.Coordinates) context.Context {
	return context.WithValue(ctx, reportedKey{}, coords)
}

// Reported reads the position the device reported for the current request.
// The browser performs the actual geolocation; a missing or out-of-range position means it was denied or unavailable.
type Reported struct{}

func (Reported) CurrentPosition(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	coords, ok := ctx.Value(reportedKey{}).(domain.Coordinates)
	if !ok || !coords.Valid() {
		return domain.Coordinates{}, ports.ErrPositionUnavailable
	}
	return coords, nil
}
