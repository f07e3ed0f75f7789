package device

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/address/ports"
)

func TestReported_ReturnsAttachedPosition(t *testing.T) {
	ctx := WithReportedPosition(context.Background(), domain.Coordinates{Latitude: 0, Longitude: 0})
	coords, err := Reported{}.CurrentPosition(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Coordinates{}, coords)
}

func TestReported_MissingPositionIsUnavailable(t *testing.T) {
	_, err := Reported{}.CurrentPosition(context.Background())
	require.ErrorIs(t, err, ports.ErrPositionUnavailable)
}

func TestReported_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(WithReportedPosition(context.Background(), domain.Coordinates{Latitude: 1}))
	cancel()
	_, err := Reported{}.CurrentPosition(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReported_OutOfRangePositionIsUnavailable(t *testing.T) {
	for _, coords := range []domain.Coordinates{{Latitude: 95, Longitude: 2}, {Latitude: math.NaN(), Longitude: 1}} {
		_, err := Reported{}.CurrentPosition(WithReportedPosition(context.Background(), coords))
		require.ErrorIs(t, err, ports.ErrPositionUnavailable)
	}
}
