package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	"github.com/Apurer/go-gin-order-flow/internal/shared/projection"
)

var ErrNotFound = errors.New("order not found")

// Repository persists placed orders.
type Repository interface {
	Save(ctx context.Context, order *domain.PlacedOrder) (*projection.Projection[*domain.PlacedOrder], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.PlacedOrder], error)
}
