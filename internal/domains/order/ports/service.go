package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

// OrderCreator accepts a composed draft and returns the order the restaurant placed.
type OrderCreator interface {
	CreateOrder(ctx context.Context, draft domain.Draft) (*domain.PlacedOrder, error)
}

// OrderReader looks up a placed order by its identifier.
type OrderReader interface {
	GetOrder(ctx context.Context, id string) (*domain.PlacedOrder, error)
}

// Service exposes the order use cases to adapters.
type Service interface {
	OrderCreator
	OrderReader
}
