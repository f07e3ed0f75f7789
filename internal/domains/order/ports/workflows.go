package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

// WorkflowOrchestrator exposes durable workflow operations required by order placement.
type WorkflowOrchestrator interface {
	CreateOrder(ctx context.Context, draft domain.Draft) (*domain.PlacedOrder, error)
}
