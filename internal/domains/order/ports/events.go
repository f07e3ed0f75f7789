package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

// EventPublisher forwards domain events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.Event) error { return nil }
