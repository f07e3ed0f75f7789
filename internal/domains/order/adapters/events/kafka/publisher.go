package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
	platformkafka "github.com/Apurer/go-gin-order-flow/internal/platform/kafka"
)

// DefaultTopic receives order lifecycle events.
const DefaultTopic = "orders.events"

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher writes order events to Kafka keyed by order id.
type Publisher struct {
	writer platformkafka.MessageWriter
}

func NewPublisher(writer platformkafka.MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// envelope is the JSON body of every published event.
type envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

type orderPlacedPayload struct {
	OrderID           string    `json:"orderId"`
	Customer          string    `json:"customer"`
	Priority          bool      `json:"priority"`
	ItemCount         int       `json:"itemCount"`
	OrderPrice        string    `json:"orderPrice"`
	PriorityPrice     string    `json:"priorityPrice"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}

func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	if p == nil || p.writer == nil {
		return errors.New("kafka publisher not configured")
	}
	key, payload, err := encode(event)
	if err != nil {
		return err
	}
	msg := envelope{Type: event.EventName(), OccurredAt: event.OccurredAt().UTC(), Data: payload}
	header := kafkago.Header{Key: "event-type", Value: []byte(event.EventName())}
	if err := platformkafka.PublishJSON(ctx, p.writer, key, msg, header); err != nil {
		return fmt.Errorf("publish %s: %w", event.EventName(), err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func encode(event domain.Event) (string, any, error) {
	switch e := event.(type) {
	case domain.OrderPlaced:
		return e.OrderID, orderPlacedPayload{
			OrderID:           e.OrderID,
			Customer:          e.Customer,
			Priority:          e.Priority,
			ItemCount:         e.ItemCount,
			OrderPrice:        e.OrderPrice,
			PriorityPrice:     e.PriorityPrice,
			EstimatedDelivery: e.EstimatedDelivery.UTC(),
		}, nil
	default:
		return "", nil, fmt.Errorf("unsupported event %T", event)
	}
}
