package restaurant

import (
	"context"
	"errors"
	"fmt"

	restaurantclient "github.com/Apurer/go-gin-order-flow/internal/clients/http/restaurant"
	"github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/http/mapper"
	"github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
)

var _ ports.Service = (*Gateway)(nil)

// Gateway reaches the restaurant backend over HTTP.
type Gateway struct {
	client *restaurantclient.Client
}

func NewGateway(client *restaurantclient.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) CreateOrder(ctx context.Context, draft domain.Draft) (*domain.PlacedOrder, error) {
	payload, err := mapper.FromDomainDraft(draft)
	if err != nil {
		return nil, fmt.Errorf("encode order draft: %w", err)
	}
	created, err := g.client.CreateOrder(ctx, payload)
	if err != nil {
		return nil, err
	}
	order, err := mapper.ToDomainOrder(*created)
	if err != nil {
		return nil, fmt.Errorf("decode placed order: %w", err)
	}
	if order.ID == "" {
		return nil, errors.New("restaurant returned an order without id")
	}
	return order, nil
}

func (g *Gateway) GetOrder(ctx context.Context, id string) (*domain.PlacedOrder, error) {
	found, err := g.client.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, restaurantclient.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ports.ErrNotFound, err)
		}
		return nil, err
	}
	order, err := mapper.ToDomainOrder(*found)
	if err != nil {
		return nil, fmt.Errorf("decode placed order: %w", err)
	}
	return order, nil
}
