package restaurant

import (
	"context"

	restaurantclient "github.com/Apurer/go-gin-order-flow/internal/clients/http/restaurant"
	"github.com/Apurer/go-gin-order-flow/internal/domains/menu/adapters/http/mapper"
	"github.com/Apurer/go-gin-order-flow/internal/domains/menu/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/menu/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

// Catalog loads the menu from the restaurant backend.
type Catalog struct {
	client *restaurantclient.Client
}

func NewCatalog(client *restaurantclient.Client) *Catalog {
	return &Catalog{client: client}
}

func (c *Catalog) Menu(ctx context.Context) ([]domain.Pizza, error) {
	pizzas, err := c.client.GetMenu(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToDomainMenu(pizzas)
}
