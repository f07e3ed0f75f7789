package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
	"github.com/Apurer/go-gin-order-flow/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*storedOrder
	now    func() time.Time
}

type storedOrder struct {
	order    domain.PlacedOrder
	metadata projection.Metadata
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*storedOrder{}, now: time.Now}
}

func (r *Repository) Save(_ context.Context, order *domain.PlacedOrder) (*projection.Projection[*domain.PlacedOrder], error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if existing, ok := r.orders[order.ID]; ok {
		metadata.CreatedAt = existing.metadata.CreatedAt
	}
	stored := &storedOrder{order: cloneOrder(*order), metadata: metadata}
	r.orders[order.ID] = stored
	return stored.projection(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.PlacedOrder], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return stored.projection(), nil
}

func (s *storedOrder) projection() *projection.Projection[*domain.PlacedOrder] {
	clone := cloneOrder(s.order)
	return &projection.Projection[*domain.PlacedOrder]{Entity: &clone, Metadata: s.metadata}
}

func cloneOrder(order domain.PlacedOrder) domain.PlacedOrder {
	order.Cart = order.Cart.Clone()
	if order.Position != nil {
		position := *order.Position
		order.Position = &position
	}
	return order
}
