package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-order-flow/internal/domains/menu/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/menu/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory menu.
type Repository struct {
	mu     sync.RWMutex
	pizzas map[int64]domain.Pizza
}

func NewRepository(seed ...domain.Pizza) *Repository {
	repo := &Repository{pizzas: map[int64]domain.Pizza{}}
	for _, pizza := range seed {
		repo.pizzas[pizza.ID] = pizza.Clone()
	}
	return repo
}

func (r *Repository) List(_ context.Context) ([]domain.Pizza, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]domain.Pizza, 0, len(r.pizzas))
	for _, pizza := range r.pizzas {
		list = append(list, pizza.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Pizza, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pizza, ok := r.pizzas[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := pizza.Clone()
	return &clone, nil
}

func (r *Repository) Save(_ context.Context, pizza domain.Pizza) error {
	if err := pizza.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pizzas[pizza.ID] = pizza.Clone()
	return nil
}
