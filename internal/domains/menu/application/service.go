package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-order-flow/internal/domains/menu/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/menu/ports"
)

// ErrInvalidInput signals the menu entry violated a domain invariant.
var ErrInvalidInput = errors.New("invalid menu input")

// Service serves the restaurant menu.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Menu lists every pizza in menu order.
func (s *Service) Menu(ctx context.Context) ([]domain.Pizza, error) {
	return s.repo.List(ctx)
}

func (s *Service) Pizza(ctx context.Context, id int64) (*domain.Pizza, error) {
	return s.repo.GetByID(ctx, id)
}

// Seed stores the given entries when the menu is still empty.
func (s *Service) Seed(ctx context.Context, pizzas []domain.Pizza) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, pizza := range pizzas {
		if err := pizza.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if err := s.repo.Save(ctx, pizza); err != nil {
			return 0, err
		}
	}
	return len(pizzas), nil
}

var _ ports.Catalog = (*Service)(nil)
