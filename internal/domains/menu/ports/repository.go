package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-order-flow/internal/domains/menu/domain"
)

var ErrNotFound = errors.New("pizza not found")

// Repository stores the restaurant menu.
type Repository interface {
	List(ctx context.Context) ([]domain.Pizza, error)
	GetByID(ctx context.Context, id int64) (*domain.Pizza, error)
	Save(ctx context.Context, pizza domain.Pizza) error
}

// Catalog is the read side used by the order-flow API.
type Catalog interface {
	Menu(ctx context.Context) ([]domain.Pizza, error)
}
