//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	addressdomain "github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	cartdomain "github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
	"github.com/Apurer/go-gin-order-flow/internal/platform/migrations"
)

func setupOrderPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("orderflow_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func placedOrder(t *testing.T, id string, priority bool, position *addressdomain.Position) *domain.PlacedOrder {
	t.Helper()
	item, err := cartdomain.NewItem(7, "Diavola", 2, decimal.RequireFromString("16.50"))
	require.NoError(t, err)
	cart, err := cartdomain.NewCart(item)
	require.NoError(t, err)
	order, err := domain.Place(id, domain.Draft{
		Customer: "Ana",
		Phone:    "600123456",
		Address:  "Main 1",
		Position: position,
		Priority: priority,
		Cart:     cart,
	}, time.Now().UTC().Truncate(time.Second), 0)
	require.NoError(t, err)
	return order
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrderPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	position := addressdomain.PositionFrom(addressdomain.Coordinates{Latitude: 41.39, Longitude: 2.17})
	order := placedOrder(t, "A1B2C3D4", true, &position)

	saved, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, order.ID, saved.Entity.ID)
	assert.False(t, saved.Metadata.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, order.OrderPrice.Equal(fetched.Entity.OrderPrice))
	assert.True(t, order.PriorityPrice.Equal(fetched.Entity.PriorityPrice))
	require.Len(t, fetched.Entity.Cart, 1)
	assert.Equal(t, int64(7), fetched.Entity.Cart[0].ProductID)
	assert.True(t, order.Cart.TotalPrice().Equal(fetched.Entity.Cart.TotalPrice()))
	require.NotNil(t, fetched.Entity.Position)
	assert.Equal(t, "41.39,2.17", fetched.Entity.Position.String())
	assert.True(t, order.EstimatedDelivery.Equal(fetched.Entity.EstimatedDelivery))
}

func TestRepository_SaveWithoutPosition(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrderPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := placedOrder(t, "NOPOS001", false, nil)
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Entity.Position)
	assert.True(t, fetched.Entity.PriorityPrice.IsZero())
}

func TestRepository_UpdateStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrderPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := placedOrder(t, "UPD00001", false, nil)
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	order.Status = domain.StatusDelivered
	updated, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Entity.Status)
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrderPostgresContainer(t)
	defer cleanup()

	_, err := NewRepository(db).GetByID(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestIdempotencyStore_ReserveCompleteRelease(t *testing.T) {
	db, cleanup := setupOrderPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	store := NewIdempotencyStore(db)

	missing, err := store.Get(ctx, "flow-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	held, err := store.Reserve(ctx, "flow-1", "abc")
	require.NoError(t, err)
	assert.Nil(t, held)

	pending, err := store.Reserve(ctx, "flow-1", "abc")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.True(t, pending.Pending())

	require.NoError(t, store.Complete(ctx, "flow-1", "ORDER001"))
	require.NoError(t, store.Release(ctx, "flow-1"))
	done, err := store.Get(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, "ORDER001", done.OrderID)
	require.ErrorIs(t, store.Complete(ctx, "flow-1", "ORDER002"), ports.ErrIdempotencyConflict)

	existing, err := store.Reserve(ctx, "flow-1", "def")
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	assert.Equal(t, "abc", existing.RequestHash)

	_, err = store.Reserve(ctx, "flow-2", "abc")
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "flow-2"))
	released, err := store.Get(ctx, "flow-2")
	require.NoError(t, err)
	assert.Nil(t, released)
}
