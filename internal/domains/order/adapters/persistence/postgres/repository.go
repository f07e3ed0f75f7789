package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	addressdomain "github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	cartdomain "github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
	"github.com/Apurer/go-gin-order-flow/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists placed orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Schema is owned by platform/migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the placed order to a relational table. Cart lines are kept in their wire JSON form.
type orderRecord struct {
	ID                string          `gorm:"primaryKey;column:id;size:32"`
	Customer          string          `gorm:"column:customer"`
	Phone             string          `gorm:"column:phone"`
	Address           string          `gorm:"column:address"`
	Latitude          *float64        `gorm:"column:latitude"`
	Longitude         *float64        `gorm:"column:longitude"`
	Priority          bool            `gorm:"column:priority"`
	Cart              string          `gorm:"column:cart;type:jsonb"`
	Status            string          `gorm:"column:status;type:varchar(32);index"`
	OrderPrice        decimal.Decimal `gorm:"column:order_price;type:numeric(12,2)"`
	PriorityPrice     decimal.Decimal `gorm:"column:priority_price;type:numeric(12,2)"`
	EstimatedDelivery time.Time       `gorm:"column:estimated_delivery"`
	CreatedAt         time.Time       `gorm:"column:created_at;index"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts or updates an order.
func (r *Repository) Save(ctx context.Context, order *domain.PlacedOrder) (*projection.Projection[*domain.PlacedOrder], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record, err := toRecord(order)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"customer":           record.Customer,
				"phone":              record.Phone,
				"address":            record.Address,
				"latitude":           record.Latitude,
				"longitude":          record.Longitude,
				"priority":           record.Priority,
				"cart":               record.Cart,
				"status":             record.Status,
				"order_price":        record.OrderPrice,
				"priority_price":     record.PriorityPrice,
				"estimated_delivery": record.EstimatedDelivery,
				"updated_at":         gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.PlacedOrder], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	order, err := record.toDomain()
	if err != nil {
		return nil, err
	}
	return &projection.Projection[*domain.PlacedOrder]{
		Entity:   order,
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.PlacedOrder) (orderRecord, error) {
	cart, err := cartdomain.Encode(order.Cart)
	if err != nil {
		return orderRecord{}, fmt.Errorf("encode order cart: %w", err)
	}
	rec := orderRecord{
		ID:                order.ID,
		Customer:          order.Customer,
		Phone:             order.Phone,
		Address:           order.Address,
		Priority:          order.Priority,
		Cart:              cart,
		Status:            string(order.Status),
		OrderPrice:        order.OrderPrice,
		PriorityPrice:     order.PriorityPrice,
		EstimatedDelivery: order.EstimatedDelivery.UTC(),
	}
	if order.Position != nil && order.Position.Complete() {
		rec.Latitude = order.Position.Latitude
		rec.Longitude = order.Position.Longitude
	}
	return rec, nil
}

func (r orderRecord) toDomain() (*domain.PlacedOrder, error) {
	cart, err := cartdomain.Decode(r.Cart)
	if err != nil {
		return nil, fmt.Errorf("decode order %s cart: %w", r.ID, err)
	}
	order := &domain.PlacedOrder{
		ID:                r.ID,
		Customer:          r.Customer,
		Phone:             r.Phone,
		Address:           r.Address,
		Priority:          r.Priority,
		Cart:              cart,
		Status:            domain.Status(r.Status),
		OrderPrice:        r.OrderPrice,
		PriorityPrice:     r.PriorityPrice,
		EstimatedDelivery: r.EstimatedDelivery,
	}
	if r.Latitude != nil && r.Longitude != nil {
		position := addressdomain.Position{Latitude: r.Latitude, Longitude: r.Longitude}
		order.Position = &position
	}
	return order, nil
}
