package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema owned by the restaurant backend.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&pizzaRecord{},
		&idempotencyRecord{},
	)
}

// Order schema mirrors the order Postgres adapter.
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

// Pizza schema mirrors the menu Postgres adapter.
type pizzaRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	Name        string          `gorm:"column:name"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	ImageURL    string          `gorm:"column:image_url"`
	Ingredients pq.StringArray  `gorm:"column:ingredients;type:text[]"`
	SoldOut     bool            `gorm:"column:sold_out;index"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (pizzaRecord) TableName() string { return "pizzas" }

// Idempotency schema mirrors the order Postgres idempotency store.
type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	OrderID     string    `gorm:"column:order_id;size:32"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }
