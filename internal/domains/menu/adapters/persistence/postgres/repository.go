package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-order-flow/internal/domains/menu/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/menu/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the menu in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

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

func (r *Repository) List(ctx context.Context) ([]domain.Pizza, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []pizzaRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	pizzas := make([]domain.Pizza, 0, len(records))
	for i := range records {
		pizzas = append(pizzas, records[i].toDomain())
	}
	return pizzas, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Pizza, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record pizzaRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	pizza := record.toDomain()
	return &pizza, nil
}

// Save inserts or updates a menu entry.
func (r *Repository) Save(ctx context.Context, pizza domain.Pizza) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if err := pizza.Validate(); err != nil {
		return err
	}
	record := toRecord(pizza)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"unit_price":  record.UnitPrice,
				"image_url":   record.ImageURL,
				"ingredients": record.Ingredients,
				"sold_out":    record.SoldOut,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres menu repository not configured")
	}
	return nil
}

func toRecord(p domain.Pizza) pizzaRecord {
	return pizzaRecord{
		ID:          p.ID,
		Name:        p.Name,
		UnitPrice:   p.UnitPrice,
		ImageURL:    p.ImageURL,
		Ingredients: pq.StringArray(p.Ingredients),
		SoldOut:     p.SoldOut,
	}
}

func (r pizzaRecord) toDomain() domain.Pizza {
	return domain.Pizza{
		ID:          r.ID,
		Name:        r.Name,
		UnitPrice:   r.UnitPrice,
		ImageURL:    r.ImageURL,
		Ingredients: append([]string(nil), r.Ingredients...),
		SoldOut:     r.SoldOut,
	}
}
