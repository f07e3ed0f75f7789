package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-order-flow/internal/domains/menu/domain"
)

// Pizza is the JSON representation of a menu entry.
type Pizza struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	UnitPrice   json.Number `json:"unitPrice"`
	ImageURL    string      `json:"imageUrl"`
	Ingredients []string    `json:"ingredients"`
	SoldOut     bool        `json:"soldOut"`
}

func FromDomainPizza(p domain.Pizza) Pizza {
	ingredients := p.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return Pizza{
		ID:          p.ID,
		Name:        p.Name,
		UnitPrice:   json.Number(p.UnitPrice.String()),
		ImageURL:    p.ImageURL,
		Ingredients: ingredients,
		SoldOut:     p.SoldOut,
	}
}

func FromDomainMenu(pizzas []domain.Pizza) []Pizza {
	out := make([]Pizza, 0, len(pizzas))
	for _, p := range pizzas {
		out = append(out, FromDomainPizza(p))
	}
	return out
}

func ToDomainPizza(p Pizza) (domain.Pizza, error) {
	price, err := decimal.NewFromString(p.UnitPrice.String())
	if err != nil {
		return domain.Pizza{}, fmt.Errorf("unitPrice: %w", err)
	}
	pizza := domain.Pizza{
		ID:          p.ID,
		Name:        p.Name,
		UnitPrice:   price,
		ImageURL:    p.ImageURL,
		Ingredients: append([]string(nil), p.Ingredients...),
		SoldOut:     p.SoldOut,
	}
	if err := pizza.Validate(); err != nil {
		return domain.Pizza{}, err
	}
	return pizza, nil
}

func ToDomainMenu(in []Pizza) ([]domain.Pizza, error) {
	out := make([]domain.Pizza, 0, len(in))
	for _, p := range in {
		pizza, err := ToDomainPizza(p)
		if err != nil {
			return nil, err
		}
		out = append(out, pizza)
	}
	return out, nil
}
