package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// DefaultMenu is served when no menu has been stored yet.
func DefaultMenu() []Pizza {
	entry := func(id int64, name string, price int64, soldOut bool, ingredients ...string) Pizza {
		return Pizza{
			ID:          id,
			Name:        name,
			UnitPrice:   decimal.NewFromInt(price),
			ImageURL:    "/images/pizza-" + strconv.FormatInt(id, 10) + ".jpg",
			Ingredients: ingredients,
			SoldOut:     soldOut,
		}
	}
	return []Pizza{
		entry(1, "Margherita", 12, false, "tomato", "mozzarella", "basil"),
		entry(2, "Capricciosa", 14, true, "tomato", "mozzarella", "ham", "mushrooms", "artichoke"),
		entry(3, "Romana", 15, false, "tomato", "mozzarella", "prosciutto"),
		entry(4, "Prosciutto e Rucola", 16, false, "tomato", "mozzarella", "prosciutto", "arugula"),
		entry(5, "Diavola", 16, false, "tomato", "mozzarella", "spicy salami", "chili flakes"),
		entry(6, "Vegetale", 13, false, "tomato", "mozzarella", "bell peppers", "onions", "mushrooms"),
		entry(7, "Napoli", 16, false, "tomato", "mozzarella", "fresh tomato", "basil"),
		entry(8, "Siciliana", 16, true, "tomato", "mozzarella", "anchovies", "olives", "capers"),
		entry(9, "Pepperoni", 14, false, "tomato", "mozzarella", "pepperoni"),
		entry(10, "Hawaiian", 15, false, "tomato", "mozzarella", "pineapple", "ham"),
		entry(11, "Spinach and Mushroom", 15, false, "tomato", "mozzarella", "spinach", "mushrooms"),
		entry(12, "Mediterranean", 16, false, "tomato", "mozzarella", "sun-dried tomatoes", "olives", "artichoke"),
		entry(13, "Greek", 18, true, "tomato", "mozzarella", "spinach", "feta", "olives", "pepperoncini"),
		entry(14, "Abruzzese", 18, false, "tomato", "mozzarella", "prosciutto", "arugula"),
		entry(15, "Pesto Chicken", 16, false, "pesto", "mozzarella", "chicken", "sun-dried tomatoes", "spinach"),
		entry(16, "Eggplant Parmesan", 15, false, "marinara", "mozzarella", "eggplant", "parmesan"),
		entry(17, "Roasted Veggie", 15, false, "marinara", "mozzarella", "zucchini", "eggplant", "peppers", "onions"),
		entry(18, "Tofu and Mushroom", 15, false, "marinara", "mozzarella", "tofu", "mushrooms", "ginger"),
	}
}
