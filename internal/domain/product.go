package domain

import "github.com/shopspring/decimal"

// Order quantity bounds for wholesale stems and produce. They are enforced
// where requests enter the service; the cart itself accepts any quantity.
const (
	MinOrderQuantity = 300
	MaxOrderQuantity = 30000
)

// Category groups catalog products.
type Category string

const (
	CategoryRoses         Category = "roses"
	CategorySprayRoses    Category = "spray_roses"
	CategorySummerFlowers Category = "summer_flowers"
	CategoryFillers       Category = "fillers"
	CategoryVegetables    Category = "vegetables"
	CategoryFruits        Category = "fruits"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryRoses,
	CategorySprayRoses,
	CategorySummerFlowers,
	CategoryFillers,
	CategoryVegetables,
	CategoryFruits,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a catalog entry. Products are loaded once and never mutated.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    Category        `json:"category"`
	Featured    bool            `json:"featured"`
	Bestseller  bool            `json:"bestseller"`
	InStock     bool            `json:"in_stock"`
}
