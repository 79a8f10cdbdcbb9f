// Package catalog holds the storefront's static product list and the lookups
// over it. A Catalog is immutable after construction and safe to share.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
)

//go:embed products.yaml
var productsYAML []byte

// Sort orders accepted by Query.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)

// Catalog is a read-only product list.
type Catalog struct {
	products []domain.Product
}

type productRecord struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Category    string `yaml:"category"`
	Featured    bool   `yaml:"featured"`
	Bestseller  bool   `yaml:"bestseller"`
	InStock     bool   `yaml:"in_stock"`
}

// Load parses the embedded product list.
func Load() (*Catalog, error) {
	return Parse(productsYAML)
}

// Parse builds a catalog from YAML, rejecting duplicate ids, unknown
// categories and non-positive prices.
func Parse(data []byte) (*Catalog, error) {
	var records []productRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(records))
	seen := make(map[int]bool, len(records))
	for _, r := range records {
		if r.ID <= 0 {
			return nil, fmt.Errorf("product %q: id must be positive", r.Name)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("product %d: duplicate id", r.ID)
		}
		seen[r.ID] = true

		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d: price %q: %w", r.ID, r.Price, err)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("product %d: price must be positive", r.ID)
		}

		category := domain.Category(r.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("product %d: unknown category %q", r.ID, r.Category)
		}

		products = append(products, domain.Product{
			ID:          r.ID,
			Name:        r.Name,
			Price:       price,
			Description: r.Description,
			Image:       r.Image,
			Category:    category,
			Featured:    r.Featured,
			Bestseller:  r.Bestseller,
			InStock:     r.InStock,
		})
	}
	return New(products), nil
}

// New wraps products without validation.
func New(products []domain.Product) *Catalog {
	return &Catalog{products: products}
}

// All returns every product in catalog order.
func (c *Catalog) All() []domain.Product {
	return c.filter(func(domain.Product) bool { return true })
}

// ByID returns the first product with id.
func (c *Catalog) ByID(id int) (domain.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// ByCategory returns the products whose category equals category exactly.
func (c *Catalog) ByCategory(category domain.Category) []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Category == category })
}

func (c *Catalog) Featured() []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Featured })
}

func (c *Catalog) Bestsellers() []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Bestseller })
}

func (c *Catalog) filter(keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// ValidSort reports whether s is empty or one of the Sort constants.
func ValidSort(s string) bool {
	switch s {
	case "", SortFeatured, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return true
	}
	return false
}

// Filter narrows and orders a Query.
type Filter struct {
	Category    domain.Category
	Search      string
	InStockOnly bool
	Sort        string
}

// Query applies f. Search matches name or description case-insensitively.
// Unknown sort values keep catalog order.
func (c *Catalog) Query(f Filter) []domain.Product {
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := c.filter(func(p domain.Product) bool {
		if f.Category != "" && p.Category != f.Category {
			return false
		}
		if f.InStockOnly && !p.InStock {
			return false
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
		return true
	})

	switch f.Sort {
	case SortFeatured:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Featured && !out[j].Featured })
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) > strings.ToLower(out[j].Name) })
	}
	return out
}

// CategoryCount is a category with the number of products in it.
type CategoryCount struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
}

// Categories returns every non-empty category in display order.
func (c *Catalog) Categories() []CategoryCount {
	counts := make(map[domain.Category]int)
	for _, p := range c.products {
		counts[p.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for _, cat := range domain.Categories {
		if n := counts[cat]; n > 0 {
			out = append(out, CategoryCount{Category: cat, Count: n})
		}
	}
	return out
}
