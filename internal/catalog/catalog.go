package catalog

import "strings"

// Category is one of the two fixed menu partitions.
type Category string

const (
	CategoryBasics  Category = "Basics"
	CategoryPremium Category = "Premium"
)

// Item is a purchasable menu entry. Price is in whole rupees.
type Item struct {
	Code  string
	Name  string
	Price int
}

// Catalog is the static menu. It is never mutated after construction.
type Catalog struct {
	items map[string]Item
	byCat map[Category][]string
}

// Default returns the fixed six-item DabbaXpress menu.
func Default() *Catalog {
	c := &Catalog{
		items: make(map[string]Item),
		byCat: make(map[Category][]string),
	}
	c.add(CategoryBasics, Item{Code: "b1", Name: "Veg Thali", Price: 120})
	c.add(CategoryBasics, Item{Code: "b2", Name: "Paneer Curry + Roti", Price: 150})
	c.add(CategoryBasics, Item{Code: "b3", Name: "Dal Tadka + Rice", Price: 100})
	c.add(CategoryPremium, Item{Code: "p1", Name: "Paneer Butter Masala + Naan", Price: 240})
	c.add(CategoryPremium, Item{Code: "p2", Name: "Veg Biryani + Raita", Price: 220})
	c.add(CategoryPremium, Item{Code: "p3", Name: "Kaju Curry + Tandoori Roti", Price: 260})
	return c
}

func (c *Catalog) add(cat Category, it Item) {
	c.items[it.Code] = it
	c.byCat[cat] = append(c.byCat[cat], it.Code)
}

// ByCode looks up an item by its stable code (b1..b3, p1..p3).
func (c *Catalog) ByCode(code string) (Item, bool) {
	it, ok := c.items[code]
	return it, ok
}

// ByName looks up an item by display name, case-insensitively.
func (c *Catalog) ByName(name string) (Item, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, it := range c.items {
		if strings.ToLower(it.Name) == want {
			return it, true
		}
	}
	return Item{}, false
}

// ByPosition resolves a 1-based menu position within a category, so the
// same digit maps to different items depending on the active category.
func (c *Catalog) ByPosition(cat Category, pos int) (Item, bool) {
	codes := c.byCat[cat]
	if pos < 1 || pos > len(codes) {
		return Item{}, false
	}
	return c.items[codes[pos-1]], true
}

// Items returns the category's items in menu order.
func (c *Catalog) Items(cat Category) []Item {
	codes := c.byCat[cat]
	out := make([]Item, len(codes))
	for i, code := range codes {
		out[i] = c.items[code]
	}
	return out
}
