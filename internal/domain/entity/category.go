package entity

import "strings"

// Category is the menu section a product belongs to.
type Category string

const (
	CategoryBurger  Category = "hamburguesa"
	CategoryHotDog  Category = "perro caliente"
	CategorySide    Category = "acompañamiento"
	CategoryDrink   Category = "bebida"
	CategoryDessert Category = "postre"
)

// Categories lists every category in menu order.
var Categories = []Category{
	CategoryBurger,
	CategoryHotDog,
	CategorySide,
	CategoryDrink,
	CategoryDessert,
}

// ParseCategory matches a raw value against the known categories, ignoring
// case and surrounding spaces.
func ParseCategory(raw string) (Category, bool) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, c := range Categories {
		if string(c) == needle {
			return c, true
		}
	}

	return "", false
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	_, ok := ParseCategory(string(c))

	return ok
}
