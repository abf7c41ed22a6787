// internal/core/domain/catalog.go
package domain

import (
	"fmt"
	"strings"
)

// Category represents a drink category
type Category string

// Category constants
const (
	CategoryIrishWhiskey      Category = "Irish Whiskey"
	CategoryIrishBeer         Category = "Irish Beer"
	CategoryInternationalBeer Category = "International Beer"
	CategorySpirits           Category = "Spirits"
	CategoryWine              Category = "Wine"
)

// categories is the canonical ordering used for iteration, charts and exports.
var categories = []Category{
	CategoryIrishWhiskey,
	CategoryIrishBeer,
	CategoryInternationalBeer,
	CategorySpirits,
	CategoryWine,
}

// Categories returns every category in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsValid reports whether c is one of the known categories
func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the short chart label for the category (its first word)
func (c Category) Label() string {
	if i := strings.IndexByte(string(c), ' '); i > 0 {
		return string(c)[:i]
	}
	return string(c)
}

// ParseCategory resolves a category name, ignoring case and surrounding whitespace
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, known := range categories {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, s)
}

// Product represents a drink the bar stocks
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	IsActive    bool     `json:"isActive"`
	Description string   `json:"description,omitempty"`
}

// NewProductInput carries the caller-supplied fields of a new product
type NewProductInput struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description,omitempty"`
}

// Validate performs domain validation on the product input
func (in *NewProductInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if !in.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, in.Category)
	}
	return nil
}

// Suggestion is a category and description proposed for a product name
type Suggestion struct {
	Category    Category `json:"category"`
	Description string   `json:"description"`
}

// DefaultProducts returns the starter catalog used when no snapshot exists
func DefaultProducts() []Product {
	return []Product{
		{ID: "1", Name: "Guinness Draught", Category: CategoryIrishBeer, IsActive: true},
		{ID: "2", Name: "Kilkenny Cream Ale", Category: CategoryIrishBeer, IsActive: true},
		{ID: "3", Name: "Jameson Original", Category: CategoryIrishWhiskey, IsActive: true},
		{ID: "4", Name: "Bushmills Black Bush", Category: CategoryIrishWhiskey, IsActive: true},
		{ID: "5", Name: "Redbreast 12", Category: CategoryIrishWhiskey, IsActive: true},
		{ID: "6", Name: "Heineken", Category: CategoryInternationalBeer, IsActive: true},
		{ID: "7", Name: "Corona Extra", Category: CategoryInternationalBeer, IsActive: true},
		{ID: "8", Name: "Baileys Irish Cream", Category: CategorySpirits, IsActive: true},
		{ID: "9", Name: "Cabernet Sauvignon", Category: CategoryWine, IsActive: true},
		{ID: "10", Name: "Pinot Grigio", Category: CategoryWine, IsActive: true},
	}
}
