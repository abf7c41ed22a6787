// internal/core/services/catalog.go
package services

import (
	"fmt"

	"github.com/ammerola/barstock/internal/core/domain"
)

// Catalog holds the known products in insertion order.
// It is not safe for concurrent use; InventoryService serializes access.
type Catalog struct {
	products []domain.Product
	index    map[string]int
	opts     options
}

// NewCatalog creates a catalog seeded with products
func NewCatalog(products []domain.Product, opts ...Option) *Catalog {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
		opts:     buildOptions(opts),
	}
	for _, p := range products {
		c.append(p)
	}
	return c
}

func (c *Catalog) append(p domain.Product) {
	if _, exists := c.index[p.ID]; !exists {
		c.index[p.ID] = len(c.products)
	}
	c.products = append(c.products, p)
}

// AddProduct validates input and appends a new active product with a fresh id
func (c *Catalog) AddProduct(input domain.NewProductInput) (domain.Product, error) {
	if err := input.Validate(); err != nil {
		return domain.Product{}, err
	}

	id := c.opts.newID()
	for _, taken := c.index[id]; taken; _, taken = c.index[id] {
		id = c.opts.newID()
	}

	p := domain.Product{
		ID:          id,
		Name:        input.Name,
		Category:    input.Category,
		IsActive:    true,
		Description: input.Description,
	}
	c.append(p)
	return p, nil
}

// ListProducts returns every product in insertion order
func (c *Catalog) ListProducts() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks up a product by id
func (c *Catalog) Product(id string) (domain.Product, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: product %q", domain.ErrNotFound, id)
	}
	return c.products[i], nil
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}
