// test/benchmarks/helpers.go
package benchmarks

import (
	"fmt"
	"time"

	"github.com/ammerola/barstock/internal/core/domain"
)

// createBenchmarkCatalog builds n products spread over every category
func createBenchmarkCatalog(n int) []domain.Product {
	cats := domain.Categories()
	products := make([]domain.Product, n)
	for i := range products {
		products[i] = domain.Product{
			ID:       fmt.Sprintf("bench-%d", i),
			Name:     fmt.Sprintf("Benchmark Product %d", i),
			Category: cats[i%len(cats)],
			IsActive: true,
		}
	}
	return products
}

// createBenchmarkSession counts every other product with a mix of
// empty, partial and full stock levels
func createBenchmarkSession(products []domain.Product) *domain.InventorySession {
	now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	s := domain.NewSession("bench-session", now)
	for i, p := range products {
		if i%2 == 1 {
			continue
		}
		s.Records[p.ID] = domain.InventoryRecord{
			ProductID:     p.ID,
			FullBottles:   i % 4,
			PartialBottle: float64(i%10) / 10,
			UpdatedAt:     now.Add(time.Duration(i) * time.Second),
		}
	}
	return s
}
