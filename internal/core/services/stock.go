// internal/core/services/stock.go
package services

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ammerola/barstock/internal/core/domain"
)

// StockLevel returns full plus partial units for productID, zero when uncounted
func StockLevel(session *domain.InventorySession, productID string) float64 {
	return session.StockLevel(productID)
}

// StatusOf classifies the stock level of productID
func StatusOf(session *domain.InventorySession, productID string) domain.StockStatus {
	return domain.ClassifyStock(StockLevel(session, productID))
}

// Aggregate computes dashboard counts over explicit records whose product is in the catalog.
// Low stock items hold out-of-stock and low-stock products in catalog order.
func Aggregate(products []domain.Product, session *domain.InventorySession) domain.Summary {
	summary := domain.Summary{
		TotalProducts: len(products),
		LowStockItems: []domain.LowStockItem{},
	}

	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}

		rec, ok := session.Record(p.ID)
		if !ok {
			continue
		}
		summary.CountedProducts++

		level := rec.StockLevel()
		switch domain.ClassifyStock(level) {
		case domain.StatusOutOfStock:
			summary.OutOfStockCount++
		case domain.StatusLowStock:
			summary.LowStockCount++
		default:
			continue
		}
		summary.LowStockItems = append(summary.LowStockItems, domain.LowStockItem{
			ProductID: p.ID,
			Name:      p.Name,
			Amount:    level,
		})
	}

	if summary.TotalProducts > 0 {
		summary.CountedPercent = int(math.Round(float64(summary.CountedProducts) * 100 / float64(summary.TotalProducts)))
	}
	return summary
}

// CategoryTotals sums stock per category in enumeration order, rounded half-up to one decimal
func CategoryTotals(products []domain.Product, session *domain.InventorySession) []domain.CategoryTotal {
	sums := make(map[domain.Category]decimal.Decimal)
	for _, p := range products {
		sums[p.Category] = sums[p.Category].Add(decimal.NewFromFloat(StockLevel(session, p.ID)))
	}

	cats := domain.Categories()
	totals := make([]domain.CategoryTotal, 0, len(cats))
	for _, c := range cats {
		totals = append(totals, domain.CategoryTotal{
			Category: c,
			Label:    c.Label(),
			Stock:    sums[c].Round(1).InexactFloat64(),
		})
	}
	return totals
}

// FilterProducts returns catalog products matching the search term and status filter, with their stock
func FilterProducts(products []domain.Product, session *domain.InventorySession, filter domain.ProductFilter) []domain.ProductStock {
	term := strings.ToLower(strings.TrimSpace(filter.SearchTerm))

	out := make([]domain.ProductStock, 0, len(products))
	for _, p := range products {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		level := StockLevel(session, p.ID)
		if !filter.Status.Matches(level) {
			continue
		}
		out = append(out, domain.ProductStock{
			Product:    p,
			StockLevel: level,
			Status:     domain.ClassifyStock(level),
		})
	}
	return out
}
