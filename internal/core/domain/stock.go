// internal/core/domain/stock.go
package domain

import "fmt"

// StockStatus is the classification of a product's stock level
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusInStock    StockStatus = "in_stock"
)

// ClassifyStock maps a stock level onto exactly one status
func ClassifyStock(level float64) StockStatus {
	switch {
	case level <= 0:
		return StatusOutOfStock
	case level < 1:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// StatusFilter selects products in a listing by stock status
type StatusFilter string

const (
	FilterTotal StatusFilter = "total"
	FilterOut   StatusFilter = "out"
	FilterLow   StatusFilter = "low"
)

// ParseStatusFilter accepts "", "total", "out" and "low"
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "", FilterTotal:
		return FilterTotal, nil
	case FilterOut, FilterLow:
		return StatusFilter(s), nil
	default:
		return "", fmt.Errorf("%w: unknown status filter %q", ErrInvalidQuery, s)
	}
}

// Matches reports whether a product at the given level passes the filter
func (f StatusFilter) Matches(level float64) bool {
	switch f {
	case FilterOut:
		return ClassifyStock(level) == StatusOutOfStock
	case FilterLow:
		return ClassifyStock(level) == StatusLowStock
	default:
		return true
	}
}

// ProductStock is a catalog product joined with its current stock
type ProductStock struct {
	Product
	StockLevel float64     `json:"stockLevel"`
	Status     StockStatus `json:"status"`
}

// LowStockItem names a counted product below one full unit, out of stock included
type LowStockItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
}

// Summary is the aggregate view over a catalog and session
type Summary struct {
	TotalProducts   int            `json:"totalProducts"`
	CountedProducts int            `json:"countedProducts"`
	CountedPercent  int            `json:"countedPercent"`
	OutOfStockCount int            `json:"outOfStockCount"`
	LowStockCount   int            `json:"lowStockCount"`
	LowStockItems   []LowStockItem `json:"lowStockItems"`
}

// CategoryTotal is the summed stock of one category
type CategoryTotal struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Stock    float64  `json:"stock"`
}

// ProductFilter narrows a product listing
type ProductFilter struct {
	SearchTerm string       `json:"searchTerm"`
	Status     StatusFilter `json:"status"`
}

// Dashboard combines the aggregate summary with per-category totals
type Dashboard struct {
	Summary        Summary         `json:"summary"`
	CategoryTotals []CategoryTotal `json:"categoryTotals"`
}
