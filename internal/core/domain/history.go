// internal/core/domain/history.go
package domain

import "time"

// ArchivedSession is a completed session handed off for long-term storage
type ArchivedSession struct {
	Session  InventorySession `json:"session"`
	Products []Product        `json:"products"`
}

// SessionHistory is a completed session as stored in the history database
type SessionHistory struct {
	ID              string          `json:"id"`
	StartDate       time.Time       `json:"startDate"`
	CompletedDate   time.Time       `json:"completedDate"`
	TotalProducts   int             `json:"totalProducts"`
	CountedProducts int             `json:"countedProducts"`
	OutOfStockCount int             `json:"outOfStockCount"`
	LowStockCount   int             `json:"lowStockCount"`
	ExportKey       string          `json:"exportKey,omitempty"`
	ArchivedAt      time.Time       `json:"archivedAt"`
	Records         []HistoryRecord `json:"records,omitempty"`
}

// HistoryRecord is one counted line of an archived session
type HistoryRecord struct {
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	Category      Category  `json:"category"`
	FullBottles   int       `json:"fullBottles"`
	PartialBottle float64   `json:"partialBottle"`
	StockLevel    float64   `json:"stockLevel"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
