// internal/core/domain/inventory.go
package domain

import (
	"fmt"
	"math"
	"time"
)

// InventoryRecord is the latest count of one product within a session
type InventoryRecord struct {
	ProductID     string    `json:"productId"`
	FullBottles   int       `json:"fullBottles"`
	PartialBottle float64   `json:"partialBottle"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EmptyRecord returns the zero count used for products that have not been counted
func EmptyRecord(productID string) InventoryRecord {
	return InventoryRecord{ProductID: productID}
}

// Validate performs domain validation on the inventory record
func (r InventoryRecord) Validate() error {
	if r.ProductID == "" {
		return fmt.Errorf("%w: productId is required", ErrInvalidRecord)
	}
	if r.FullBottles < 0 {
		return fmt.Errorf("%w: fullBottles cannot be negative", ErrInvalidRecord)
	}
	if math.IsNaN(r.PartialBottle) || r.PartialBottle < 0 || r.PartialBottle > 1 {
		return fmt.Errorf("%w: partialBottle must be between 0 and 1, got %v", ErrInvalidRecord, r.PartialBottle)
	}
	return nil
}

// StockLevel returns full units plus the open-unit fraction
func (r InventoryRecord) StockLevel() float64 {
	return float64(r.FullBottles) + r.PartialBottle
}

// SessionStatus represents the lifecycle state of a counting session
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// InventorySession is one counting cycle
type InventorySession struct {
	ID            string                     `json:"id"`
	StartDate     time.Time                  `json:"startDate"`
	CompletedDate *time.Time                 `json:"completedDate,omitempty"`
	Records       map[string]InventoryRecord `json:"records"`
	Status        SessionStatus              `json:"status"`
}

// NewSession creates an empty active session started at now
func NewSession(id string, now time.Time) *InventorySession {
	return &InventorySession{
		ID:        id,
		StartDate: now,
		Records:   make(map[string]InventoryRecord),
		Status:    SessionActive,
	}
}

// Record returns the stored record for productID, if any
func (s *InventorySession) Record(productID string) (InventoryRecord, bool) {
	if s == nil {
		return InventoryRecord{}, false
	}
	rec, ok := s.Records[productID]
	return rec, ok
}

// StockLevel returns the stock of productID, zero when uncounted
func (s *InventorySession) StockLevel(productID string) float64 {
	rec, ok := s.Record(productID)
	if !ok {
		return 0
	}
	return rec.StockLevel()
}

// Clone returns a deep copy that shares no mutable state with s
func (s *InventorySession) Clone() *InventorySession {
	if s == nil {
		return nil
	}
	out := *s
	if s.CompletedDate != nil {
		completed := *s.CompletedDate
		out.CompletedDate = &completed
	}
	out.Records = make(map[string]InventoryRecord, len(s.Records))
	for id, rec := range s.Records {
		out.Records[id] = rec
	}
	return &out
}

// Validate checks the session shape and every record it holds
func (s *InventorySession) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if s.Status != SessionActive && s.Status != SessionCompleted {
		return fmt.Errorf("unknown session status %q", s.Status)
	}
	for id, rec := range s.Records {
		if rec.ProductID != id {
			return fmt.Errorf("%w: record keyed %q names product %q", ErrInvalidRecord, id, rec.ProductID)
		}
		if err := rec.Validate(); err != nil {
			return err
		}
	}
	return nil
}
