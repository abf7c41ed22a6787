// internal/core/services/ledger.go
package services

import (
	"fmt"
	"time"

	"github.com/ammerola/barstock/internal/core/domain"
)

// Ledger owns the single current counting session.
// It is not safe for concurrent use; InventoryService serializes access.
type Ledger struct {
	current *domain.InventorySession
	opts    options
}

// NewLedger creates a ledger around session, or a fresh active session when nil
func NewLedger(session *domain.InventorySession, opts ...Option) *Ledger {
	l := &Ledger{opts: buildOptions(opts)}
	if session == nil {
		session = domain.NewSession(l.opts.newID(), l.opts.now())
	}
	if session.Records == nil {
		session.Records = make(map[string]domain.InventoryRecord)
	}
	l.current = session
	return l
}

// Session returns a copy of the current session
func (l *Ledger) Session() *domain.InventorySession {
	return l.current.Clone()
}

// GetRecord returns the stored record or a zero record for uncounted products.
// The zero record is not stored.
func (l *Ledger) GetRecord(productID string) domain.InventoryRecord {
	if rec, ok := l.current.Records[productID]; ok {
		return rec
	}
	return domain.EmptyRecord(productID)
}

// UpdateRecord replaces the record for record.ProductID after validation.
// A zero UpdatedAt is stamped with the ledger clock and UpdatedAt never moves backwards.
func (l *Ledger) UpdateRecord(record domain.InventoryRecord) (domain.InventoryRecord, error) {
	if err := record.Validate(); err != nil {
		return domain.InventoryRecord{}, err
	}

	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = l.opts.now()
	}
	if prev, ok := l.current.Records[record.ProductID]; ok && prev.UpdatedAt.After(record.UpdatedAt) {
		record.UpdatedAt = prev.UpdatedAt
	}

	l.current.Records[record.ProductID] = record
	return record, nil
}

// UpdateRecordIfUnmodified replaces the record only when the stored UpdatedAt equals expected.
// An uncounted product matches the zero time.
func (l *Ledger) UpdateRecordIfUnmodified(record domain.InventoryRecord, expected time.Time) (domain.InventoryRecord, error) {
	var current time.Time
	if prev, ok := l.current.Records[record.ProductID]; ok {
		current = prev.UpdatedAt
	}
	if !current.Equal(expected) {
		return domain.InventoryRecord{}, fmt.Errorf("%w: product %q was updated at %s",
			domain.ErrConflict, record.ProductID, current.Format(time.RFC3339Nano))
	}
	return l.UpdateRecord(record)
}

// Completed returns a completed copy of the current session without changing it
func (l *Ledger) Completed() *domain.InventorySession {
	completed := l.current.Clone()
	now := l.opts.now()
	completed.CompletedDate = &now
	completed.Status = domain.SessionCompleted
	return completed
}

// FinishSession completes the current session, starts a new one and returns the completed copy
func (l *Ledger) FinishSession() *domain.InventorySession {
	completed := l.Completed()
	l.ResetSession()
	return completed
}

// ResetSession discards the current session and starts a new empty active one
func (l *Ledger) ResetSession() *domain.InventorySession {
	l.current = domain.NewSession(l.opts.newID(), l.opts.now())
	return l.current.Clone()
}
