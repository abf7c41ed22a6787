// internal/core/services/inventory.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/ports"
)

// InventoryService exposes the catalog and ledger to concurrent callers.
// Every mutation runs under one mutex and is followed by a snapshot write.
type InventoryService struct {
	mu      sync.Mutex
	catalog *Catalog
	ledger  *Ledger

	snapshots *SnapshotRepository
	archiver  ports.SessionArchiver
	suggester ports.Suggester
	opts      []Option

	saveTimeout time.Duration

	// set when a snapshot write failed and must be retried
	productsDirty bool
	sessionDirty  bool

	logger *slog.Logger
}

// Statically assert that *InventoryService implements the InventoryService interface.
var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service holding the default catalog and a new session.
// Call Load to restore persisted state. snapshots, archiver and suggester may be nil.
func NewInventoryService(
	snapshots *SnapshotRepository,
	archiver ports.SessionArchiver,
	suggester ports.Suggester,
	logger *slog.Logger,
	opts ...Option,
) *InventoryService {
	return &InventoryService{
		catalog:   NewCatalog(domain.DefaultProducts(), opts...),
		ledger:    NewLedger(nil, opts...),
		snapshots: snapshots,
		archiver:  archiver,
		suggester: suggester,
		opts:      opts,
		logger:    logger.With(slog.String("service", "inventory")),

		saveTimeout: buildOptions(opts).saveTimeout,
	}
}

// Load replaces the in-memory state with the persisted snapshots.
// Missing or malformed snapshots fall back to defaults and are rewritten.
// A failed read leaves the current state and the store untouched.
func (s *InventoryService) Load(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, productsFound, err := s.snapshots.LoadProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load inventory state: %w", err)
	}
	session, err := s.snapshots.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to load inventory state: %w", err)
	}
	fresh := session == nil

	s.catalog = NewCatalog(products, s.opts...)
	s.ledger = NewLedger(session, s.opts...)

	s.logger.InfoContext(ctx, "inventory state loaded",
		slog.Int("products", s.catalog.Len()),
		slog.String("session_id", s.ledger.current.ID),
		slog.Int("records", len(s.ledger.current.Records)),
		slog.Bool("default_catalog", !productsFound),
		slog.Bool("new_session", fresh))

	s.productsDirty, s.sessionDirty = !productsFound, fresh
	s.persistLocked(ctx)
	return nil
}

// Flush writes any snapshot whose last write failed
func (s *InventoryService) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshots == nil {
		return nil
	}
	if s.productsDirty {
		if err := s.snapshots.SaveProducts(ctx, s.catalog.ListProducts()); err != nil {
			return err
		}
		s.productsDirty = false
	}
	if s.sessionDirty {
		if err := s.snapshots.SaveSession(ctx, s.ledger.current); err != nil {
			return err
		}
		s.sessionDirty = false
	}
	return nil
}

// persistLocked writes dirty snapshots; failures are logged and retried on the next write
func (s *InventoryService) persistLocked(ctx context.Context) {
	if s.snapshots == nil {
		s.productsDirty, s.sessionDirty = false, false
		return
	}
	if s.saveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.WithoutCancel(ctx), s.saveTimeout)
		defer cancel()
	}
	if s.productsDirty {
		if err := s.snapshots.SaveProducts(ctx, s.catalog.ListProducts()); err != nil {
			s.logger.ErrorContext(ctx, "failed to persist catalog", slog.String("error", err.Error()))
		} else {
			s.productsDirty = false
		}
	}
	if s.sessionDirty {
		if err := s.snapshots.SaveSession(ctx, s.ledger.current); err != nil {
			s.logger.ErrorContext(ctx, "failed to persist session", slog.String("error", err.Error()))
		} else {
			s.sessionDirty = false
		}
	}
}

// AddProduct adds a product to the catalog
func (s *InventoryService) AddProduct(ctx context.Context, input domain.NewProductInput) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.catalog.AddProduct(input)
	if err != nil {
		return domain.Product{}, fmt.Errorf("validation failed: %w", err)
	}

	s.productsDirty = true
	s.persistLocked(ctx)

	s.logger.InfoContext(ctx, "product added",
		slog.String("product_id", p.ID),
		slog.String("name", p.Name),
		slog.String("category", string(p.Category)))
	return p, nil
}

// ListProducts returns the catalog in insertion order
func (s *InventoryService) ListProducts(ctx context.Context) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.ListProducts()
}

// Product looks up a single product
func (s *InventoryService) Product(ctx context.Context, id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Product(id)
}

// FilterProducts returns products matching filter, joined with their stock
func (s *InventoryService) FilterProducts(ctx context.Context, filter domain.ProductFilter) []domain.ProductStock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilterProducts(s.catalog.products, s.ledger.current, filter)
}

// Suggest asks the suggestion service for a category and description
func (s *InventoryService) Suggest(ctx context.Context, productName string) (*domain.Suggestion, bool) {
	if s.suggester == nil {
		return nil, false
	}
	suggestion, ok := s.suggester.Suggest(ctx, productName)
	if !ok {
		s.logger.DebugContext(ctx, "no suggestion", slog.String("name", productName))
		return nil, false
	}
	return suggestion, true
}

// Session returns a copy of the current session
func (s *InventoryService) Session(ctx context.Context) *domain.InventorySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Session()
}

// GetRecord returns the record for productID, or a zero record
func (s *InventoryService) GetRecord(ctx context.Context, productID string) domain.InventoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.GetRecord(productID)
}

// UpdateRecord replaces the record for record.ProductID
func (s *InventoryService) UpdateRecord(ctx context.Context, record domain.InventoryRecord) (domain.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(ctx, record)
}

// UpdateRecordIfUnmodified replaces the record only if it was last updated at expected
func (s *InventoryService) UpdateRecordIfUnmodified(ctx context.Context, record domain.InventoryRecord, expected time.Time) (domain.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.ledger.UpdateRecordIfUnmodified(record, expected)
	if err != nil {
		return domain.InventoryRecord{}, err
	}
	s.recordUpdatedLocked(ctx, stored)
	return stored, nil
}

// AdjustFullBottles adds delta to the full count of productID, never going below zero
func (s *InventoryService) AdjustFullBottles(ctx context.Context, productID string, delta int) (domain.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.ledger.GetRecord(productID)
	rec.FullBottles = adjustCount(rec.FullBottles, delta)
	rec.UpdatedAt = time.Time{}
	return s.updateLocked(ctx, rec)
}

// adjustCount adds delta to a non-negative count, clamping to [0, math.MaxInt]
func adjustCount(count, delta int) int {
	if delta > 0 && count > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(0, count+delta)
}

// SetPartialBottle sets the open-unit fraction of productID
func (s *InventoryService) SetPartialBottle(ctx context.Context, productID string, level float64) (domain.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.ledger.GetRecord(productID)
	rec.PartialBottle = level
	rec.UpdatedAt = time.Time{}
	return s.updateLocked(ctx, rec)
}

func (s *InventoryService) updateLocked(ctx context.Context, record domain.InventoryRecord) (domain.InventoryRecord, error) {
	stored, err := s.ledger.UpdateRecord(record)
	if err != nil {
		return domain.InventoryRecord{}, err
	}
	s.recordUpdatedLocked(ctx, stored)
	return stored, nil
}

func (s *InventoryService) recordUpdatedLocked(ctx context.Context, rec domain.InventoryRecord) {
	s.sessionDirty = true
	s.persistLocked(ctx)

	s.logger.DebugContext(ctx, "record updated",
		slog.String("product_id", rec.ProductID),
		slog.Int("full_bottles", rec.FullBottles),
		slog.Float64("partial_bottle", rec.PartialBottle))
}

// FinishSession archives a completed copy of the current session and starts a new one,
// returning both. If archiving fails the current session is left untouched.
func (s *InventoryService) FinishSession(ctx context.Context) (completed, next *domain.InventorySession, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed = s.ledger.Completed()
	if s.archiver != nil {
		archived := domain.ArchivedSession{
			Session:  *completed,
			Products: s.catalog.ListProducts(),
		}
		if err := s.archiver.Archive(ctx, archived); err != nil {
			return nil, nil, fmt.Errorf("failed to archive session %s: %w", completed.ID, err)
		}
	}

	next = s.ledger.ResetSession()
	s.sessionDirty = true
	s.persistLocked(ctx)

	s.logger.InfoContext(ctx, "session finished",
		slog.String("session_id", completed.ID),
		slog.Int("records", len(completed.Records)),
		slog.String("next_session_id", next.ID))
	return completed, next, nil
}

// ResetSession discards the current session and starts a new one
func (s *InventoryService) ResetSession(ctx context.Context) *domain.InventorySession {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.ledger.current.ID
	next := s.ledger.ResetSession()
	s.sessionDirty = true
	s.persistLocked(ctx)

	s.logger.InfoContext(ctx, "session reset",
		slog.String("previous_session_id", previous),
		slog.String("session_id", next.ID))
	return next
}

// Dashboard returns the aggregate summary and category totals
func (s *InventoryService) Dashboard(ctx context.Context) domain.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.Dashboard{
		Summary:        Aggregate(s.catalog.products, s.ledger.current),
		CategoryTotals: CategoryTotals(s.catalog.products, s.ledger.current),
	}
}
