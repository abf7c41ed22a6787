// internal/core/services/history.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/ports"
)

// ErrExportNotReady is returned when an archived session has no uploaded count sheet yet
var ErrExportNotReady = errors.New("count sheet export not ready")

// BuildHistory flattens an archived session into its stored form.
// Every catalog product gets a record line, zero when uncounted.
func BuildHistory(archived domain.ArchivedSession, archivedAt time.Time) *domain.SessionHistory {
	session := &archived.Session
	summary := Aggregate(archived.Products, session)

	h := &domain.SessionHistory{
		ID:              session.ID,
		StartDate:       session.StartDate,
		TotalProducts:   summary.TotalProducts,
		CountedProducts: summary.CountedProducts,
		OutOfStockCount: summary.OutOfStockCount,
		LowStockCount:   summary.LowStockCount,
		ArchivedAt:      archivedAt,
		Records:         make([]domain.HistoryRecord, 0, len(archived.Products)),
	}
	if session.CompletedDate != nil {
		h.CompletedDate = *session.CompletedDate
	} else {
		h.CompletedDate = archivedAt
	}

	seen := make(map[string]struct{}, len(archived.Products))
	for _, p := range archived.Products {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}

		rec, _ := session.Record(p.ID)
		h.Records = append(h.Records, domain.HistoryRecord{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Category:      p.Category,
			FullBottles:   rec.FullBottles,
			PartialBottle: rec.PartialBottle,
			StockLevel:    rec.StockLevel(),
			UpdatedAt:     rec.UpdatedAt,
		})
	}
	return h
}

var _ ports.HistoryService = (*HistoryService)(nil)

// HistoryService serves archived sessions and their exported count sheets
type HistoryService struct {
	repo          ports.SessionHistoryRepository
	storage       ports.ObjectStorage
	presignExpiry time.Duration
	logger        *slog.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(
	repo ports.SessionHistoryRepository,
	storage ports.ObjectStorage,
	presignExpiry time.Duration,
	logger *slog.Logger,
) *HistoryService {
	if presignExpiry <= 0 {
		presignExpiry = 15 * time.Minute
	}
	return &HistoryService{
		repo:          repo,
		storage:       storage,
		presignExpiry: presignExpiry,
		logger:        logger.With(slog.String("service", "history")),
	}
}

// List returns one page of archived sessions
func (s *HistoryService) List(ctx context.Context, params ports.HistoryListParams) (*ports.HistoryListResult, error) {
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		return nil, fmt.Errorf("%w: to is before from", domain.ErrInvalidQuery)
	}
	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return result, nil
}

// Get returns one archived session with its records
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.SessionHistory, error) {
	return s.repo.FindByID(ctx, id)
}

// ExportURL returns a time-limited download link for the session's count sheet
func (s *HistoryService) ExportURL(ctx context.Context, id string) (string, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if h.ExportKey == "" || s.storage == nil {
		return "", fmt.Errorf("session %s: %w", id, ErrExportNotReady)
	}

	url, err := s.storage.GetPresignedURL(ctx, h.ExportKey, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign export: %w", err)
	}

	s.logger.DebugContext(ctx, "export url issued",
		slog.String("session_id", id),
		slog.String("key", h.ExportKey))
	return url, nil
}
