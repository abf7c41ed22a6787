// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/barstock/internal/core/ports"
)

// CleanupProcessor enforces the history retention window
type CleanupProcessor struct {
	repo          ports.SessionHistoryRepository
	retentionDays int
	now           func() time.Time
	logger        *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(repo ports.SessionHistoryRepository, retentionDays int, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		repo:          repo,
		retentionDays: retentionDays,
		now:           func() time.Time { return time.Now().UTC() },
		logger:        logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupOldSessions deletes archived sessions completed before the retention window
func (p *CleanupProcessor) CleanupOldSessions(ctx context.Context, t *asynq.Task) error {
	retention := p.retentionDays
	if len(t.Payload()) > 0 {
		var payload CleanupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
		}
		if payload.RetentionDays > 0 {
			retention = payload.RetentionDays
		}
	}
	if retention <= 0 {
		p.logger.InfoContext(ctx, "history retention disabled, nothing to clean up")
		return nil
	}

	cutoff := p.now().AddDate(0, 0, -retention)
	p.logger.InfoContext(ctx, "cleaning up archived sessions", slog.Time("cutoff", cutoff))

	deleted, err := p.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup archived sessions: %w", err)
	}

	p.logger.InfoContext(ctx, "archived sessions cleaned up",
		slog.Int64("sessions_deleted", deleted))
	return nil
}
