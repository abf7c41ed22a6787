// internal/workers/archive_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/ports"
	"github.com/ammerola/barstock/internal/core/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ArchiveProcessor stores completed sessions in the history database and exports their count sheet
type ArchiveProcessor struct {
	repo         ports.SessionHistoryRepository
	storage      ports.ObjectStorage
	exportPrefix string
	now          func() time.Time
	logger       *slog.Logger
}

var _ ports.SessionArchiver = (*ArchiveProcessor)(nil)

// NewArchiveProcessor creates a new archive processor. storage may be nil to skip exports.
func NewArchiveProcessor(repo ports.SessionHistoryRepository, storage ports.ObjectStorage, exportPrefix string, logger *slog.Logger) *ArchiveProcessor {
	return &ArchiveProcessor{
		repo:         repo,
		storage:      storage,
		exportPrefix: exportPrefix,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger.With(slog.String("processor", "archive")),
	}
}

// ProcessArchive handles TypeSessionArchive tasks
func (p *ArchiveProcessor) ProcessArchive(ctx context.Context, t *asynq.Task) error {
	var payload ArchivePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Archived.Session.ID == "" {
		return fmt.Errorf("archive payload has no session id: %w", asynq.SkipRetry)
	}
	return p.Archive(ctx, payload.Archived)
}

// Archive saves the session history, then uploads its count sheet.
// Saving is an upsert so a retried task converges on the same row.
func (p *ArchiveProcessor) Archive(ctx context.Context, archived domain.ArchivedSession) error {
	history := services.BuildHistory(archived, p.now())

	if err := p.repo.Save(ctx, history); err != nil {
		return fmt.Errorf("failed to save session history: %w", err)
	}

	p.logger.InfoContext(ctx, "session archived",
		slog.String("session_id", history.ID),
		slog.Int("products", history.TotalProducts),
		slog.Int("counted", history.CountedProducts))

	if p.storage == nil {
		return nil
	}

	data, err := BuildCountSheet(history)
	if err != nil {
		return fmt.Errorf("failed to build count sheet: %w", err)
	}

	key := CountSheetKey(p.exportPrefix, history)
	if _, err := p.storage.Upload(ctx, key, bytes.NewReader(data), xlsxContentType); err != nil {
		return fmt.Errorf("failed to upload count sheet: %w", err)
	}
	if err := p.repo.SetExportKey(ctx, history.ID, key); err != nil {
		return fmt.Errorf("failed to record export key: %w", err)
	}

	p.logger.InfoContext(ctx, "count sheet exported",
		slog.String("session_id", history.ID),
		slog.String("key", key),
		slog.Int("bytes", len(data)))
	return nil
}
