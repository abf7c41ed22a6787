// internal/workers/tasks.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/ports"
)

// Task types
const (
	TypeSessionArchive     = "session:archive"
	TypeCleanupOldSessions = "cleanup:old_sessions"
)

// ArchivePayload carries a completed session to the archive worker
type ArchivePayload struct {
	Archived    domain.ArchivedSession `json:"archived"`
	RequestedAt time.Time              `json:"requestedAt"`
}

// CleanupPayload overrides the configured retention for one cleanup run
type CleanupPayload struct {
	RetentionDays int `json:"retentionDays,omitempty"`
}

// NewSessionArchiveTask builds the archive task for a completed session
func NewSessionArchiveTask(archived domain.ArchivedSession, now time.Time) (*asynq.Task, error) {
	if archived.Session.ID == "" {
		return nil, fmt.Errorf("archived session has no id")
	}
	b, err := json.Marshal(ArchivePayload{Archived: archived, RequestedAt: now})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal archive payload: %w", err)
	}
	return asynq.NewTask(TypeSessionArchive, b), nil
}

// NewCleanupTask builds the history retention task
func NewCleanupTask(retentionDays int) (*asynq.Task, error) {
	b, err := json.Marshal(CleanupPayload{RetentionDays: retentionDays})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cleanup payload: %w", err)
	}
	return asynq.NewTask(TypeCleanupOldSessions, b), nil
}

// TaskEnqueuer is the subset of *asynq.Client used to queue tasks
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskArchiver hands completed sessions to the worker through Asynq
type TaskArchiver struct {
	client TaskEnqueuer
	queue  string
	logger *slog.Logger
}

var _ ports.SessionArchiver = (*TaskArchiver)(nil)

// NewTaskArchiver creates a new queue-backed session archiver
func NewTaskArchiver(client TaskEnqueuer, queue string, logger *slog.Logger) *TaskArchiver {
	if queue == "" {
		queue = "default"
	}
	return &TaskArchiver{
		client: client,
		queue:  queue,
		logger: logger.With(slog.String("component", "task_archiver")),
	}
}

// Archive enqueues the session; a session already queued is not queued twice
func (a *TaskArchiver) Archive(ctx context.Context, archived domain.ArchivedSession) error {
	task, err := NewSessionArchiveTask(archived, time.Now().UTC())
	if err != nil {
		return err
	}

	info, err := a.client.EnqueueContext(ctx, task,
		asynq.Queue(a.queue),
		asynq.TaskID("archive:"+archived.Session.ID),
		asynq.MaxRetry(10),
		asynq.Retention(24*time.Hour))
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
			a.logger.WarnContext(ctx, "session archive already queued",
				slog.String("session_id", archived.Session.ID))
			return nil
		}
		return fmt.Errorf("failed to enqueue archive task: %w", err)
	}

	a.logger.InfoContext(ctx, "session archive queued",
		slog.String("session_id", archived.Session.ID),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))
	return nil
}
