// internal/core/ports/archive.go
package ports

import (
	"context"
	"io"
	"time"

	"github.com/ammerola/barstock/internal/core/domain"
)

// SessionArchiver accepts completed sessions for long-term storage
type SessionArchiver interface {
	Archive(ctx context.Context, archived domain.ArchivedSession) error
}

// SessionHistoryRepository persists archived sessions
type SessionHistoryRepository interface {
	Save(ctx context.Context, history *domain.SessionHistory) error
	FindByID(ctx context.Context, id string) (*domain.SessionHistory, error)
	List(ctx context.Context, params HistoryListParams) (*HistoryListResult, error)
	SetExportKey(ctx context.Context, id, key string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ObjectStorage stores exported documents
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// HistoryListParams holds parameters for listing archived sessions
type HistoryListParams struct {
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// HistoryListResult holds one page of archived sessions
type HistoryListResult struct {
	Items      []*domain.SessionHistory `json:"items"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"pageSize"`
	TotalCount int64                    `json:"totalCount"`
	TotalPages int                      `json:"totalPages"`
}
