// internal/core/ports/history_service.go
package ports

import (
	"context"

	"github.com/ammerola/barstock/internal/core/domain"
)

// HistoryService serves archived sessions to the HTTP handlers.
// This interface is implemented by services.HistoryService.
type HistoryService interface {
	List(ctx context.Context, params HistoryListParams) (*HistoryListResult, error)
	Get(ctx context.Context, id string) (*domain.SessionHistory, error)
	ExportURL(ctx context.Context, id string) (string, error)
}
