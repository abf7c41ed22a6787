// internal/core/ports/database.go
package ports

import (
	"context"
)

// Database is the subset of the history database wrapper that health checks need
type Database interface {
	Ping(ctx context.Context) error
	Health(ctx context.Context) map[string]interface{}
	Close()
}
