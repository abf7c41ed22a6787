// internal/core/ports/snapshot_store.go
package ports

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned by Load when no value exists for a key
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore is the key-value port for persisted catalog and session snapshots.
// Values are opaque serialized documents.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}
