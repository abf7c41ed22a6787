// internal/adapters/redis_adapter/snapshot_store.go
package redis_a

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/barstock/internal/core/ports"
)

// Options configures the Redis connection used for snapshots
type Options struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewClient creates a Redis client and verifies connectivity
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// SnapshotStore keeps serialized snapshots as plain Redis string values without expiry
type SnapshotStore struct {
	client *redis.Client
	logger *slog.Logger
}

// Statically assert that *SnapshotStore implements the SnapshotStore interface.
var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a new snapshot store
func NewSnapshotStore(client *redis.Client, logger *slog.Logger) *SnapshotStore {
	return &SnapshotStore{
		client: client,
		logger: logger.With(slog.String("component", "snapshot_store")),
	}
}

// Load returns the value stored at key
func (s *SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.logger.DebugContext(ctx, "snapshot missing", slog.String("key", key))
			return nil, ports.ErrSnapshotNotFound
		}
		s.logger.ErrorContext(ctx, "failed to read snapshot",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	s.logger.DebugContext(ctx, "snapshot loaded",
		slog.String("key", key),
		slog.Int("bytes", len(data)))
	return data, nil
}

// Save overwrites the value at key
func (s *SnapshotStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		s.logger.ErrorContext(ctx, "failed to write snapshot",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("redis set error: %w", err)
	}

	s.logger.DebugContext(ctx, "snapshot saved",
		slog.String("key", key),
		slog.Int("bytes", len(value)))
	return nil
}

// Ping checks if Redis is accessible
func (s *SnapshotStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.logger.ErrorContext(ctx, "redis ping failed", slog.String("error", err.Error()))
		return fmt.Errorf("redis ping error: %w", err)
	}
	return nil
}
