// internal/adapters/db/migrations.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsTable = "schema_migrations"

type migrateOptions struct {
	attempts   int
	backoff    time.Duration
	forceDirty bool
}

// MigrateOption tunes MigrateHistorySchema
type MigrateOption func(*migrateOptions)

// WithMigrationAttempts sets how many times a failed connection or migration is retried
func WithMigrationAttempts(n int) MigrateOption {
	return func(o *migrateOptions) {
		if n > 0 {
			o.attempts = n
		}
	}
}

// WithForceDirty clears a dirty schema version left by a crashed migration before migrating
func WithForceDirty() MigrateOption {
	return func(o *migrateOptions) { o.forceDirty = true }
}

// MigrateHistorySchema applies the embedded history schema to the database at databaseURL.
// Attempts back off linearly and stop early when ctx is done.
func MigrateHistorySchema(ctx context.Context, databaseURL string, logger *slog.Logger, opts ...MigrateOption) error {
	o := migrateOptions{attempts: 3, backoff: 2 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	logger = logger.With(slog.String("component", "migrator"))

	var lastErr error
	for attempt := 1; attempt <= o.attempts; attempt++ {
		if attempt > 1 {
			wait := time.Duration(attempt-1) * o.backoff
			logger.InfoContext(ctx, "retrying history schema migration",
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait),
				slog.String("last_error", lastErr.Error()))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		if lastErr = migrateOnce(ctx, databaseURL, o.forceDirty, logger); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("history schema migration failed after %d attempts: %w", o.attempts, lastErr)
}

func migrateOnce(ctx context.Context, databaseURL string, forceDirty bool, logger *slog.Logger) error {
	m, err := openMigrate(ctx, databaseURL)
	if err != nil {
		return err
	}
	m.Log = migrateLogger{logger: logger}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.WarnContext(ctx, "failed to close migrator",
				slog.Any("source_error", srcErr),
				slog.Any("db_error", dbErr))
		}
	}()

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		if !forceDirty {
			return fmt.Errorf("history schema is dirty at version %d", version)
		}
		logger.WarnContext(ctx, "forcing dirty schema version", slog.Uint64("version", uint64(version)))
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force schema version: %w", err)
		}
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.InfoContext(ctx, "history schema up to date", slog.Uint64("version", uint64(version)))
		return nil
	case err != nil:
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if version, _, err = m.Version(); err == nil {
		logger.InfoContext(ctx, "history schema migrated", slog.Uint64("version", uint64(version)))
	}
	return nil
}

// openMigrate connects through the pgx stdlib driver; closing the returned
// instance also closes the connection.
func openMigrate(ctx context.Context, databaseURL string) (*migrate.Migrate, error) {
	conn, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	driver, err := postgres.WithInstance(conn, &postgres.Config{
		MigrationsTable:  migrationsTable,
		StatementTimeout: 5 * time.Minute,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}

// migrateLogger routes golang-migrate output to slog at debug level
type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
