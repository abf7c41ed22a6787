// internal/adapters/db/postgres.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/ammerola/barstock/internal/core/ports"
)

// PoolConfig holds the history database connection settings.
// Zero limits keep the pgxpool defaults.
type PoolConfig struct {
	URL               string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	ConnectTimeout    time.Duration
	TraceQueries      bool
}

// Database is the connection pool behind the session history
type Database struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var _ ports.Database = (*Database)(nil)

// Open connects to the history database and verifies the connection
func Open(ctx context.Context, pc PoolConfig, logger *slog.Logger) (*Database, error) {
	logger = logger.With(slog.String("component", "database"))

	poolCfg, err := pgxpool.ParseConfig(pc.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	applyPoolLimits(poolCfg, pc)
	if pc.TraceQueries {
		poolCfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   slogTracer(logger),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.InfoContext(ctx, "history database connected",
		slog.String("host", poolCfg.ConnConfig.Host),
		slog.String("database", poolCfg.ConnConfig.Database),
		slog.Int("max_conns", int(poolCfg.MaxConns)))

	return &Database{pool: pool, logger: logger}, nil
}

func applyPoolLimits(cfg *pgxpool.Config, pc PoolConfig) {
	if pc.MaxConns > 0 {
		cfg.MaxConns = pc.MaxConns
	}
	if pc.MinConns > 0 && pc.MinConns <= cfg.MaxConns {
		cfg.MinConns = pc.MinConns
	}
	if pc.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = pc.MaxConnLifetime
	}
	if pc.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = pc.MaxConnIdleTime
	}
	if pc.HealthCheckPeriod > 0 {
		cfg.HealthCheckPeriod = pc.HealthCheckPeriod
	}
	if pc.ConnectTimeout > 0 {
		cfg.ConnConfig.ConnectTimeout = pc.ConnectTimeout
	}
}

// Pool returns the underlying pgxpool.Pool
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close closes all database connections
func (db *Database) Close() {
	db.pool.Close()
	db.logger.Info("database connections closed")
}

// Ping verifies database connectivity
func (db *Database) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Health reports pool usage and the number of archived sessions
func (db *Database) Health(ctx context.Context) map[string]interface{} {
	stats := db.pool.Stat()
	report := map[string]interface{}{
		"total_conns":    stats.TotalConns(),
		"idle_conns":     stats.IdleConns(),
		"acquired_conns": stats.AcquiredConns(),
		"max_conns":      stats.MaxConns(),
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var archived int64
	if err := db.pool.QueryRow(ctx, `SELECT count(*) FROM inventory_sessions`).Scan(&archived); err != nil {
		report["archived_sessions_error"] = err.Error()
	} else {
		report["archived_sessions"] = archived
	}
	return report
}

// inTx runs fn in a transaction that commits when fn returns nil
func (db *Database) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	if err := pgx.BeginFunc(ctx, db.pool, fn); err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// slogTracer forwards pgx trace output to slog
func slogTracer(logger *slog.Logger) tracelog.LoggerFunc {
	levels := map[tracelog.LogLevel]slog.Level{
		tracelog.LogLevelError: slog.LevelError,
		tracelog.LogLevelWarn:  slog.LevelWarn,
		tracelog.LogLevelInfo:  slog.LevelInfo,
	}
	pgxLogger := logger.With(slog.String("component", "pgx"))

	return func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		lvl, ok := levels[level]
		if !ok {
			lvl = slog.LevelDebug
		}
		attrs := make([]slog.Attr, 0, len(data))
		for k, v := range data {
			attrs = append(attrs, slog.Any(k, v))
		}
		pgxLogger.LogAttrs(ctx, lvl, msg, attrs...)
	}
}
