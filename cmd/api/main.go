// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/barstock/internal/adapters/db"
	redis_a "github.com/ammerola/barstock/internal/adapters/redis_adapter"
	"github.com/ammerola/barstock/internal/adapters/storage"
	"github.com/ammerola/barstock/internal/adapters/suggest"
	"github.com/ammerola/barstock/internal/core/ports"
	"github.com/ammerola/barstock/internal/core/services"
	"github.com/ammerola/barstock/internal/handlers"
	"github.com/ammerola/barstock/internal/handlers/middleware"
	"github.com/ammerola/barstock/internal/pkg/config"
	"github.com/ammerola/barstock/internal/pkg/logger"
	"github.com/ammerola/barstock/internal/workers"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting barstock inventory api",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(ctx, cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server", slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		// Last chance for snapshot writes that failed while serving
		if err := deps.inventoryService.Flush(shutdownCtx); err != nil {
			slogger.Error("failed to flush snapshots", slog.String("error", err.Error()))
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database         *db.Database
	redisClient      *redis.Client
	asynqClient      *asynq.Client
	asynqInspector   *asynq.Inspector
	inventoryService *services.InventoryService
	routes           handlers.Routes
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to Redis", slog.String("address", cfg.GetRedisAddress()))
	redisClient, err := redis_a.NewClient(ctx, redis_a.Options{
		Addr:         cfg.GetRedisAddress(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		return nil, err
	}
	deps.redisClient = redisClient

	keys := services.NewSnapshotKeys(cfg.Redis.KeyPrefix)
	snapshots := services.NewSnapshotRepository(redis_a.NewSnapshotStore(redisClient, logger), keys, logger)

	var archiver ports.SessionArchiver
	if cfg.Archive.Enabled {
		asynqRedisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Asynq.RedisAddr,
			Password: cfg.Asynq.RedisPassword,
			DB:       cfg.Asynq.RedisDB,
		}
		deps.asynqClient = asynq.NewClient(asynqRedisOpt)
		deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)
		archiver = workers.NewTaskArchiver(deps.asynqClient, cfg.Archive.Queue, logger)
	} else {
		logger.Warn("session archiving disabled, finished sessions will not be kept")
	}

	deps.inventoryService = services.NewInventoryService(
		snapshots,
		archiver,
		newSuggester(cfg, logger),
		logger,
		services.WithSaveTimeout(cfg.Redis.SaveTimeout),
	)
	if err := deps.inventoryService.Load(ctx); err != nil {
		redisClient.Close()
		return nil, err
	}

	deps.routes = handlers.Routes{
		Products:  handlers.NewProductHandler(deps.inventoryService, logger),
		Session:   handlers.NewSessionHandler(deps.inventoryService, logger),
		Dashboard: handlers.NewDashboardHandler(deps.inventoryService, logger),
	}

	var database ports.Database
	if cfg.Archive.Enabled {
		historyService, err := initializeHistory(ctx, cfg, deps, logger)
		if err != nil {
			return nil, err
		}
		deps.routes.History = handlers.NewHistoryHandler(historyService, logger)
		database = deps.database
	}

	deps.routes.Health = handlers.NewHealthHandler(
		database,
		redisClient,
		deps.asynqInspector,
		cfg,
		logger,
		keys.Products, keys.Session,
	)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initializeHistory connects the read side of the session archive
func initializeHistory(ctx context.Context, cfg *config.Config, deps *dependencies, logger *slog.Logger) (*services.HistoryService, error) {
	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.Open(ctx, db.PoolConfig{
		URL:               cfg.GetDatabaseURL(),
		MaxConns:          cfg.Database.MaxConnections,
		MinConns:          cfg.Database.MinConnections,
		MaxConnLifetime:   cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:   cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod: cfg.Database.HealthCheckPeriod,
		ConnectTimeout:    cfg.Database.ConnectTimeout,
		TraceQueries:      cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, cfg, logger); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
		}
	}

	objects, err := newObjectStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	repo := db.NewSessionRepository(database, logger)
	return services.NewHistoryService(repo, objects, cfg.Storage.PresignExpiry, logger), nil
}

func newSuggester(cfg *config.Config, logger *slog.Logger) ports.Suggester {
	if cfg.Suggestion.APIKey == "" {
		logger.Info("no suggestion api key configured, product suggestions disabled")
		return suggest.NoopSuggester{}
	}

	s, err := suggest.NewGeminiSuggester(cfg.Suggestion.APIKey, logger,
		suggest.WithBaseURL(cfg.Suggestion.BaseURL),
		suggest.WithModel(cfg.Suggestion.Model),
		suggest.WithTimeout(cfg.Suggestion.Timeout),
		suggest.WithRateLimit(cfg.Suggestion.RateLimit, cfg.Suggestion.Burst),
	)
	if err != nil {
		logger.Warn("failed to create suggester", slog.String("error", err.Error()))
		return suggest.NoopSuggester{}
	}
	return s
}

func newObjectStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ObjectStorage, error) {
	if cfg.Storage.Backend == "s3" {
		s3, err := storage.NewS3Storage(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		return s3, nil
	}

	local, err := storage.NewLocalStorage(cfg.Storage.LocalDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}
	return local, nil
}

func setupHTTPServer(ctx context.Context, cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps.routes)

	// First listed runs first
	mws := []middleware.Middleware{
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.RateLimit(ctx, cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration),
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		mws = append(mws, middleware.CORS(cfg.Security.AllowedOrigins))
	}
	if cfg.Security.SecureHeaders {
		mws = append(mws, middleware.SecureHeaders)
	}
	mws = append(mws, middleware.MaxBodyBytes(cfg.Server.MaxBodyBytes))

	return &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           middleware.Chain(mux, mws...),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	return db.MigrateHistorySchema(ctx, cfg.GetDatabaseURL(), logger)
}
