// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	redis_a "github.com/ammerola/barstock/internal/adapters/redis_adapter"
	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/services"
	"github.com/ammerola/barstock/internal/pkg/config"
	"github.com/ammerola/barstock/internal/pkg/logger"
)

func main() {
	var (
		catalogFile = flag.String("catalog", "", "xlsx file with Name, Category, Description columns (default catalog when empty)")
		logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun      = flag.Bool("dry-run", false, "Preview the catalog without writing snapshots")
		force       = flag.Bool("force", false, "Overwrite existing snapshots")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	products := domain.DefaultProducts()
	if *catalogFile != "" {
		imported, rowErrors, err := loadCatalogFile(*catalogFile)
		if err != nil {
			slogger.Error("failed to load catalog", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, re := range rowErrors {
			slogger.Warn("skipped catalog row", slog.Int("row", re.Row), slog.String("error", re.Err.Error()))
		}
		if len(imported) == 0 {
			slogger.Error("catalog file contains no products", slog.String("file", *catalogFile))
			os.Exit(1)
		}
		products = imported
	}

	session := domain.NewSession(uuid.NewString(), time.Now().UTC())

	if *dryRun {
		for _, p := range products {
			fmt.Printf("%-36s  %-20s  %s\n", p.ID, p.Category, p.Name)
		}
		slogger.Info("dry run complete", slog.Int("products", len(products)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, cfg, products, session, *force, slogger); err != nil {
		slogger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func seed(ctx context.Context, cfg *config.Config, products []domain.Product, session *domain.InventorySession, force bool, logger *slog.Logger) error {
	client, err := redis_a.NewClient(ctx, redis_a.Options{
		Addr:        cfg.GetRedisAddress(),
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: cfg.Redis.DialTimeout,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	keys := services.NewSnapshotKeys(cfg.Redis.KeyPrefix)
	if !force {
		n, err := client.Exists(ctx, keys.Products, keys.Session).Result()
		if err != nil {
			return fmt.Errorf("failed to check existing snapshots: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("snapshots already exist under prefix %q, rerun with -force to overwrite", cfg.Redis.KeyPrefix)
		}
	}

	repo := services.NewSnapshotRepository(redis_a.NewSnapshotStore(client, logger), keys, logger)
	if err := repo.SaveProducts(ctx, products); err != nil {
		return err
	}
	if err := repo.SaveSession(ctx, session); err != nil {
		return err
	}

	logger.Info("snapshots seeded",
		slog.String("products_key", keys.Products),
		slog.String("session_key", keys.Session),
		slog.Int("products", len(products)),
		slog.String("session_id", session.ID))
	return nil
}
