// internal/handlers/health.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/barstock/internal/core/ports"
	"github.com/ammerola/barstock/internal/pkg/config"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// dependencyCheck probes one backend. Critical checks decide readiness;
// the others only degrade the health report.
type dependencyCheck struct {
	name     string
	critical bool
	probe    func(ctx context.Context) (map[string]interface{}, error)
}

// HealthHandler reports on the snapshot store and the optional archive backends
type HealthHandler struct {
	checks    []dependencyCheck
	config    *config.Config
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler. A nil database or inspector is skipped.
// snapshotKeys are counted so an empty store is visible in the report.
func NewHealthHandler(
	database ports.Database,
	redisClient *redis.Client,
	asynqInspector *asynq.Inspector,
	cfg *config.Config,
	logger *slog.Logger,
	snapshotKeys ...string,
) *HealthHandler {
	checks := []dependencyCheck{{
		name:     "snapshot_store",
		critical: true,
		probe:    snapshotStoreProbe(redisClient, snapshotKeys),
	}}
	if database != nil {
		checks = append(checks, dependencyCheck{
			name:     "history_db",
			critical: true,
			probe:    historyDBProbe(database),
		})
	}
	if asynqInspector != nil {
		checks = append(checks, dependencyCheck{
			name:  "archive_queue",
			probe: archiveQueueProbe(asynqInspector),
		})
	}

	return &HealthHandler{
		checks:    checks,
		config:    cfg,
		logger:    logger.With(slog.String("handler", "health")),
		startTime: time.Now(),
	}
}

// HealthReport is the body of GET /health
type HealthReport struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Uptime      string                 `json:"uptime"`
	Timestamp   time.Time              `json:"timestamp"`
	Checks      map[string]CheckResult `json:"checks"`
	Runtime     RuntimeInfo            `json:"runtime"`
}

// CheckResult is the outcome of one dependency probe
type CheckResult struct {
	Status  string                 `json:"status"`
	Error   string                 `json:"error,omitempty"`
	Latency string                 `json:"latency"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RuntimeInfo describes the running process
type RuntimeInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	HeapAllocMB   uint64 `json:"heap_alloc_mb"`
	NumGC         uint32 `json:"num_gc"`
}

// ReadinessReport is the body of GET /ready
type ReadinessReport struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// Health handles GET /health. Only a failed critical check makes the service unhealthy.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report := HealthReport{
		Status:      statusHealthy,
		Version:     h.config.App.Version,
		Environment: h.config.App.Environment,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now().UTC(),
		Checks:      make(map[string]CheckResult, len(h.checks)),
		Runtime:     runtimeInfo(),
	}

	for _, c := range h.checks {
		result := h.run(ctx, c)
		report.Checks[c.name] = result
		if result.Status == statusHealthy {
			continue
		}
		if c.critical {
			report.Status = statusUnhealthy
		} else if report.Status == statusHealthy {
			report.Status = statusDegraded
		}
	}

	status := http.StatusOK
	if report.Status == statusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, status, report)
}

// Readiness handles GET /ready using only the critical checks
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	report := ReadinessReport{Ready: true, Checks: make(map[string]string)}
	for _, c := range h.checks {
		if !c.critical {
			continue
		}
		if _, err := c.probe(ctx); err != nil {
			report.Ready = false
			report.Checks[c.name] = "not ready"
			continue
		}
		report.Checks[c.name] = "ready"
	}

	status := http.StatusOK
	if !report.Ready {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, status, report)
}

func (h *HealthHandler) run(ctx context.Context, c dependencyCheck) CheckResult {
	start := time.Now()
	details, err := c.probe(ctx)
	result := CheckResult{
		Status:  statusHealthy,
		Latency: time.Since(start).String(),
		Details: details,
	}
	if err != nil {
		result.Status = statusUnhealthy
		result.Error = err.Error()
		h.logger.ErrorContext(ctx, "health check failed",
			slog.String("check", c.name),
			slog.String("error", err.Error()))
	}
	return result
}

func snapshotStoreProbe(client *redis.Client, keys []string) func(context.Context) (map[string]interface{}, error) {
	return func(ctx context.Context) (map[string]interface{}, error) {
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		stats := client.PoolStats()
		details := map[string]interface{}{
			"total_conns": stats.TotalConns,
			"idle_conns":  stats.IdleConns,
		}
		if len(keys) > 0 {
			n, err := client.Exists(ctx, keys...).Result()
			if err != nil {
				return details, err
			}
			details["snapshot_keys"] = n
		}
		return details, nil
	}
}

func historyDBProbe(database ports.Database) func(context.Context) (map[string]interface{}, error) {
	return func(ctx context.Context) (map[string]interface{}, error) {
		if err := database.Ping(ctx); err != nil {
			return nil, err
		}
		return database.Health(ctx), nil
	}
}

func archiveQueueProbe(inspector *asynq.Inspector) func(context.Context) (map[string]interface{}, error) {
	return func(context.Context) (map[string]interface{}, error) {
		queues, err := inspector.Queues()
		if err != nil {
			return nil, err
		}
		details := make(map[string]interface{}, len(queues)+1)
		for _, q := range queues {
			info, err := inspector.GetQueueInfo(q)
			if err != nil {
				continue
			}
			details[q] = map[string]int{
				"pending":  info.Pending,
				"active":   info.Active,
				"retry":    info.Retry,
				"archived": info.Archived,
			}
		}
		if servers, err := inspector.Servers(); err == nil {
			details["workers"] = len(servers)
		}
		return details, nil
	}
}

func runtimeInfo() RuntimeInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		HeapAllocMB:   m.HeapAlloc / 1024 / 1024,
		NumGC:         m.NumGC,
	}
}
