// Package main is the entrypoint for the HireBridge API server.
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

	"github.com/joho/godotenv"
	"github.com/kiranshivaraju/hirebridge/internal/api"
	"github.com/kiranshivaraju/hirebridge/internal/api/handler"
	mw "github.com/kiranshivaraju/hirebridge/internal/api/middleware"
	"github.com/kiranshivaraju/hirebridge/internal/api/response"
	"github.com/kiranshivaraju/hirebridge/internal/cache"
	"github.com/kiranshivaraju/hirebridge/internal/config"
	"github.com/kiranshivaraju/hirebridge/internal/dashboard"
	"github.com/kiranshivaraju/hirebridge/internal/enrich"
	"github.com/kiranshivaraju/hirebridge/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config, fail fast on invalid values
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "strategy", cfg.Enrichment.Strategy, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Status tracker and rate-limit counters
	var tracker cache.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("redis connected")
		tracker = redisCache
	} else {
		tracker = cache.NewMemoryCache()
		slog.Info("using in-process cache")
	}

	// 3. Seed the record store
	seed, err := store.LoadSeed(cfg.Store.SeedFile)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	memStore := store.NewMemoryStore(seed)
	slog.Info("record store seeded",
		"applications", len(seed.Applications),
		"incentives", len(seed.Incentives),
		"job_postings", len(seed.JobPostings),
	)

	// 4. Enrichment pipeline
	strategy, err := enrich.NewStrategy(cfg.Enrichment)
	if err != nil {
		return fmt.Errorf("create enrichment strategy: %w", err)
	}
	pipeline := enrich.NewPipeline(strategy, memStore, tracker, enrich.Options{
		Timeout:   cfg.Enrichment.Timeout,
		StatusTTL: cfg.Enrichment.StatusTTL,
	})
	slog.Info("enrichment strategy initialized", "strategy", strategy.Name())

	dash := dashboard.NewService(memStore)

	// 5. Build router with dependencies
	deps := api.Dependencies{
		RateLimit: mw.NewRateLimit(tracker, cfg.Server.RequestsPerMin),

		HealthHandler: healthHandler(memStore, tracker, pipeline),

		ListApplications:     handler.NewListApplicationsHandler(memStore),
		GetApplication:       handler.NewGetApplicationHandler(memStore),
		SetApplicationStatus: handler.NewSetApplicationStatusHandler(memStore),

		ListIncentives:   handler.NewListIncentivesHandler(memStore),
		IncentiveSummary: handler.NewIncentiveSummaryHandler(dash),

		ListJobPostings:  handler.NewListJobPostingsHandler(memStore),
		CreateJobPosting: handler.NewCreateJobPostingHandler(pipeline, cfg.Enrichment.WaitTimeout),
		GetJobPosting:    handler.NewGetJobPostingHandler(memStore),
		UpdateJobPosting: handler.NewUpdateJobPostingHandler(memStore),
		DeleteJobPosting: handler.NewDeleteJobPostingHandler(memStore, pipeline),
		EnrichmentStatus: handler.NewEnrichmentStatusHandler(pipeline),

		DashboardHandler: handler.NewDashboardHandler(dash),
	}

	router := api.NewRouter(deps)

	// 6. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Enrichment.WaitTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// in-flight enrichments still commit after the listener closes
	if err := pipeline.Drain(shutdownCtx); err != nil {
		slog.Warn("enrichments still running at shutdown", "error", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// healthHandler checks the store, the cache and the enrichment strategy.
func healthHandler(s, c pinger, e enrich.ReadyChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"store":      "ok",
			"cache":      "ok",
			"enrichment": "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			checks["store"] = "degraded"
		}
		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}
		if err := e.Ready(r.Context()); err != nil {
			checks["enrichment"] = "degraded"
		}

		for _, v := range checks {
			if v != "ok" {
				response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
					"One or more services degraded", checks)
				return
			}
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
