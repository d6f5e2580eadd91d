package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dream-analyzer/backend/internal/api"
	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/config"
	"dream-analyzer/backend/internal/db"
	"dream-analyzer/backend/internal/jobs"
	"dream-analyzer/backend/internal/logging"
	"dream-analyzer/backend/internal/metrics"
	"dream-analyzer/backend/internal/routes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Dream Analyzer API
// @version 1.0
// @description Backend for the Dream Analyzer Telegram bot and mini-app.
// @host localhost:8080
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Dream Analyzer starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	if missing := cfg.MissingTelegramSettings(); len(missing) > 0 {
		logging.Warn("Telegram settings missing; reward claims will answer with a configuration error", "missing", missing)
	}

	if err := run(ctx, cfg); err != nil {
		logging.Fatal("Server stopped with error", "error", err)
	}
	logging.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	// Connect to DB with sqlx
	sqlxDB, err := db.InitPostgres(ctx, cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("connect to Postgres (sqlx): %w", err)
	}
	defer sqlxDB.Close()
	logging.Info("Connected to Postgres (sqlx)")

	if err := db.RunMigrations(ctx, sqlxDB.DB); err != nil {
		return err
	}
	logging.Info("Migrations applied")

	// GORM shares the sqlx pool
	gormDB, err := db.InitPostgresORM(sqlxDB.DB)
	if err != nil {
		return fmt.Errorf("connect to Postgres (GORM): %w", err)
	}
	logging.Info("Connected to Postgres (GORM)")

	cache := common.NewCacheFromConfig(ctx, cfg.Redis, cfg.HistoryCacheTTL)
	defer cache.Close()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	deps, err := api.InitDependencies(cfg, sqlxDB, gormDB, cache, metricsReg)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	scheduler, err := jobs.InitializeJobs(ctx, cfg.PlanExpirySchedule, deps.Services.User)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router) // Mount Chi router at root
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("Server starting", "port", cfg.HTTPPort, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
