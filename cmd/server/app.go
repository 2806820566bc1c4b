package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/openbesluit/reportgen/internal/api"
	"github.com/openbesluit/reportgen/internal/config"
	"github.com/openbesluit/reportgen/internal/filestore"
	"github.com/openbesluit/reportgen/internal/platform/logger"
	"github.com/openbesluit/reportgen/internal/platform/postgres"
	"github.com/openbesluit/reportgen/internal/render"
	"github.com/openbesluit/reportgen/internal/service"
	"github.com/openbesluit/reportgen/internal/task"
)

const shutdownTimeout = 15 * time.Second

// run assembles the application and serves until the context is
// cancelled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := postgres.MigrateUp(ctx, db); err != nil {
		return err
	}

	blobs, err := filestore.NewDiskStore(cfg.Storage.Path, cfg.Storage.URIScheme)
	if err != nil {
		return err
	}

	jobStore := postgres.NewPostgresJobStore(db)
	reportStore := postgres.NewPostgresReportStore(db)
	meetingStore := postgres.NewPostgresMeetingStore(db)

	renderer := render.NewHTTPRenderer(cfg.Renderer.URL, cfg.Renderer.Timeout)
	reportService := service.NewReportService(reportStore, blobs, renderer)
	bundleService := service.NewBundleService(reportService, meetingStore, blobs)

	scheduler := task.NewScheduler(jobStore, reportService, bundleService, log)
	if err := scheduler.RecoverStartup(ctx); err != nil {
		return err
	}
	go scheduler.StartPolling(ctx, cfg.Scheduler.PollInterval)

	jobService := service.NewJobService(jobStore, reportService, scheduler.Trigger)

	router := api.NewRouter(
		api.NewReportHandler(reportService, log),
		api.NewMeetingHandler(bundleService, meetingStore, log),
		api.NewJobHandler(jobService, log),
		log,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return nil
}

// openDatabase connects to Postgres through the pgx stdlib driver and
// verifies the connection before use.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
