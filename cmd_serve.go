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

	"github.com/spf13/cobra"

	"github.com/blogem/reqsink/archive"
	"github.com/blogem/reqsink/assets"
	"github.com/blogem/reqsink/config"
	"github.com/blogem/reqsink/controllers"
	"github.com/blogem/reqsink/logging"
	"github.com/blogem/reqsink/middleware"
	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/render"
	"github.com/blogem/reqsink/services"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, logger)
}

// newEngine loads the built-in admin template and any user templates
func newEngine(cfg config.Config, logger *slog.Logger) (*render.HTMLEngine, error) {
	engine := render.New()

	if _, err := engine.LoadFS(assets.Templates(), "*.html"); err != nil {
		return nil, fmt.Errorf("failed to load built-in templates: %w", err)
	}

	if cfg.UserTemplatesDir != "" {
		names, err := engine.LoadDir(cfg.UserTemplatesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load user templates: %w", err)
		}
		logger.Info("loaded user templates", "dir", cfg.UserTemplatesDir, "count", len(names))
	}

	logger.Debug("templates ready", "names", engine.Names())
	return engine, nil
}

// serve runs the sink until ctx is cancelled
func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	engine, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}

	routes := models.RouteTable{}
	if cfg.ExtraRoutes != "" {
		routes, err = config.LoadRouteTable(cfg.ExtraRoutes, engine)
		if err != nil {
			return err
		}
		logger.Info("loaded extra routes", "file", cfg.ExtraRoutes, "count", len(routes))
	}

	// Archiver and summarizer must stay nil interfaces when persistence is off
	var (
		archiver   services.Archiver
		summarizer controllers.ArchiveSummarizer
		worker     *archive.Worker
	)
	if cfg.PersistenceEnabled() {
		worker = archive.NewWorker(cfg.SQLitePath, cfg.ArchiveQueue, nil, logger)
		worker.Start()
		archiver = worker
		summarizer = worker
	}

	srvs := services.NewServices(cfg.RequestLimit, archiver, routes, engine, logger)
	ctrl := controllers.NewControllers(srvs, engine, summarizer, logger)
	for route, rule := range srvs.Dispatch.Routes() {
		logger.Debug("route registered", "method", rule.Method, "route", route, "template", rule.Template)
	}
	capturer := middleware.NewCapturer(cfg.MaxBodyBytes)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           setupRouter(ctrl, srvs, capturer, logger),
		ReadHeaderTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("reqsink starting",
			"addr", cfg.Addr(),
			"req_limit", srvs.Sink.Capacity(),
			"sqlite", cfg.SQLitePath,
		)
		errCh <- server.ListenAndServe()
	}()

	var serveErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("failed to serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", "error", err)
	}
	logger.Info("server stopped", "requests_held", srvs.Sink.Count())

	if worker != nil {
		if err := worker.Close(shutdownCtx); err != nil {
			logger.Error("failed to drain archive queue", "error", err)
		}
		stats := worker.Stats()
		logger.Info("archive closed",
			"batches", stats.Batches,
			"records", stats.Records,
			"lost_records", stats.LostRecords,
		)
	}

	return serveErr
}
