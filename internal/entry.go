// Package internal provides the main application initialization and runtime logic.
package internal

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/halvard/skald/internal/api"
	"github.com/halvard/skald/internal/articles"
	"github.com/halvard/skald/internal/articleservice"
	"github.com/halvard/skald/internal/markdown"
	"github.com/halvard/skald/internal/mcpserver"
	"github.com/halvard/skald/internal/source"
)

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.Level(),
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_dir", cfg.Content.Dir),
		slog.String("content_base_url", cfg.Content.BaseURL),
		slog.Int("documents", len(cfg.Content.Documents)),
		slog.String("log_level", cfg.App.Level().String()))

	svc, err := buildService(ctx, app, markdown.NewRenderer(), logger)
	if err != nil {
		return err
	}

	// Static assets are only served for a filesystem source.
	var assets *api.AssetHandler
	if app.source == nil && cfg.Content.Dir != "" {
		assets = api.NewAssetHandler(cfg.Content.Dir)
	}

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", api.NewRouter(svc, assets))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the article tools over stdio. Logs go to stderr because
// the stdio transport owns stdout.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: app.config.App.Level(),
	}))
	slog.SetDefault(logger)

	// MCP consumers get raw Markdown bodies, so no renderer is attached.
	svc, err := buildService(ctx, app, nil, logger)
	if err != nil {
		return err
	}

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc).ServeStdio()
}

// buildService wires the source, loader, library and service from the
// configuration and runs the initial content load.
func buildService(ctx context.Context, app *application, renderer articleservice.Renderer, logger *slog.Logger) (*articleservice.Service, error) {
	cfg := app.config

	src := app.source
	if src == nil {
		var err error
		if src, err = buildSource(cfg); err != nil {
			return nil, err
		}
	}

	loader := articles.NewLoader(src, cfg.Content.Documents, cfg.Content.ExcerptLength, logger)
	library := articles.NewLibrary(loader, logger)

	// Load eagerly so the first request does not pay for it. Failure is
	// not fatal; the index stays empty until a reload succeeds.
	if err := library.Reload(ctx); err != nil {
		logger.Warn("initial content load failed", slog.String("error", err.Error()))
	}

	return articleservice.NewService(library, renderer, articleservice.Config{
		PageSize:   cfg.Content.ArticlesPerPage,
		DateFormat: cfg.Content.DateFormat,
	}), nil
}

// buildSource picks the document source the configuration asks for.
func buildSource(cfg *Config) (source.Source, error) {
	if cfg.Content.BaseURL != "" {
		return source.NewHTTP(cfg.Content.BaseURL, nil), nil
	}

	// Ensure the content directory exists.
	if err := os.MkdirAll(cfg.Content.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create content dir: %w", err)
	}
	fsrc, err := source.NewFS(cfg.Content.Dir)
	if err != nil {
		return nil, fmt.Errorf("init content source: %w", err)
	}
	return fsrc, nil
}
