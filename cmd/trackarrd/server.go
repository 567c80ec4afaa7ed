package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/trackarr/internal/api/v1"
	"github.com/vmunix/trackarr/internal/batch"
	"github.com/vmunix/trackarr/internal/config"
	"github.com/vmunix/trackarr/internal/migrations"
	"github.com/vmunix/trackarr/internal/plex"
	"github.com/vmunix/trackarr/internal/settings"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	// Load config
	if configPath == "" {
		found, err := config.Discover()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		configPath = found
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		return fmt.Errorf("config: %w", &config.ConfigError{Path: configPath, Errors: problems})
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	settingsStore := settings.NewStore(db)

	// Stable per-installation identifier, unless pinned in config.
	clientID := cfg.Plex.ClientIdentifier
	if clientID == "" {
		clientID, err = settingsStore.EnsureClientIdentifier()
		if err != nil {
			return fmt.Errorf("client identifier: %w", err)
		}
	}

	session := plex.Session{
		Token:            cfg.Plex.Token,
		ClientIdentifier: clientID,
	}
	clientOpts := []plex.Option{
		plex.WithTimeout(time.Duration(cfg.Plex.TimeoutSeconds) * time.Second),
		plex.WithLogger(logger.With("component", "plex")),
	}

	// With fallback URLs configured, race identity probes and take the
	// first server that answers. A single URL is used as-is so startup
	// does not depend on the server being up.
	var plexClient *plex.Client
	if candidates := cfg.Plex.Candidates(); len(candidates) > 1 {
		probeCtx, probeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		plexClient, err = plex.PickServer(probeCtx, session, candidates, clientOpts...)
		probeCancel()
		if err != nil {
			return fmt.Errorf("pick server: %w", err)
		}
		logger.Info("server selected", "url", plexClient.BaseURL())
	} else {
		plexClient = plex.NewClient(cfg.Plex.URL, session, clientOpts...)
	}

	cache := plex.NewMetadataCache(plex.DefaultCacheTTL)

	updaterOpts := []batch.UpdaterOption{
		batch.WithLogger(logger.With("component", "batch")),
		batch.WithCache(cache),
	}
	if cfg.Batch.FetchBatchSize > 0 {
		updaterOpts = append(updaterOpts, batch.WithFetchBatchSize(cfg.Batch.FetchBatchSize))
	}
	if cfg.Batch.PublishIntervalMS > 0 {
		updaterOpts = append(updaterOpts, batch.WithPublishInterval(time.Duration(cfg.Batch.PublishIntervalMS)*time.Millisecond))
	}
	if cfg.Batch.MaxDetailedResults > 0 {
		updaterOpts = append(updaterOpts, batch.WithMaxDetailedResults(cfg.Batch.MaxDetailedResults))
	}
	updater := batch.NewUpdater(plexClient, updaterOpts...)

	// === HTTP Setup ===
	mux := http.NewServeMux()

	apiV1, err := v1.New(v1.ServerDeps{
		Browser:  plexClient,
		Updater:  updater,
		Settings: settingsStore,
		Cache:    cache,
		Logger:   logger.With("component", "api"),
	})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	apiV1.RegisterRoutes(mux)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"plex", plexClient.BaseURL(),
		"log_level", cfg.Server.LogLevel,
	)

	srv := &http.Server{Addr: addr, Handler: logRequests(mux, logger)}

	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig.String())

	// Graceful HTTP shutdown with 30s timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
