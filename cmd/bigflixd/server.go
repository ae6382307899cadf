package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	v1 "github.com/DelsinneJordan/BigFlix/internal/api/v1"
	"github.com/DelsinneJordan/BigFlix/internal/arr"
	"github.com/DelsinneJordan/BigFlix/internal/availability"
	"github.com/DelsinneJordan/BigFlix/internal/availability/cache"
	"github.com/DelsinneJordan/BigFlix/internal/binding"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
	"github.com/DelsinneJordan/BigFlix/internal/config"
	"github.com/DelsinneJordan/BigFlix/internal/events"
	"github.com/DelsinneJordan/BigFlix/internal/fulfillment"
	"github.com/DelsinneJordan/BigFlix/internal/mediaserver"
	"github.com/DelsinneJordan/BigFlix/internal/migrations"
	"github.com/DelsinneJordan/BigFlix/internal/request"
	"github.com/DelsinneJordan/BigFlix/internal/server"
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

func resolveConfig(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.Discover()
}

func writeExampleConfig(path string) error {
	if path == "" {
		path = config.DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func printToken(configPath, userID, perms string, ttl time.Duration) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	actor := request.Actor{UserID: userID}
	for _, p := range strings.Split(perms, ",") {
		if p = strings.TrimSpace(p); p != "" {
			actor.Permissions = append(actor.Permissions, request.Permission(p))
		}
	}
	tok, err := v1.SignToken([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer, actor, ttl)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	fmt.Println(tok)
	return nil
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open database and run migrations
	db, err := migrations.Open(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// === Stores ===
	bindings := binding.NewStore(db)
	if err := bindings.Sync(ctx, cfg.Bindings(), cfg.Assignments()); err != nil {
		return fmt.Errorf("sync servers: %w", err)
	}
	requests := request.NewStore(db)

	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger)
	defer func() { _ = bus.Close() }()

	// === Clients ===
	opts := []catalog.Option{
		catalog.WithLanguage(cfg.TMDB.Language),
		catalog.WithLogger(logger),
	}
	if cfg.TMDB.BaseURL != "" {
		opts = append(opts, catalog.WithBaseURL(cfg.TMDB.BaseURL))
	}
	tmdb := catalog.NewClient(cfg.TMDB.APIKey, opts...)

	statusCache := cache.NewMemory(cache.WithFreshness(cfg.Availability.Freshness))
	loader := cache.NewLoader(statusCache)
	factory := arr.NewFactory(cfg.Availability.Timeout)

	// === Services ===
	library := mediaserver.NewChecker(loader, cfg.Availability.Timeout, logger)
	status := arr.NewStatusChecker(loader, factory, cfg.Availability.Timeout, logger)
	executor := fulfillment.NewExecutor(factory, bus, cfg.Availability.Timeout, logger)
	service := request.NewService(requests, tmdb, bindings, executor, bus, logger)
	aggregator := availability.NewAggregator(library, status, service, cfg.Availability.Concurrency, logger)

	// === HTTP Setup ===
	apiV1, err := v1.NewWithDeps(v1.ServerDeps{
		Catalog:      tmdb,
		Availability: aggregator,
		Bindings:     bindings,
		Requests:     service,
		EventLog:     eventLog,
	}, v1.Config{
		JWTSecret: []byte(cfg.Auth.JWTSecret),
		Issuer:    cfg.Auth.Issuer,
		Version:   version,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	mux := http.NewServeMux()
	apiV1.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           v1.LogRequests(mux, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"servers", len(cfg.Servers),
		"users", len(cfg.Users),
		"log_level", cfg.Server.LogLevel,
	)

	// === Background Jobs ===
	runner := server.NewRunner(srv, logger,
		availability.NewInvalidator(bus, statusCache, logger),
		server.NewPruner(eventLog, 0, 0, logger),
	)
	if err := runner.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
