package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mortinious/tiles-game/internal/api"
	"github.com/mortinious/tiles-game/internal/api/handler"
	"github.com/mortinious/tiles-game/internal/factory"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		CatalogPath: os.Getenv("TILES_CATALOG_PATH"),
		Logger:      logger,
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Registry:    app.Registry,
		HubManager:  app.HubManager,
		Clock:       app.Clock,
		TurnDelay:   turnDelayFromEnv(logger),
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("TILES_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid TILES_PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// turnDelayFromEnv reads the turn pacing delay, e.g. TILES_TURN_DELAY=500ms
func turnDelayFromEnv(logger *slog.Logger) time.Duration {
	raw := os.Getenv("TILES_TURN_DELAY")
	if raw == "" {
		return handler.DefaultTurnDelay
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		logger.Warn("invalid TILES_TURN_DELAY, using default", slog.String("value", raw))
		return handler.DefaultTurnDelay
	}
	return d
}
