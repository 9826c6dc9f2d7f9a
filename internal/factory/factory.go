package factory

import (
	"io"
	"log/slog"

	"github.com/mortinious/tiles-game/internal/catalog"
	"github.com/mortinious/tiles-game/internal/dependencies/clock"
	"github.com/mortinious/tiles-game/internal/dependencies/random"
	"github.com/mortinious/tiles-game/internal/registry"
	"github.com/mortinious/tiles-game/internal/services/auth"
	"github.com/mortinious/tiles-game/internal/services/scoring"
	"github.com/mortinious/tiles-game/internal/services/session"
	"github.com/mortinious/tiles-game/internal/storage"
	"github.com/mortinious/tiles-game/internal/storage/memory"
	"github.com/mortinious/tiles-game/internal/ws"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	CatalogService    *catalog.Service
	ScoringService    *scoring.Service
	SessionController *session.Controller
	Registry          *registry.Registry
	AuthService       *auth.Service
	HubManager        *ws.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// CatalogPath is the path to a tile catalog JSON file (optional)
	// If empty, the built-in catalog is used
	CatalogPath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store := memory.New()
	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if authCfg.TokenDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	app := newWithDependencies(store, clk, rnd, authCfg, logger)

	if cfg.CatalogPath != "" {
		if err := app.CatalogService.LoadFromFile(cfg.CatalogPath); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	catalogService := catalog.New(logger)
	scoringService := scoring.New(catalogService)
	sessionController := session.NewController(store, catalogService, scoringService, clk, rnd, logger)
	reg := registry.New(sessionController, logger)
	authService := auth.New(store, clk, logger, authCfg)
	hubManager := ws.NewHubManager(logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		CatalogService:    catalogService,
		ScoringService:    scoringService,
		SessionController: sessionController,
		Registry:          reg,
		AuthService:       authService,
		HubManager:        hubManager,
	}
}
