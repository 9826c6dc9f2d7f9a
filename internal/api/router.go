package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mortinious/tiles-game/internal/api/handler"
	"github.com/mortinious/tiles-game/internal/api/middleware"
	"github.com/mortinious/tiles-game/internal/dependencies/clock"
	"github.com/mortinious/tiles-game/internal/registry"
	"github.com/mortinious/tiles-game/internal/services/auth"
	"github.com/mortinious/tiles-game/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Registry    *registry.Registry
	HubManager  *ws.HubManager
	Clock       clock.Clock
	TurnDelay   time.Duration
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	broadcaster := ws.NewBroadcaster(cfg.HubManager, cfg.Logger)

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	sessionHandler := handler.NewSessionHandler(cfg.Registry, broadcaster)
	gameHandler := handler.NewGameHandler(cfg.Registry, broadcaster, cfg.HubManager, cfg.Clock, cfg.Logger, cfg.TurnDelay)
	eventsHandler := handler.NewEventsHandler(cfg.Registry, cfg.HubManager, broadcaster, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Session routes (all require auth)
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(authMiddleware)
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("", sessionHandler.List).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/join", sessionHandler.Join).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/leave", sessionHandler.Leave).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/ready", sessionHandler.SetReady).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/config", sessionHandler.UpdateConfig).Methods(http.MethodPatch)

	// Game routes
	sessions.HandleFunc("/{id}/start", gameHandler.Start).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/place", gameHandler.Place).Methods(http.MethodPost)

	// Event streams
	sessions.HandleFunc("/{id}/events", eventsHandler.Session).Methods(http.MethodGet)
	events := api.PathPrefix("/events").Subrouter()
	events.Use(authMiddleware)
	events.HandleFunc("/lobby", eventsHandler.Lobby).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
