package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mortinious/tiles-game/internal/api/middleware"
	"github.com/mortinious/tiles-game/internal/model"
	"github.com/mortinious/tiles-game/internal/registry"
	"github.com/mortinious/tiles-game/internal/ws"
)

// EventsHandler upgrades event-stream connections: one shared lobby channel
// and one channel per session.
type EventsHandler struct {
	registry    *registry.Registry
	hubManager  *ws.HubManager
	broadcaster *ws.Broadcaster
	logger      *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(
	reg *registry.Registry,
	hubManager *ws.HubManager,
	broadcaster *ws.Broadcaster,
	logger *slog.Logger,
) *EventsHandler {
	return &EventsHandler{
		registry:    reg,
		hubManager:  hubManager,
		broadcaster: broadcaster,
		logger:      logger.With(slog.String("component", "events-handler")),
	}
}

// Lobby handles GET /api/v1/events/lobby
func (h *EventsHandler) Lobby(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	hub := h.hubManager.LobbyHub()
	if err := ws.Serve(w, r, hub, player.ID, nil); err != nil {
		h.logger.Warn("lobby websocket upgrade failed",
			slog.String("player_id", string(player.ID)),
			slog.Any("error", err))
	}
}

// Session handles GET /api/v1/sessions/{id}/events
func (h *EventsHandler) Session(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	sess, err := h.registry.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	// Roster members get connection tracking; spectators just listen.
	isMember := sess.PlayerByID(player.ID) != nil
	if isMember {
		if err := h.registry.SetConnected(r.Context(), id, player.ID, true); err != nil {
			h.logger.Warn("failed to mark player connected",
				slog.String("player_id", string(player.ID)),
				slog.Any("error", err))
		} else {
			h.broadcaster.PlayerReconnected(id, player.ID, player.Name)
		}
	}

	hub := h.hubManager.SessionHub(id)
	onClose := func() {
		if !isMember {
			return
		}
		// The request context is gone once the socket closes.
		ctx := context.Background()
		err := h.registry.SetConnected(ctx, id, player.ID, false)
		if err != nil && !errors.Is(err, model.ErrSessionNotFound) && !errors.Is(err, model.ErrNotInSession) {
			h.logger.Warn("failed to mark player disconnected",
				slog.String("player_id", string(player.ID)),
				slog.Any("error", err))
			return
		}
		if err == nil {
			h.broadcaster.PlayerDisconnected(id, player.ID, player.Name)
		}
	}

	if err := ws.Serve(w, r, hub, player.ID, onClose); err != nil {
		h.logger.Warn("session websocket upgrade failed",
			slog.String("player_id", string(player.ID)),
			slog.Any("error", err))
	}
}
