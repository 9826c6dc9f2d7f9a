package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mortinious/tiles-game/internal/api/middleware"
	"github.com/mortinious/tiles-game/internal/api/request"
	"github.com/mortinious/tiles-game/internal/api/response"
	"github.com/mortinious/tiles-game/internal/dependencies/clock"
	"github.com/mortinious/tiles-game/internal/model"
	"github.com/mortinious/tiles-game/internal/registry"
	"github.com/mortinious/tiles-game/internal/ws"
)

// DefaultTurnDelay is the pause between a committed placement and its
// broadcast, giving clients time to animate before the next turn begins.
const DefaultTurnDelay = 2 * time.Second

// GameHandler handles in-game endpoints: starting a session and placing
// tiles. State advances synchronously; broadcasts and round-start deals are
// paced behind the turn delay.
type GameHandler struct {
	registry    *registry.Registry
	broadcaster *ws.Broadcaster
	hubManager  *ws.HubManager
	clock       clock.Clock
	logger      *slog.Logger
	turnDelay   time.Duration
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	reg *registry.Registry,
	broadcaster *ws.Broadcaster,
	hubManager *ws.HubManager,
	clk clock.Clock,
	logger *slog.Logger,
	turnDelay time.Duration,
) *GameHandler {
	return &GameHandler{
		registry:    reg,
		broadcaster: broadcaster,
		hubManager:  hubManager,
		clock:       clk,
		logger:      logger.With(slog.String("component", "game-handler")),
		turnDelay:   turnDelay,
	}
}

// Start handles POST /api/v1/sessions/{id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	sess, err := h.registry.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if sess.PlayerByID(player.ID) == nil {
		WriteError(w, model.ErrNotInSession)
		return
	}
	if sess.WaitingCount() > 0 {
		WriteError(w, model.ErrPlayersNotReady)
		return
	}

	sess, err = h.registry.Start(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.GameStarted(sess)
	for _, p := range sess.Players {
		h.broadcaster.DrawTile(id, p.ID, p.Hand)
	}
	h.broadcaster.SessionUpdated(sess)

	response.JSON(w, http.StatusCreated, response.SessionDetailFromModel(sess, player.ID))
}

// Place handles POST /api/v1/sessions/{id}/place
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.registry.PlaceTile(r.Context(), id, player.ID, req.HandIndex, req.X, req.Y)
	if err != nil {
		WriteError(w, err)
		return
	}

	var hand []*model.TileInstance
	if sess, err := h.registry.GetSession(r.Context(), id); err == nil {
		if p := sess.PlayerByID(player.ID); p != nil {
			hand = p.Hand
		}
	}

	// The request context dies with the response; the paced broadcasts
	// outlive it.
	go h.broadcastPlacement(context.Background(), id, result)

	response.JSON(w, http.StatusOK, response.PlaceResponseFromResult(result, hand))
}

// broadcastPlacement waits out the turn delay, then announces the placement
// and the turn change. At a round boundary it also deals the round tiles; at
// game end it announces the standings and tears the session down.
func (h *GameHandler) broadcastPlacement(ctx context.Context, id model.SessionID, result *model.PlacementResult) {
	<-h.clock.After(h.turnDelay)

	h.broadcaster.TilePlaced(id, result)

	if result.Ended {
		h.broadcaster.GameEnded(id, result.Winners)
		if sess, err := h.registry.GetSession(ctx, id); err == nil {
			h.broadcaster.SessionUpdated(sess)
		}
		h.registry.Dispose(ctx, id)
		h.hubManager.RemoveHub(string(id))
		return
	}

	sess, err := h.registry.GetSession(ctx, id)
	if err != nil {
		h.logger.Warn("session gone before turn broadcast",
			slog.String("session_id", string(id)),
			slog.Any("error", err))
		return
	}
	h.broadcaster.NextTurn(id, sess.Round, sess.TurnIndex, sess.FinalRound)

	if result.NewRound {
		dealt, err := h.registry.DealRoundTiles(ctx, id)
		if err != nil {
			h.logger.Warn("round deal failed",
				slog.String("session_id", string(id)),
				slog.Any("error", err))
			return
		}
		for playerID, tiles := range dealt {
			h.broadcaster.DrawTile(id, playerID, tiles)
		}
		h.broadcaster.SessionUpdated(sess)
	}
}
