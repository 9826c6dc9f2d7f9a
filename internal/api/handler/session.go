package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mortinious/tiles-game/internal/api/middleware"
	"github.com/mortinious/tiles-game/internal/api/request"
	"github.com/mortinious/tiles-game/internal/api/response"
	"github.com/mortinious/tiles-game/internal/model"
	"github.com/mortinious/tiles-game/internal/registry"
	"github.com/mortinious/tiles-game/internal/services/session"
	"github.com/mortinious/tiles-game/internal/ws"
)

// SessionHandler handles lobby and session lifecycle endpoints
type SessionHandler struct {
	registry    *registry.Registry
	broadcaster *ws.Broadcaster
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(reg *registry.Registry, broadcaster *ws.Broadcaster) *SessionHandler {
	return &SessionHandler{
		registry:    reg,
		broadcaster: broadcaster,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewInvalidRequestError("invalid request body"))
			return
		}
	}

	sess, err := h.registry.CreateSession(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.SessionAdded(sess)

	response.JSON(w, http.StatusCreated, response.SessionSummaryFromModel(sess))
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.registry.ListSessions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	summaries := make([]response.SessionSummary, len(sessions))
	for i, sess := range sessions {
		summaries[i] = response.SessionSummaryFromModel(sess)
	}
	response.JSON(w, http.StatusOK, summaries)
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	sess, err := h.registry.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionDetailFromModel(sess, player.ID))
}

// Join handles POST /api/v1/sessions/{id}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	sess, err := h.registry.Join(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.PlayerJoined(id, player)
	h.broadcaster.PlayerJoinedLobby(sess)

	response.JSON(w, http.StatusOK, response.SessionDetailFromModel(sess, player.ID))
}

// Leave handles POST /api/v1/sessions/{id}/leave
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	result, err := h.registry.Leave(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.PlayerLeft(id, player.ID, player.Name)
	if result.Ended {
		h.broadcaster.GameEnded(id, result.Winners)
	}
	if sess, err := h.registry.GetSession(r.Context(), id); err == nil {
		h.broadcaster.PlayerLeftLobby(sess)
	}

	response.NoContent(w)
}

// SetReady handles POST /api/v1/sessions/{id}/ready
func (h *SessionHandler) SetReady(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.SetReadyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	waiting, err := h.registry.SetReady(r.Context(), id, player.ID, req.Ready)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.ReadyCheck(id, player.ID, req.Ready, waiting)

	response.JSON(w, http.StatusOK, response.ReadyResponse{Ready: req.Ready, Waiting: waiting})
}

// UpdateConfig handles PATCH /api/v1/sessions/{id}/config
func (h *SessionHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.BoardWidth != nil && *req.BoardWidth < 1 {
		WriteError(w, NewInvalidRequestError("board_width must be positive"))
		return
	}
	if req.BoardHeight != nil && *req.BoardHeight < 1 {
		WriteError(w, NewInvalidRequestError("board_height must be positive"))
		return
	}
	if req.Rounds != nil && *req.Rounds < 1 {
		WriteError(w, NewInvalidRequestError("rounds must be positive"))
		return
	}

	update := session.ConfigUpdate{
		BoardWidth:  req.BoardWidth,
		BoardHeight: req.BoardHeight,
		Rounds:      req.Rounds,
	}
	cfg, changed, err := h.registry.UpdateConfig(r.Context(), id, update)
	if err != nil {
		WriteError(w, err)
		return
	}

	if changed {
		h.broadcaster.ConfigUpdated(id, *cfg)
		if sess, err := h.registry.GetSession(r.Context(), id); err == nil {
			h.broadcaster.SessionUpdated(sess)
		}
	}

	if cfg == nil {
		// Config changes outside ready-check are silently ignored.
		response.NoContent(w)
		return
	}
	response.JSON(w, http.StatusOK, cfg)
}
