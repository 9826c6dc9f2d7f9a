package ws

import (
	"log/slog"

	"github.com/mortinious/tiles-game/internal/model"
)

// Broadcaster turns game events into envelopes and routes them to the right
// hub: lobby events to the shared lobby hub, session events to the session's
// own hub, dealt tiles to the drawing player alone.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "broadcaster")),
	}
}

func (b *Broadcaster) toLobby(eventType model.EventType, payload any) {
	b.send(b.hubManager.LobbyHub(), eventType, payload)
}

func (b *Broadcaster) toSession(id model.SessionID, eventType model.EventType, payload any) {
	hub := b.hubManager.GetHub(string(id))
	if hub == nil {
		return
	}
	b.send(hub, eventType, payload)
}

func (b *Broadcaster) send(hub *Hub, eventType model.EventType, payload any) {
	msg, err := Encode(eventType, payload)
	if err != nil {
		b.logger.Error("failed to encode event",
			slog.String("event", string(eventType)),
			slog.Any("error", err))
		return
	}
	hub.Broadcast(msg)
}

// Lobby events

// SessionAdded announces a new session to the lobby.
func (b *Broadcaster) SessionAdded(sess *model.GameSession) {
	b.toLobby(model.EventSessionAdded, sess.Summarize())
}

// SessionUpdated announces a session change (stage, round, config) to the lobby.
func (b *Broadcaster) SessionUpdated(sess *model.GameSession) {
	b.toLobby(model.EventSessionUpdated, sess.Summarize())
}

// PlayerJoinedLobby announces to the lobby that a player joined a session.
func (b *Broadcaster) PlayerJoinedLobby(sess *model.GameSession) {
	b.toLobby(model.EventPlayerJoinedLobby, sess.Summarize())
}

// PlayerLeftLobby announces to the lobby that a player left a session.
func (b *Broadcaster) PlayerLeftLobby(sess *model.GameSession) {
	b.toLobby(model.EventPlayerLeftLobby, sess.Summarize())
}

// Session events

// PlayerJoined announces a new roster member to the session.
func (b *Broadcaster) PlayerJoined(id model.SessionID, player *model.Player) {
	b.toSession(id, model.EventPlayerJoined, model.PlayerEventPayload{
		PlayerID: player.ID,
		Name:     player.Name,
	})
}

// PlayerLeft announces a roster departure to the session.
func (b *Broadcaster) PlayerLeft(id model.SessionID, playerID model.PlayerID, name string) {
	b.toSession(id, model.EventPlayerLeft, model.PlayerEventPayload{
		PlayerID: playerID,
		Name:     name,
	})
}

// ReadyCheck announces a ready toggle and the remaining waiting count.
func (b *Broadcaster) ReadyCheck(id model.SessionID, playerID model.PlayerID, ready bool, waiting int) {
	b.toSession(id, model.EventReadyCheck, model.ReadyCheckPayload{
		PlayerID: playerID,
		Ready:    ready,
		Waiting:  waiting,
	})
}

// ConfigUpdated announces the new session config.
func (b *Broadcaster) ConfigUpdated(id model.SessionID, cfg model.Config) {
	b.toSession(id, model.EventConfigUpdated, cfg)
}

// GameStarted announces the transition into play with the seated roster.
func (b *Broadcaster) GameStarted(sess *model.GameSession) {
	b.toSession(sess.ID, model.EventGameStarted, sess.Players)
}

// TilePlaced announces a committed placement with its payments and score.
func (b *Broadcaster) TilePlaced(id model.SessionID, result *model.PlacementResult) {
	b.toSession(id, model.EventTilePlaced, result)
}

// NextTurn announces whose turn it is now.
func (b *Broadcaster) NextTurn(id model.SessionID, round, turn int, finalRound bool) {
	b.toSession(id, model.EventNextTurn, model.NextTurnPayload{
		Round:      round,
		Turn:       turn,
		FinalRound: finalRound,
	})
}

// DrawTile pushes newly dealt tiles to the drawing player only.
func (b *Broadcaster) DrawTile(id model.SessionID, playerID model.PlayerID, tiles []*model.TileInstance) {
	hub := b.hubManager.GetHub(string(id))
	if hub == nil {
		return
	}
	msg, err := Encode(model.EventDrawTile, model.DrawTilePayload{Tiles: tiles})
	if err != nil {
		b.logger.Error("failed to encode draw event", slog.Any("error", err))
		return
	}
	hub.SendToPlayer(playerID, msg)
}

// GameEnded announces the final standings.
func (b *Broadcaster) GameEnded(id model.SessionID, winners []model.Winner) {
	b.toSession(id, model.EventGameEnded, model.GameEndedPayload{Winners: winners})
}

// PlayerDisconnected announces a dropped connection.
func (b *Broadcaster) PlayerDisconnected(id model.SessionID, playerID model.PlayerID, name string) {
	b.toSession(id, model.EventPlayerDisconnected, model.PlayerEventPayload{
		PlayerID: playerID,
		Name:     name,
	})
}

// PlayerReconnected announces a resumed connection.
func (b *Broadcaster) PlayerReconnected(id model.SessionID, playerID model.PlayerID, name string) {
	b.toSession(id, model.EventPlayerReconnected, model.PlayerEventPayload{
		PlayerID: playerID,
		Name:     name,
	})
}
