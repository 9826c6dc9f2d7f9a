package model

// EventType identifies the type of realtime event pushed to clients.
type EventType string

const (
	// Lobby events
	EventSessionAdded      EventType = "session_added"
	EventSessionUpdated    EventType = "session_updated"
	EventPlayerJoinedLobby EventType = "player_joined_session"
	EventPlayerLeftLobby   EventType = "player_left_session"

	// Session events
	EventPlayerJoined       EventType = "player_joined"
	EventPlayerLeft         EventType = "player_left"
	EventReadyCheck         EventType = "ready_check"
	EventConfigUpdated      EventType = "config_updated"
	EventGameStarted        EventType = "game_started"
	EventTilePlaced         EventType = "tile_placed"
	EventNextTurn           EventType = "next_turn"
	EventDrawTile           EventType = "draw_tile"
	EventGameEnded          EventType = "game_ended"
	EventPlayerDisconnected EventType = "player_disconnected"
	EventPlayerReconnected  EventType = "player_reconnected"
)

// ResourcePayment records the resources drained from one adjacent resource
// tile while paying a placement cost, plus the score credited to its owner.
// It feeds notification and animation hooks on the client.
type ResourcePayment struct {
	Resources []ResourceType `json:"resources"`
	X         int            `json:"x"`
	Y         int            `json:"y"`
	OwnerID   PlayerID       `json:"owner_id"`
	Score     int            `json:"score"`
}

// PlacementResult is the outcome of a successful tile placement.
type PlacementResult struct {
	Tile     *TileInstance     `json:"tile"`
	X        int               `json:"x"`
	Y        int               `json:"y"`
	PlayerID PlayerID          `json:"player_id"`
	Score    int               `json:"score"`
	Payments []ResourcePayment `json:"resource_payments"`

	// Turn flow outcome, filled by the session engine after the commit.
	NewRound bool     `json:"new_round"`
	Ended    bool     `json:"ended"`
	Winners  []Winner `json:"winners,omitempty"`
}

// ReadyCheckPayload is broadcast when a player toggles their ready flag.
type ReadyCheckPayload struct {
	PlayerID PlayerID `json:"player_id"`
	Ready    bool     `json:"ready"`
	Waiting  int      `json:"waiting"`
}

// NextTurnPayload is broadcast when the turn advances.
type NextTurnPayload struct {
	Round      int  `json:"round"`
	Turn       int  `json:"turn"`
	FinalRound bool `json:"final_round"`
}

// DrawTilePayload is pushed to a single player when they are dealt tiles.
type DrawTilePayload struct {
	Tiles []*TileInstance `json:"tiles"`
}

// GameEndedPayload is broadcast when the session reaches Ended.
type GameEndedPayload struct {
	Winners []Winner `json:"winners"`
}

// SessionSummary is the lobby view of a session: enough to render the game
// list without shipping boards, decks or hands.
type SessionSummary struct {
	ID          SessionID `json:"id"`
	Name        string    `json:"name"`
	Stage       Stage     `json:"stage"`
	PlayerCount int       `json:"player_count"`
	MaxPlayers  int       `json:"max_players"`
	Round       int       `json:"round"`
	Rounds      int       `json:"rounds"`
}

// Summarize builds the lobby view of the session.
func (s *GameSession) Summarize() SessionSummary {
	return SessionSummary{
		ID:          s.ID,
		Name:        s.Name,
		Stage:       s.Stage,
		PlayerCount: len(s.Players),
		MaxPlayers:  MaxPlayers,
		Round:       s.Round,
		Rounds:      s.Config.Rounds,
	}
}

// PlayerEventPayload carries the player affected by a join/leave/connect event.
type PlayerEventPayload struct {
	PlayerID PlayerID `json:"player_id"`
	Name     string   `json:"name"`
}
