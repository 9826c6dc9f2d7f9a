package response

import (
	"github.com/mortinious/tiles-game/internal/model"
	"github.com/mortinious/tiles-game/internal/services/auth"
)

// Player represents a player in API responses. Hands are never included
// here; a player only ever sees their own hand, via SessionDetail.YourHand.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsGuest   bool   `json:"is_guest"`
	Color     string `json:"color,omitempty"`
	Score     int    `json:"score"`
	Ready     bool   `json:"ready"`
	Connected bool   `json:"connected"`
	SeatIndex int    `json:"seat_index"`
	HandSize  int    `json:"hand_size"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name,
		IsGuest:   p.IsGuest,
		Color:     p.Color,
		Score:     p.Score,
		Ready:     p.Ready,
		Connected: p.Connected,
		SeatIndex: p.SeatIndex,
		HandSize:  len(p.Hand),
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// AuthResponseFromToken creates an AuthResponse
func AuthResponseFromToken(t *auth.Token, p *model.Player) AuthResponse {
	return AuthResponse{
		Player: PlayerFromModel(p),
		Token:  t.Value,
	}
}

// SessionSummary is the lobby list view of a session
type SessionSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Stage       string `json:"stage"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Round       int    `json:"round"`
	Rounds      int    `json:"rounds"`
}

// SessionSummaryFromModel converts a session to its lobby summary
func SessionSummaryFromModel(s *model.GameSession) SessionSummary {
	sum := s.Summarize()
	return SessionSummary{
		ID:          string(sum.ID),
		Name:        sum.Name,
		Stage:       string(sum.Stage),
		PlayerCount: sum.PlayerCount,
		MaxPlayers:  sum.MaxPlayers,
		Round:       sum.Round,
		Rounds:      sum.Rounds,
	}
}

// Board represents the board grid. Cells are indexed [x][y]; empty cells
// are null.
type Board struct {
	Width  int                     `json:"width"`
	Height int                     `json:"height"`
	Cells  [][]*model.TileInstance `json:"cells"`
}

// BoardFromModel converts model.Board to a response Board
func BoardFromModel(b *model.Board) Board {
	return Board{
		Width:  b.Width,
		Height: b.Height,
		Cells:  b.Cells,
	}
}

// SessionDetail is the full session view for a roster member. YourHand is the
// requesting player's hand; other hands are exposed only as counts.
type SessionDetail struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Stage      string                `json:"stage"`
	Config     model.Config          `json:"config"`
	Round      int                   `json:"round"`
	TurnIndex  int                   `json:"turn_index"`
	FinalRound bool                  `json:"final_round"`
	Players    []Player              `json:"players"`
	Board      Board                 `json:"board"`
	DeckSize   int                   `json:"deck_size"`
	Winners    []model.Winner        `json:"winners,omitempty"`
	YourHand   []*model.TileInstance `json:"your_hand,omitempty"`
}

// SessionDetailFromModel converts a session to its detail view for forPlayer.
func SessionDetailFromModel(s *model.GameSession, forPlayer model.PlayerID) SessionDetail {
	players := make([]Player, len(s.Players))
	var hand []*model.TileInstance
	for i, p := range s.Players {
		players[i] = PlayerFromModel(p)
		if p.ID == forPlayer {
			hand = p.Hand
		}
	}
	return SessionDetail{
		ID:         string(s.ID),
		Name:       s.Name,
		Stage:      string(s.Stage),
		Config:     s.Config,
		Round:      s.Round,
		TurnIndex:  s.TurnIndex,
		FinalRound: s.FinalRound,
		Players:    players,
		Board:      BoardFromModel(s.Board),
		DeckSize:   s.DeckSize(),
		Winners:    s.Winners,
		YourHand:   hand,
	}
}

// ReadyResponse is the response after toggling the ready flag
type ReadyResponse struct {
	Ready   bool `json:"ready"`
	Waiting int  `json:"waiting"`
}

// PlaceResponse is the response after placing a tile
type PlaceResponse struct {
	Tile     *model.TileInstance     `json:"tile"`
	X        int                     `json:"x"`
	Y        int                     `json:"y"`
	Score    int                     `json:"score"`
	Payments []model.ResourcePayment `json:"resource_payments,omitempty"`
	NewRound bool                    `json:"new_round"`
	Ended    bool                    `json:"ended"`
	Winners  []model.Winner          `json:"winners,omitempty"`
	Hand     []*model.TileInstance   `json:"hand"`
}

// PlaceResponseFromResult converts a placement result, attaching the placing
// player's remaining hand.
func PlaceResponseFromResult(r *model.PlacementResult, hand []*model.TileInstance) PlaceResponse {
	return PlaceResponse{
		Tile:     r.Tile,
		X:        r.X,
		Y:        r.Y,
		Score:    r.Score,
		Payments: r.Payments,
		NewRound: r.NewRound,
		Ended:    r.Ended,
		Winners:  r.Winners,
		Hand:     hand,
	}
}
