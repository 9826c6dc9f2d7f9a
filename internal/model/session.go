package model

import "time"

// SessionID uniquely identifies a game session.
type SessionID string

// Stage is the session's macro state. Transitions are linear:
// readycheck -> started -> ended.
type Stage string

const (
	StageReadyCheck Stage = "readycheck"
	StageStarted    Stage = "started"
	StageEnded      Stage = "ended"
)

// ColorPalette holds the seat colors assigned at game start. Its length is the
// maximum supported player count per session.
var ColorPalette = []string{"red", "blue", "yellow", "white", "slategray", "pink"}

// MaxPlayers is the roster cap, bounded by the color palette.
var MaxPlayers = len(ColorPalette)

// InitialHandSize is how many tiles each player is dealt at game start.
const InitialHandSize = 3

// Config holds the session settings mutable only during ready-check.
type Config struct {
	BoardWidth  int `json:"board_width"`
	BoardHeight int `json:"board_height"`
	Rounds      int `json:"rounds"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		BoardWidth:  10,
		BoardHeight: 10,
		Rounds:      10,
	}
}

// Winner records one entry of the final standings.
type Winner struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// GameSession is the authoritative aggregate for one game: roster, board,
// deck and the turn/round state machine.
type GameSession struct {
	ID         SessionID       `json:"id"`
	Name       string          `json:"name"`
	Config     Config          `json:"config"`
	Stage      Stage           `json:"stage"`
	Round      int             `json:"round"`
	TurnIndex  int             `json:"turn_index"`
	FinalRound bool            `json:"final_round"`
	Winners    []Winner        `json:"winners,omitempty"`
	Players    []*Player       `json:"players"`
	Board      *Board          `json:"board"`
	Deck       []*TileInstance `json:"deck"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Clone returns a detached deep copy of the session, safe to read or marshal
// while the live aggregate keeps mutating on its own goroutine.
func (s *GameSession) Clone() *GameSession {
	c := *s
	c.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.Clone()
	}
	if s.Board != nil {
		c.Board = s.Board.Clone()
	}
	if s.Deck != nil {
		c.Deck = make([]*TileInstance, len(s.Deck))
		for i, t := range s.Deck {
			c.Deck[i] = t.Clone()
		}
	}
	if s.Winners != nil {
		c.Winners = make([]Winner, len(s.Winners))
		copy(c.Winners, s.Winners)
	}
	return &c
}

// PlayerByID returns the roster entry with the given id, or nil.
func (s *GameSession) PlayerByID(id PlayerID) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil outside Started.
func (s *GameSession) CurrentPlayer() *Player {
	if s.Stage != StageStarted || s.TurnIndex >= len(s.Players) {
		return nil
	}
	return s.Players[s.TurnIndex]
}

// WaitingCount returns how many players have not readied up. The transport
// layer gates the start transition on this reaching zero.
func (s *GameSession) WaitingCount() int {
	waiting := 0
	for _, p := range s.Players {
		if !p.Ready {
			waiting++
		}
	}
	return waiting
}

// DeckSize returns the number of undrawn tiles. Display only; game logic
// never branches on it.
func (s *GameSession) DeckSize() int {
	return len(s.Deck)
}

// Draw removes and returns up to n tiles from the top of the deck. Running
// out is not an error; the result is simply short.
func (s *GameSession) Draw(n int) []*TileInstance {
	if n > len(s.Deck) {
		n = len(s.Deck)
	}
	drawn := make([]*TileInstance, 0, n)
	for i := 0; i < n; i++ {
		top := s.Deck[len(s.Deck)-1]
		s.Deck = s.Deck[:len(s.Deck)-1]
		drawn = append(drawn, top)
	}
	return drawn
}

// TileCount returns the total number of tile instances across the deck, all
// hands and the board. It is invariant from deck initialization onward.
func (s *GameSession) TileCount() int {
	count := len(s.Deck)
	for _, p := range s.Players {
		count += len(p.Hand)
	}
	count += s.Board.OccupiedCount()
	return count
}
