package model

import "time"

// PlayerID uniquely identifies a player across the system.
type PlayerID string

// MaxHandSize caps how many tiles a player may hold.
const MaxHandSize = 5

// Player represents a game participant. Hand, score, ready and seat are
// transient per-session state and are reset when a game ends; the identity
// fields survive so the player can join another session.
type Player struct {
	ID        PlayerID        `json:"id"`
	Name      string          `json:"name"`
	IsGuest   bool            `json:"is_guest"`
	Color     string          `json:"color"`
	Hand      []*TileInstance `json:"hand"`
	Score     int             `json:"score"`
	Ready     bool            `json:"ready"`
	Connected bool            `json:"connected"`
	SeatIndex int             `json:"seat_index"`
	SessionID SessionID       `json:"session_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Clone returns a deep copy of the player, including the hand.
func (p *Player) Clone() *Player {
	c := *p
	if p.Hand != nil {
		c.Hand = make([]*TileInstance, len(p.Hand))
		for i, t := range p.Hand {
			c.Hand[i] = t.Clone()
		}
	}
	return &c
}

// ResetTransient clears per-session state so the player can be reused in a
// future session.
func (p *Player) ResetTransient() {
	p.SessionID = ""
	p.Hand = nil
	p.Score = 0
	p.Ready = false
	p.SeatIndex = 0
}

// RegisteredPlayer extends Player with authentication data, stored separately
// so the password hash never travels with session state.
type RegisteredPlayer struct {
	PlayerID     PlayerID  `json:"player_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
