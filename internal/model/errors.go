package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionFull      = errors.New("session is full")
	ErrAlreadyInSession = errors.New("player is already in a session")
	ErrNotInSession     = errors.New("player is not in this session")
	ErrWrongStage       = errors.New("operation not valid in current stage")
	ErrNoPlayers        = errors.New("session has no players")
	ErrPlayersNotReady  = errors.New("not all players are ready")

	// Placement errors
	ErrNotPlayerTurn    = errors.New("not this player's turn")
	ErrInvalidHandIndex = errors.New("hand index does not reference a tile")
	ErrOutOfBounds      = errors.New("coordinates are off the board")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrCostNotMet       = errors.New("adjacent resources cannot pay the tile cost")

	// Catalog errors
	ErrInvalidCatalog = errors.New("invalid tile catalog")
)
