package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	Name string `json:"name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	Name string `json:"name,omitempty"`
}

// UpdateConfigRequest is the request body for updating session config.
// Omitted fields are left unchanged.
type UpdateConfigRequest struct {
	BoardWidth  *int `json:"board_width,omitempty"`
	BoardHeight *int `json:"board_height,omitempty"`
	Rounds      *int `json:"rounds,omitempty"`
}

// SetReadyRequest is the request body for toggling the ready flag
type SetReadyRequest struct {
	Ready bool `json:"ready"`
}

// PlaceRequest is the request body for placing a tile
type PlaceRequest struct {
	HandIndex int `json:"hand_index"`
	X         int `json:"x"`
	Y         int `json:"y"`
}
