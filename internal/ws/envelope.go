package ws

import (
	"encoding/json"

	"github.com/mortinious/tiles-game/internal/model"
)

// Envelope is the wire format for every pushed event: a type tag and a
// JSON payload.
type Envelope struct {
	Type model.EventType `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Encode wraps a payload in an envelope and marshals it.
func Encode(eventType model.EventType, payload any) ([]byte, error) {
	env := Envelope{Type: eventType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}
	return json.Marshal(env)
}
