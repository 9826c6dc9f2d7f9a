package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mortinious/tiles-game/internal/model"
)

// Hub manages the websocket clients subscribed to one channel (a session, or
// the lobby overview).
type Hub struct {
	key     string
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a new Hub for a channel key
func NewHub(key string, logger *slog.Logger) *Hub {
	return &Hub{
		key:        key,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("channel", key)),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("ws hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("ws client registered",
				slog.String("player_id", string(client.playerID)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				duration := time.Since(client.connectedAt)
				h.logger.Info("ws client unregistered",
					slog.String("player_id", string(client.playerID)),
					slog.Duration("connection_duration", duration),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("ws broadcast dropped for slow clients",
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("ws hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub. A no-op once the hub has been closed,
// so a connection racing teardown cannot wedge its handler goroutine.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client from the hub. A no-op once the hub has been
// closed; Run already released every client on the way out.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("ws broadcast dropped - hub buffer full")
	}
}

// SendToPlayer delivers a message only to the given player's connections.
// Used for private pushes like dealt tiles.
func (h *Hub) SendToPlayer(playerID model.PlayerID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.playerID != playerID {
			continue
		}
		select {
		case client.send <- message:
		default:
			h.logger.Warn("ws direct message dropped - client buffer full",
				slog.String("player_id", string(playerID)))
		}
	}
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// LobbyKey is the channel key for the lobby overview hub.
const LobbyKey = "lobby"

// HubManager manages the lobby hub and one hub per session
type HubManager struct {
	hubs   map[string]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[string]*Hub),
		logger: logger.With(slog.String("component", "ws")),
	}
}

// GetOrCreateHub returns the hub for a channel, creating one if needed
func (m *HubManager) GetOrCreateHub(key string) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[key]; ok {
		return hub
	}

	hub := NewHub(key, m.logger)
	m.hubs[key] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a channel, or nil if it doesn't exist
func (m *HubManager) GetHub(key string) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[key]
}

// LobbyHub returns the shared lobby overview hub.
func (m *HubManager) LobbyHub() *Hub {
	return m.GetOrCreateHub(LobbyKey)
}

// SessionHub returns the hub for a session, creating it if needed.
func (m *HubManager) SessionHub(id model.SessionID) *Hub {
	return m.GetOrCreateHub(string(id))
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[key]; ok {
		hub.Close()
		delete(m.hubs, key)
		m.logger.Info("ws hub removed", slog.String("channel", key))
	}
}

// CleanupEmptyHubs removes hubs with no clients. The lobby hub stays.
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, hub := range m.hubs {
		if key == LobbyKey {
			continue
		}
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, key)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("ws empty hubs cleaned up", slog.Int("removed", removed))
	}
}
