package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mortinious/tiles-game/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings with this period; must be less than pongWait
	pingPeriod = 25 * time.Second

	// Maximum inbound message size. Clients only send pongs and close
	// frames; actions go over the JSON API.
	maxMessageSize = 1 << 10

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client represents one websocket connection belonging to a player.
type Client struct {
	hub         *Hub
	playerID    model.PlayerID
	conn        *websocket.Conn
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new client for an upgraded connection
func NewClient(hub *Hub, playerID model.PlayerID, conn *websocket.Conn) *Client {
	return &Client{
		hub:         hub,
		playerID:    playerID,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// Serve upgrades the request and runs the connection until the peer goes
// away. onClose fires after the client is unregistered, so the caller can
// flip connection flags and notify the session.
func Serve(w http.ResponseWriter, r *http.Request, hub *Hub, playerID model.PlayerID, onClose func()) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := NewClient(hub, playerID, conn)
	hub.Register(client)

	go client.writePump()
	client.readPump()

	hub.Unregister(client)
	if onClose != nil {
		onClose()
	}
	return nil
}

// readPump drains the connection so pings and close frames are processed.
// Inbound payloads are ignored; game actions arrive over the API.
func (c *Client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump writes queued messages and keepalive pings to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
