package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool
	var sessionID string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream websocket events",
		Long: `Connect to the websocket event stream and print events in real-time.

Without --session, streams the lobby overview feed:
  - session_added: New session created
  - session_updated: Session state changed
  - player_joined_lobby / player_left_lobby: Roster changes

With --session, streams a session's feed:
  - ready_check: Player toggled their ready flag
  - config_updated: Session configuration changed
  - game_started: Game has started
  - tile_placed: Player placed a tile
  - next_turn: Turn advanced
  - draw_tile: You drew tiles (private)
  - game_ended: Game finished
  - player_disconnected / player_reconnected: Connection changes

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(sessionID, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (lobby feed if omitted)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// WireEvent is a printed event frame
type WireEvent struct {
	Time time.Time       `json:"time"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func streamEvents(sessionID string, jsonOutput bool) error {
	wsURL, err := eventsURL(sessionID)
	if err != nil {
		return err
	}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connection failed: %w (status %d)", err, resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if !jsonOutput {
		if sessionID == "" {
			fmt.Println("Connected to lobby events")
		} else {
			fmt.Printf("Connected to session %s events\n", sessionID)
		}
	}

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			var evt struct {
				Type string          `json:"type"`
				Data json.RawMessage `json:"data"`
			}
			if err := conn.ReadJSON(&evt); err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return
				}
				if !jsonOutput {
					fmt.Fprintf(os.Stderr, "stream error: %s\n", err)
				}
				return
			}
			printEvent(evt.Type, evt.Data, jsonOutput)
		}
	}()

	select {
	case <-sigCh:
		// Ask the server to close the connection cleanly
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	case <-done:
	}

	if !jsonOutput {
		fmt.Println("Disconnected")
	}
	return nil
}

func eventsURL(sessionID string) (string, error) {
	base := strings.TrimSuffix(cfg.ServerURL, "/")
	base = strings.Replace(base, "https://", "wss://", 1)
	base = strings.Replace(base, "http://", "ws://", 1)

	path := "/api/v1/events/lobby"
	if sessionID != "" {
		path = "/api/v1/sessions/" + sessionID + "/events"
	}

	u, err := url.Parse(base + path)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	// Websocket clients cannot set the Authorization header from browsers,
	// so the server also accepts the token as a query parameter.
	if cfg.Token != "" {
		q := u.Query()
		q.Set("token", cfg.Token)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

func printEvent(eventType string, data json.RawMessage, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		evt := WireEvent{
			Time: now,
			Type: eventType,
			Data: data,
		}
		jsonData, _ := json.Marshal(evt)
		fmt.Println(string(jsonData))
	} else {
		timestamp := now.Format("2006-01-02 15:04:05")
		// Truncate data if it's too long for display
		displayData := string(data)
		if len(displayData) > 120 {
			displayData = displayData[:120] + "..."
		}
		fmt.Printf("[%s] %s: %s\n", timestamp, eventType, displayData)
	}
}
