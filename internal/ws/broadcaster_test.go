package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mortinious/tiles-game/internal/model"
	"github.com/mortinious/tiles-game/internal/testutil"
)

func recvEnvelope(t *testing.T, client *Client) Envelope {
	t.Helper()
	select {
	case msg := <-client.send:
		var env Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			t.Fatalf("failed to decode envelope: %v", err)
		}
		return env
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no message received")
		return Envelope{}
	}
}

func testSession() *model.GameSession {
	return &model.GameSession{
		ID:     "abc12345",
		Name:   "Test Game",
		Stage:  model.StageReadyCheck,
		Round:  1,
		Config: model.Config{Rounds: 10},
		Players: []*model.Player{
			{ID: "p1", Name: "Alice"},
		},
	}
}

func TestBroadcasterSessionAddedGoesToLobby(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.RemoveHub(LobbyKey)
	b := NewBroadcaster(manager, testutil.NopLogger())

	client := NewClient(manager.LobbyHub(), "p1", nil)
	manager.LobbyHub().Register(client)
	time.Sleep(10 * time.Millisecond)

	b.SessionAdded(testSession())

	env := recvEnvelope(t, client)
	if env.Type != model.EventSessionAdded {
		t.Errorf("event type = %q, want %q", env.Type, model.EventSessionAdded)
	}

	var summary model.SessionSummary
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if summary.ID != "abc12345" || summary.PlayerCount != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestBroadcasterSessionEventGoesToSessionHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.RemoveHub("abc12345")
	b := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.SessionHub("abc12345")
	client := NewClient(hub, "p1", nil)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	b.ReadyCheck("abc12345", "p1", true, 2)

	env := recvEnvelope(t, client)
	if env.Type != model.EventReadyCheck {
		t.Errorf("event type = %q, want %q", env.Type, model.EventReadyCheck)
	}

	var payload model.ReadyCheckPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if !payload.Ready || payload.Waiting != 2 {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestBroadcasterSessionEventWithoutHubIsDropped(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	b := NewBroadcaster(manager, testutil.NopLogger())

	// No hub exists for this session; must not panic or create one.
	b.GameEnded("missing1", nil)

	if manager.GetHub("missing1") != nil {
		t.Error("broadcast created a hub for an unknown session")
	}
}

func TestBroadcasterDrawTileTargetsPlayer(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.RemoveHub("abc12345")
	b := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.SessionHub("abc12345")
	target := NewClient(hub, "p1", nil)
	other := NewClient(hub, "p2", nil)
	hub.Register(target)
	hub.Register(other)
	time.Sleep(10 * time.Millisecond)

	tiles := []*model.TileInstance{{Kind: model.TileKindCulture, Name: "hamlet", Score: 1}}
	b.DrawTile("abc12345", "p1", tiles)

	env := recvEnvelope(t, target)
	if env.Type != model.EventDrawTile {
		t.Errorf("event type = %q, want %q", env.Type, model.EventDrawTile)
	}
	var payload model.DrawTilePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if len(payload.Tiles) != 1 || payload.Tiles[0].Name != "hamlet" {
		t.Errorf("unexpected payload: %+v", payload)
	}

	select {
	case msg := <-other.send:
		t.Errorf("other player received %q, want nothing", string(msg))
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBroadcasterGameStartedCarriesRoster(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.RemoveHub("abc12345")
	b := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.SessionHub("abc12345")
	client := NewClient(hub, "p1", nil)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	sess := testSession()
	sess.Stage = model.StageStarted
	b.GameStarted(sess)

	env := recvEnvelope(t, client)
	if env.Type != model.EventGameStarted {
		t.Errorf("event type = %q, want %q", env.Type, model.EventGameStarted)
	}
	var players []*model.Player
	if err := json.Unmarshal(env.Data, &players); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if len(players) != 1 || players[0].Name != "Alice" {
		t.Errorf("unexpected roster: %+v", players)
	}
}
