package ws

import (
	"testing"
	"time"

	"github.com/mortinious/tiles-game/internal/testutil"
)

func TestEncodeEnvelope(t *testing.T) {
	msg, err := Encode("test_event", map[string]int{"x": 3})
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	expected := `{"type":"test_event","data":{"x":3}}`
	if string(msg) != expected {
		t.Errorf("Encode = %q, want %q", string(msg), expected)
	}
}

func TestEncodeEnvelopeWithoutPayload(t *testing.T) {
	msg, err := Encode("test_event", nil)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	expected := `{"type":"test_event"}`
	if string(msg) != expected {
		t.Errorf("Encode = %q, want %q", string(msg), expected)
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub("abc12345", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "player1", nil)
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.Broadcast([]byte("hello"))

	select {
	case msg := <-client.send:
		if string(msg) != "hello" {
			t.Errorf("client received %q, want %q", string(msg), "hello")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("abc12345", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "player1", nil)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after unregister, want 0", hub.ClientCount())
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("abc12345", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client1 := NewClient(hub, "player1", nil)
	client2 := NewClient(hub, "player2", nil)
	hub.Register(client1)
	hub.Register(client2)
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast([]byte("update"))

	for i, client := range []*Client{client1, client2} {
		select {
		case msg := <-client.send:
			if string(msg) != "update" {
				t.Errorf("client %d received %q, want %q", i+1, string(msg), "update")
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}

func TestHub_SendToPlayer(t *testing.T) {
	hub := NewHub("abc12345", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	target := NewClient(hub, "player1", nil)
	other := NewClient(hub, "player2", nil)
	hub.Register(target)
	hub.Register(other)
	time.Sleep(10 * time.Millisecond)

	hub.SendToPlayer("player1", []byte("secret"))

	select {
	case msg := <-target.send:
		if string(msg) != "secret" {
			t.Errorf("target received %q, want %q", string(msg), "secret")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("target did not receive message")
	}

	select {
	case msg := <-other.send:
		t.Errorf("other player received %q, want nothing", string(msg))
	case <-time.After(20 * time.Millisecond):
	}
}

func TestHub_RegisterAfterCloseDoesNotBlock(t *testing.T) {
	hub := NewHub("abc12345", testutil.NopLogger())
	go hub.Run()
	hub.Close()
	time.Sleep(10 * time.Millisecond)

	client := NewClient(hub, "player1", nil)
	finished := make(chan struct{})
	go func() {
		hub.Register(client)
		hub.Unregister(client)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Register blocked on a closed hub")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d on closed hub, want 0", hub.ClientCount())
	}
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub1 := manager.GetOrCreateHub("abc12345")
	if hub1 == nil {
		t.Fatal("GetOrCreateHub returned nil")
	}

	hub2 := manager.GetOrCreateHub("abc12345")
	if hub1 != hub2 {
		t.Error("GetOrCreateHub returned different hub for same key")
	}

	hub3 := manager.GetOrCreateHub("xyz78901")
	if hub3 == hub1 {
		t.Error("GetOrCreateHub returned same hub for different key")
	}

	manager.RemoveHub("abc12345")
	manager.RemoveHub("xyz78901")
}

func TestHubManager_GetHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	if manager.GetHub("missing") != nil {
		t.Error("GetHub returned non-nil for non-existent hub")
	}

	created := manager.GetOrCreateHub("abc12345")
	if manager.GetHub("abc12345") != created {
		t.Error("GetHub returned different hub than GetOrCreateHub")
	}

	manager.RemoveHub("abc12345")
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("abc12345")
	manager.RemoveHub("abc12345")

	if manager.GetHub("abc12345") != nil {
		t.Error("Hub still exists after RemoveHub")
	}

	// Removing non-existent hub should not panic
	manager.RemoveHub("missing")
}

func TestHubManager_CleanupEmptyHubsKeepsLobby(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.LobbyHub()
	manager.GetOrCreateHub("empty123")

	active := manager.GetOrCreateHub("active12")
	client := NewClient(active, "player1", nil)
	active.Register(client)
	time.Sleep(10 * time.Millisecond)

	manager.CleanupEmptyHubs()

	if manager.GetHub("empty123") != nil {
		t.Error("empty hub still exists after cleanup")
	}
	if manager.GetHub("active12") == nil {
		t.Error("active hub was removed during cleanup")
	}
	if manager.GetHub(LobbyKey) == nil {
		t.Error("lobby hub was removed during cleanup")
	}

	manager.RemoveHub("active12")
	manager.RemoveHub(LobbyKey)
}
