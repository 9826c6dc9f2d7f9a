package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mortinious/tiles-game/internal/model"
	"github.com/mortinious/tiles-game/internal/services/session"
)

// Registry fronts the session controller with one mailbox per live session.
// Every mutating call on a session is funneled through that session's single
// goroutine, so two players acting at once are applied in arrival order with
// no interleaving. Sessions never share a mailbox, so a slow game cannot
// stall another.
type Registry struct {
	controller *session.Controller
	logger     *slog.Logger

	mu        sync.Mutex
	mailboxes map[model.SessionID]*mailbox
	created   int
}

type mailbox struct {
	tasks chan func()
}

const mailboxBuffer = 32

// New creates a registry around the given controller.
func New(controller *session.Controller, logger *slog.Logger) *Registry {
	return &Registry{
		controller: controller,
		logger:     logger.With(slog.String("component", "registry")),
		mailboxes:  make(map[model.SessionID]*mailbox),
	}
}

// CreateSession creates a session and spins up its mailbox. An empty name
// gets a generated one.
func (r *Registry) CreateSession(ctx context.Context, name string) (*model.GameSession, error) {
	r.mu.Lock()
	r.created++
	if name == "" {
		name = fmt.Sprintf("Game %d", r.created)
	}
	r.mu.Unlock()

	sess, err := r.controller.CreateSession(ctx, name)
	if err != nil {
		return nil, err
	}

	mb := &mailbox{tasks: make(chan func(), mailboxBuffer)}
	go mb.run()

	r.mu.Lock()
	r.mailboxes[sess.ID] = mb
	r.mu.Unlock()

	return sess, nil
}

func (mb *mailbox) run() {
	for task := range mb.tasks {
		task()
	}
}

// do runs fn on the session's mailbox goroutine and waits for it.
func (r *Registry) do(id model.SessionID, fn func() error) error {
	done := make(chan error, 1)

	// The enqueue happens under the registry lock so it cannot race Dispose
	// closing the mailbox: the channel is only closed after the entry leaves
	// the map, and a task sent while the entry is visible is always drained
	// before the mailbox goroutine exits.
	r.mu.Lock()
	mb, ok := r.mailboxes[id]
	if !ok {
		r.mu.Unlock()
		return model.ErrSessionNotFound
	}
	mb.tasks <- func() {
		done <- fn()
	}
	r.mu.Unlock()

	return <-done
}

// GetSession returns a detached snapshot of the session. The deep copy is
// taken on the session's own goroutine, so callers can read and marshal it
// without racing in-flight mutations.
func (r *Registry) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	var snap *model.GameSession
	err := r.do(id, func() error {
		sess, err := r.controller.GetSession(ctx, id)
		if err != nil {
			return err
		}
		snap = sess.Clone()
		return nil
	})
	return snap, err
}

// ListSessions returns detached snapshots for the lobby view. Sessions
// disposed while listing are skipped.
func (r *Registry) ListSessions(ctx context.Context) ([]*model.GameSession, error) {
	sessions, err := r.controller.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	snapshots := make([]*model.GameSession, 0, len(sessions))
	for _, sess := range sessions {
		snap, err := r.GetSession(ctx, sess.ID)
		if err != nil {
			continue
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// Join adds a player to a session.
func (r *Registry) Join(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.GameSession, error) {
	var sess *model.GameSession
	err := r.do(id, func() error {
		var err error
		sess, err = r.controller.Join(ctx, id, playerID)
		return err
	})
	return sess, err
}

// Leave removes a player. A session emptied mid-game ends and is disposed.
func (r *Registry) Leave(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*session.LeaveResult, error) {
	var result *session.LeaveResult
	err := r.do(id, func() error {
		var err error
		result, err = r.controller.Leave(ctx, id, playerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result.Empty {
		r.Dispose(ctx, id)
	}
	return result, nil
}

// SetReady updates a player's ready flag and returns the outstanding count.
func (r *Registry) SetReady(ctx context.Context, id model.SessionID, playerID model.PlayerID, ready bool) (int, error) {
	var waiting int
	err := r.do(id, func() error {
		var err error
		waiting, err = r.controller.SetReady(ctx, id, playerID, ready)
		return err
	})
	return waiting, err
}

// UpdateConfig applies a partial config change.
func (r *Registry) UpdateConfig(ctx context.Context, id model.SessionID, update session.ConfigUpdate) (*model.Config, bool, error) {
	var cfg *model.Config
	var changed bool
	err := r.do(id, func() error {
		var err error
		cfg, changed, err = r.controller.UpdateConfig(ctx, id, update)
		return err
	})
	return cfg, changed, err
}

// Start begins the game.
func (r *Registry) Start(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	var sess *model.GameSession
	err := r.do(id, func() error {
		var err error
		sess, err = r.controller.Start(ctx, id)
		return err
	})
	return sess, err
}

// PlaceTile plays a tile from a player's hand.
func (r *Registry) PlaceTile(ctx context.Context, id model.SessionID, playerID model.PlayerID, handIndex, x, y int) (*model.PlacementResult, error) {
	var result *model.PlacementResult
	err := r.do(id, func() error {
		var err error
		result, err = r.controller.PlaceTile(ctx, id, playerID, handIndex, x, y)
		return err
	})
	return result, err
}

// DealRoundTiles deals the round-start tile to each eligible player.
func (r *Registry) DealRoundTiles(ctx context.Context, id model.SessionID) (map[model.PlayerID][]*model.TileInstance, error) {
	var dealt map[model.PlayerID][]*model.TileInstance
	err := r.do(id, func() error {
		var err error
		dealt, err = r.controller.DealRoundTiles(ctx, id)
		return err
	})
	return dealt, err
}

// SetConnected flips a player's connection flag.
func (r *Registry) SetConnected(ctx context.Context, id model.SessionID, playerID model.PlayerID, connected bool) error {
	return r.do(id, func() error {
		return r.controller.SetConnected(ctx, id, playerID, connected)
	})
}

// Dispose tears down a session's mailbox and removes its stored state. The
// storage delete runs as the mailbox's final task, so operations queued before
// disposal still execute against live state and nothing can re-save the row
// after it is gone.
func (r *Registry) Dispose(ctx context.Context, id model.SessionID) {
	r.mu.Lock()
	mb, ok := r.mailboxes[id]
	if ok {
		delete(r.mailboxes, id)
	}
	r.mu.Unlock()

	remove := func() {
		if _, err := r.controller.GetSession(ctx, id); err == nil {
			_ = r.controller.DeleteSession(ctx, id)
		}
	}

	if ok {
		// The entry is out of the map, so no new task can be enqueued;
		// closing after the final send is safe.
		done := make(chan struct{})
		mb.tasks <- func() {
			remove()
			close(done)
		}
		close(mb.tasks)
		<-done
	} else {
		remove()
	}

	r.logger.Info("session disposed", slog.String("session_id", string(id)))
}

// Reset tears down every mailbox. Test helper.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, mb := range r.mailboxes {
		close(mb.tasks)
		delete(r.mailboxes, id)
	}
}
