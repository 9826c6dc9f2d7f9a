package session

import (
	"context"
	"log/slog"

	"github.com/mortinious/tiles-game/internal/catalog"
	"github.com/mortinious/tiles-game/internal/dependencies/clock"
	"github.com/mortinious/tiles-game/internal/dependencies/random"
	"github.com/mortinious/tiles-game/internal/model"
	"github.com/mortinious/tiles-game/internal/services/rules"
	"github.com/mortinious/tiles-game/internal/services/scoring"
	"github.com/mortinious/tiles-game/internal/storage"
)

const (
	// SessionIDLength is the length of generated session ids
	SessionIDLength = 8
	// SessionIDAlphabet is the characters used in session ids
	SessionIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Controller owns the game session state machine: lifecycle transitions, turn
// flow, placement validation, cost payment and scoring. Callers must
// serialize mutating calls per session; the registry's actor mailboxes take
// care of that.
type Controller struct {
	storage storage.Storage
	catalog *catalog.Service
	scoring *scoring.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new session controller.
func NewController(
	storage storage.Storage,
	catalogService *catalog.Service,
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		catalog: catalogService,
		scoring: scoringService,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "session")),
	}
}

// CreateSession creates an empty session in ready-check with a freshly built,
// shuffled deck.
func (c *Controller) CreateSession(ctx context.Context, name string) (*model.GameSession, error) {
	now := c.clock.Now()

	var id model.SessionID
	for {
		id = model.SessionID(c.random.String(SessionIDLength, SessionIDAlphabet))
		exists, err := c.storage.SessionExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	cfg := model.DefaultConfig()
	sess := &model.GameSession{
		ID:        id,
		Name:      name,
		Config:    cfg,
		Stage:     model.StageReadyCheck,
		Round:     1,
		TurnIndex: 0,
		Players:   []*model.Player{},
		Board:     model.NewBoard(cfg.BoardWidth, cfg.BoardHeight),
		Deck:      c.catalog.BuildDeck(c.random),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(id)),
		slog.String("name", name),
		slog.Int("deck_size", sess.DeckSize()),
	)
	return sess, nil
}

// GetSession retrieves a session by id.
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	return c.storage.GetSession(ctx, id)
}

// ListSessions returns all sessions, oldest first.
func (c *Controller) ListSessions(ctx context.Context) ([]*model.GameSession, error) {
	return c.storage.ListSessions(ctx)
}

// DeleteSession removes a session's stored state.
func (c *Controller) DeleteSession(ctx context.Context, id model.SessionID) error {
	return c.storage.DeleteSession(ctx, id)
}

// Join adds a player to a session during ready-check.
func (c *Controller) Join(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.GameSession, error) {
	sess, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if sess.Stage != model.StageReadyCheck {
		return nil, model.ErrWrongStage
	}
	if player.SessionID != "" {
		return nil, model.ErrAlreadyInSession
	}
	if len(sess.Players) >= model.MaxPlayers {
		return nil, model.ErrSessionFull
	}

	player.SessionID = id
	sess.Players = append(sess.Players, player)
	sess.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return nil, err
	}

	c.logger.Info("player joined session",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.Int("player_count", len(sess.Players)),
	)
	return sess, nil
}

// LeaveResult reports what a removal did to the session.
type LeaveResult struct {
	Ended   bool
	Empty   bool
	Winners []model.Winner
}

// Leave removes a player from the session. An emptied session is forced to
// end rather than lingering as an orphaned running game; the caller disposes
// of it.
func (c *Controller) Leave(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*LeaveResult, error) {
	sess, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	player := sess.PlayerByID(playerID)
	if player == nil {
		return nil, model.ErrNotInSession
	}

	result := &LeaveResult{}

	if sess.Stage != model.StageEnded {
		for i, p := range sess.Players {
			if p.ID == playerID {
				sess.Players = append(sess.Players[:i], sess.Players[i+1:]...)
				break
			}
		}
		if sess.TurnIndex >= len(sess.Players) {
			sess.TurnIndex = 0
		}
	}
	player.ResetTransient()

	if len(sess.Players) == 0 && sess.Stage != model.StageEnded {
		c.endGame(sess)
		result.Ended = true
		result.Empty = true
		result.Winners = sess.Winners
	}

	sess.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return nil, err
	}

	c.logger.Info("player left session",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.Bool("session_ended", result.Ended),
	)
	return result, nil
}

// SetReady toggles a player's ready flag during ready-check and returns how
// many players are still outstanding.
func (c *Controller) SetReady(ctx context.Context, id model.SessionID, playerID model.PlayerID, ready bool) (int, error) {
	sess, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return 0, err
	}
	if sess.Stage != model.StageReadyCheck {
		return 0, model.ErrWrongStage
	}
	player := sess.PlayerByID(playerID)
	if player == nil {
		return 0, model.ErrNotInSession
	}

	player.Ready = ready
	sess.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return 0, err
	}
	return sess.WaitingCount(), nil
}

// ConfigUpdate is a partial config change; nil fields are left alone.
type ConfigUpdate struct {
	BoardWidth  *int
	BoardHeight *int
	Rounds      *int
}

// UpdateConfig applies a config change during ready-check. Changing board
// dimensions discards and reallocates the empty board. Outside ready-check
// the call is a silent no-op, reported by the changed flag.
func (c *Controller) UpdateConfig(ctx context.Context, id model.SessionID, update ConfigUpdate) (*model.Config, bool, error) {
	sess, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if sess.Stage != model.StageReadyCheck {
		return nil, false, nil
	}

	changed := false
	resize := false
	if update.BoardWidth != nil && *update.BoardWidth != sess.Config.BoardWidth {
		sess.Config.BoardWidth = *update.BoardWidth
		changed, resize = true, true
	}
	if update.BoardHeight != nil && *update.BoardHeight != sess.Config.BoardHeight {
		sess.Config.BoardHeight = *update.BoardHeight
		changed, resize = true, true
	}
	if update.Rounds != nil && *update.Rounds != sess.Config.Rounds {
		sess.Config.Rounds = *update.Rounds
		changed = true
	}
	if !changed {
		return &sess.Config, false, nil
	}
	if resize {
		sess.Board = model.NewBoard(sess.Config.BoardWidth, sess.Config.BoardHeight)
	}

	sess.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return nil, false, err
	}
	return &sess.Config, true, nil
}

// Start transitions the session to Started: seats are shuffled, colors
// assigned from the palette, and every player dealt an initial hand. The
// all-players-ready gate is the caller's decision via WaitingCount.
func (c *Controller) Start(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	sess, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Stage != model.StageReadyCheck {
		return nil, model.ErrWrongStage
	}
	if len(sess.Players) == 0 {
		return nil, model.ErrNoPlayers
	}

	c.random.Shuffle(len(sess.Players), func(i, j int) {
		sess.Players[i], sess.Players[j] = sess.Players[j], sess.Players[i]
	})
	for i, p := range sess.Players {
		p.SeatIndex = i
		p.Color = model.ColorPalette[i]
	}

	sess.Stage = model.StageStarted
	for _, p := range sess.Players {
		c.deal(sess, p, model.InitialHandSize)
	}

	sess.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("session_id", string(id)),
		slog.Int("player_count", len(sess.Players)),
		slog.Int("rounds", sess.Config.Rounds),
	)
	return sess, nil
}

// PlaceTile is the single state-changing entry point during play. Every
// precondition is checked before the first mutation, so a rejected placement
// leaves board, deck and roster untouched. On success the cost is paid
// (crediting resource owners), the tile committed, the hand updated, and the
// turn advanced.
func (c *Controller) PlaceTile(ctx context.Context, id model.SessionID, playerID model.PlayerID, handIndex, x, y int) (*model.PlacementResult, error) {
	sess, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Stage != model.StageStarted {
		return nil, model.ErrWrongStage
	}
	player := sess.PlayerByID(playerID)
	if player == nil {
		return nil, model.ErrNotInSession
	}
	if current := sess.CurrentPlayer(); current == nil || current.ID != playerID {
		return nil, model.ErrNotPlayerTurn
	}
	if handIndex < 0 || handIndex >= len(player.Hand) {
		return nil, model.ErrInvalidHandIndex
	}

	tile := player.Hand[handIndex]
	if err := rules.ValidatePlacement(sess.Board, tile, x, y); err != nil {
		return nil, err
	}

	// Commit point. Nothing below may fail.
	var payments []model.ResourcePayment
	if !tile.ZeroCost() {
		payments = c.payCost(sess, tile, x, y, playerID)
	}

	score := c.scoring.PlacementScore(tile)
	player.Score += score
	_ = sess.Board.Place(tile, x, y)
	player.Hand = append(player.Hand[:handIndex], player.Hand[handIndex+1:]...)

	result := &model.PlacementResult{
		Tile:     tile,
		X:        x,
		Y:        y,
		PlayerID: playerID,
		Score:    score,
		Payments: payments,
	}
	result.NewRound, result.Ended = c.nextTurn(sess)
	if result.Ended {
		result.Winners = sess.Winners
	}

	sess.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return nil, err
	}

	c.logger.Info("tile placed",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.String("tile", tile.Name),
		slog.Int("x", x),
		slog.Int("y", y),
		slog.Int("score", score),
		slog.Int("round", sess.Round),
	)
	return result, nil
}

// payCost drains the required resources from adjacent resource tiles,
// preferring tiles not owned by the paying player. Owners of consumed
// opponent resources are credited the resource's defined value; consuming
// one's own resources credits nothing. Depleted tiles stay on the board.
func (c *Controller) payCost(sess *model.GameSession, tile *model.TileInstance, x, y int, payerID model.PlayerID) []model.ResourcePayment {
	adjacent := rules.AdjacentResourceTiles(sess.Board, x, y)

	// Opponents first, scan order preserved within each group.
	ordered := make([]model.CellRef, 0, len(adjacent))
	for _, ref := range adjacent {
		if ref.Tile.OwnerID != payerID {
			ordered = append(ordered, ref)
		}
	}
	for _, ref := range adjacent {
		if ref.Tile.OwnerID == payerID {
			ordered = append(ordered, ref)
		}
	}

	required := make([]model.ResourceType, len(tile.Cost))
	copy(required, tile.Cost)

	var payments []model.ResourcePayment
	for _, ref := range ordered {
		if len(required) == 0 {
			break
		}
		available := make([]model.ResourceType, len(ref.Tile.Resources))
		copy(available, ref.Tile.Resources)

		var consumed []model.ResourceType
		credit := 0
		for _, res := range available {
			matched := false
			for i, req := range required {
				if req == res {
					required = append(required[:i], required[i+1:]...)
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			ref.Tile.RemoveResource(res)
			consumed = append(consumed, res)
			if ref.Tile.OwnerID != payerID {
				credit += c.scoring.ResourceCredit(res)
			}
		}
		if len(consumed) == 0 {
			continue
		}
		if owner := sess.PlayerByID(ref.Tile.OwnerID); owner != nil {
			owner.Score += credit
		}
		payments = append(payments, model.ResourcePayment{
			Resources: consumed,
			X:         ref.X,
			Y:         ref.Y,
			OwnerID:   ref.Tile.OwnerID,
			Score:     credit,
		})
	}
	return payments
}

// nextTurn advances the turn index, wrapping into a new round. Wrapping while
// the final round is in progress ends the game instead.
func (c *Controller) nextTurn(sess *model.GameSession) (newRound, ended bool) {
	sess.TurnIndex++
	if sess.TurnIndex >= len(sess.Players) {
		if sess.FinalRound {
			c.endGame(sess)
			return false, true
		}
		sess.TurnIndex = 0
		sess.Round++
		sess.FinalRound = sess.Round == sess.Config.Rounds
		return true, false
	}
	return false, false
}

// DealRoundTiles deals one tile to every connected player whose hand is not
// full, returning the new tiles per player for targeted pushes. Called after
// the turn-pacing delay at each round boundary.
func (c *Controller) DealRoundTiles(ctx context.Context, id model.SessionID) (map[model.PlayerID][]*model.TileInstance, error) {
	sess, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Stage != model.StageStarted {
		return nil, model.ErrWrongStage
	}

	dealt := make(map[model.PlayerID][]*model.TileInstance)
	for _, p := range sess.Players {
		if !p.Connected || len(p.Hand) >= model.MaxHandSize {
			continue
		}
		before := len(p.Hand)
		c.deal(sess, p, 1)
		if len(p.Hand) > before {
			dealt[p.ID] = p.Hand[before:]
		}
	}

	sess.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return nil, err
	}
	return dealt, nil
}

// SetConnected flips a player's connection flag. Reconnecting during
// ready-check clears the ready flag so the player must confirm again.
func (c *Controller) SetConnected(ctx context.Context, id model.SessionID, playerID model.PlayerID, connected bool) error {
	sess, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}
	player := sess.PlayerByID(playerID)
	if player == nil {
		return model.ErrNotInSession
	}

	player.Connected = connected
	if connected && sess.Stage == model.StageReadyCheck {
		player.Ready = false
	}
	sess.UpdatedAt = c.clock.Now()
	return c.storage.SaveSession(ctx, sess)
}

// deal moves up to n tiles from the deck into the player's hand. A short or
// empty deck deals fewer without error.
func (c *Controller) deal(sess *model.GameSession, player *model.Player, n int) {
	tiles := sess.Draw(n)
	for _, t := range tiles {
		t.OwnerID = player.ID
	}
	player.Hand = append(player.Hand, tiles...)
}

// endGame computes the winners, resets every player's transient state and
// marks the session ended. Disposal is the registry's job.
func (c *Controller) endGame(sess *model.GameSession) {
	sess.Stage = model.StageEnded
	sess.Winners = c.scoring.Winners(sess.Players)
	for _, p := range sess.Players {
		p.ResetTransient()
	}

	c.logger.Info("game ended",
		slog.String("session_id", string(sess.ID)),
		slog.Int("winner_count", len(sess.Winners)),
	)
}
