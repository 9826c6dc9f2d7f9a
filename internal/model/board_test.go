package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardDimensions(t *testing.T) {
	board := NewBoard(4, 7)

	assert.Equal(t, 4, board.Width)
	assert.Equal(t, 7, board.Height)
	assert.Len(t, board.Cells, 4)
	assert.Len(t, board.Cells[0], 7)
}

func TestBoardInBounds(t *testing.T) {
	board := NewBoard(3, 3)

	assert.True(t, board.InBounds(0, 0))
	assert.True(t, board.InBounds(2, 2))
	assert.False(t, board.InBounds(-1, 0))
	assert.False(t, board.InBounds(0, -1))
	assert.False(t, board.InBounds(3, 0))
	assert.False(t, board.InBounds(0, 3))
}

func TestBoardPlaceAndAt(t *testing.T) {
	board := NewBoard(3, 3)
	tile := &TileInstance{Kind: TileKindCulture, Name: "hamlet"}

	require.NoError(t, board.Place(tile, 1, 2))

	assert.Same(t, tile, board.At(1, 2))
	assert.Nil(t, board.At(0, 0))
	assert.Nil(t, board.At(-1, 5))
}

func TestBoardPlaceOutOfBounds(t *testing.T) {
	board := NewBoard(3, 3)
	tile := &TileInstance{Kind: TileKindCulture}

	assert.ErrorIs(t, board.Place(tile, 3, 0), ErrOutOfBounds)
	assert.ErrorIs(t, board.Place(tile, 0, -1), ErrOutOfBounds)
}

func TestBoardPlaceOccupied(t *testing.T) {
	board := NewBoard(3, 3)
	first := &TileInstance{Kind: TileKindCulture}
	require.NoError(t, board.Place(first, 1, 1))

	err := board.Place(&TileInstance{Kind: TileKindResource}, 1, 1)
	assert.ErrorIs(t, err, ErrCellOccupied)
	assert.Same(t, first, board.At(1, 1))
}

func TestBoardAdjacentOrderAndOmissions(t *testing.T) {
	board := NewBoard(3, 3)
	west := &TileInstance{Name: "west"}
	south := &TileInstance{Name: "south"}
	require.NoError(t, board.Place(west, 0, 1))
	require.NoError(t, board.Place(south, 1, 2))

	refs := board.Adjacent(1, 1)
	require.Len(t, refs, 2)
	assert.Same(t, west, refs[0].Tile)
	assert.Same(t, south, refs[1].Tile)
}

func TestBoardAdjacentAtCorner(t *testing.T) {
	board := NewBoard(3, 3)

	assert.Empty(t, board.Adjacent(0, 0))
}

func TestBoardOccupiedCount(t *testing.T) {
	board := NewBoard(3, 3)
	assert.Equal(t, 0, board.OccupiedCount())

	require.NoError(t, board.Place(&TileInstance{}, 0, 0))
	require.NoError(t, board.Place(&TileInstance{}, 2, 2))
	assert.Equal(t, 2, board.OccupiedCount())
}

func TestTileRemoveResource(t *testing.T) {
	tile := &TileInstance{
		Kind:      TileKindResource,
		Resources: []ResourceType{ResourceWood, ResourceStone, ResourceWood},
	}

	assert.True(t, tile.RemoveResource(ResourceWood))
	assert.Equal(t, []ResourceType{ResourceStone, ResourceWood}, tile.Resources)

	assert.True(t, tile.RemoveResource(ResourceWood))
	assert.False(t, tile.RemoveResource(ResourceWood))
	assert.Equal(t, []ResourceType{ResourceStone}, tile.Resources)
}

func TestTileDefinitionMaterializeDeepCopies(t *testing.T) {
	def := TileDefinition{
		Kind:      TileKindResource,
		Name:      "forest",
		Resources: []ResourceType{ResourceWood, ResourceWood},
		Count:     2,
	}

	a := def.Materialize()
	b := def.Materialize()
	a.RemoveResource(ResourceWood)

	assert.Len(t, a.Resources, 1)
	assert.Len(t, b.Resources, 2)
	assert.Len(t, def.Resources, 2)
}

func TestSessionDraw(t *testing.T) {
	sess := &GameSession{
		Deck: []*TileInstance{{Name: "a"}, {Name: "b"}, {Name: "c"}},
	}

	drawn := sess.Draw(2)
	require.Len(t, drawn, 2)
	assert.Equal(t, "c", drawn[0].Name)
	assert.Equal(t, "b", drawn[1].Name)
	assert.Equal(t, 1, sess.DeckSize())
}

func TestSessionDrawShort(t *testing.T) {
	sess := &GameSession{
		Deck: []*TileInstance{{Name: "a"}},
	}

	drawn := sess.Draw(5)
	assert.Len(t, drawn, 1)
	assert.Equal(t, 0, sess.DeckSize())
	assert.Empty(t, sess.Draw(1))
}

func TestSessionTileCount(t *testing.T) {
	board := NewBoard(3, 3)
	require.NoError(t, board.Place(&TileInstance{}, 0, 0))
	sess := &GameSession{
		Deck:  []*TileInstance{{}, {}},
		Board: board,
		Players: []*Player{
			{ID: "p1", Hand: []*TileInstance{{}, {}, {}}},
		},
	}

	assert.Equal(t, 6, sess.TileCount())
}

func TestSessionWaitingCount(t *testing.T) {
	sess := &GameSession{
		Players: []*Player{
			{ID: "p1", Ready: true},
			{ID: "p2"},
			{ID: "p3"},
		},
	}

	assert.Equal(t, 2, sess.WaitingCount())
}

func TestSessionCurrentPlayer(t *testing.T) {
	sess := &GameSession{
		Stage:     StageStarted,
		TurnIndex: 1,
		Players:   []*Player{{ID: "p1"}, {ID: "p2"}},
	}

	assert.Equal(t, PlayerID("p2"), sess.CurrentPlayer().ID)

	sess.Stage = StageReadyCheck
	assert.Nil(t, sess.CurrentPlayer())
}

func TestPlayerResetTransient(t *testing.T) {
	p := &Player{
		ID:        "p1",
		Name:      "Alice",
		SessionID: "abc12345",
		Hand:      []*TileInstance{{}},
		Score:     7,
		Ready:     true,
		SeatIndex: 2,
	}

	p.ResetTransient()

	assert.Equal(t, SessionID(""), p.SessionID)
	assert.Nil(t, p.Hand)
	assert.Equal(t, 0, p.Score)
	assert.False(t, p.Ready)
	assert.Equal(t, 0, p.SeatIndex)
	assert.Equal(t, "Alice", p.Name)
}

func TestSummarize(t *testing.T) {
	sess := &GameSession{
		ID:      "abc12345",
		Name:    "Test",
		Stage:   StageStarted,
		Round:   3,
		Config:  Config{Rounds: 10},
		Players: []*Player{{ID: "p1"}, {ID: "p2"}},
	}

	summary := sess.Summarize()
	assert.Equal(t, SessionID("abc12345"), summary.ID)
	assert.Equal(t, 2, summary.PlayerCount)
	assert.Equal(t, MaxPlayers, summary.MaxPlayers)
	assert.Equal(t, 3, summary.Round)
	assert.Equal(t, 10, summary.Rounds)
}

func TestSessionSnapshotRoundTrip(t *testing.T) {
	board := NewBoard(3, 3)
	require.NoError(t, board.Place(&TileInstance{Kind: TileKindCulture, Name: "hamlet", Score: 1, OwnerID: "p1"}, 1, 1))
	require.NoError(t, board.Place(&TileInstance{Kind: TileKindResource, Name: "forest", Resources: []ResourceType{ResourceWood}, OwnerID: "p2"}, 0, 2))
	sess := &GameSession{
		ID:     "abc12345",
		Name:   "Test",
		Stage:  StageStarted,
		Round:  2,
		Config: Config{BoardWidth: 3, BoardHeight: 3, Rounds: 5},
		Players: []*Player{
			{ID: "p1", Name: "Alice", Score: 4, Hand: []*TileInstance{{Kind: TileKindCulture, Name: "temple", Score: 5}}},
			{ID: "p2", Name: "Bob", Score: 1},
		},
		Board: board,
		Deck:  []*TileInstance{{Kind: TileKindResource, Name: "farm", Resources: []ResourceType{ResourceWheat}}},
	}

	raw, err := json.Marshal(sess)
	require.NoError(t, err)
	var restored GameSession
	require.NoError(t, json.Unmarshal(raw, &restored))

	assert.Equal(t, sess.Board.OccupiedCount(), restored.Board.OccupiedCount())
	assert.Equal(t, sess.DeckSize(), restored.DeckSize())
	assert.Equal(t, sess.TileCount(), restored.TileCount())
	for i, p := range sess.Players {
		assert.Equal(t, p.Score, restored.Players[i].Score)
	}
	assert.Equal(t, "hamlet", restored.Board.At(1, 1).Name)
}

func TestSessionCloneIsDeep(t *testing.T) {
	board := NewBoard(3, 3)
	supply := &TileInstance{Kind: TileKindResource, Name: "forest", Resources: []ResourceType{ResourceWood}, OwnerID: "p1"}
	require.NoError(t, board.Place(supply, 1, 1))
	sess := &GameSession{
		ID:    "abc12345",
		Name:  "Test",
		Stage: StageStarted,
		Players: []*Player{
			{ID: "p1", Name: "Alice", Hand: []*TileInstance{{Kind: TileKindCulture, Name: "hamlet", Score: 1}}},
		},
		Board: board,
		Deck:  []*TileInstance{{Kind: TileKindCulture, Name: "temple", Score: 5}},
	}

	clone := sess.Clone()
	clone.Name = "scribbled"
	clone.Players[0].Score = 9
	clone.Players[0].Hand[0].Score = 9
	clone.Board.At(1, 1).RemoveResource(ResourceWood)
	clone.Deck = clone.Deck[:0]

	assert.Equal(t, "Test", sess.Name)
	assert.Equal(t, 0, sess.Players[0].Score)
	assert.Equal(t, 1, sess.Players[0].Hand[0].Score)
	assert.Equal(t, []ResourceType{ResourceWood}, supply.Resources)
	assert.Len(t, sess.Deck, 1)
}
