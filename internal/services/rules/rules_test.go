package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mortinious/tiles-game/internal/model"
)

func resourceTile(resources ...model.ResourceType) *model.TileInstance {
	return &model.TileInstance{
		Kind:      model.TileKindResource,
		Name:      "forest",
		Resources: resources,
	}
}

func cultureTile(cost ...model.ResourceType) *model.TileInstance {
	return &model.TileInstance{
		Kind: model.TileKindCulture,
		Name: "temple",
		Cost: cost,
	}
}

func TestValidatePlacementZeroCost(t *testing.T) {
	board := model.NewBoard(5, 5)

	err := ValidatePlacement(board, cultureTile(), 2, 2)
	assert.NoError(t, err)
}

func TestValidatePlacementOutOfBounds(t *testing.T) {
	board := model.NewBoard(5, 5)

	assert.ErrorIs(t, ValidatePlacement(board, cultureTile(), -1, 0), model.ErrOutOfBounds)
	assert.ErrorIs(t, ValidatePlacement(board, cultureTile(), 0, -1), model.ErrOutOfBounds)
	assert.ErrorIs(t, ValidatePlacement(board, cultureTile(), 5, 0), model.ErrOutOfBounds)
	assert.ErrorIs(t, ValidatePlacement(board, cultureTile(), 0, 5), model.ErrOutOfBounds)
}

func TestValidatePlacementOccupied(t *testing.T) {
	board := model.NewBoard(5, 5)
	require.NoError(t, board.Place(resourceTile(model.ResourceWood), 2, 2))

	err := ValidatePlacement(board, cultureTile(), 2, 2)
	assert.ErrorIs(t, err, model.ErrCellOccupied)
}

func TestValidatePlacementCostCoveredByOneNeighbor(t *testing.T) {
	board := model.NewBoard(5, 5)
	require.NoError(t, board.Place(resourceTile(model.ResourceStone, model.ResourceStone), 1, 2))

	err := ValidatePlacement(board, cultureTile(model.ResourceStone, model.ResourceStone), 2, 2)
	assert.NoError(t, err)
}

func TestValidatePlacementCostCombinedAcrossNeighbors(t *testing.T) {
	board := model.NewBoard(5, 5)
	require.NoError(t, board.Place(resourceTile(model.ResourceStone), 1, 2))
	require.NoError(t, board.Place(resourceTile(model.ResourceGold), 2, 1))

	err := ValidatePlacement(board, cultureTile(model.ResourceStone, model.ResourceGold), 2, 2)
	assert.NoError(t, err)
}

func TestValidatePlacementCostNotMet(t *testing.T) {
	board := model.NewBoard(5, 5)
	require.NoError(t, board.Place(resourceTile(model.ResourceWood), 1, 2))

	err := ValidatePlacement(board, cultureTile(model.ResourceStone), 2, 2)
	assert.ErrorIs(t, err, model.ErrCostNotMet)
}

func TestValidatePlacementCostPartiallyMet(t *testing.T) {
	board := model.NewBoard(5, 5)
	require.NoError(t, board.Place(resourceTile(model.ResourceStone), 1, 2))

	err := ValidatePlacement(board, cultureTile(model.ResourceStone, model.ResourceStone), 2, 2)
	assert.ErrorIs(t, err, model.ErrCostNotMet)
}

func TestValidatePlacementIgnoresDiagonals(t *testing.T) {
	board := model.NewBoard(5, 5)
	require.NoError(t, board.Place(resourceTile(model.ResourceStone), 1, 1))

	err := ValidatePlacement(board, cultureTile(model.ResourceStone), 2, 2)
	assert.ErrorIs(t, err, model.ErrCostNotMet)
}

func TestValidatePlacementIgnoresCultureNeighbors(t *testing.T) {
	board := model.NewBoard(5, 5)
	neighbor := cultureTile()
	neighbor.Score = 5
	require.NoError(t, board.Place(neighbor, 1, 2))

	err := ValidatePlacement(board, cultureTile(model.ResourceStone), 2, 2)
	assert.ErrorIs(t, err, model.ErrCostNotMet)
}

func TestValidatePlacementDoesNotMutate(t *testing.T) {
	board := model.NewBoard(5, 5)
	neighbor := resourceTile(model.ResourceStone, model.ResourceStone)
	require.NoError(t, board.Place(neighbor, 1, 2))
	tile := cultureTile(model.ResourceStone)

	require.NoError(t, ValidatePlacement(board, tile, 2, 2))

	assert.Len(t, neighbor.Resources, 2)
	assert.Len(t, tile.Cost, 1)
	assert.Nil(t, board.At(2, 2))
}

func TestAdjacentResourceTilesScanOrder(t *testing.T) {
	board := model.NewBoard(5, 5)
	west := resourceTile(model.ResourceWood)
	north := resourceTile(model.ResourceWheat)
	east := resourceTile(model.ResourceStone)
	south := resourceTile(model.ResourceGold)
	require.NoError(t, board.Place(west, 1, 2))
	require.NoError(t, board.Place(north, 2, 1))
	require.NoError(t, board.Place(east, 3, 2))
	require.NoError(t, board.Place(south, 2, 3))

	refs := AdjacentResourceTiles(board, 2, 2)
	require.Len(t, refs, 4)
	assert.Same(t, west, refs[0].Tile)
	assert.Same(t, north, refs[1].Tile)
	assert.Same(t, east, refs[2].Tile)
	assert.Same(t, south, refs[3].Tile)
}

func TestAdjacentResourceTilesAtBoardEdge(t *testing.T) {
	board := model.NewBoard(5, 5)
	east := resourceTile(model.ResourceWood)
	require.NoError(t, board.Place(east, 1, 0))

	refs := AdjacentResourceTiles(board, 0, 0)
	require.Len(t, refs, 1)
	assert.Same(t, east, refs[0].Tile)
}
