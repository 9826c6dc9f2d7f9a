package rules

import "github.com/mortinious/tiles-game/internal/model"

// ValidatePlacement checks whether the tile may legally be placed at (x, y).
// Zero-cost tiles only need an empty in-bounds cell. Costed tiles additionally
// need the combined resources of adjacent resource tiles to cover every
// required tag. Validation is feasibility only; which neighbor actually pays
// is decided at payment time.
func ValidatePlacement(board *model.Board, tile *model.TileInstance, x, y int) error {
	if !board.InBounds(x, y) {
		return model.ErrOutOfBounds
	}
	if !board.IsEmpty(x, y) {
		return model.ErrCellOccupied
	}
	if tile.ZeroCost() {
		return nil
	}

	required := make([]model.ResourceType, len(tile.Cost))
	copy(required, tile.Cost)

	for _, ref := range AdjacentResourceTiles(board, x, y) {
		for _, res := range ref.Tile.Resources {
			for i, req := range required {
				if req == res {
					required = append(required[:i], required[i+1:]...)
					break
				}
			}
		}
		if len(required) == 0 {
			return nil
		}
	}
	return model.ErrCostNotMet
}

// AdjacentResourceTiles returns the resource tiles orthogonally adjacent to
// (x, y), in the board's west/north/east/south scan order.
func AdjacentResourceTiles(board *model.Board, x, y int) []model.CellRef {
	var refs []model.CellRef
	for _, ref := range board.Adjacent(x, y) {
		if ref.Tile.Kind == model.TileKindResource {
			refs = append(refs, ref)
		}
	}
	return refs
}
