package model

// Board is the shared placement grid for one session. Cells are indexed
// Cells[x][y]; nil means empty. Once a cell holds a tile it is never cleared,
// though a resource tile's resource list may be drained to zero.
type Board struct {
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Cells  [][]*TileInstance `json:"cells"`
}

// NewBoard creates an empty board of the given dimensions.
func NewBoard(width, height int) *Board {
	cells := make([][]*TileInstance, width)
	for x := range cells {
		cells[x] = make([]*TileInstance, height)
	}
	return &Board{
		Width:  width,
		Height: height,
		Cells:  cells,
	}
}

// Clone returns a deep copy of the board and its placed tiles.
func (b *Board) Clone() *Board {
	clone := NewBoard(b.Width, b.Height)
	for x := range b.Cells {
		for y, tile := range b.Cells[x] {
			clone.Cells[x][y] = tile.Clone()
		}
	}
	return clone
}

// CellRef points at an occupied cell during adjacency scans.
type CellRef struct {
	X    int
	Y    int
	Tile *TileInstance
}

// InBounds reports whether (x, y) is on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// At returns the tile at (x, y), or nil if the cell is empty or out of bounds.
func (b *Board) At(x, y int) *TileInstance {
	if !b.InBounds(x, y) {
		return nil
	}
	return b.Cells[x][y]
}

// IsEmpty reports whether (x, y) is in bounds and unoccupied. Out-of-bounds
// coordinates report false so callers treat them as unplaceable.
func (b *Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.Cells[x][y] == nil
}

// Place commits a tile onto an empty in-bounds cell. This is the only board
// mutation entry point; occupied cells are never overwritten.
func (b *Board) Place(tile *TileInstance, x, y int) error {
	if !b.InBounds(x, y) {
		return ErrOutOfBounds
	}
	if b.Cells[x][y] != nil {
		return ErrCellOccupied
	}
	b.Cells[x][y] = tile
	return nil
}

// Adjacent returns the occupied orthogonal neighbors of (x, y) in west,
// north, east, south order, omitting empty cells and cells off the board.
func (b *Board) Adjacent(x, y int) []CellRef {
	coords := [4][2]int{
		{x - 1, y},
		{x, y - 1},
		{x + 1, y},
		{x, y + 1},
	}
	var refs []CellRef
	for _, c := range coords {
		if tile := b.At(c[0], c[1]); tile != nil {
			refs = append(refs, CellRef{X: c[0], Y: c[1], Tile: tile})
		}
	}
	return refs
}

// OccupiedCount returns the number of placed tiles.
func (b *Board) OccupiedCount() int {
	count := 0
	for x := 0; x < b.Width; x++ {
		for y := 0; y < b.Height; y++ {
			if b.Cells[x][y] != nil {
				count++
			}
		}
	}
	return count
}
