package grid

// Grid dimensions for this variant.
const (
	NumRows  = 18
	NumCols  = 15
	NumCells = NumRows * NumCols
)

// Coords is a column/row pair with the origin at the top-left cell.
type Coords struct {
	X int
	Y int
}

// Index is the row-major address of a cell: y*NumCols + x.
type Index int

// Valid reports whether the index addresses a cell on the grid.
func (i Index) Valid() bool {
	return i >= 0 && i < NumCells
}

// Coords converts the index back to a coordinate pair.
func (i Index) Coords() Coords {
	return IndexToCoords(i)
}

// CoordsToIndex converts a coordinate pair to an index.
// It is the inverse of IndexToCoords for in-grid coordinates.
func CoordsToIndex(c Coords) Index {
	return Index(c.Y*NumCols + c.X)
}

// IndexToCoords converts an index to a coordinate pair.
// It is the inverse of CoordsToIndex for valid indices.
func IndexToCoords(i Index) Coords {
	return Coords{X: int(i) % NumCols, Y: int(i) / NumCols}
}

// IndexOf is the checked form of CoordsToIndex.
func IndexOf(c Coords) (Index, bool) {
	if !InGrid(c) {
		return -1, false
	}
	return CoordsToIndex(c), true
}

// InGrid reports whether the coordinates lie on the board.
func InGrid(c Coords) bool {
	return InBounds(c, GridBounds)
}

// Mirror reflects a coordinate through the centre of the grid.
func Mirror(c Coords) Coords {
	return Coords{X: NumCols - 1 - c.X, Y: NumRows - 1 - c.Y}
}
