package grid

// Bounds is a rectangle of cells. TopLeft is inside the rectangle and
// BottomRight is outside it on both axes.
type Bounds struct {
	TopLeft     Coords
	BottomRight Coords
}

// GridBounds covers the whole board.
var GridBounds = Bounds{
	TopLeft:     Coords{X: 0, Y: 0},
	BottomRight: Coords{X: NumCols, Y: NumRows},
}

// InBounds reports whether c lies inside b.
func InBounds(c Coords, b Bounds) bool {
	return c.X >= b.TopLeft.X && c.X < b.BottomRight.X &&
		c.Y >= b.TopLeft.Y && c.Y < b.BottomRight.Y
}

// Width returns the number of columns covered.
func (b Bounds) Width() int {
	return b.BottomRight.X - b.TopLeft.X
}

// Height returns the number of rows covered.
func (b Bounds) Height() int {
	return b.BottomRight.Y - b.TopLeft.Y
}

// Area returns the number of cells covered.
func (b Bounds) Area() int {
	return b.Width() * b.Height()
}

// Grow returns b extended by n cells on every side.
func (b Bounds) Grow(n int) Bounds {
	return Bounds{
		TopLeft:     Coords{X: b.TopLeft.X - n, Y: b.TopLeft.Y - n},
		BottomRight: Coords{X: b.BottomRight.X + n, Y: b.BottomRight.Y + n},
	}
}

// MirrorBounds reflects b through the centre of the grid, keeping the
// half-open convention.
func MirrorBounds(b Bounds) Bounds {
	return Bounds{
		TopLeft:     Coords{X: NumCols - b.BottomRight.X, Y: NumRows - b.BottomRight.Y},
		BottomRight: Coords{X: NumCols - b.TopLeft.X, Y: NumRows - b.TopLeft.Y},
	}
}
