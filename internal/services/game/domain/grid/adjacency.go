package grid

type offset struct{ dx, dy int }

var (
	orthogonalOffsets = []offset{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}
	diagonalOffsets   = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// withOffsets applies each offset to i and keeps the results that stay on
// the grid. Offsets never wrap across an edge.
func withOffsets(i Index, offsets []offset) Set {
	out := make(Set, len(offsets))
	if !i.Valid() {
		return out
	}
	from := IndexToCoords(i)
	for _, o := range offsets {
		to := Coords{X: from.X + o.dx, Y: from.Y + o.dy}
		if InGrid(to) {
			out.Add(CoordsToIndex(to))
		}
	}
	return out
}

// OrthogonallyAdjacentTo returns the up to four cells sharing an edge with i.
func OrthogonallyAdjacentTo(i Index) Set {
	return withOffsets(i, orthogonalOffsets)
}

// DiagonallyAdjacentTo returns the up to four cells sharing only a corner
// with i.
func DiagonallyAdjacentTo(i Index) Set {
	return withOffsets(i, diagonalOffsets)
}

// AdjacentTo returns the up to eight cells touching i.
func AdjacentTo(i Index) Set {
	return OrthogonallyAdjacentTo(i).Union(DiagonallyAdjacentTo(i))
}
