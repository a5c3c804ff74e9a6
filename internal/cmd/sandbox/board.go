package sandbox

import (
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/redoubt/internal/services/game/domain/grid"
	"github.com/louisbranch/redoubt/internal/services/game/domain/match"
)

// RenderBoard writes the grid row by row. Pieces print as R or B, empty spawn
// ring cells as r or b, home cells as # and every other cell as a dot.
func RenderBoard(w io.Writer, state match.State) {
	var b strings.Builder
	b.WriteString("   ")
	for x := 0; x < grid.NumCols; x++ {
		fmt.Fprintf(&b, " %d", x%10)
	}
	b.WriteByte('\n')
	for y := 0; y < grid.NumRows; y++ {
		fmt.Fprintf(&b, "%2d ", y)
		for x := 0; x < grid.NumCols; x++ {
			b.WriteByte(' ')
			b.WriteByte(cellGlyph(state, grid.CoordsToIndex(grid.Coords{X: x, Y: y})))
		}
		b.WriteByte('\n')
	}
	_, _ = io.WriteString(w, b.String())
}

func cellGlyph(state match.State, index grid.Index) byte {
	if piece, ok := state.Pieces.PieceAt(index); ok {
		if piece.Owner == grid.Blue {
			return 'B'
		}
		return 'R'
	}
	switch {
	case grid.IsRedSpawn(index):
		return 'r'
	case grid.IsBlueSpawn(index):
		return 'b'
	case grid.IsRedHome(index), grid.IsBlueHome(index):
		return '#'
	}
	return '.'
}
