// Package placement decides where a player may put a new piece.
//
// Legality depends only on the occupancy snapshot and the player's spawn ring.
// The functions read the snapshot and never mutate it; callers must not
// mutate the board while ValidPlacements is scanning it.
package placement

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/redoubt/internal/platform/errors"
	"github.com/louisbranch/redoubt/internal/services/game/domain/grid"
)

// Token is the kind of piece being placed. No token restricts placement
// today; it is carried so that token-specific rules have a place to land.
type Token string

// Piece is a token on the board together with its owner.
type Piece struct {
	Owner grid.Player
	Token Token
}

// Occupancy is a read-only view of which cells hold a piece.
type Occupancy interface {
	PieceAt(grid.Index) (Piece, bool)
}

// Pieces is a sparse board keyed by cell index. A missing key is an empty
// cell.
type Pieces map[grid.Index]Piece

// PieceAt implements Occupancy.
func (p Pieces) PieceAt(i grid.Index) (Piece, bool) {
	piece, ok := p[i]
	return piece, ok
}

// Clone returns an independent copy.
func (p Pieces) Clone() Pieces {
	out := make(Pieces, len(p))
	for i, piece := range p {
		out[i] = piece
	}
	return out
}

// Check explains why player may not place token at index, or returns nil
// when the placement is legal. The cell must be on the grid, empty, and on
// the player's own spawn ring.
func Check(board Occupancy, player grid.Player, token Token, index grid.Index) error {
	meta := map[string]string{
		"Index":  strconv.Itoa(int(index)),
		"Player": player.String(),
		"Token":  string(token),
	}
	if !index.Valid() {
		return apperrors.WithMetadata(apperrors.CodeCellOutOfRange,
			fmt.Sprintf("cell %d is outside the grid", index), meta)
	}
	if !player.Valid() {
		return apperrors.WithMetadata(apperrors.CodePlayerInvalid,
			fmt.Sprintf("player %s cannot place pieces", player), meta)
	}
	if board != nil {
		if _, occupied := board.PieceAt(index); occupied {
			return apperrors.WithMetadata(apperrors.CodeCellOccupied,
				fmt.Sprintf("cell %d is occupied", index), meta)
		}
	}
	if !player.Spawn().Contains(index) {
		return apperrors.WithMetadata(apperrors.CodeCellOutsideSpawn,
			fmt.Sprintf("cell %d is outside %s spawn", index, player), meta)
	}
	return nil
}

// CanPlace reports whether player may place token at index. It applies the
// same rules as Check without building an explanation.
func CanPlace(board Occupancy, player grid.Player, token Token, index grid.Index) bool {
	if !index.Valid() || !player.Valid() {
		return false
	}
	if board != nil {
		if _, occupied := board.PieceAt(index); occupied {
			return false
		}
	}
	return player.Spawn().Contains(index)
}

// ValidPlacements returns every cell where player may place token.
func ValidPlacements(board Occupancy, player grid.Player, token Token) grid.Set {
	out := grid.Set{}
	for y := 0; y < grid.NumRows; y++ {
		for x := 0; x < grid.NumCols; x++ {
			index := grid.CoordsToIndex(grid.Coords{X: x, Y: y})
			if CanPlace(board, player, token, index) {
				out.Add(index)
			}
		}
	}
	return out
}
