package match

import (
	"time"

	"github.com/louisbranch/redoubt/internal/services/game/domain/grid"
	"github.com/louisbranch/redoubt/internal/services/game/domain/placement"
)

// State captures the replayed board of one match.
type State struct {
	MatchID string
	// Created is set once match.created has been folded.
	Created   bool
	CreatedAt time.Time
	// FirstPlayer acts on turn zero; players then alternate.
	FirstPlayer   grid.Player
	CurrentPlayer grid.Player
	// Turn counts accepted placements.
	Turn   int
	Pieces placement.Pieces
	// LastSeq is the sequence of the last folded event.
	LastSeq uint64
}

// CanPlace reports whether the acting player may place token at index.
func (s State) CanPlace(token placement.Token, index grid.Index) bool {
	return s.Created && placement.CanPlace(s.Pieces, s.CurrentPlayer, token, index)
}

// ValidPlacements lists the cells the acting player may place token on.
// A match that was never created has none.
func (s State) ValidPlacements(token placement.Token) grid.Set {
	if !s.Created {
		return grid.Set{}
	}
	return placement.ValidPlacements(s.Pieces, s.CurrentPlayer, token)
}

// PiecesOf returns the cells held by player in ascending order.
func (s State) PiecesOf(player grid.Player) []grid.Index {
	owned := grid.Set{}
	for index, piece := range s.Pieces {
		if piece.Owner == player {
			owned.Add(index)
		}
	}
	return owned.Sorted()
}
