package match

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/redoubt/internal/services/game/domain/event"
	"github.com/louisbranch/redoubt/internal/services/game/domain/grid"
	"github.com/louisbranch/redoubt/internal/services/game/domain/placement"
)

// Fold applies an event to match state. It returns an error if a recognized
// event carries a payload that cannot be decoded.
//
// Pieces is cloned before it is written, so states returned by earlier folds
// are never mutated.
func Fold(state State, evt event.Event) (State, error) {
	switch evt.Type {
	case EventTypeCreated:
		var payload CreatedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("match fold %s: %w", evt.Type, err)
		}
		first, err := grid.ParsePlayer(payload.FirstPlayer)
		if err != nil {
			return state, fmt.Errorf("match fold %s: %w", evt.Type, err)
		}
		state.MatchID = evt.MatchID
		state.Created = true
		state.CreatedAt = evt.Timestamp
		state.FirstPlayer = first
		state.CurrentPlayer = first
		state.Turn = 0
		state.Pieces = placement.Pieces{}
	case EventTypePiecePlaced:
		var payload PiecePlacedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return state, fmt.Errorf("match fold %s: %w", evt.Type, err)
		}
		player, err := grid.ParsePlayer(payload.Player)
		if err != nil {
			return state, fmt.Errorf("match fold %s: %w", evt.Type, err)
		}
		pieces := state.Pieces.Clone()
		pieces[grid.Index(payload.Index)] = placement.Piece{Owner: player, Token: placement.Token(payload.Token)}
		state.Pieces = pieces
		state.Turn++
		state.CurrentPlayer = player.Opponent()
	}
	if evt.Seq > state.LastSeq {
		state.LastSeq = evt.Seq
	}
	return state, nil
}

// Replay folds events in order starting from the zero state.
func Replay(events []event.Event) (State, error) {
	var state State
	for _, evt := range events {
		next, err := Fold(state, evt)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}
