// Package match is the write model of a single match: it validates commands
// against replayed state and folds accepted events back into it.
package match

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	apperrors "github.com/louisbranch/redoubt/internal/platform/errors"
	"github.com/louisbranch/redoubt/internal/services/game/domain/command"
	"github.com/louisbranch/redoubt/internal/services/game/domain/event"
	"github.com/louisbranch/redoubt/internal/services/game/domain/grid"
	"github.com/louisbranch/redoubt/internal/services/game/domain/placement"
)

const (
	CommandTypeCreate    command.Type = "match.create"
	CommandTypePlace     command.Type = "match.place"
	EventTypeCreated     event.Type   = "match.created"
	EventTypePiecePlaced event.Type   = "match.piece_placed"
)

// Decide returns the decision for a match command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}
	if strings.TrimSpace(cmd.MatchID) == "" {
		return reject(apperrors.CodeMatchIDRequired, "match id is required", nil)
	}

	switch cmd.Type {
	case CommandTypeCreate:
		return decideCreate(state, cmd, now)
	case CommandTypePlace:
		return decidePlace(state, cmd, now)
	default:
		return reject(apperrors.CodeCommandTypeUnknown, "command type "+string(cmd.Type)+" is not supported", nil)
	}
}

func decideCreate(state State, cmd command.Command, now func() time.Time) command.Decision {
	if state.Created {
		return reject(apperrors.CodeMatchAlreadyCreated, "match already created", nil)
	}
	var payload CreatePayload
	if len(cmd.PayloadJSON) > 0 {
		if err := json.Unmarshal(cmd.PayloadJSON, &payload); err != nil {
			return reject(apperrors.CodeCommandPayloadBroken, "decode create payload: "+err.Error(), nil)
		}
	}
	first := grid.Red
	if strings.TrimSpace(payload.FirstPlayer) != "" {
		parsed, err := grid.ParsePlayer(payload.FirstPlayer)
		if err != nil {
			return reject(apperrors.CodePlayerInvalid, err.Error(), map[string]string{"Player": payload.FirstPlayer})
		}
		first = parsed
	}

	payloadJSON, _ := json.Marshal(CreatedPayload{FirstPlayer: first.String()})
	return command.Accept(command.NewEvent(cmd, EventTypeCreated, payloadJSON, now().UTC()))
}

func decidePlace(state State, cmd command.Command, now func() time.Time) command.Decision {
	if !state.Created {
		return reject(apperrors.CodeMatchNotCreated, "match has not been created", nil)
	}
	var payload PlacePayload
	if err := json.Unmarshal(cmd.PayloadJSON, &payload); err != nil {
		return reject(apperrors.CodeCommandPayloadBroken, "decode place payload: "+err.Error(), nil)
	}
	player, err := grid.ParsePlayer(payload.Player)
	if err != nil {
		return reject(apperrors.CodePlayerInvalid, err.Error(), map[string]string{"Player": payload.Player})
	}
	token := placement.Token(strings.TrimSpace(payload.Token))
	if token == "" {
		return reject(apperrors.CodeTokenRequired, "token is required", nil)
	}
	if payload.Index == nil {
		return reject(apperrors.CodeCellOutOfRange, "index is required", nil)
	}
	if player != state.CurrentPlayer {
		return reject(apperrors.CodeNotPlayerTurn, "it is "+state.CurrentPlayer.String()+"'s turn",
			map[string]string{"Player": player.String(), "Current": state.CurrentPlayer.String()})
	}

	index := grid.Index(*payload.Index)
	if err := placement.Check(state.Pieces, player, token, index); err != nil {
		return rejectErr(err)
	}

	payloadJSON, _ := json.Marshal(PiecePlacedPayload{
		Player: player.String(),
		Token:  string(token),
		Index:  int(index),
	})
	return command.Accept(command.NewEvent(cmd, EventTypePiecePlaced, payloadJSON, now().UTC()))
}

func reject(code apperrors.Code, message string, metadata map[string]string) command.Decision {
	return command.Reject(command.Rejection{Code: string(code), Message: message, Metadata: metadata})
}

func rejectErr(err error) command.Decision {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return reject(domainErr.Code, domainErr.Message, domainErr.Metadata)
	}
	return reject(apperrors.CodeUnknown, err.Error(), nil)
}
