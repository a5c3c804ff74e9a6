// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Placement errors
	CodeCellOutOfRange   Code = "CELL_OUT_OF_RANGE"
	CodeCellOccupied     Code = "CELL_OCCUPIED"
	CodeCellOutsideSpawn Code = "CELL_OUTSIDE_SPAWN"
	CodePlayerInvalid    Code = "PLAYER_INVALID"
	CodeTokenRequired    Code = "TOKEN_REQUIRED"

	// Match errors
	CodeMatchIDRequired      Code = "MATCH_ID_REQUIRED"
	CodeMatchAlreadyCreated  Code = "MATCH_ALREADY_CREATED"
	CodeMatchNotCreated      Code = "MATCH_NOT_CREATED"
	CodeNotPlayerTurn        Code = "NOT_PLAYER_TURN"
	CodeCommandTypeUnknown   Code = "COMMAND_TYPE_UNKNOWN"
	CodeCommandPayloadBroken Code = "COMMAND_PAYLOAD_INVALID"

	// Storage errors
	CodeNotFound         Code = "NOT_FOUND"
	CodeEventSeqConflict Code = "EVENT_SEQ_CONFLICT"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeCellOutOfRange,
		CodePlayerInvalid,
		CodeTokenRequired,
		CodeMatchIDRequired,
		CodeCommandTypeUnknown,
		CodeCommandPayloadBroken:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeCellOccupied,
		CodeCellOutsideSpawn,
		CodeMatchNotCreated,
		CodeNotPlayerTurn:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// AlreadyExists - unique resource constraint
	case CodeMatchAlreadyCreated:
		return codes.AlreadyExists

	// Aborted - concurrent writer won the race
	case CodeEventSeqConflict:
		return codes.Aborted

	default:
		return codes.Internal
	}
}
