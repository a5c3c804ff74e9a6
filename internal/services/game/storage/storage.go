// Package storage defines persistence interfaces for match journals.
//
// Implementations (e.g., SQLite) live in subpackages.
//
// Common error types:
//   - ErrNotFound: the match has no journal
//   - ErrSeqConflict: another writer appended first
package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/redoubt/internal/platform/errors"
	"github.com/louisbranch/redoubt/internal/services/game/domain/event"
)

// ErrNotFound indicates a requested persistence record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrSeqConflict indicates an append expected a sequence number that another
// writer already took.
var ErrSeqConflict = apperrors.New(apperrors.CodeEventSeqConflict, "event sequence conflict")

// MatchSummary is the listing view of one match journal.
type MatchSummary struct {
	MatchID    string
	CreatedAt  time.Time
	EventCount uint64
}

// EventStore persists match journals.
type EventStore interface {
	// AppendEvent assigns the next per-match sequence number, starting at 1,
	// and stores the event. When evt.Seq is non-zero it is the expected
	// sequence, and ErrSeqConflict is returned if it is not the next one.
	AppendEvent(ctx context.Context, evt event.Event) (event.Event, error)
	// ListEvents returns a match journal in sequence order, or ErrNotFound.
	ListEvents(ctx context.Context, matchID string) ([]event.Event, error)
	// ListMatches returns the most recently created matches first.
	ListMatches(ctx context.Context, limit int) ([]MatchSummary, error)
}
