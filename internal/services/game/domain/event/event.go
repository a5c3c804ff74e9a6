// Package event defines the event envelope emitted by accepted match
// decisions.
//
// Events are immutable facts. Storage assigns Seq when an event is appended;
// everything else is fixed by the decider that produced it.
package event

import "time"

// Type identifies an event kind, e.g. "match.piece_placed".
type Type string

// Event is one entry of a match journal.
type Event struct {
	MatchID     string
	Seq         uint64
	Type        Type
	Timestamp   time.Time
	ActorID     string
	RequestID   string
	PayloadJSON []byte
}
