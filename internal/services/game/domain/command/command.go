// Package command defines the command envelope and decision contract used on
// the match write path.
//
// Commands express intent from callers. Deciders turn a command and the
// current state into either events or rejections, never both.
package command

import (
	"time"

	"github.com/louisbranch/redoubt/internal/services/game/domain/event"
)

// Type identifies a command kind, e.g. "match.place".
type Type string

// Command is a request to change one match.
type Command struct {
	MatchID     string
	Type        Type
	ActorID     string
	RequestID   string
	PayloadJSON []byte
}

// Decision represents the pure outcome of handling a command.
type Decision struct {
	Events     []event.Event
	Rejections []Rejection
}

// Rejection captures a domain-level reason a command was declined.
type Rejection struct {
	Code     string
	Message  string
	Metadata map[string]string
}

// Accepted reports whether the decision carries no rejections.
func (d Decision) Accepted() bool {
	return len(d.Rejections) == 0
}

// Accept returns a decision that emits the provided events.
func Accept(events ...event.Event) Decision {
	return Decision{Events: append([]event.Event(nil), events...)}
}

// Reject returns a decision that carries the provided rejections.
func Reject(rejections ...Rejection) Decision {
	return Decision{Rejections: append([]Rejection(nil), rejections...)}
}

// NewEvent builds an event by copying the envelope fields from cmd.
func NewEvent(cmd Command, eventType event.Type, payloadJSON []byte, now time.Time) event.Event {
	return event.Event{
		MatchID:     cmd.MatchID,
		Type:        eventType,
		Timestamp:   now,
		ActorID:     cmd.ActorID,
		RequestID:   cmd.RequestID,
		PayloadJSON: payloadJSON,
	}
}
