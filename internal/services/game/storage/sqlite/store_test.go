package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/redoubt/internal/services/game/domain/event"
	"github.com/louisbranch/redoubt/internal/services/game/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "redoubt.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestCloseIsNilSafe(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
}

func TestAppendEventAssignsDenseSequence(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	now := time.Date(2026, 10, 18, 9, 30, 0, 123456789, time.UTC)

	for i := 1; i <= 3; i++ {
		stored, err := store.AppendEvent(ctx, event.Event{
			MatchID:     "m-1",
			Type:        "match.piece_placed",
			Timestamp:   now,
			ActorID:     "red",
			PayloadJSON: []byte(`{"index":16}`),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if stored.Seq != uint64(i) {
			t.Fatalf("seq = %d, want %d", stored.Seq, i)
		}
	}
	other, err := store.AppendEvent(ctx, event.Event{MatchID: "m-2", Type: "match.created", Timestamp: now})
	if err != nil {
		t.Fatalf("append other match: %v", err)
	}
	if other.Seq != 1 {
		t.Fatalf("other match seq = %d, want 1", other.Seq)
	}

	events, err := store.ListEvents(ctx, "m-1")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	for i, evt := range events {
		if evt.Seq != uint64(i+1) {
			t.Fatalf("event %d seq = %d", i, evt.Seq)
		}
		if !evt.Timestamp.Equal(now.Truncate(time.Millisecond)) {
			t.Fatalf("timestamp = %s, want %s", evt.Timestamp, now.Truncate(time.Millisecond))
		}
		if string(evt.PayloadJSON) != `{"index":16}` || evt.ActorID != "red" {
			t.Fatalf("unexpected event: %+v", evt)
		}
	}
}

func TestAppendEventRejectsStaleExpectedSeq(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, err := store.AppendEvent(ctx, event.Event{MatchID: "m-1", Type: "match.created", Seq: 1}); err != nil {
		t.Fatalf("append first: %v", err)
	}
	_, err := store.AppendEvent(ctx, event.Event{MatchID: "m-1", Type: "match.piece_placed", Seq: 1})
	if !errors.Is(err, storage.ErrSeqConflict) {
		t.Fatalf("expected seq conflict, got %v", err)
	}

	stored, err := store.AppendEvent(ctx, event.Event{MatchID: "m-1", Type: "match.piece_placed", Seq: 2})
	if err != nil {
		t.Fatalf("append with correct seq: %v", err)
	}
	if stored.Seq != 2 {
		t.Fatalf("seq = %d, want 2 after rolled back conflict", stored.Seq)
	}
}

func TestAppendEventValidatesEnvelope(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	if _, err := store.AppendEvent(ctx, event.Event{Type: "match.created"}); err == nil {
		t.Fatal("expected missing match id error")
	}
	if _, err := store.AppendEvent(ctx, event.Event{MatchID: "m-1"}); err == nil {
		t.Fatal("expected missing type error")
	}
}

func TestListEventsNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.ListEvents(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListMatchesNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	base := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		if _, err := store.AppendEvent(ctx, event.Event{
			MatchID:   id,
			Type:      "match.created",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}
	if _, err := store.AppendEvent(ctx, event.Event{MatchID: "old", Type: "match.piece_placed", Timestamp: base.Add(time.Hour)}); err != nil {
		t.Fatalf("append placement: %v", err)
	}

	matches, err := store.ListMatches(ctx, 2)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(matches) != 2 || matches[0].MatchID != "new" || matches[1].MatchID != "mid" {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	all, err := store.ListMatches(ctx, 0)
	if err != nil {
		t.Fatalf("list all matches: %v", err)
	}
	if len(all) != 3 || all[2].MatchID != "old" || all[2].EventCount != 2 {
		t.Fatalf("unexpected matches: %+v", all)
	}
}

func TestCanceledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.AppendEvent(ctx, event.Event{MatchID: "m", Type: "match.created"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}
