// Package sqlite implements the match journal on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/redoubt/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/redoubt/internal/platform/timeouts"
	"github.com/louisbranch/redoubt/internal/services/game/domain/event"
	"github.com/louisbranch/redoubt/internal/services/game/storage"
	"github.com/louisbranch/redoubt/internal/services/game/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store provides SQLite-backed persistence for match journals.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.EventStore = (*Store)(nil)

// Open opens a SQLite store at the provided path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
		cleanPath, timeouts.SQLiteBusy.Milliseconds())
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
//
// Close is nil-safe so callers can defer it in all startup paths.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendEvent implements storage.EventStore.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return event.Event{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(evt.MatchID) == "" {
		return event.Event{}, fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(string(evt.Type)) == "" {
		return event.Event{}, fmt.Errorf("event type is required")
	}

	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	evt.Timestamp = evt.Timestamp.UTC().Truncate(time.Millisecond)
	if evt.PayloadJSON == nil {
		evt.PayloadJSON = []byte("{}")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return event.Event{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO matches (match_id, created_at, last_seq) VALUES (?, ?, 0)
		 ON CONFLICT(match_id) DO NOTHING`,
		evt.MatchID, toMillis(evt.Timestamp),
	); err != nil {
		return event.Event{}, fmt.Errorf("init match seq: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx,
		`UPDATE matches SET last_seq = last_seq + 1 WHERE match_id = ? RETURNING last_seq`,
		evt.MatchID,
	).Scan(&seq); err != nil {
		return event.Event{}, fmt.Errorf("increment match seq: %w", err)
	}
	if evt.Seq != 0 && evt.Seq != uint64(seq) {
		return event.Event{}, fmt.Errorf("append %s seq %d (next is %d): %w", evt.MatchID, evt.Seq, seq, storage.ErrSeqConflict)
	}
	evt.Seq = uint64(seq)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO events (match_id, seq, event_type, timestamp, actor_id, request_id, payload_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		evt.MatchID, seq, string(evt.Type), toMillis(evt.Timestamp), evt.ActorID, evt.RequestID, evt.PayloadJSON,
	); err != nil {
		return event.Event{}, fmt.Errorf("insert event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return event.Event{}, fmt.Errorf("commit: %w", err)
	}
	return evt, nil
}

// ListEvents implements storage.EventStore.
func (s *Store) ListEvents(ctx context.Context, matchID string) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT match_id, seq, event_type, timestamp, actor_id, request_id, payload_json
		 FROM events WHERE match_id = ? ORDER BY seq`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var (
			evt       event.Event
			eventType string
			timestamp int64
		)
		if err := rows.Scan(&evt.MatchID, &evt.Seq, &eventType, &timestamp, &evt.ActorID, &evt.RequestID, &evt.PayloadJSON); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		evt.Type = event.Type(eventType)
		evt.Timestamp = fromMillis(timestamp)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	if len(events) == 0 {
		return nil, storage.ErrNotFound
	}
	return events, nil
}

// ListMatches implements storage.EventStore.
func (s *Store) ListMatches(ctx context.Context, limit int) ([]storage.MatchSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT match_id, created_at, last_seq FROM matches
		 ORDER BY created_at DESC, match_id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var out []storage.MatchSummary
	for rows.Next() {
		var (
			summary   storage.MatchSummary
			createdAt int64
		)
		if err := rows.Scan(&summary.MatchID, &createdAt, &summary.EventCount); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		summary.CreatedAt = fromMillis(createdAt)
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return out, nil
}
