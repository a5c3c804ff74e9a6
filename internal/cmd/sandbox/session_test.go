package sandbox

import (
	"context"
	"io"
	"testing"

	"github.com/louisbranch/redoubt/internal/services/game/app"
	"github.com/louisbranch/redoubt/internal/services/game/storage/sqlite"
)

func newTestSession(t *testing.T, ctx context.Context, cfg Config, out io.Writer) (*Session, error) {
	t.Helper()
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	svc, err := app.NewService(store)
	if err != nil {
		return nil, err
	}
	return NewSession(ctx, svc, cfg, out)
}
