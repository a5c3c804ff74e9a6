// Package sandbox parses sandbox command flags and runs an interactive match
// against a local SQLite journal.
package sandbox

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	entrypoint "github.com/louisbranch/redoubt/internal/platform/cmd"
	"github.com/louisbranch/redoubt/internal/services/game/app"
	"github.com/louisbranch/redoubt/internal/services/game/domain/grid"
	"github.com/louisbranch/redoubt/internal/services/game/storage/sqlite"
)

// Config holds sandbox command configuration.
type Config struct {
	DBPath      string `env:"REDOUBT_SANDBOX_DB" envDefault:"redoubt-sandbox.db"`
	Locale      string `env:"REDOUBT_LOCALE" envDefault:"en-US"`
	FirstPlayer string `env:"REDOUBT_FIRST_PLAYER" envDefault:"red"`
	// MatchID resumes an existing match instead of creating one.
	MatchID string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the sandbox SQLite database")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for sandbox output (en-US, pt-BR)")
	fs.StringVar(&cfg.FirstPlayer, "first", cfg.FirstPlayer, "Player who moves first in a new match (red, blue)")
	fs.StringVar(&cfg.MatchID, "match", cfg.MatchID, "Resume the match with this id")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if _, err := grid.ParsePlayer(cfg.FirstPlayer); err != nil {
		return Config{}, fmt.Errorf("first player: %w", err)
	}
	cfg.MatchID = strings.TrimSpace(cfg.MatchID)
	return cfg, nil
}

// Run starts the sandbox on stdin and stdout.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSandbox, func(ctx context.Context) error {
		return run(ctx, cfg, os.Stdin, os.Stdout)
	})
}

func run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open sandbox store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	svc, err := app.NewService(store)
	if err != nil {
		return err
	}
	session, err := NewSession(ctx, svc, cfg, out)
	if err != nil {
		return err
	}
	return session.Serve(ctx, in)
}
