package sandbox

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/redoubt/internal/platform/errors"
	errori18n "github.com/louisbranch/redoubt/internal/platform/errors/i18n"
	"github.com/louisbranch/redoubt/internal/platform/i18n/catalog"
	"github.com/louisbranch/redoubt/internal/platform/id"
	"github.com/louisbranch/redoubt/internal/platform/requestctx"
	"github.com/louisbranch/redoubt/internal/services/game/app"
	"github.com/louisbranch/redoubt/internal/services/game/domain/grid"
	"github.com/louisbranch/redoubt/internal/services/game/domain/match"
	"github.com/louisbranch/redoubt/internal/services/game/domain/placement"
	"golang.org/x/text/message"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

const (
	defaultToken = placement.Token("piece")
	matchesLimit = 10
)

// Session is one interactive sandbox match.
type Session struct {
	svc     *app.Service
	out     io.Writer
	locale  string
	printer *message.Printer
	state   match.State
}

// NewSession resumes cfg.MatchID, or creates a match when it is empty.
func NewSession(ctx context.Context, svc *app.Service, cfg Config, out io.Writer) (*Session, error) {
	locale := catalog.Default().Resolve(cfg.Locale)
	s := &Session{
		svc:     svc,
		out:     out,
		locale:  locale,
		printer: catalog.Default().Printer(locale),
	}

	var err error
	if cfg.MatchID != "" {
		s.state, err = svc.Load(ctx, cfg.MatchID)
		if err != nil {
			return nil, fmt.Errorf("resume match %s: %w", cfg.MatchID, err)
		}
		return s, nil
	}
	first, err := grid.ParsePlayer(cfg.FirstPlayer)
	if err != nil {
		return nil, err
	}
	s.state, err = svc.CreateMatch(ctx, first)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	log.Printf("created match %s, %s moves first", s.state.MatchID, first)
	return s, nil
}

// MatchID returns the id of the match this session plays.
func (s *Session) MatchID() string {
	return s.state.MatchID
}

// Serve reads commands from in until quit, EOF or ctx is done.
func (s *Session) Serve(ctx context.Context, in io.Reader) error {
	s.println("sandbox.welcome", s.state.MatchID)
	s.printTurn()

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		s.printer.Fprintf(s.out, "sandbox.prompt", s.playerName(s.state.CurrentPlayer))
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		requestID, err := id.NewID()
		if err != nil {
			return fmt.Errorf("new request id: %w", err)
		}
		done, err := s.Exec(requestctx.WithRequestID(ctx, requestID), scanner.Text())
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Exec runs one command line. It reports done when the session should end.
// Rejected placements are printed, not returned.
func (s *Session) Exec(ctx context.Context, line string) (done bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch strings.ToLower(fields[0]) {
	case "place", "p":
		return false, s.place(ctx, fields[1:])
	case "moves", "m":
		return false, s.moves(ctx, fields[1:])
	case "board", "b":
		if err := s.sync(ctx); err != nil {
			return false, s.reject(err)
		}
		RenderBoard(s.out, s.state)
		s.println("sandbox.legend")
	case "matches":
		return false, s.matches(ctx)
	case "help", "h", "?":
		s.println("sandbox.help")
	case "quit", "exit", "q":
		s.println("sandbox.bye")
		return true, nil
	default:
		s.println("sandbox.unknown", fields[0])
	}
	return false, nil
}

func (s *Session) place(ctx context.Context, args []string) error {
	if len(args) != 3 {
		s.println("sandbox.usage.place")
		return nil
	}
	token := placement.Token(args[0])
	x, errX := strconv.Atoi(args[1])
	y, errY := strconv.Atoi(args[2])
	if errX != nil || errY != nil {
		s.println("sandbox.usage.coords")
		return nil
	}

	coords := grid.Coords{X: x, Y: y}
	// Off-grid coordinates would alias onto another cell, so they map to an
	// index the placement rules reject as out of range.
	index, ok := grid.IndexOf(coords)
	if !ok {
		index = grid.Index(-1)
	}

	// Another session may have moved since the last prompt.
	if err := s.sync(ctx); err != nil {
		return s.reject(err)
	}
	player := s.state.CurrentPlayer
	next, err := s.svc.Place(ctx, s.state.MatchID, player, token, index)
	if err != nil {
		return s.reject(err)
	}
	s.state = next
	log.Printf("match %s: %s placed %s at cell %d", next.MatchID, player, token, index)
	s.println("sandbox.placed", s.playerName(player), string(token), x, y, int(index))
	s.printTurn()
	return nil
}

func (s *Session) moves(ctx context.Context, args []string) error {
	token := defaultToken
	if len(args) > 0 {
		token = placement.Token(args[0])
	}
	if err := s.sync(ctx); err != nil {
		return s.reject(err)
	}
	cells, err := s.svc.ValidPlacements(ctx, s.state.MatchID, token)
	if err != nil {
		return s.reject(err)
	}
	s.println("sandbox.moves", cells.Len(), s.playerName(s.state.CurrentPlayer))
	sorted := cells.Sorted()
	parts := make([]string, 0, len(sorted))
	for _, index := range sorted {
		c := index.Coords()
		parts = append(parts, fmt.Sprintf("(%d,%d)", c.X, c.Y))
	}
	fmt.Fprintln(s.out, "  "+strings.Join(parts, " "))
	return nil
}

func (s *Session) matches(ctx context.Context) error {
	summaries, err := s.svc.ListMatches(ctx, matchesLimit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		s.println("sandbox.matches.empty")
		return nil
	}
	s.println("sandbox.matches.header")
	for _, summary := range summaries {
		fmt.Fprint(s.out, "  ")
		s.println("sandbox.matches.row", summary.MatchID, summary.CreatedAt.Format(time.RFC3339), int(summary.EventCount))
	}
	return nil
}

// sync reloads the match journal into the session state.
func (s *Session) sync(ctx context.Context) error {
	state, err := s.svc.Load(ctx, s.state.MatchID)
	if err != nil {
		return err
	}
	s.state = state
	return nil
}

// reject prints domain errors as localized rejections and returns the rest.
func (s *Session) reject(err error) error {
	if apperrors.CodeOf(err) == apperrors.CodeUnknown {
		return err
	}
	st := status.Convert(errori18n.Status(err, s.locale))
	log.Printf("match %s: rejected %s (%s): %s", s.state.MatchID, apperrors.CodeOf(err), st.Code(), st.Message())
	s.println("sandbox.rejected", localizedMessage(st))
	return nil
}

// localizedMessage returns the user-facing message attached to st, or its
// internal message when none is attached.
func localizedMessage(st *status.Status) string {
	for _, detail := range st.Details() {
		if lm, ok := detail.(*errdetails.LocalizedMessage); ok {
			return lm.GetMessage()
		}
	}
	return st.Message()
}

func (s *Session) printTurn() {
	s.println("sandbox.turn", s.state.Turn+1, s.playerName(s.state.CurrentPlayer))
}

func (s *Session) playerName(p grid.Player) string {
	return s.printer.Sprintf("core.player." + p.String())
}

func (s *Session) println(key string, args ...any) {
	fmt.Fprintln(s.out, s.printer.Sprintf(key, args...))
}
