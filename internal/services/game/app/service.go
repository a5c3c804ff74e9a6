package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/louisbranch/redoubt/internal/platform/errors"
	"github.com/louisbranch/redoubt/internal/platform/id"
	platformotel "github.com/louisbranch/redoubt/internal/platform/otel"
	"github.com/louisbranch/redoubt/internal/platform/requestctx"
	"github.com/louisbranch/redoubt/internal/services/game/domain/command"
	"github.com/louisbranch/redoubt/internal/services/game/domain/grid"
	"github.com/louisbranch/redoubt/internal/services/game/domain/match"
	"github.com/louisbranch/redoubt/internal/services/game/domain/placement"
	"github.com/louisbranch/redoubt/internal/services/game/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/redoubt/internal/services/game/app"

// ErrStoreRequired indicates a service was built without an event store.
var ErrStoreRequired = errors.New("event store is required")

// Service executes match commands against an event store.
type Service struct {
	store  storage.EventStore
	now    func() time.Time
	newID  func() (string, error)
	tracer trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how match and request IDs are minted.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithTracerProvider records spans on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewService builds a match service over store.
func NewService(store storage.EventStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	s := &Service{
		store:  store,
		now:    time.Now,
		newID:  id.NewID,
		tracer: platformotel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateMatch starts a new match where firstPlayer moves first.
func (s *Service) CreateMatch(ctx context.Context, firstPlayer grid.Player) (_ match.State, err error) {
	ctx, span := s.tracer.Start(ctx, "match.CreateMatch",
		trace.WithAttributes(attribute.String("match.first_player", firstPlayer.String())))
	defer func() { endSpan(span, err) }()

	matchID, err := s.newID()
	if err != nil {
		return match.State{}, fmt.Errorf("new match id: %w", err)
	}
	span.SetAttributes(attribute.String("match.id", matchID))

	payload, err := json.Marshal(match.CreatePayload{FirstPlayer: firstPlayer.String()})
	if err != nil {
		return match.State{}, fmt.Errorf("encode create payload: %w", err)
	}
	return s.execute(ctx, match.State{}, command.Command{
		MatchID:     matchID,
		Type:        match.CommandTypeCreate,
		ActorID:     firstPlayer.String(),
		PayloadJSON: payload,
	})
}

// Place places token for player at index and returns the new state. Illegal
// placements return an *errors.Error carrying the rejection code.
func (s *Service) Place(ctx context.Context, matchID string, player grid.Player, token placement.Token, index grid.Index) (_ match.State, err error) {
	ctx, span := s.tracer.Start(ctx, "match.Place", trace.WithAttributes(
		attribute.String("match.id", matchID),
		attribute.String("match.player", player.String()),
		attribute.String("match.token", string(token)),
		attribute.Int("match.index", int(index)),
	))
	defer func() { endSpan(span, err) }()

	state, err := s.load(ctx, matchID)
	if err != nil {
		return match.State{}, err
	}
	i := int(index)
	payload, err := json.Marshal(match.PlacePayload{Player: player.String(), Token: string(token), Index: &i})
	if err != nil {
		return state, fmt.Errorf("encode place payload: %w", err)
	}
	return s.execute(ctx, state, command.Command{
		MatchID:     matchID,
		Type:        match.CommandTypePlace,
		ActorID:     player.String(),
		PayloadJSON: payload,
	})
}

// Load replays a match journal into state.
func (s *Service) Load(ctx context.Context, matchID string) (_ match.State, err error) {
	ctx, span := s.tracer.Start(ctx, "match.Load",
		trace.WithAttributes(attribute.String("match.id", matchID)))
	defer func() { endSpan(span, err) }()
	return s.load(ctx, matchID)
}

// ValidPlacements lists the cells where the player to move may place token.
func (s *Service) ValidPlacements(ctx context.Context, matchID string, token placement.Token) (_ grid.Set, err error) {
	ctx, span := s.tracer.Start(ctx, "match.ValidPlacements", trace.WithAttributes(
		attribute.String("match.id", matchID),
		attribute.String("match.token", string(token)),
	))
	defer func() { endSpan(span, err) }()

	state, err := s.load(ctx, matchID)
	if err != nil {
		return nil, err
	}
	cells := state.ValidPlacements(token)
	span.SetAttributes(attribute.Int("match.valid_cells", cells.Len()))
	return cells, nil
}

// ListMatches returns summaries of the most recently created matches.
func (s *Service) ListMatches(ctx context.Context, limit int) (_ []storage.MatchSummary, err error) {
	ctx, span := s.tracer.Start(ctx, "match.ListMatches",
		trace.WithAttributes(attribute.Int("match.limit", limit)))
	defer func() { endSpan(span, err) }()

	summaries, err := s.store.ListMatches(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return summaries, nil
}

func (s *Service) load(ctx context.Context, matchID string) (match.State, error) {
	if matchID == "" {
		return match.State{}, apperrors.New(apperrors.CodeMatchIDRequired, "match id is required")
	}
	events, err := s.store.ListEvents(ctx, matchID)
	if err != nil {
		return match.State{}, fmt.Errorf("load match %s: %w", matchID, err)
	}
	state, err := match.Replay(events)
	if err != nil {
		return match.State{}, fmt.Errorf("replay match %s: %w", matchID, err)
	}
	return state, nil
}

// execute decides cmd against state, appends the accepted events with the
// expected sequence numbers and folds them into state. The request ID comes
// from ctx when the caller set one.
func (s *Service) execute(ctx context.Context, state match.State, cmd command.Command) (match.State, error) {
	cmd.RequestID = requestctx.RequestIDFromContext(ctx)
	if cmd.RequestID == "" {
		requestID, err := s.newID()
		if err != nil {
			return state, fmt.Errorf("new request id: %w", err)
		}
		cmd.RequestID = requestID
	}

	decision := match.Decide(state, cmd, s.now)
	if !decision.Accepted() {
		rejection := decision.Rejections[0]
		return state, apperrors.WithMetadata(apperrors.Code(rejection.Code), rejection.Message, rejection.Metadata)
	}

	for _, evt := range decision.Events {
		evt.Seq = state.LastSeq + 1
		stored, err := s.store.AppendEvent(ctx, evt)
		if err != nil {
			return state, fmt.Errorf("append %s: %w", evt.Type, err)
		}
		next, err := match.Fold(state, stored)
		if err != nil {
			return state, fmt.Errorf("fold %s: %w", stored.Type, err)
		}
		state = next
	}
	return state, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		code := apperrors.CodeOf(err)
		span.RecordError(err)
		span.SetAttributes(semconv.RPCGRPCStatusCodeKey.Int(int(code.GRPCCode())))
		span.SetStatus(codes.Error, string(code))
	}
	span.End()
}
