// Package service assembles the read views served by the HTTP API. Every
// call checks out exactly one store session and releases it before
// returning.
package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/okian/pxpstats/internal/adapters/repository"
	"github.com/okian/pxpstats/internal/config"
	"github.com/okian/pxpstats/internal/domain/query"
	"github.com/okian/pxpstats/internal/domain/stats"
	"github.com/okian/pxpstats/internal/domain/types"
	"github.com/okian/pxpstats/pkg/logger"
)

// Service implements the API dependencies for the stats endpoints.
type Service struct {
	store repository.Store

	// Configuration
	maxLimit     int
	defaultLimit int

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxLimit sets the largest page a caller may request.
func WithMaxLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithDefaultLimit sets the page size used when limit is omitted.
func WithDefaultLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultLimit = n
		}
	}
}

// New constructs a Service reading from store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		maxLimit:     config.MaxLimit,
		defaultLimit: config.MaxLimit,
		logger:       logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.defaultLimit > s.maxLimit {
		s.defaultLimit = s.maxLimit
	}

	return s
}

// Page parses and validates the limit and offset query values. The error
// is a *query.ValidationError.
func (s *Service) Page(values url.Values) (query.Page, error) {
	p, err := query.ParsePage(values, s.defaultLimit)
	if err != nil {
		return query.Page{}, err
	}
	if err := p.Validate(s.maxLimit); err != nil {
		return query.Page{}, err
	}
	return p, nil
}

// withSession runs fn on a freshly acquired session and always releases it.
func withSession[T any](ctx context.Context, s *Service, op string, fn func(repository.Session) (T, error)) (T, error) {
	var zero T
	sess, err := s.store.Acquire(ctx)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			s.logger.Warn(ctx, "release session", logger.String("op", op), logger.Error(cerr))
		}
	}()

	v, err := fn(sess)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// Events returns one page of raw events. An invalid page is rejected
// before a session is acquired.
func (s *Service) Events(ctx context.Context, f query.Filter, p query.Page) (types.EventPage, error) {
	if err := p.Validate(s.maxLimit); err != nil {
		return types.EventPage{}, err
	}
	return withSession(ctx, s, "events", func(sess repository.Session) (types.EventPage, error) {
		events, err := sess.ListEvents(ctx, f, p)
		if err != nil {
			return types.EventPage{}, err
		}
		return types.EventPage{Data: events, Count: len(events), Limit: p.Limit, Offset: p.Offset}, nil
	})
}

// Teams returns distinct team names in alphabetical order.
func (s *Service) Teams(ctx context.Context) ([]string, error) {
	return withSession(ctx, s, "teams", func(sess repository.Session) ([]string, error) {
		return sess.Teams(ctx)
	})
}

// TeamStats returns the league-wide team list.
func (s *Service) TeamStats(ctx context.Context) ([]types.TeamAggregate, error) {
	return withSession(ctx, s, "team stats", func(sess repository.Session) ([]types.TeamAggregate, error) {
		return sess.TeamAggregates(ctx)
	})
}

// TeamDetail bundles a team's summary, located shots and plays, and
// game-by-game breakdown.
func (s *Service) TeamDetail(ctx context.Context, team string) (types.TeamDetail, error) {
	return withSession(ctx, s, "team detail", func(sess repository.Session) (types.TeamDetail, error) {
		summary, ok, err := sess.TeamSummary(ctx, team)
		if err != nil {
			return types.TeamDetail{}, err
		}
		if !ok {
			return types.TeamDetail{}, fmt.Errorf("%w: team %q", ErrNotFound, team)
		}
		events, err := sess.TeamSpatialEvents(ctx, team)
		if err != nil {
			return types.TeamDetail{}, err
		}
		games, err := sess.TeamGames(ctx, team)
		if err != nil {
			return types.TeamDetail{}, err
		}
		return types.TeamDetail{Team: summary, Events: events, Games: games, EventsCount: len(events)}, nil
	})
}

// TeamAverages averages the team's named players.
func (s *Service) TeamAverages(ctx context.Context, team string) (types.TeamAverages, error) {
	return withSession(ctx, s, "team averages", func(sess repository.Session) (types.TeamAverages, error) {
		lines, err := sess.TeamPlayerLines(ctx, team)
		if err != nil {
			return types.TeamAverages{}, err
		}
		if len(lines) == 0 {
			return types.TeamAverages{}, fmt.Errorf("%w: team %q", ErrNotFound, team)
		}
		return stats.Averages(lines), nil
	})
}

// Players returns the player list, optionally narrowed to one team.
func (s *Service) Players(ctx context.Context, team string) ([]types.PlayerAggregate, error) {
	return withSession(ctx, s, "players", func(sess repository.Session) ([]types.PlayerAggregate, error) {
		return sess.PlayerAggregates(ctx, team)
	})
}

// PlayerDetail bundles a player's summary, located shots and plays, and
// game-by-game breakdown.
func (s *Service) PlayerDetail(ctx context.Context, player string) (types.PlayerDetail, error) {
	return withSession(ctx, s, "player detail", func(sess repository.Session) (types.PlayerDetail, error) {
		summary, ok, err := sess.PlayerSummary(ctx, player)
		if err != nil {
			return types.PlayerDetail{}, err
		}
		if !ok {
			return types.PlayerDetail{}, fmt.Errorf("%w: player %q", ErrNotFound, player)
		}
		events, err := sess.PlayerSpatialEvents(ctx, player)
		if err != nil {
			return types.PlayerDetail{}, err
		}
		games, err := sess.PlayerGames(ctx, player)
		if err != nil {
			return types.PlayerDetail{}, err
		}
		return types.PlayerDetail{Player: summary, Events: events, Games: games, EventsCount: len(events)}, nil
	})
}

// Games lists every game with its final score.
func (s *Service) Games(ctx context.Context) ([]types.Game, error) {
	return withSession(ctx, s, "games", func(sess repository.Session) ([]types.Game, error) {
		return sess.Games(ctx)
	})
}

// GameDetail returns one team's game on date with its full event log.
func (s *Service) GameDetail(ctx context.Context, date, team string) (types.GameDetail, error) {
	return withSession(ctx, s, "game detail", func(sess repository.Session) (types.GameDetail, error) {
		game, ok, err := sess.Game(ctx, date, team)
		if err != nil {
			return types.GameDetail{}, err
		}
		if !ok {
			return types.GameDetail{}, fmt.Errorf("%w: game %s %q", ErrNotFound, date, team)
		}
		events, err := sess.GameEvents(ctx, game.Key())
		if err != nil {
			return types.GameDetail{}, err
		}
		// The score shown is resolved from the same log that is returned.
		if score, ok := stats.FinalScore(events)[game.Key()]; ok {
			game.GoalsFor, game.GoalsAgainst = score.For, score.Against
		}
		return types.GameDetail{
			Game:        game,
			Summary:     stats.Tally(events, stats.GameSummary...),
			Events:      events,
			EventsCount: len(events),
		}, nil
	})
}

