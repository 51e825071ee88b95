// Package repository is the play_by_play event store: a SQLite table read
// through per-request sessions and written only by the bulk loader.
package repository

import (
	"context"

	"github.com/okian/pxpstats/internal/domain/model"
	"github.com/okian/pxpstats/internal/domain/query"
	"github.com/okian/pxpstats/internal/domain/types"
)

// Store hands out sessions. Each request acquires one session and must
// Close it on every exit path.
type Store interface {
	Acquire(ctx context.Context) (Session, error)
}

// Session is a read view over one pooled connection. It is not safe for
// concurrent use.
type Session interface {
	// ListEvents returns a filtered, ordered page of raw events.
	ListEvents(ctx context.Context, f query.Filter, p query.Page) ([]model.Event, error)

	// Teams returns distinct team names in alphabetical order.
	Teams(ctx context.Context) ([]string, error)
	// TeamAggregates returns the league-wide team list.
	TeamAggregates(ctx context.Context) ([]types.TeamAggregate, error)
	// TeamSummary returns ok=false when the team has no rows.
	TeamSummary(ctx context.Context, team string) (summary types.TeamSummary, ok bool, err error)
	TeamSpatialEvents(ctx context.Context, team string) ([]types.SpatialEvent, error)
	TeamGames(ctx context.Context, team string) ([]types.GameBreakdown, error)
	// TeamPlayerLines returns per-player counts for the team's named players.
	TeamPlayerLines(ctx context.Context, team string) ([]types.PlayerLine, error)

	// PlayerAggregates returns the player list, optionally for one team.
	PlayerAggregates(ctx context.Context, team string) ([]types.PlayerAggregate, error)
	// PlayerSummary returns ok=false when the player has no rows.
	PlayerSummary(ctx context.Context, player string) (summary types.PlayerSummary, ok bool, err error)
	PlayerSpatialEvents(ctx context.Context, player string) ([]types.SpatialEvent, error)
	PlayerGames(ctx context.Context, player string) ([]types.GameBreakdown, error)

	// Games lists every game with its final score.
	Games(ctx context.Context) ([]types.Game, error)
	// Game returns ok=false when the team has no rows on that date.
	Game(ctx context.Context, date, team string) (game types.Game, ok bool, err error)
	// GameEvents returns every row of one game in play order.
	GameEvents(ctx context.Context, key model.GameKey) ([]model.Event, error)

	Close() error
}
