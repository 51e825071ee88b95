package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okian/pxpstats/internal/domain/model"
	"github.com/okian/pxpstats/internal/domain/query"
	"github.com/okian/pxpstats/internal/domain/stats"
	"github.com/okian/pxpstats/internal/domain/types"
	"github.com/okian/pxpstats/pkg/metrics"
)

// session implements Session over a single *sql.Conn.
type session struct {
	conn *sql.Conn
}

// Close returns the connection to the pool. Calling it twice is a no-op.
func (s *session) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	metrics.DecStoreSessions()
	return err
}

func (s *session) ready() error {
	if s.conn == nil {
		return ErrSessionClosed
	}
	return nil
}

func (s *session) ListEvents(ctx context.Context, f query.Filter, p query.Page) ([]model.Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q, args := query.EventsQuery(f, p)
	events, err := collect(ctx, s.conn, "list_events", q, args, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *session) Teams(ctx context.Context) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q, args := query.Select{
		Columns: []query.Expr{query.Col("DISTINCT " + query.ColTeamName)},
		OrderBy: []string{query.ColTeamName},
	}.Build()
	teams, err := collect(ctx, s.conn, "teams", q, args, scanString)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *session) TeamAggregates(ctx context.Context) ([]types.TeamAggregate, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	cols := append([]query.Expr{query.Col(query.ColTeamName), stats.GamesPlayed()},
		stats.Columns(stats.Goals, stats.Shots, stats.Passes)...)
	q, args := query.Select{
		Columns: cols,
		GroupBy: []string{query.ColTeamName},
		OrderBy: []string{query.ColTeamName},
	}.Build()
	teams, err := collect(ctx, s.conn, "team_aggregates", q, args, scanTeamAggregate)
	if err != nil {
		return nil, fmt.Errorf("aggregate teams: %w", err)
	}
	return teams, nil
}

func (s *session) TeamSummary(ctx context.Context, team string) (types.TeamSummary, bool, error) {
	if err := s.ready(); err != nil {
		return types.TeamSummary{}, false, err
	}
	cols := append([]query.Expr{query.Col(query.ColTeamName), stats.GamesPlayed(), stats.TotalEvents()},
		stats.Columns(stats.Goals, stats.Shots, stats.Passes, stats.IncompletePasses)...)
	cols = append(cols, stats.Columns(stats.OtherEvents...)...)
	q, args := query.Select{
		Columns: cols,
		Where:   query.NewWhereBuilder().Clause(query.ColTeamName+" = ?", team),
		GroupBy: []string{query.ColTeamName},
	}.Build()
	summary, ok, err := first(ctx, s.conn, "team_summary", q, args, scanTeamSummary)
	if err != nil {
		return types.TeamSummary{}, false, fmt.Errorf("team summary %q: %w", team, err)
	}
	return summary, ok, nil
}

func (s *session) TeamSpatialEvents(ctx context.Context, team string) ([]types.SpatialEvent, error) {
	return s.spatialEvents(ctx, "team_spatial_events", query.ColTeamName, team)
}

func (s *session) TeamGames(ctx context.Context, team string) ([]types.GameBreakdown, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	scope := query.NewWhereBuilder().Clause(query.ColTeamName+" = ?", team)
	return s.breakdown(ctx, "team_games", scope, "p."+query.ColTeamName, team)
}

func (s *session) TeamPlayerLines(ctx context.Context, team string) ([]types.PlayerLine, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	cols := append([]query.Expr{query.Col(query.ColPlayerName)},
		stats.Columns(stats.Goals, stats.Shots, stats.Passes, stats.IncompletePasses)...)
	q, args := query.Select{
		Columns: cols,
		Where: query.NewWhereBuilder().
			Clause(query.ColTeamName+" = ?", team).
			NotNull(query.ColPlayerName),
		GroupBy: []string{query.ColPlayerName},
		OrderBy: []string{query.ColPlayerName},
	}.Build()
	lines, err := collect(ctx, s.conn, "team_player_lines", q, args, scanPlayerLine)
	if err != nil {
		return nil, fmt.Errorf("player lines for %q: %w", team, err)
	}
	return lines, nil
}

func (s *session) PlayerAggregates(ctx context.Context, team string) ([]types.PlayerAggregate, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	cols := append([]query.Expr{query.Col(query.ColPlayerName), query.Col(query.ColTeamName), stats.GamesPlayed()},
		stats.Columns(stats.Goals, stats.SuccessfulPlays, stats.Shots)...)
	q, args := query.Select{
		Columns: cols,
		Where: query.NewWhereBuilder().
			NotNull(query.ColPlayerName).
			Equals(query.ColTeamName, team),
		GroupBy: []string{query.ColPlayerName, query.ColTeamName},
		OrderBy: []string{query.ColPlayerName + " ASC", query.ColTeamName + " ASC"},
	}.Build()
	players, err := collect(ctx, s.conn, "player_aggregates", q, args, scanPlayerAggregate)
	if err != nil {
		return nil, fmt.Errorf("aggregate players: %w", err)
	}
	for i := range players {
		players[i].ShootingPct = stats.ShootingPct(players[i].Goals, players[i].Shots)
	}
	return players, nil
}

// PlayerSummary reports the team the player has the most events for when
// the name appears under more than one team.
func (s *session) PlayerSummary(ctx context.Context, player string) (types.PlayerSummary, bool, error) {
	if err := s.ready(); err != nil {
		return types.PlayerSummary{}, false, err
	}
	cols := append([]query.Expr{
		query.Col(query.ColPlayerName), query.Col(query.ColTeamName),
		stats.GamesPlayed(), stats.TotalEvents(),
	}, stats.Columns(stats.Goals, stats.Shots, stats.SuccessfulPasses, stats.IncompletePasses)...)
	cols = append(cols, stats.Columns(stats.OtherEvents...)...)
	q, args := query.Select{
		Columns: cols,
		Where:   query.NewWhereBuilder().Clause(query.ColPlayerName+" = ?", player),
		GroupBy: []string{query.ColPlayerName, query.ColTeamName},
		OrderBy: []string{"total_events DESC", query.ColTeamName + " ASC"},
		Limit:   1,
	}.Build()
	summary, ok, err := first(ctx, s.conn, "player_summary", q, args, scanPlayerSummary)
	if err != nil {
		return types.PlayerSummary{}, false, fmt.Errorf("player summary %q: %w", player, err)
	}
	if ok {
		summary.ShootingPct = stats.ShootingPct(summary.Goals, summary.Shots)
		summary.PassCompletionPct = stats.PassCompletionPct(summary.SuccessfulPasses, summary.IncompletePasses)
	}
	return summary, ok, nil
}

func (s *session) PlayerSpatialEvents(ctx context.Context, player string) ([]types.SpatialEvent, error) {
	return s.spatialEvents(ctx, "player_spatial_events", query.ColPlayerName, player)
}

func (s *session) PlayerGames(ctx context.Context, player string) ([]types.GameBreakdown, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	// Scores come from every row of the player's games, not only the
	// player's own rows.
	scope := query.NewWhereBuilder().Clause(
		query.ColTeamName+" IN (SELECT "+query.ColTeamName+" FROM "+query.Table+" WHERE "+query.ColPlayerName+" = ?)",
		player)
	return s.breakdown(ctx, "player_games", scope, "p."+query.ColPlayerName, player)
}

func (s *session) Games(ctx context.Context) ([]types.Game, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q, args := gamesSelect(query.NewWhereBuilder(), query.NewWhereBuilder(), 0).Build()
	games, err := collect(ctx, s.conn, "games", q, args, scanGame)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// Game picks the alphabetically first opponent if the team played more
// than one game on date.
func (s *session) Game(ctx context.Context, date, team string) (types.Game, bool, error) {
	if err := s.ready(); err != nil {
		return types.Game{}, false, err
	}
	scope := query.NewWhereBuilder().
		Clause(query.ColGameDate+" = ?", date).
		Clause(query.ColTeamName+" = ?", team)
	where := query.NewWhereBuilder().
		Clause("p."+query.ColGameDate+" = ?", date).
		Clause("p."+query.ColTeamName+" = ?", team)
	q, args := gamesSelect(scope, where, 1).Build()
	game, ok, err := first(ctx, s.conn, "game", q, args, scanGame)
	if err != nil {
		return types.Game{}, false, fmt.Errorf("game %s/%s: %w", date, team, err)
	}
	return game, ok, nil
}

func (s *session) GameEvents(ctx context.Context, key model.GameKey) ([]model.Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	cols := make([]query.Expr, len(query.EventColumns))
	for i, c := range query.EventColumns {
		cols[i] = query.Col(c)
	}
	q, args := query.Select{
		Columns: cols,
		Where: query.NewWhereBuilder().
			Clause(query.ColGameDate+" = ?", key.GameDate).
			Clause(query.ColTeamName+" = ?", key.TeamName).
			Clause(query.ColOppTeamName+" = ?", key.OppTeamName),
		OrderBy: []string{query.ColPeriod + " ASC", query.ColClockSeconds + " DESC", query.ColID + " ASC"},
	}.Build()
	events, err := collect(ctx, s.conn, "game_events", q, args, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("game events: %w", err)
	}
	return events, nil
}

func (s *session) spatialEvents(ctx context.Context, op, column, value string) ([]types.SpatialEvent, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q, args := query.Select{
		Columns: []query.Expr{
			query.Col(query.ColGameDate), query.Col(query.ColPeriod), query.Col(query.ColClockSeconds),
			query.Col(query.ColPlayerName), query.Col(query.ColEvent), query.Col(query.ColSuccessful),
			query.Col(query.ColXCoord), query.Col(query.ColYCoord),
		},
		Where: query.NewWhereBuilder().
			Clause(column+" = ?", value).
			NotNull(query.ColXCoord).
			In(query.ColEvent, stats.SpatialEvents...),
		OrderBy: query.EventOrder,
	}.Build()
	events, err := collect(ctx, s.conn, op, q, args, scanSpatial)
	if err != nil {
		return nil, fmt.Errorf("%s for %q: %w", op, value, err)
	}
	return events, nil
}

// breakdown groups rows matching column = value per game and joins each
// game's final score. scope selects the games whose scores are resolved.
func (s *session) breakdown(ctx context.Context, op string, scope *query.WhereBuilder, column, value string) ([]types.GameBreakdown, error) {
	cte := stats.FinalScoresCTE(scope)
	cols := append([]query.Expr{
		query.Col("p." + query.ColGameDate), query.Col("p." + query.ColOppTeamName), stats.TotalEvents(),
	}, stats.Columns(stats.Goals, stats.Shots, stats.Passes)...)
	cols = append(cols, query.Col("f.score_for"), query.Col("f.score_against"))

	q, args := query.Select{
		With:    &cte,
		Columns: cols,
		From:    query.Table + " p JOIN final_scores f" + finalScoreJoin,
		Where:   query.NewWhereBuilder().Clause(column+" = ?", value),
		GroupBy: []string{
			"p." + query.ColGameDate, "p." + query.ColTeamName, "p." + query.ColOppTeamName,
			"f.score_for", "f.score_against",
		},
		OrderBy: []string{"p." + query.ColGameDate + " DESC", "p." + query.ColOppTeamName + " ASC"},
	}.Build()
	games, err := collect(ctx, s.conn, op, q, args, scanBreakdown)
	if err != nil {
		return nil, fmt.Errorf("%s for %q: %w", op, value, err)
	}
	return games, nil
}

const finalScoreJoin = " ON f." + query.ColGameDate + " = p." + query.ColGameDate +
	" AND f." + query.ColTeamName + " = p." + query.ColTeamName +
	" AND f." + query.ColOppTeamName + " = p." + query.ColOppTeamName

func gamesSelect(scope, where *query.WhereBuilder, limit int) query.Select {
	cte := stats.FinalScoresCTE(scope)
	return query.Select{
		With: &cte,
		Columns: []query.Expr{
			query.Col("p." + query.ColGameDate), query.Col("p." + query.ColTeamName),
			query.Col("p." + query.ColOppTeamName), query.Col("MIN(p." + query.ColVenue + ")"),
			query.Col("f.score_for"), query.Col("f.score_against"), stats.TotalEvents(),
		},
		From:  query.Table + " p JOIN final_scores f" + finalScoreJoin,
		Where: where,
		GroupBy: []string{
			"p." + query.ColGameDate, "p." + query.ColTeamName, "p." + query.ColOppTeamName,
			"f.score_for", "f.score_against",
		},
		OrderBy: []string{"p." + query.ColGameDate + " DESC", "p." + query.ColTeamName + " ASC", "p." + query.ColOppTeamName + " ASC"},
		Limit:   limit,
	}
}
