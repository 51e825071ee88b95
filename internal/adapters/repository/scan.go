package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/okian/pxpstats/internal/domain/model"
	"github.com/okian/pxpstats/internal/domain/types"
	"github.com/okian/pxpstats/pkg/metrics"
)

type scanner interface {
	Scan(dest ...any) error
}

// collect runs q and scans every row. The result is never nil so empty
// results encode as [] rather than null.
func collect[T any](ctx context.Context, conn *sql.Conn, op, q string, args []any, scan func(scanner) (T, error)) (out []T, err error) {
	start := time.Now()
	defer func() { observe(op, start, len(out), err) }()

	rows, err := conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out = []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// first is collect for at most one row.
func first[T any](ctx context.Context, conn *sql.Conn, op, q string, args []any, scan func(scanner) (T, error)) (T, bool, error) {
	var zero T
	rows, err := collect(ctx, conn, op, q, args, scan)
	if err != nil || len(rows) == 0 {
		return zero, false, err
	}
	return rows[0], true, nil
}

func observe(op string, start time.Time, rows int, err error) {
	ms := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordStoreError(op)
		metrics.RecordErrorLatency("repository", "query_error", ms)
		return
	}
	metrics.RecordStoreQuery(op, ms, rows)
}

// scanEvent reads columns in query.EventColumns order.
func scanEvent(r scanner) (model.Event, error) {
	var e model.Event
	err := r.Scan(
		&e.ID, &e.GameDate, &e.SeasonYear, &e.TeamName, &e.OppTeamName, &e.Venue,
		&e.Period, &e.ClockSeconds, &e.SituationType, &e.GoalsFor, &e.GoalsAgainst,
		&e.PlayerName, &e.Event, &e.Successful, &e.XCoord, &e.YCoord, &e.EventType,
		&e.PlayerName2, &e.XCoord2, &e.YCoord2, &e.EventDetail1, &e.EventDetail2,
		&e.EventDetail3,
	)
	return e, err
}

func scanString(r scanner) (string, error) {
	var s string
	err := r.Scan(&s)
	return s, err
}

func scanSpatial(r scanner) (types.SpatialEvent, error) {
	var e types.SpatialEvent
	err := r.Scan(&e.GameDate, &e.Period, &e.ClockSeconds, &e.PlayerName,
		&e.Event, &e.Successful, &e.XCoord, &e.YCoord)
	return e, err
}

func scanBreakdown(r scanner) (types.GameBreakdown, error) {
	var g types.GameBreakdown
	err := r.Scan(&g.GameDate, &g.OppTeamName, &g.TotalEvents, &g.Goals, &g.Shots,
		&g.Passes, &g.ScoreFor, &g.ScoreAgainst)
	return g, err
}

func scanGame(r scanner) (types.Game, error) {
	var g types.Game
	err := r.Scan(&g.GameDate, &g.TeamName, &g.OppTeamName, &g.Venue,
		&g.GoalsFor, &g.GoalsAgainst, &g.TotalEvents)
	return g, err
}

func scanTeamAggregate(r scanner) (types.TeamAggregate, error) {
	var t types.TeamAggregate
	err := r.Scan(&t.TeamName, &t.GamesPlayed, &t.Goals, &t.Shots, &t.Passes)
	return t, err
}

func scanTeamSummary(r scanner) (types.TeamSummary, error) {
	var t types.TeamSummary
	err := r.Scan(&t.TeamName, &t.GamesPlayed, &t.TotalEvents, &t.Goals, &t.Shots,
		&t.Passes, &t.IncompletePasses, &t.FaceoffWins, &t.PuckRecoveries,
		&t.Takeaways, &t.ZoneEntries, &t.DumpInsOuts, &t.Penalties)
	return t, err
}

func scanPlayerAggregate(r scanner) (types.PlayerAggregate, error) {
	var p types.PlayerAggregate
	err := r.Scan(&p.PlayerName, &p.TeamName, &p.GamesPlayed, &p.Goals,
		&p.SuccessfulPlays, &p.Shots)
	return p, err
}

func scanPlayerSummary(r scanner) (types.PlayerSummary, error) {
	var p types.PlayerSummary
	err := r.Scan(&p.PlayerName, &p.TeamName, &p.GamesPlayed, &p.TotalEvents,
		&p.Goals, &p.Shots, &p.SuccessfulPasses, &p.IncompletePasses,
		&p.FaceoffWins, &p.PuckRecoveries, &p.Takeaways, &p.ZoneEntries,
		&p.DumpInsOuts, &p.Penalties)
	return p, err
}

func scanPlayerLine(r scanner) (types.PlayerLine, error) {
	var l types.PlayerLine
	err := r.Scan(&l.PlayerName, &l.Goals, &l.Shots, &l.Passes, &l.IncompletePasses)
	return l, err
}
