package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/okian/pxpstats/internal/adapters/repository"
	"github.com/okian/pxpstats/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type row struct {
	date, team, opp string
	period, clock   int
	player          string
	event           string
	ok              bool
	x, y            *float64
	gf, ga          int
}

func (r row) toEvent() model.Event {
	e := model.Event{
		GameDate:      r.date,
		SeasonYear:    2024,
		TeamName:      r.team,
		OppTeamName:   r.opp,
		Venue:         "Arena",
		Period:        r.period,
		ClockSeconds:  r.clock,
		SituationType: "5 on 5",
		GoalsFor:      r.gf,
		GoalsAgainst:  r.ga,
		Event:         r.event,
		Successful:    r.ok,
		XCoord:        r.x,
		YCoord:        r.y,
	}
	if r.player != "" {
		e.PlayerName = ptr(r.player)
	}
	return e
}

// fixtureEvents is inserted in order, so ids run 1..11.
func fixtureEvents() []model.Event {
	rows := []row{
		{"2024-01-10", "Canada", "USA", 1, 1000, "Alice", "Shot", true, ptr(10.0), ptr(20.0), 1, 0},
		{"2024-01-10", "Canada", "USA", 1, 900, "Alice", "Shot", false, nil, nil, 1, 0},
		{"2024-01-10", "Canada", "USA", 2, 500, "Alice", "Play", true, ptr(5.0), nil, 1, 0},
		{"2024-01-10", "Canada", "USA", 3, 30, "Bob", "Play", false, nil, nil, 2, 1},
		{"2024-01-10", "Canada", "USA", 3, 10, "Bob", "Faceoff Win", true, nil, nil, 3, 1},
		{"2024-01-10", "Canada", "USA", 2, 0, "", "Penalty Taken", false, nil, nil, 9, 9},
		{"2024-01-12", "Canada", "Finland", 1, 100, "Alice", "Shot", true, ptr(1.0), ptr(1.0), 1, 0},
		{"2024-01-12", "Canada", "Finland", 3, 5, "Bob", "Play", true, nil, nil, 1, 2},
		{"2024-01-12", "Canada", "Finland", 3, 5, "Bob", "Takeaway", true, nil, nil, 4, 2},
		{"2024-01-10", "USA", "Canada", 1, 800, "Carl", "Shot", false, ptr(3.0), ptr(3.0), 0, 1},
		{"2024-01-10", "USA", "Canada", 3, 1, "Carl", "Play", true, nil, nil, 1, 3},
	}
	out := make([]model.Event, len(rows))
	for i, r := range rows {
		out[i] = r.toEvent()
	}
	return out
}

func openStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()
	store, err := repository.Open(context.Background(), filepath.Join(t.TempDir(), "pxp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func load(t *testing.T, store *repository.SQLiteStore, events []model.Event) {
	t.Helper()
	ctx := context.Background()
	w, err := store.BeginWrite(ctx)
	require.NoError(t, err)
	defer func() { _ = w.Rollback() }()
	require.NoError(t, w.Insert(ctx, events))
	require.NoError(t, w.Commit())
}

func seededSession(t *testing.T) repository.Session {
	t.Helper()
	store := openStore(t)
	load(t, store, fixtureEvents())
	sess, err := store.Acquire(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}
