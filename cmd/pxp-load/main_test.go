package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okian/pxpstats/internal/adapters/repository"
)

const export = "game_date,season_year,team_name,opp_team_name,venue,period,clock_seconds,situation_type,goals_for,goals_against,player_name,event,event_successful,x_coord,y_coord\n" +
	"2024-01-10,2024,Canada,USA,home,1,1000,5 on 5,0,0,Alice,Shot,t,10,20\n" +
	"2024-01-10,2024,USA,Canada,away,1,900,5 on 5,0,0,Carl,Play,f,,\n"

func teams(t *testing.T, db string) []string {
	t.Helper()
	ctx := context.Background()
	store, err := repository.Open(ctx, db)
	require.NoError(t, err)
	defer store.Close()

	sess, err := store.Acquire(ctx)
	require.NoError(t, err)
	defer sess.Close()

	names, err := sess.Teams(ctx)
	require.NoError(t, err)
	return names
}

func TestRunLoadsFile(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "pxp.db")
	csvPath := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(export), 0o600))

	require.NoError(t, run(context.Background(), []string{"--db", db, "--csv", csvPath, "--batch-size", "1"}, nil))
	require.Equal(t, []string{"Canada", "USA"}, teams(t, db))
}

func TestRunReadsStdinAndTruncates(t *testing.T) {
	db := filepath.Join(t.TempDir(), "pxp.db")
	ctx := context.Background()

	require.NoError(t, run(ctx, []string{"--db", db, "--csv", "-"}, strings.NewReader(export)))
	require.NoError(t, run(ctx, []string{"--db", db, "--csv", "-", "--truncate"},
		strings.NewReader(strings.SplitAfter(export, "\n")[0]+"2024-01-11,2024,Finland,Sweden,home,1,5,5 on 5,0,0,Eve,Shot,f,,\n")))
	require.Equal(t, []string{"Finland"}, teams(t, db))
}

func TestRunRejectsBadInput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "pxp.db")
	ctx := context.Background()

	require.Error(t, run(ctx, []string{"--db", db}, nil), "csv is required")
	require.Error(t, run(ctx, []string{"--db", db, "--csv", filepath.Join(t.TempDir(), "nope.csv")}, nil))
	require.Error(t, run(ctx, []string{"--db", db, "--csv", "-"}, strings.NewReader("team_name\nCanada\n")))
}
