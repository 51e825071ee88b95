package service_test

import (
	"context"
	"errors"

	"github.com/okian/pxpstats/internal/adapters/repository"
	"github.com/okian/pxpstats/internal/domain/model"
	"github.com/okian/pxpstats/internal/domain/query"
	"github.com/okian/pxpstats/internal/domain/types"
)

var errDisk = errors.New("disk I/O error")

// fakeStore hands out one shared fakeSession and counts the traffic.
type fakeStore struct {
	sess     *fakeSession
	acquired int
	failWith error
}

func (f *fakeStore) Acquire(context.Context) (repository.Session, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.acquired++
	f.sess.open++
	return f.sess, nil
}

type fakeSession struct {
	open   int
	closed int
	err    error

	lastFilter query.Filter
	lastPage   query.Page

	events   []model.Event
	teams    []string
	teamAggs []types.TeamAggregate
	team     *types.TeamSummary
	players  []types.PlayerAggregate
	player   *types.PlayerSummary
	spatial  []types.SpatialEvent
	games    []types.GameBreakdown
	lines    []types.PlayerLine
	allGames []types.Game
	game     *types.Game
}

func (f *fakeSession) Close() error {
	f.closed++
	return nil
}

func (f *fakeSession) ListEvents(_ context.Context, fl query.Filter, p query.Page) ([]model.Event, error) {
	f.lastFilter, f.lastPage = fl, p
	return f.events, f.err
}

func (f *fakeSession) Teams(context.Context) ([]string, error) { return f.teams, f.err }

func (f *fakeSession) TeamAggregates(context.Context) ([]types.TeamAggregate, error) {
	return f.teamAggs, f.err
}

func (f *fakeSession) TeamSummary(context.Context, string) (types.TeamSummary, bool, error) {
	if f.err != nil || f.team == nil {
		return types.TeamSummary{}, false, f.err
	}
	return *f.team, true, nil
}

func (f *fakeSession) TeamSpatialEvents(context.Context, string) ([]types.SpatialEvent, error) {
	return f.spatial, nil
}

func (f *fakeSession) TeamGames(context.Context, string) ([]types.GameBreakdown, error) {
	return f.games, nil
}

func (f *fakeSession) TeamPlayerLines(context.Context, string) ([]types.PlayerLine, error) {
	return f.lines, f.err
}

func (f *fakeSession) PlayerAggregates(context.Context, string) ([]types.PlayerAggregate, error) {
	return f.players, f.err
}

func (f *fakeSession) PlayerSummary(context.Context, string) (types.PlayerSummary, bool, error) {
	if f.err != nil || f.player == nil {
		return types.PlayerSummary{}, false, f.err
	}
	return *f.player, true, nil
}

func (f *fakeSession) PlayerSpatialEvents(context.Context, string) ([]types.SpatialEvent, error) {
	return f.spatial, nil
}

func (f *fakeSession) PlayerGames(context.Context, string) ([]types.GameBreakdown, error) {
	return f.games, nil
}

func (f *fakeSession) Games(context.Context) ([]types.Game, error) { return f.allGames, f.err }

func (f *fakeSession) Game(context.Context, string, string) (types.Game, bool, error) {
	if f.err != nil || f.game == nil {
		return types.Game{}, false, f.err
	}
	return *f.game, true, nil
}

func (f *fakeSession) GameEvents(context.Context, model.GameKey) ([]model.Event, error) {
	return f.events, nil
}
