package stats

import (
	"github.com/okian/pxpstats/internal/domain/model"
	"github.com/okian/pxpstats/internal/domain/query"
)

// Score is the final score of a game from one team's side.
type Score struct {
	For     int
	Against int
}

// FinalOrder picks the last recorded event of a game: latest period, then
// least clock remaining, then the row loaded last.
const FinalOrder = query.ColPeriod + " DESC, " + query.ColClockSeconds + " ASC, " + query.ColID + " DESC"

// FinalScoresCTE renders a "final_scores" common table expression holding one
// row per game (game_date, team_name, opp_team_name, score_for,
// score_against). Games are restricted by where, which must only constrain
// game key columns so every row of a selected game is considered.
func FinalScoresCTE(where *query.WhereBuilder) query.Expr {
	if where == nil {
		where = query.NewWhereBuilder()
	}
	w, args := where.Build()
	return query.Expr{
		SQL: "final_scores AS (" +
			"SELECT " + query.ColGameDate + ", " + query.ColTeamName + ", " + query.ColOppTeamName + ", " +
			query.ColGoalsFor + " AS score_for, " + query.ColGoalsAgainst + " AS score_against " +
			"FROM (SELECT " + query.ColGameDate + ", " + query.ColTeamName + ", " + query.ColOppTeamName + ", " +
			query.ColGoalsFor + ", " + query.ColGoalsAgainst + ", " +
			"ROW_NUMBER() OVER (PARTITION BY " + query.ColGameDate + ", " + query.ColTeamName + ", " + query.ColOppTeamName +
			" ORDER BY " + FinalOrder + ") AS rn " +
			"FROM " + query.Table + " WHERE " + w + ") WHERE rn = 1)",
		Args: args,
	}
}

// FinalScore resolves the final score of every game in events using the
// same ordering as FinalScoresCTE.
func FinalScore(events []model.Event) map[model.GameKey]Score {
	last := make(map[model.GameKey]model.Event)
	for _, e := range events {
		k := e.Game()
		cur, ok := last[k]
		if !ok || later(e, cur) {
			last[k] = e
		}
	}

	out := make(map[model.GameKey]Score, len(last))
	for k, e := range last {
		out[k] = Score{For: e.GoalsFor, Against: e.GoalsAgainst}
	}
	return out
}

func later(a, b model.Event) bool {
	if a.Period != b.Period {
		return a.Period > b.Period
	}
	if a.ClockSeconds != b.ClockSeconds {
		return a.ClockSeconds < b.ClockSeconds
	}
	return a.ID > b.ID
}
