// Package types contains the read shapes returned by aggregate queries.
package types

import "github.com/okian/pxpstats/internal/domain/model"

// PlayerAggregate is one row of the league-wide player list.
type PlayerAggregate struct {
	PlayerName      string  `json:"player_name"`
	TeamName        string  `json:"team_name"`
	GamesPlayed     int     `json:"games_played"`
	Goals           int     `json:"goals"`
	SuccessfulPlays int     `json:"successful_plays"`
	Shots           int     `json:"shots"`
	ShootingPct     float64 `json:"shooting_pct"`
}

// TeamAggregate is one row of the league-wide team list.
type TeamAggregate struct {
	TeamName    string `json:"team_name"`
	GamesPlayed int    `json:"games_played"`
	Goals       int    `json:"goals"`
	Shots       int    `json:"shots"`
	Passes      int    `json:"passes"`
}

// PlayerSummary is the summary block of a player detail view.
type PlayerSummary struct {
	PlayerName        string  `json:"player_name"`
	TeamName          string  `json:"team_name"`
	GamesPlayed       int     `json:"games_played"`
	TotalEvents       int     `json:"total_events"`
	Goals             int     `json:"goals"`
	Shots             int     `json:"shots"`
	SuccessfulPasses  int     `json:"successful_passes"`
	IncompletePasses  int     `json:"incomplete_passes"`
	FaceoffWins       int     `json:"faceoff_wins"`
	PuckRecoveries    int     `json:"puck_recoveries"`
	Takeaways         int     `json:"takeaways"`
	ZoneEntries       int     `json:"zone_entries"`
	DumpInsOuts       int     `json:"dump_ins_outs"`
	Penalties         int     `json:"penalties"`
	ShootingPct       float64 `json:"shooting_pct"`
	PassCompletionPct float64 `json:"pass_completion_pct"`
}

// TeamSummary is the summary block of a team detail view.
type TeamSummary struct {
	TeamName         string `json:"team_name"`
	GamesPlayed      int    `json:"games_played"`
	TotalEvents      int    `json:"total_events"`
	Goals            int    `json:"goals"`
	Shots            int    `json:"shots"`
	Passes           int    `json:"passes"`
	IncompletePasses int    `json:"incomplete_passes"`
	FaceoffWins      int    `json:"faceoff_wins"`
	PuckRecoveries   int    `json:"puck_recoveries"`
	Takeaways        int    `json:"takeaways"`
	ZoneEntries      int    `json:"zone_entries"`
	DumpInsOuts      int    `json:"dump_ins_outs"`
	Penalties        int    `json:"penalties"`
}

// GameBreakdown is one game of a player or team, with the final score
// read from the last recorded event of that game.
type GameBreakdown struct {
	GameDate     string `json:"game_date"`
	OppTeamName  string `json:"opp_team_name"`
	TotalEvents  int    `json:"total_events"`
	Goals        int    `json:"goals"`
	Shots        int    `json:"shots"`
	Passes       int    `json:"passes"`
	ScoreFor     int    `json:"score_for"`
	ScoreAgainst int    `json:"score_against"`
}

// SpatialEvent is a located Shot or Play used for rink charts.
type SpatialEvent struct {
	GameDate     string   `json:"game_date"`
	Period       int      `json:"period"`
	ClockSeconds int      `json:"clock_seconds"`
	PlayerName   *string  `json:"player_name"`
	Event        string   `json:"event"`
	Successful   bool     `json:"event_successful"`
	XCoord       float64  `json:"x_coord"`
	YCoord       *float64 `json:"y_coord"`
}

// PlayerLine carries the per-player counts a team comparison averages over.
type PlayerLine struct {
	PlayerName       string
	Goals            int
	Shots            int
	Passes           int
	IncompletePasses int
}

// TeamAverages is the per-player average profile of a team.
type TeamAverages struct {
	TotalPlayers         int     `json:"total_players"`
	AvgGoals             float64 `json:"avg_goals"`
	AvgShots             float64 `json:"avg_shots"`
	AvgShootingPct       float64 `json:"avg_shooting_pct"`
	AvgPassCompletionPct float64 `json:"avg_pass_completion_pct"`
}

// Game is one team's view of a game with its final score.
type Game struct {
	GameDate     string `json:"game_date"`
	TeamName     string `json:"team_name"`
	OppTeamName  string `json:"opp_team_name"`
	Venue        string `json:"venue"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	TotalEvents  int    `json:"total_events"`
}

// PlayerDetail bundles everything the player page needs.
type PlayerDetail struct {
	Player      PlayerSummary   `json:"player"`
	Events      []SpatialEvent  `json:"events"`
	Games       []GameBreakdown `json:"games"`
	EventsCount int             `json:"events_count"`
}

// TeamDetail bundles everything the team page needs.
type TeamDetail struct {
	Team        TeamSummary     `json:"team"`
	Events      []SpatialEvent  `json:"events"`
	Games       []GameBreakdown `json:"games"`
	EventsCount int             `json:"events_count"`
}

// GameDetail is a single game with its full event log and the box-score
// counts tallied from that log.
type GameDetail struct {
	Game        Game           `json:"game"`
	Summary     map[string]int `json:"summary"`
	Events      []model.Event  `json:"events"`
	EventsCount int            `json:"events_count"`
}

// Key returns the game key of g.
func (g Game) Key() model.GameKey {
	return model.GameKey{GameDate: g.GameDate, TeamName: g.TeamName, OppTeamName: g.OppTeamName}
}

// EventPage is one page of raw events.
type EventPage struct {
	Data   []model.Event `json:"data"`
	Count  int           `json:"count"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}
