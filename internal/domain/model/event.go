// Package model contains domain models passed between layers.
package model

// Event categories referenced by the statistics.
const (
	EventShot         = "Shot"
	EventPlay         = "Play"
	EventFaceoffWin   = "Faceoff Win"
	EventPuckRecovery = "Puck Recovery"
	EventTakeaway     = "Takeaway"
	EventZoneEntry    = "Zone Entry"
	EventDumpInOut    = "Dump In/Out"
	EventPenaltyTaken = "Penalty Taken"
)

// DateLayout is the canonical game_date representation.
const DateLayout = "2006-01-02"

// Event is one play-by-play row. A Shot with Successful set is a goal;
// there is no separate goal flag.
type Event struct {
	ID            int64    `json:"id"`
	GameDate      string   `json:"game_date"`
	SeasonYear    int      `json:"season_year"`
	TeamName      string   `json:"team_name"`
	OppTeamName   string   `json:"opp_team_name"`
	Venue         string   `json:"venue"`
	Period        int      `json:"period"`
	ClockSeconds  int      `json:"clock_seconds"`
	SituationType string   `json:"situation_type"`
	GoalsFor      int      `json:"goals_for"`
	GoalsAgainst  int      `json:"goals_against"`
	PlayerName    *string  `json:"player_name"`
	Event         string   `json:"event"`
	Successful    bool     `json:"event_successful"`
	XCoord        *float64 `json:"x_coord"`
	YCoord        *float64 `json:"y_coord"`
	EventType     *string  `json:"event_type"`
	PlayerName2   *string  `json:"player_name_2"`
	XCoord2       *float64 `json:"x_coord_2"`
	YCoord2       *float64 `json:"y_coord_2"`
	EventDetail1  *string  `json:"event_detail_1"`
	EventDetail2  *string  `json:"event_detail_2"`
	EventDetail3  *string  `json:"event_detail_3"`
}

// GameKey identifies the game an event belongs to.
type GameKey struct {
	GameDate    string
	TeamName    string
	OppTeamName string
}

// Game returns the key of the game e belongs to.
func (e Event) Game() GameKey {
	return GameKey{GameDate: e.GameDate, TeamName: e.TeamName, OppTeamName: e.OppTeamName}
}
