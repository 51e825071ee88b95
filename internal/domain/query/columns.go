package query

// Table holds one row per play-by-play event.
const Table = "play_by_play"

// Column names of the play_by_play table.
const (
	ColID            = "id"
	ColGameDate      = "game_date"
	ColSeasonYear    = "season_year"
	ColTeamName      = "team_name"
	ColOppTeamName   = "opp_team_name"
	ColVenue         = "venue"
	ColPeriod        = "period"
	ColClockSeconds  = "clock_seconds"
	ColSituationType = "situation_type"
	ColGoalsFor      = "goals_for"
	ColGoalsAgainst  = "goals_against"
	ColPlayerName    = "player_name"
	ColEvent         = "event"
	ColSuccessful    = "event_successful"
	ColXCoord        = "x_coord"
	ColYCoord        = "y_coord"
	ColEventType     = "event_type"
	ColPlayerName2   = "player_name_2"
	ColXCoord2       = "x_coord_2"
	ColYCoord2       = "y_coord_2"
	ColEventDetail1  = "event_detail_1"
	ColEventDetail2  = "event_detail_2"
	ColEventDetail3  = "event_detail_3"
)

// EventColumns lists every event column in model.Event field order.
var EventColumns = []string{
	ColID, ColGameDate, ColSeasonYear, ColTeamName, ColOppTeamName, ColVenue,
	ColPeriod, ColClockSeconds, ColSituationType, ColGoalsFor, ColGoalsAgainst,
	ColPlayerName, ColEvent, ColSuccessful, ColXCoord, ColYCoord, ColEventType,
	ColPlayerName2, ColXCoord2, ColYCoord2, ColEventDetail1, ColEventDetail2,
	ColEventDetail3,
}

// InsertColumns is EventColumns without the surrogate key.
var InsertColumns = EventColumns[1:]
