// Package stats defines the box-score statistics derived from play-by-play
// events. Each statistic is a predicate over (event, event_successful); the
// same definition renders a SQL aggregate column and evaluates in memory.
package stats

import (
	"github.com/okian/pxpstats/internal/domain/model"
	"github.com/okian/pxpstats/internal/domain/query"
)

// Outcome constrains event_successful.
type Outcome int

const (
	// Either ignores event_successful.
	Either Outcome = iota
	// Success requires event_successful = true.
	Success
	// Failure requires event_successful = false.
	Failure
)

// Definition is one counted statistic.
type Definition struct {
	Name    string
	Event   string
	Outcome Outcome
}

// A goal is a successful shot; there is no separate goal flag.
var (
	Goals            = Definition{Name: "goals", Event: model.EventShot, Outcome: Success}
	Shots            = Definition{Name: "shots", Event: model.EventShot, Outcome: Failure}
	SuccessfulPlays  = Definition{Name: "successful_plays", Event: model.EventPlay, Outcome: Success}
	Passes           = SuccessfulPlays.As("passes")
	SuccessfulPasses = SuccessfulPlays.As("successful_passes")
	IncompletePasses = Definition{Name: "incomplete_passes", Event: model.EventPlay, Outcome: Failure}
	FaceoffWins      = Definition{Name: "faceoff_wins", Event: model.EventFaceoffWin}
	PuckRecoveries   = Definition{Name: "puck_recoveries", Event: model.EventPuckRecovery}
	Takeaways        = Definition{Name: "takeaways", Event: model.EventTakeaway}
	ZoneEntries      = Definition{Name: "zone_entries", Event: model.EventZoneEntry}
	DumpInsOuts      = Definition{Name: "dump_ins_outs", Event: model.EventDumpInOut}
	Penalties        = Definition{Name: "penalties", Event: model.EventPenaltyTaken}
)

// OtherEvents are the counts shown only on detail views.
var OtherEvents = []Definition{FaceoffWins, PuckRecoveries, Takeaways, ZoneEntries, DumpInsOuts, Penalties}

// GameSummary are the counts shown on a single game's box score.
var GameSummary = append([]Definition{Goals, Shots, Passes, IncompletePasses}, OtherEvents...)

// SpatialEvents are the categories plotted on rink charts.
var SpatialEvents = []string{model.EventShot, model.EventPlay}

// As returns d reported under another column name.
func (d Definition) As(name string) Definition {
	d.Name = name
	return d
}

// Predicate renders the row condition with bound arguments.
func (d Definition) Predicate() query.Expr {
	switch d.Outcome {
	case Success, Failure:
		return query.Expr{
			SQL:  query.ColEvent + " = ? AND " + query.ColSuccessful + " = ?",
			Args: []any{d.Event, d.Outcome == Success},
		}
	default:
		return query.Expr{SQL: query.ColEvent + " = ?", Args: []any{d.Event}}
	}
}

// SQL renders "SUM(CASE WHEN <predicate> THEN 1 ELSE 0 END) AS <name>".
func (d Definition) SQL() query.Expr {
	p := d.Predicate()
	return query.Expr{
		SQL:  "SUM(CASE WHEN " + p.SQL + " THEN 1 ELSE 0 END) AS " + d.Name,
		Args: p.Args,
	}
}

// Matches evaluates the predicate against a single event.
func (d Definition) Matches(e model.Event) bool {
	if e.Event != d.Event {
		return false
	}
	switch d.Outcome {
	case Success:
		return e.Successful
	case Failure:
		return !e.Successful
	default:
		return true
	}
}

// Tally counts events per definition name.
func Tally(events []model.Event, defs ...Definition) map[string]int {
	out := make(map[string]int, len(defs))
	for _, d := range defs {
		out[d.Name] = 0
	}
	for _, e := range events {
		for _, d := range defs {
			if d.Matches(e) {
				out[d.Name]++
			}
		}
	}
	return out
}

// GamesPlayed counts distinct game dates in the group.
func GamesPlayed() query.Expr {
	return query.Expr{SQL: "COUNT(DISTINCT " + query.ColGameDate + ") AS games_played"}
}

// TotalEvents counts rows in the group.
func TotalEvents() query.Expr {
	return query.Expr{SQL: "COUNT(*) AS total_events"}
}

// Columns renders one aggregate column per definition.
func Columns(defs ...Definition) []query.Expr {
	out := make([]query.Expr, len(defs))
	for i, d := range defs {
		out[i] = d.SQL()
	}
	return out
}

// ShootingPct is goals/(goals+shots)*100, or 0 with no attempts.
func ShootingPct(goals, shots int) float64 {
	return pct(goals, goals+shots)
}

// PassCompletionPct is passes/(passes+incomplete)*100, or 0 with no attempts.
func PassCompletionPct(passes, incomplete int) float64 {
	return pct(passes, passes+incomplete)
}

func pct(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}
