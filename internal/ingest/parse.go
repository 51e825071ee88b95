package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/okian/pxpstats/internal/domain/model"
)

// Source date layouts, day first. Single-digit days and months parse with
// the padded layouts too.
var dateLayouts = []string{
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	model.DateLayout,
	"2006-01-02 15:04:05",
}

// required columns must be present in the header.
var required = []string{
	"game_date", "season_year", "team_name", "opp_team_name", "period",
	"clock_seconds", "event", "event_successful",
}

// header maps column name to index.
type header map[string]int

func newHeader(names []string) (header, error) {
	h := make(header, len(names))
	for i, n := range names {
		n = strings.TrimSpace(strings.TrimPrefix(n, "\ufeff"))
		h[strings.ToLower(n)] = i
	}
	for _, c := range required {
		if _, ok := h[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	return h, nil
}

// record wraps one CSV row for typed access. The first failure sticks.
type record struct {
	h    header
	vals []string
	line int
	err  error
}

func (r *record) raw(col string) string {
	i, ok := r.h[col]
	if !ok || i >= len(r.vals) {
		return ""
	}
	return strings.TrimSpace(r.vals[i])
}

func (r *record) fail(col, v string, err error) {
	if r.err == nil {
		r.err = &RowError{Row: r.line, Column: col, Value: v, Err: err}
	}
}

func (r *record) text(col string) string { return r.raw(col) }

func (r *record) nullText(col string) *string {
	v := r.raw(col)
	if v == "" {
		return nil
	}
	return &v
}

func (r *record) requiredText(col string) string {
	v := r.raw(col)
	if v == "" {
		r.fail(col, v, fmt.Errorf("%w: empty", ErrInvalidValue))
	}
	return v
}

// integer accepts "3" and the float spelling "3.0" some exports produce.
func (r *record) integer(col string, optional bool) int {
	v := r.raw(col)
	if v == "" {
		if !optional {
			r.fail(col, v, fmt.Errorf("%w: empty", ErrInvalidValue))
		}
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) {
		r.fail(col, v, fmt.Errorf("%w: not an integer", ErrInvalidValue))
		return 0
	}
	return int(f)
}

// coord coerces anything unparsable to NULL.
func (r *record) coord(col string) *float64 {
	f, err := strconv.ParseFloat(r.raw(col), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func (r *record) boolean(col string) bool {
	v := r.raw(col)
	switch strings.ToLower(v) {
	case "t", "true", "1":
		return true
	case "f", "false", "0":
		return false
	}
	r.fail(col, v, fmt.Errorf("%w: want t/f", ErrInvalidValue))
	return false
}

func (r *record) date(col string) string {
	v := r.raw(col)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(model.DateLayout)
		}
	}
	r.fail(col, v, fmt.Errorf("%w: unrecognised date", ErrInvalidValue))
	return ""
}

// ParseDate normalises a source game date to YYYY-MM-DD.
func ParseDate(v string) (string, error) {
	r := record{h: header{"game_date": 0}, vals: []string{v}}
	d := r.date("game_date")
	return d, r.err
}

func (r *record) event() (model.Event, error) {
	e := model.Event{
		GameDate:      r.date("game_date"),
		SeasonYear:    r.integer("season_year", false),
		TeamName:      r.requiredText("team_name"),
		OppTeamName:   r.requiredText("opp_team_name"),
		Venue:         r.text("venue"),
		Period:        r.integer("period", false),
		ClockSeconds:  r.integer("clock_seconds", false),
		SituationType: r.text("situation_type"),
		GoalsFor:      r.integer("goals_for", true),
		GoalsAgainst:  r.integer("goals_against", true),
		PlayerName:    r.nullText("player_name"),
		Event:         r.requiredText("event"),
		Successful:    r.boolean("event_successful"),
		XCoord:        r.coord("x_coord"),
		YCoord:        r.coord("y_coord"),
		EventType:     r.nullText("event_type"),
		PlayerName2:   r.nullText("player_name_2"),
		XCoord2:       r.coord("x_coord_2"),
		YCoord2:       r.coord("y_coord_2"),
		EventDetail1:  r.nullText("event_detail_1"),
		EventDetail2:  r.nullText("event_detail_2"),
		EventDetail3:  r.nullText("event_detail_3"),
	}
	return e, r.err
}
