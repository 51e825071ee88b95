package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Filter narrows events by exact, case-sensitive equality.
// A zero field places no constraint.
type Filter struct {
	Team   string
	Player string
	Event  string
}

// Page is a limit/offset window over an ordered result.
type Page struct {
	Limit  int
	Offset int
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Query-string keys read by ParsePage.
const (
	LimitParam  = "limit"
	OffsetParam = "offset"
)

// ParsePage converts query-string values into a Page. A missing key takes
// the default (defaultLimit for limit, 0 for offset); a key that is present
// must hold an integer, so "?limit=" is rejected. An integer too large for
// int keeps its clamped value and fails Validate with the range message.
func ParsePage(values url.Values, defaultLimit int) (Page, error) {
	p := Page{Limit: defaultLimit}
	var err error
	if values.Has(LimitParam) {
		if p.Limit, err = parseInt(values.Get(LimitParam)); err != nil {
			return Page{}, &ValidationError{Field: LimitParam, Message: "limit and offset must be numbers"}
		}
	}
	if values.Has(OffsetParam) {
		if p.Offset, err = parseInt(values.Get(OffsetParam)); err != nil {
			return Page{}, &ValidationError{Field: OffsetParam, Message: "limit and offset must be numbers"}
		}
	}
	return p, nil
}

// parseInt accepts surrounding whitespace. Out-of-range input returns the
// clamped value without error.
func parseInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) {
		return n, nil
	}
	return n, err
}

// Validate checks 1 <= Limit <= maxLimit and Offset >= 0, in that order.
func (p Page) Validate(maxLimit int) error {
	v := getValidator()
	if err := v.Var(p.Limit, fmt.Sprintf("min=1,max=%d", maxLimit)); err != nil {
		return &ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("limit must be between 1 and %d", maxLimit),
		}
	}
	if err := v.Var(p.Offset, "min=0"); err != nil {
		return &ValidationError{Field: "offset", Message: "offset cannot be negative"}
	}
	return nil
}

// EventOrder is the listing order for raw events. The trailing id keeps
// pages stable when two events share a timestamp.
var EventOrder = []string{
	ColGameDate + " DESC",
	ColPeriod + " ASC",
	ColClockSeconds + " DESC",
	ColID + " ASC",
}

// EventsQuery renders the filtered, paginated event listing.
func EventsQuery(f Filter, p Page) (string, []any) {
	wb := NewWhereBuilder().
		Equals(ColTeamName, f.Team).
		Equals(ColPlayerName, f.Player).
		Equals(ColEvent, f.Event)

	cols := make([]Expr, len(EventColumns))
	for i, c := range EventColumns {
		cols[i] = Col(c)
	}

	sql, args := Select{
		Columns: cols,
		Where:   wb,
		OrderBy: EventOrder,
	}.Build()

	return sql + " LIMIT ? OFFSET ?", append(args, p.Limit, p.Offset)
}
