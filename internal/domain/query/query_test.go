package query_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/okian/pxpstats/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWhereBuilder(t *testing.T) {
	Convey("Given an empty where builder", t, func() {
		wb := query.NewWhereBuilder()

		Convey("Then it should build a tautology with no args", func() {
			where, args := wb.Build()
			So(where, ShouldEqual, "1=1")
			So(args, ShouldBeEmpty)
		})

		Convey("When empty equality values are added", func() {
			wb.Equals(query.ColTeamName, "").Equals(query.ColPlayerName, "")

			Convey("Then they should be skipped", func() {
				where, args := wb.Build()
				So(where, ShouldEqual, "1=1")
				So(args, ShouldBeEmpty)
			})
		})

		Convey("When mixed clauses are added", func() {
			wb.Equals(query.ColTeamName, "Canada").
				NotNull(query.ColXCoord).
				In(query.ColEvent, "Shot", "Play")
			where, args := wb.Build()

			Convey("Then they should be joined with AND in insertion order", func() {
				So(where, ShouldEqual, "team_name = ? AND x_coord IS NOT NULL AND event IN (?, ?)")
				So(args, ShouldResemble, []any{"Canada", "Shot", "Play"})
			})
		})
	})
}

func TestEventsQuery(t *testing.T) {
	Convey("Given a filter with a hostile team name", t, func() {
		hostile := "Canada'; DROP TABLE play_by_play; --"
		sql, args := query.EventsQuery(query.Filter{Team: hostile}, query.Page{Limit: 10, Offset: 5})

		Convey("Then the value should only appear as a bound argument", func() {
			So(sql, ShouldNotContainSubstring, "DROP")
			So(args, ShouldResemble, []any{hostile, 10, 5})
		})

		Convey("And the query should use the event ordering and pagination", func() {
			So(sql, ShouldStartWith, "SELECT id, game_date, season_year")
			So(sql, ShouldContainSubstring, "FROM play_by_play WHERE team_name = ?")
			So(sql, ShouldEndWith, "ORDER BY game_date DESC, period ASC, clock_seconds DESC, id ASC LIMIT ? OFFSET ?")
		})
	})

	Convey("Given an empty filter", t, func() {
		sql, args := query.EventsQuery(query.Filter{}, query.Page{Limit: 100})

		Convey("Then every row should match", func() {
			So(sql, ShouldContainSubstring, "WHERE 1=1 ORDER BY")
			So(args, ShouldResemble, []any{100, 0})
		})
	})

	Convey("Given all three filters", t, func() {
		_, args := query.EventsQuery(query.Filter{Team: "T", Player: "P", Event: "Shot"}, query.Page{Limit: 1})

		Convey("Then args should follow team, player, event order", func() {
			So(args, ShouldResemble, []any{"T", "P", "Shot", 1, 0})
		})
	})
}

func TestSelect(t *testing.T) {
	Convey("Given a grouped select with expression args", t, func() {
		sql, args := query.Select{
			Columns: []query.Expr{
				query.Col(query.ColTeamName),
				{SQL: "SUM(CASE WHEN event = ? THEN 1 ELSE 0 END) AS shots", Args: []any{"Shot"}},
			},
			Where:   query.NewWhereBuilder().Equals(query.ColTeamName, "Canada"),
			GroupBy: []string{query.ColTeamName},
			OrderBy: []string{query.ColTeamName},
		}.Build()

		Convey("Then column args should precede where args", func() {
			So(args, ShouldResemble, []any{"Shot", "Canada"})
			So(sql, ShouldEqual, "SELECT team_name, SUM(CASE WHEN event = ? THEN 1 ELSE 0 END) AS shots "+
				"FROM play_by_play WHERE team_name = ? GROUP BY team_name ORDER BY team_name")
		})
	})
}

func TestInsertStatement(t *testing.T) {
	Convey("Given a two row insert", t, func() {
		sql := query.InsertStatement(2)

		Convey("Then it should carry one placeholder per column per row", func() {
			So(strings.Count(sql, "?"), ShouldEqual, 2*len(query.InsertColumns))
			So(sql, ShouldNotContainSubstring, "(id,")
		})
	})

	Convey("The batch ceiling should respect the bound-parameter limit", t, func() {
		So(query.MaxInsertRows*len(query.InsertColumns), ShouldBeLessThanOrEqualTo, 32766)
	})
}

func TestPagination(t *testing.T) {
	Convey("Given raw pagination values", t, func() {
		Convey("When both keys are missing", func() {
			p, err := query.ParsePage(url.Values{}, 2000)
			So(err, ShouldBeNil)
			So(p, ShouldResemble, query.Page{Limit: 2000, Offset: 0})
		})

		Convey("When values carry surrounding spaces", func() {
			p, err := query.ParsePage(url.Values{"limit": {" 10 "}, "offset": {"5"}}, 2000)
			So(err, ShouldBeNil)
			So(p, ShouldResemble, query.Page{Limit: 10, Offset: 5})
		})

		Convey("When a value is not a number", func() {
			_, err := query.ParsePage(url.Values{"limit": {"abc"}, "offset": {"0"}}, 2000)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "limit and offset must be numbers")
			So(errors.Is(err, query.ErrInvalidPage), ShouldBeTrue)

			_, err = query.ParsePage(url.Values{"limit": {"10"}, "offset": {"1.5"}}, 2000)
			So(err.Error(), ShouldEqual, "limit and offset must be numbers")
		})

		Convey("When a key is present but empty", func() {
			for _, raw := range []string{"", " "} {
				_, err := query.ParsePage(url.Values{"limit": {raw}}, 2000)
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldEqual, "limit and offset must be numbers")

				_, err = query.ParsePage(url.Values{"offset": {raw}}, 2000)
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldEqual, "limit and offset must be numbers")
			}
		})

		Convey("When the limit overflows int", func() {
			for _, raw := range []string{"99999999999999999999", "-99999999999999999999"} {
				p, err := query.ParsePage(url.Values{"limit": {raw}, "offset": {"0"}}, 2000)
				So(err, ShouldBeNil)

				err = p.Validate(2000)
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldEqual, "limit must be between 1 and 2000")
			}
		})

		Convey("When the offset overflows negatively", func() {
			p, err := query.ParsePage(url.Values{"offset": {"-99999999999999999999"}}, 2000)
			So(err, ShouldBeNil)
			So(p.Validate(2000).Error(), ShouldEqual, "offset cannot be negative")
		})
	})

	Convey("Given pages to validate against a max of 2000", t, func() {
		cases := []struct {
			page query.Page
			msg  string
		}{
			{query.Page{Limit: 0}, "limit must be between 1 and 2000"},
			{query.Page{Limit: 3000}, "limit must be between 1 and 2000"},
			{query.Page{Limit: 0, Offset: -1}, "limit must be between 1 and 2000"},
			{query.Page{Limit: 10, Offset: -1}, "offset cannot be negative"},
		}
		for _, tc := range cases {
			err := tc.page.Validate(2000)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, tc.msg)
		}

		So(query.Page{Limit: 1}.Validate(2000), ShouldBeNil)
		So(query.Page{Limit: 2000, Offset: 1_000_000}.Validate(2000), ShouldBeNil)
	})
}
