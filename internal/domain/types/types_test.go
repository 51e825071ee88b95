package types_test

import (
	"testing"

	"github.com/goccy/go-json"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pxpstats/internal/domain/model"
	"github.com/okian/pxpstats/internal/domain/types"
)

func TestGame(t *testing.T) {
	Convey("Given a game", t, func() {
		g := types.Game{GameDate: "2024-01-10", TeamName: "Canada", OppTeamName: "USA", Venue: "home"}

		Convey("Then its key names the same game as its events", func() {
			e := model.Event{GameDate: "2024-01-10", TeamName: "Canada", OppTeamName: "USA"}
			So(g.Key(), ShouldResemble, e.Game())
		})
	})
}

func TestSpatialEventJSON(t *testing.T) {
	Convey("Given a located play without a y coordinate", t, func() {
		e := types.SpatialEvent{GameDate: "2024-01-10", Event: model.EventPlay, Successful: true, XCoord: 5}

		Convey("When it is encoded", func() {
			b, err := json.Marshal(e)
			So(err, ShouldBeNil)

			Convey("Then the missing values are null", func() {
				So(string(b), ShouldContainSubstring, `"y_coord":null`)
				So(string(b), ShouldContainSubstring, `"player_name":null`)
				So(string(b), ShouldContainSubstring, `"event_successful":true`)
			})
		})
	})
}
