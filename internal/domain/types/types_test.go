package types_test

import (
	"encoding/json"
	"testing"

	"github.com/cfbranks/rankview/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOptionalMetrics(t *testing.T) {
	Convey("Given a team with no computed schedule metrics", t, func() {
		team := types.Team{TeamName: "Army", Conference: "American"}

		Convey("Then sos and sov serialize as null, not zero", func() {
			raw, err := json.Marshal(team)
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"sos":null`)
			So(string(raw), ShouldContainSubstring, `"sov":null`)
		})
	})

	Convey("Given a team with a computed zero sos", t, func() {
		zero := 0.0
		team := types.Team{TeamName: "Army", SoS: &zero}

		Convey("Then the zero survives serialization", func() {
			raw, err := json.Marshal(team)
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"sos":0`)
		})
	})
}

func TestBreakdownErrorField(t *testing.T) {
	Convey("Given a breakdown payload carrying an explicit error", t, func() {
		raw := []byte(`{"error":"Team 'Slippery Rock' not found in rankings."}`)

		var b types.TeamBreakdown
		err := json.Unmarshal(raw, &b)

		Convey("Then the error is data, not a decode failure", func() {
			So(err, ShouldBeNil)
			So(b.Err, ShouldEqual, "Team 'Slippery Rock' not found in rankings.")
			So(b.ComparisonsAhead, ShouldBeEmpty)
		})
	})
}
