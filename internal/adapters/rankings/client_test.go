package rankings_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cfbranks/rankview/internal/adapters/cache"
	"github.com/cfbranks/rankview/internal/adapters/rankings"
	"github.com/cfbranks/rankview/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

const rankingsPayload = `{
	"team_rankings": [
		{"team_name": "Georgia", "conference": "SEC", "final_ranking_score": 91.2,
		 "records": {"total_wins": 12, "total_losses": 1}},
		{"team": "Boise State", "conference": "Mountain West", "score": 84.0,
		 "records": {"total_wins": 11, "total_losses": 2}}
	],
	"conference_rankings": [
		{"conference_name": "SEC", "average_team_quality": 1590.1, "record_vs_p4": "18-9"}
	],
	"year": 2025, "week": 11, "generated_at": "2025-11-04T12:00:00Z"
}`

func TestFetchRankings(t *testing.T) {
	Convey("Given a ranking service", t, func() {
		var gotQuery atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery.Store(r.URL.RawQuery)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(rankingsPayload))
		}))
		defer srv.Close()

		c := rankings.New(rankings.WithBaseURL(srv.URL))

		Convey("When fetching without weights", func() {
			resp, err := c.FetchRankings(context.Background(), 2025, 10, nil)

			Convey("Then the payload normalizes across both naming schemes", func() {
				So(err, ShouldBeNil)
				So(len(resp.Teams), ShouldEqual, 2)
				So(resp.Teams[0].TeamName, ShouldEqual, "Georgia")
				So(resp.Teams[1].TeamName, ShouldEqual, "Boise State")
				So(resp.Teams[1].FinalRankingScore, ShouldEqual, 84.0)
				So(resp.Conferences[0].PowerWinPct, ShouldAlmostEqual, 18.0/27.0, 0.0001)
			})

			Convey("And the server-echoed week wins over the requested one", func() {
				So(resp.Week, ShouldEqual, 11)
			})

			Convey("And no weight parameters are sent", func() {
				So(gotQuery.Load().(string), ShouldNotContainSubstring, "team_quality_weight")
			})
		})

		Convey("When fetching with custom weights", func() {
			w := &types.Weights{TeamQuality: 0.55, RecordScore: 0.35, ConferenceQuality: 0.1, PriorStrength: 0.7}
			_, err := c.FetchRankings(context.Background(), 2025, 10, w)

			Convey("Then all four weight parameters are forwarded", func() {
				So(err, ShouldBeNil)
				q := gotQuery.Load().(string)
				So(q, ShouldContainSubstring, "team_quality_weight=0.55")
				So(q, ShouldContainSubstring, "record_score_weight=0.35")
				So(q, ShouldContainSubstring, "conference_quality_weight=0.1")
				So(q, ShouldContainSubstring, "prior_strength=0.7")
			})
		})
	})

	Convey("Given a service returning a parseable error body", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message": "No game data found for 2031."}`))
		}))
		defer srv.Close()

		c := rankings.New(rankings.WithBaseURL(srv.URL))
		_, err := c.FetchRankings(context.Background(), 2031, 1, nil)

		Convey("Then the service's message surfaces verbatim", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "No game data found for 2031.")
		})
	})

	Convey("Given a service returning an unparseable error body", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>oops</html>"))
		}))
		defer srv.Close()

		c := rankings.New(rankings.WithBaseURL(srv.URL))
		_, err := c.FetchRankings(context.Background(), 2025, 1, nil)

		Convey("Then a generic HTTP status message is used", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "HTTP 500")
		})
	})

	Convey("Given a malformed-but-delivered success payload", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		c := rankings.New(rankings.WithBaseURL(srv.URL))
		resp, err := c.FetchRankings(context.Background(), 2025, 4, nil)

		Convey("Then normalization absorbs it into an empty snapshot", func() {
			So(err, ShouldBeNil)
			So(resp.Teams, ShouldBeEmpty)
			So(resp.Year, ShouldEqual, 2025)
			So(resp.Week, ShouldEqual, 4)
		})
	})

	Convey("Given a client with the snapshot cache enabled", t, func() {
		var hits atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(rankingsPayload))
		}))
		defer srv.Close()

		c := rankings.New(
			rankings.WithBaseURL(srv.URL),
			rankings.WithCache(cache.New(cache.WithTTL(time.Minute))),
		)

		Convey("When the same default-weight query repeats", func() {
			_, err1 := c.FetchRankings(context.Background(), 2025, 10, nil)
			_, err2 := c.FetchRankings(context.Background(), 2025, 10, nil)

			Convey("Then only one upstream request is made", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(hits.Load(), ShouldEqual, 1)
			})
		})

		Convey("When custom weights are supplied", func() {
			w := &types.Weights{TeamQuality: 0.6}
			_, _ = c.FetchRankings(context.Background(), 2025, 10, w)
			_, _ = c.FetchRankings(context.Background(), 2025, 10, w)

			Convey("Then the cache is bypassed both times", func() {
				So(hits.Load(), ShouldEqual, 2)
			})
		})
	})
}

func TestAvailableWeeks(t *testing.T) {
	Convey("Given a service listing its weeks", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"weeks": [1, 2, 3, 4, 5]}`))
		}))
		defer srv.Close()

		c := rankings.New(rankings.WithBaseURL(srv.URL))

		Convey("Then the listed weeks come back", func() {
			So(c.AvailableWeeks(context.Background(), 2025), ShouldResemble, []int{1, 2, 3, 4, 5})
		})
	})

	Convey("Given a service answering 500", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := rankings.New(rankings.WithBaseURL(srv.URL))
		weeks := c.AvailableWeeks(context.Background(), 2025)

		Convey("Then the default 1..15 range substitutes", func() {
			So(len(weeks), ShouldEqual, 15)
			So(weeks[0], ShouldEqual, 1)
			So(weeks[14], ShouldEqual, 15)
		})
	})

	Convey("Given an unreachable service", t, func() {
		c := rankings.New(rankings.WithBaseURL("http://127.0.0.1:1"))

		Convey("Then the default range substitutes without error", func() {
			So(len(c.AvailableWeeks(context.Background(), 2025)), ShouldEqual, 15)
		})
	})
}

func TestHealthy(t *testing.T) {
	Convey("Given a live service", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		c := rankings.New(rankings.WithBaseURL(srv.URL))
		So(c.Healthy(context.Background()), ShouldBeTrue)
	})

	Convey("Given a service answering 503", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := rankings.New(rankings.WithBaseURL(srv.URL))
		So(c.Healthy(context.Background()), ShouldBeFalse)
	})

	Convey("Given a service that hangs past the probe timeout", t, func() {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer func() {
			close(release)
			srv.Close()
		}()

		c := rankings.New(
			rankings.WithBaseURL(srv.URL),
			rankings.WithHealthTimeout(50*time.Millisecond),
		)

		start := time.Now()
		healthy := c.Healthy(context.Background())

		Convey("Then the probe resolves false instead of hanging", func() {
			So(healthy, ShouldBeFalse)
			So(time.Since(start), ShouldBeLessThan, 2*time.Second)
		})
	})

	Convey("Given an unreachable service", t, func() {
		c := rankings.New(rankings.WithBaseURL("http://127.0.0.1:1"))
		So(c.Healthy(context.Background()), ShouldBeFalse)
	})
}

func TestFetchTeamBreakdown(t *testing.T) {
	breakdownPayload := `{
		"team": {"rank": 3, "name": "Georgia", "conference": "SEC",
			"record": "12-1", "conf_record": "8-1", "final_score": 91.2,
			"team_quality": 95.0, "record_score": 88.1, "conference_quality": 80.4,
			"sos": 1520.5, "sov": 1483.0, "power_record": "10-1", "g5_record": "2-0"},
		"formula_breakdown": {"tq_contribution": 52.25, "rec_contribution": 30.835,
			"cq_contribution": 8.04, "total": 91.2},
		"comparisons_ahead": [
			{"other_team": "Ohio State", "other_rank": 2, "other_record": "13-0",
			 "score_diff": -2.4, "direction": "ahead",
			 "factors": [{"factor": "Team Quality (Elo)", "advantage": "other",
				"diff": 20.0, "contribution": 11.0,
				"explanation": "Lower Elo rating (1550 vs 1570)"}]}
		],
		"comparisons_behind": []
	}`

	Convey("Given a service returning a breakdown", t, func() {
		var gotPath atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath.Store(r.URL.Path)
			_, _ = w.Write([]byte(breakdownPayload))
		}))
		defer srv.Close()

		c := rankings.New(rankings.WithBaseURL(srv.URL))
		b, err := c.FetchTeamBreakdown(context.Background(), "Georgia", 2025, 11, nil)

		Convey("Then the decomposition and comparisons decode", func() {
			So(err, ShouldBeNil)
			So(gotPath.Load().(string), ShouldEqual, "/rankings/team/Georgia")
			So(b.Team.Rank, ShouldEqual, 3)
			So(b.Formula.TQContribution, ShouldEqual, 52.25)
			So(len(b.ComparisonsAhead), ShouldEqual, 1)
			So(b.ComparisonsAhead[0].Factors[0].Advantage, ShouldEqual, "other")
			So(b.ComparisonsBehind, ShouldBeEmpty)
			So(b.Err, ShouldBeEmpty)
		})
	})

	Convey("Given a not-found team answered with a JSON error body", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "Team 'Nowhere' not found in rankings."}`))
		}))
		defer srv.Close()

		c := rankings.New(rankings.WithBaseURL(srv.URL))
		b, err := c.FetchTeamBreakdown(context.Background(), "Nowhere", 2025, 11, nil)

		Convey("Then the error field is display data, not a failure", func() {
			So(err, ShouldBeNil)
			So(b.Err, ShouldEqual, "Team 'Nowhere' not found in rankings.")
		})
	})

	Convey("Given a non-success answer with an unparseable body", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream exploded"))
		}))
		defer srv.Close()

		c := rankings.New(rankings.WithBaseURL(srv.URL))
		_, err := c.FetchTeamBreakdown(context.Background(), "Georgia", 2025, 11, nil)

		Convey("Then a generic HTTP status message surfaces", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "HTTP 502")
		})
	})
}
