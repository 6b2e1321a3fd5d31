package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cfbranks/rankview/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func gateway(healthy bool, weeks string, teams string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if healthy {
			w.Write([]byte(`{"status":"ok","upstream":true}`))
		} else {
			w.Write([]byte(`{"status":"ok","upstream":false}`))
		}
	})
	mux.HandleFunc("/api/weeks", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(weeks))
	})
	mux.HandleFunc("/api/rankings", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(teams))
	})
	return httptest.NewServer(mux)
}

func TestProbeRun(t *testing.T) {
	Convey("Given a healthy gateway", t, func() {
		srv := gateway(true, `{"weeks":[1,2,3]}`, `{"teams":[{},{}]}`)
		defer srv.Close()

		cfg := &Config{BaseURL: srv.URL, Year: 2025, Week: 10, Timeout: time.Second}
		res, err := cfg.Run(context.Background())

		Convey("Then all three checks pass", func() {
			So(err, ShouldBeNil)
			So(res.Upstream, ShouldBeTrue)
			So(res.Weeks, ShouldEqual, 3)
			So(res.Teams, ShouldEqual, 2)
		})
	})

	Convey("Given a gateway whose upstream is down", t, func() {
		srv := gateway(false, `{"weeks":[1,2,3]}`, `{"teams":[{}]}`)
		defer srv.Close()

		cfg := &Config{BaseURL: srv.URL, Year: 2025, Week: 10, Timeout: time.Second}
		_, err := cfg.Run(context.Background())

		Convey("Then the run fails even though every endpoint answered", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unreachable")
		})
	})

	Convey("Given an empty rankings snapshot", t, func() {
		srv := gateway(true, `{"weeks":[1]}`, `{"teams":[]}`)
		defer srv.Close()

		cfg := &Config{BaseURL: srv.URL, Year: 2025, Week: 10, Timeout: time.Second}
		_, err := cfg.Run(context.Background())

		Convey("Then the rankings check fails", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "empty")
		})
	})

	Convey("Given an unreachable gateway", t, func() {
		cfg := &Config{BaseURL: "http://127.0.0.1:1", Year: 2025, Week: 10, Timeout: 200 * time.Millisecond}
		_, err := cfg.Run(context.Background())

		Convey("Then the health check fails first", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
