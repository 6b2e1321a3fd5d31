package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/cfbranks/rankview/internal/adapters/http/api"
	"github.com/cfbranks/rankview/internal/adapters/http/site"
	"github.com/cfbranks/rankview/internal/adapters/http/swagger"
	"github.com/cfbranks/rankview/internal/adapters/rankings"
	"github.com/cfbranks/rankview/internal/app"
	"github.com/cfbranks/rankview/internal/config"
	"github.com/cfbranks/rankview/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("RANKVIEW_ADDR", ":8080")
			_ = os.Setenv("RANKVIEW_BACKEND_BASE_URL", "http://ranking.test:5000")
			defer func() {
				_ = os.Unsetenv("RANKVIEW_ADDR")
				_ = os.Unsetenv("RANKVIEW_BACKEND_BASE_URL")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.BackendBaseURL, convey.ShouldEqual, "http://ranking.test:5000")
			})
		})

		convey.Convey("When testing store creation", func() {
			convey.Convey("Then the store should be creatable with default options", func() {
				store := app.New()
				convey.So(store, convey.ShouldNotBeNil)
			})

			convey.Convey("And the store should be creatable with custom options", func() {
				store := app.New(
					app.WithClient(rankings.New()),
					app.WithYearsShown(3),
					app.WithMaxWeek(15),
				)
				convey.So(store, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			store := app.New(app.WithClient(rankings.New()))

			convey.Convey("Then the API server should be creatable", func() {
				server := api.NewServer(store)
				convey.So(server, convey.ShouldNotBeNil)
			})

			convey.Convey("And all route groups should register on one mux", func() {
				ctx := context.Background()
				mux := http.NewServeMux()
				swagger.Register(ctx, mux)
				api.NewServer(store).Register(ctx, mux)
				site.Register(ctx, mux)
				convey.So(mux, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then the metrics manager should be creatable", func() {
				manager := metrics.New()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestServerTimeouts(t *testing.T) {
	convey.Convey("Given the HTTP server timeout constants", t, func() {
		convey.So(readTimeout, convey.ShouldEqual, 10*time.Second)
		convey.So(writeTimeout, convey.ShouldBeGreaterThanOrEqualTo, readTimeout)
		convey.So(readHeaderTimeout, convey.ShouldBeLessThanOrEqualTo, readTimeout)
		convey.So(shutdownTimeout, convey.ShouldEqual, 30*time.Second)
	})
}
