package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	app "github.com/okian/vizpages/internal/app"
	"github.com/okian/vizpages/internal/config"
	"github.com/okian/vizpages/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func startedService() *app.Service {
	cfg := config.New()
	cfg.DataDir = "../internal/app/testdata"
	svc := app.New(app.ConfigOptions(cfg, logger.Nop())...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestMainConfiguration(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		_ = os.Setenv("VIZPAGES_ADDR", ":8080")
		_ = os.Setenv("VIZPAGES_LOAD_CONCURRENCY", "2")
		defer func() {
			_ = os.Unsetenv("VIZPAGES_ADDR")
			_ = os.Unsetenv("VIZPAGES_LOAD_CONCURRENCY")
		}()

		convey.Convey("Then configuration should be loadable", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.LoadConcurrency, convey.ShouldEqual, 2)
		})
	})

	convey.Convey("Given an empty listen address", t, func() {
		_ = os.Setenv("VIZPAGES_ADDR", "")
		defer func() { _ = os.Unsetenv("VIZPAGES_ADDR") }()

		convey.Convey("Then run refuses to start", func() {
			convey.So(run(), convey.ShouldNotBeNil)
		})
	})
}

func TestMux(t *testing.T) {
	convey.Convey("Given the full route table over the test datasets", t, func() {
		svc := startedService()
		defer svc.Stop()
		mux := newMux(context.Background(), svc)

		for _, tc := range []struct {
			path string
			code int
		}{
			{"/", http.StatusOK},
			{"/pages/bar-chart", http.StatusOK},
			{"/pages/choropleth-map/chart.svg", http.StatusOK},
			{"/api/pages", http.StatusOK},
			{"/api/pages/scatterplot-graph/marks", http.StatusOK},
			{"/api/pages/heat-map/marks/0/hover", http.StatusOK},
			{"/openapi.yaml", http.StatusOK},
			{"/api-docs", http.StatusOK},
			{"/stats", http.StatusOK},
			{"/healthz", http.StatusOK},
			{"/pages/pie-chart", http.StatusNotFound},
		} {
			convey.Convey("Then GET "+tc.path+" answers", func() {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, tc.code)
			})
		}
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the background updaters", t, func() {
		svc := startedService()
		defer svc.Stop()

		convey.Convey("Then they return once the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
			convey.So(func() { startServiceMetricsUpdater(ctx, svc) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then single updates do not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})
	})
}
