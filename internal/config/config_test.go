package config_test

import (
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/vizpages/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.DataDir, convey.ShouldEqual, "data")
			convey.So(cfg.LoadConcurrency, convey.ShouldEqual, 4)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then dataset fetches have no deadline", func() {
			convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 0)
			convey.So(cfg.FetchTimeout(), convey.ShouldEqual, time.Duration(0))
		})
	})
}
