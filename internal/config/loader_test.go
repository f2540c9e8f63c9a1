package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/vizpages/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.BarChartData, convey.ShouldEqual, filepath.Join("bar-chart", "data.json"))
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("VIZPAGES_ADDR", ":8080")
			_ = os.Setenv("VIZPAGES_DATA_DIR", "/srv/data")
			_ = os.Setenv("VIZPAGES_BAR_CHART_DATA", "https://example.com/GDP-data.json")
			_ = os.Setenv("VIZPAGES_FETCH_TIMEOUT_MS", "2500")
			_ = os.Setenv("VIZPAGES_LOAD_CONCURRENCY", "2")

			cfg, err := config.Load(ctx)

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/data")
				convey.So(cfg.BarChartData, convey.ShouldEqual, "https://example.com/GDP-data.json")
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.LoadConcurrency, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When loading config from a YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
log_format: json
heat_map_data: "file:///tmp/global-temperature.json"
load_concurrency: 1
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("VIZPAGES_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge the file over the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.HeatMapData, convey.ShouldEqual, "file:///tmp/global-temperature.json")
				convey.So(cfg.LoadConcurrency, convey.ShouldEqual, 1)
				convey.So(cfg.ScatterplotData, convey.ShouldEqual, filepath.Join("scatterplot-graph", "data.json"))
			})

			convey.Convey("And environment variables should override file values", func() {
				_ = os.Setenv("VIZPAGES_ADDR", ":7070")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("VIZPAGES_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("VIZPAGES_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("VIZPAGES_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When load concurrency is zero", func() {
			_ = os.Setenv("VIZPAGES_LOAD_CONCURRENCY", "0")

			_, err := config.Load(ctx)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the log format is unknown", func() {
			_ = os.Setenv("VIZPAGES_LOG_FORMAT", "xml")

			_, err := config.Load(ctx)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "xml")
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given a config with an empty dataset source", t, func() {
		cfg := config.New()
		cfg.ChoroplethEducation = " "

		err := cfg.Validate()
		convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		convey.So(err.Error(), convey.ShouldContainSubstring, "choropleth_education")
	})

	convey.Convey("Given a negative fetch timeout", t, func() {
		cfg := config.New()
		cfg.FetchTimeoutMS = -1
		convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"VIZPAGES_CONFIG",
		"VIZPAGES_ADDR",
		"VIZPAGES_LOG_LEVEL",
		"VIZPAGES_LOG_FORMAT",
		"VIZPAGES_DATA_DIR",
		"VIZPAGES_BAR_CHART_DATA",
		"VIZPAGES_HEAT_MAP_DATA",
		"VIZPAGES_SCATTERPLOT_DATA",
		"VIZPAGES_CHOROPLETH_COUNTIES",
		"VIZPAGES_CHOROPLETH_EDUCATION",
		"VIZPAGES_FETCH_TIMEOUT_MS",
		"VIZPAGES_LOAD_CONCURRENCY",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "vizpages-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
