// Package config defines service configuration structures and loading hooks.
package config

import (
	"path/filepath"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir is the base directory relative dataset paths resolve against.
	DataDir string `koanf:"data_dir"`

	// Dataset sources: http(s) URLs, file:// URLs or paths.
	BarChartData        string `koanf:"bar_chart_data"`
	HeatMapData         string `koanf:"heat_map_data"`
	ScatterplotData     string `koanf:"scatterplot_data"`
	ChoroplethCounties  string `koanf:"choropleth_counties"`
	ChoroplethEducation string `koanf:"choropleth_education"`

	// FetchTimeoutMS bounds a single dataset fetch. Zero waits forever.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// LoadConcurrency bounds how many pages load at once.
	LoadConcurrency int `koanf:"load_concurrency"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		DataDir:             "data",
		BarChartData:        filepath.Join("bar-chart", "data.json"),
		HeatMapData:         filepath.Join("heat-map", "data.json"),
		ScatterplotData:     filepath.Join("scatterplot-graph", "data.json"),
		ChoroplethCounties:  filepath.Join("choropleth-map", "counties.json"),
		ChoroplethEducation: filepath.Join("choropleth-map", "education.json"),
		FetchTimeoutMS:      0,
		LoadConcurrency:     4,
	}
}

// FetchTimeout is FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
