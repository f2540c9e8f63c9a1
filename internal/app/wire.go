package service

import (
	"github.com/okian/vizpages/internal/config"
	"github.com/okian/vizpages/internal/domain/dataset"
	"github.com/okian/vizpages/pkg/logger"
)

// ConfigOptions translates cfg into service options: a loader rooted at the
// data directory with the fetch timeout, the configured sources and the load
// concurrency.
func ConfigOptions(cfg *config.Config, log logger.Logger) []Option {
	loader := dataset.NewLoader(
		dataset.WithBaseDir(cfg.DataDir),
		dataset.WithTimeout(cfg.FetchTimeout()),
		dataset.WithLogger(log.Named("loader")),
	)
	return []Option{
		WithLogger(log),
		WithLoader(loader),
		WithLoadConcurrency(cfg.LoadConcurrency),
		WithSources(Sources{
			BarChart:            cfg.BarChartData,
			HeatMap:             cfg.HeatMapData,
			Scatterplot:         cfg.ScatterplotData,
			ChoroplethCounties:  cfg.ChoroplethCounties,
			ChoroplethEducation: cfg.ChoroplethEducation,
		}),
	}
}
