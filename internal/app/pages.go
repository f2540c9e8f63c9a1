package service

import (
	"fmt"

	"github.com/okian/vizpages/internal/domain/chart"
	"github.com/okian/vizpages/internal/domain/dataset"
	"github.com/okian/vizpages/internal/domain/geo"
)

// BuildFunc turns the raw bodies of a page's sources, in source order, into
// a chart.
type BuildFunc func(bodies [][]byte) (*chart.Chart, error)

// Page describes one visualization page: where its data lives and how it is
// built.
type Page struct {
	Name    string
	Title   string
	Sources []string
	Build   BuildFunc
}

// Sources locates the datasets of the four built-in pages. Relative paths are
// resolved by the loader against its base directory.
type Sources struct {
	BarChart            string
	HeatMap             string
	Scatterplot         string
	ChoroplethCounties  string
	ChoroplethEducation string
}

// DefaultSources is the layout of the bundled data directory.
func DefaultSources() Sources {
	return Sources{
		BarChart:            "bar-chart/data.json",
		HeatMap:             "heat-map/data.json",
		Scatterplot:         "scatterplot-graph/data.json",
		ChoroplethCounties:  "choropleth-map/counties.json",
		ChoroplethEducation: "choropleth-map/education.json",
	}
}

// BuiltinPages returns the four pages wired to src.
func BuiltinPages(src Sources) []Page {
	return []Page{
		{Name: chart.BarChartName, Title: "United States GDP", Sources: []string{src.BarChart}, Build: buildBar},
		{Name: chart.ChoroplethName, Title: "United States Educational Attainment", Sources: []string{src.ChoroplethCounties, src.ChoroplethEducation}, Build: buildChoropleth},
		{Name: chart.HeatMapName, Title: "Monthly Global Land-Surface Temperature", Sources: []string{src.HeatMap}, Build: buildHeatMap},
		{Name: chart.ScatterName, Title: "Doping in Professional Bicycle Racing", Sources: []string{src.Scatterplot}, Build: buildScatter},
	}
}

func buildBar(bodies [][]byte) (*chart.Chart, error) {
	var rows [][]any
	if err := dataset.Decode(bodies[0], "data", &rows); err != nil {
		return nil, err
	}
	return chart.BuildBar(chart.PrepareGDP(rows)), nil
}

func buildHeatMap(bodies [][]byte) (*chart.Chart, error) {
	var base float64
	if err := dataset.Decode(bodies[0], "baseTemperature", &base); err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := dataset.Decode(bodies[0], "monthlyVariance", &rows); err != nil {
		return nil, err
	}
	return chart.BuildHeatMap(chart.PrepareHeat(base, rows)), nil
}

func buildScatter(bodies [][]byte) (*chart.Chart, error) {
	var rows []map[string]any
	if err := dataset.Decode(bodies[0], "", &rows); err != nil {
		return nil, err
	}
	return chart.BuildScatter(chart.PrepareRaces(rows)), nil
}

func buildChoropleth(bodies [][]byte) (*chart.Chart, error) {
	topo, err := geo.Parse(bodies[0])
	if err != nil {
		return nil, err
	}
	counties, err := topo.Features(chart.CountiesObject)
	if err != nil {
		return nil, fmt.Errorf("counties: %w", err)
	}
	var rows []map[string]any
	if err := dataset.Decode(bodies[1], "", &rows); err != nil {
		return nil, err
	}
	return chart.BuildChoropleth(counties, chart.PrepareEducation(rows)), nil
}
