package chart

import (
	"math"

	"github.com/okian/vizpages/internal/domain/format"
	"github.com/okian/vizpages/internal/domain/scale"
	"github.com/okian/vizpages/internal/domain/tooltip"
)

// HeatMapName is the page name of the temperature heat map.
const HeatMapName = "heat-map"

const (
	heatWidth        = 1200
	heatHeight       = 600
	heatPadTop       = 30
	heatPadRight     = 60
	heatPadBottom    = 120
	heatPadLeft      = 120
	heatLegendWidth  = 500
	heatLegendHeight = 30
	celsius          = "℃"
)

// Months are the y-axis labels, indexed by zero-based month.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// TemperatureThresholds are the bucket boundaries, in degrees, of the cell
// fill colours.
var TemperatureThresholds = []float64{3.9, 5.0, 6.1, 7.2, 8.3, 9.5, 10.6, 11.7}

// legend band ends just outside the first and last thresholds
const (
	legendLow  = 2.8
	legendHigh = 12.8
)

// TemperatureRecord is one month of the land-surface series. Month is zero
// based.
type TemperatureRecord struct {
	Year     float64
	Month    float64
	Variance float64
}

// HeatDataset is the prepared heat-map input.
type HeatDataset struct {
	BaseTemperature float64
	Records         []TemperatureRecord
}

// PrepareHeat maps {year, month, variance} rows to records, shifting months
// to start at zero.
func PrepareHeat(base float64, rows []map[string]any) HeatDataset {
	out := HeatDataset{BaseTemperature: base, Records: make([]TemperatureRecord, len(rows))}
	for i, row := range rows {
		year, _ := numberField(row, "year")
		month, _ := numberField(row, "month")
		variance, _ := numberField(row, "variance")
		out.Records[i] = TemperatureRecord{Year: year, Month: month - 1, Variance: variance}
	}
	return out
}

// Temperature is the absolute temperature of r.
func (d HeatDataset) Temperature(r TemperatureRecord) float64 {
	return d.BaseTemperature + r.Variance
}

// BuildHeatMap builds the heat map: one cell per month in a year-by-month
// grid, coloured by absolute temperature, with a banded colour legend.
func BuildHeatMap(d HeatDataset) *Chart {
	years := make([]float64, len(d.Records))
	for i, r := range d.Records {
		years[i] = r.Year
	}
	x := scale.NewBand(years, heatPadLeft, heatWidth-heatPadRight)

	monthKeys := make([]float64, len(Months))
	for i := range Months {
		monthKeys[i] = float64(i)
	}
	y := scale.NewBand(monthKeys, heatPadTop, heatHeight-heatPadTop-heatPadBottom)
	fill := scale.NewThreshold(TemperatureThresholds, TemperatureColors)

	minYear, maxYear := "undefined", "undefined"
	if lo, hi, ok := scale.Extent(years); ok {
		minYear, maxYear = format.JSNumber(lo), format.JSNumber(hi)
	}

	c := &Chart{
		Name:        HeatMapName,
		Title:       "Monthly Global Land-Surface Temperature",
		Description: minYear + " - " + maxYear + ": base temperature " + format.JSNumber(d.BaseTemperature) + celsius,
		Container:   "heatmap",
		Width:       heatWidth,
		Height:      heatHeight,
		Placement:   tooltip.Placement{Anchor: tooltip.AnchorNorth, DY: -10, Opacity: "1", HiddenOpacity: "0"},
	}

	var decades []float64
	seen := map[float64]bool{}
	for _, yr := range years {
		if math.Mod(yr, 10) == 0 && !seen[yr] {
			seen[yr] = true
			decades = append(decades, yr)
		}
	}
	xAxis := NewAxis(Bottom, heatPadLeft, heatWidth-heatPadRight, BandTicks(x, decades, format.JSNumber)).
		WithID("x-axis").
		WithTransform("translate(0, " + format.JSNumber(heatHeight-heatPadBottom-heatPadTop) + ")")
	yAxis := NewAxis(Left, heatPadTop, heatHeight-heatPadTop-heatPadBottom, BandTicks(y, monthKeys, monthName)).
		WithID("y-axis").
		WithTransform("translate(" + format.JSNumber(heatPadLeft) + ", 0)")

	c.Scaffold = []Element{
		Text{
			Transform: "translate(" + format.JSNumber(heatPadLeft/4) + ", " + format.JSNumber((heatHeight-heatPadTop)/2) + ") rotate(-90)",
			FontSize:  "10",
			Content:   "Months",
		},
		Text{
			Transform: "translate(" + format.JSNumber(heatWidth/2) + ", " + format.JSNumber(heatHeight-heatPadTop-heatPadBottom/1.5) + ")",
			FontSize:  "10",
			Content:   "Years",
		},
		*xAxis,
		*yAxis,
		heatLegend(fill),
		MarkLayer{},
	}

	hover := Stroke{Color: "black", Width: "1"}
	c.Marks = make([]Mark, len(d.Records))
	for i, r := range d.Records {
		temp := d.Temperature(r)
		yearText := format.JSNumber(r.Year)
		m := Mark{
			Kind:   KindRect,
			Class:  "cell",
			X:      jsRound(x.Map(r.Year)),
			Y:      y.Map(r.Month),
			Width:  x.Bandwidth(),
			Height: y.Bandwidth(),
			Attrs: []Attr{
				{Name: "data-month", Value: format.JSNumber(r.Month)},
				{Name: "data-year", Value: yearText},
				{Name: "data-temp", Value: format.JSNumber(temp)},
			},
		}
		m.Fill, _ = fill.Map(temp)

		content := yearText + " - " + monthName(r.Month) + "<br>" +
			format.ToFixed(temp, 1) + celsius + "<br>" + format.ToFixed(r.Variance, 1) + celsius
		m.On(func(v *View, i int, p tooltip.Pointer) {
			v.SetStroke(i, hover)
			v.Tooltip.Show(tooltip.Update{
				HTML:    content,
				Data:    map[string]string{"data-year": yearText},
				Pointer: p,
				Target:  v.Target(i),
			})
		}, func(v *View, i int, _ tooltip.Pointer) {
			v.SetStroke(i, Stroke{})
			v.Tooltip.Hide()
		})
		m.settle()
		c.Marks[i] = m
	}
	return c
}

func heatLegend(fill *scale.Threshold[string]) Legend {
	full := append(append([]float64{legendLow}, TemperatureThresholds...), legendHigh)
	band := scale.NewBand(full, 0, heatLegendWidth)

	legend := Legend{
		ID:        "legend",
		Transform: "translate(" + format.JSNumber(heatPadLeft) + ", " + format.JSNumber(heatHeight-heatPadBottom/4-heatPadTop) + ")",
		Axis:      NewAxis(Bottom, 0, heatLegendWidth, BandTicks(band, full, format.JSNumber)),
		AxisFirst: true,
	}
	for _, v := range full[:len(full)-1] {
		color, _ := fill.Map(v)
		legend.Swatches = append(legend.Swatches, Mark{
			Kind:   KindRect,
			X:      band.Map(v) + band.Bandwidth()/2,
			Y:      -heatLegendHeight,
			Width:  band.Bandwidth(),
			Height: heatLegendHeight,
			Fill:   color,
			Stroke: Stroke{Color: "black"},
		})
	}
	return legend
}

func monthName(m float64) string {
	if m != math.Trunc(m) || m < 0 || int(m) >= len(Months) {
		return "undefined"
	}
	return Months[int(m)]
}

// jsRound rounds half up, like Math.round.
func jsRound(v float64) float64 { return math.Floor(v + 0.5) }
