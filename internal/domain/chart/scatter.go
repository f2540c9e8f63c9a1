package chart

import (
	"html"
	"math"
	"time"

	"github.com/okian/vizpages/internal/domain/format"
	"github.com/okian/vizpages/internal/domain/scale"
	"github.com/okian/vizpages/internal/domain/tooltip"
)

// ScatterName is the page name of the cycling scatterplot.
const ScatterName = "scatterplot-graph"

const (
	scatterWidth   = 900
	scatterHeight  = 600
	scatterPadding = 60
	raceTimeLayout = "%M:%S"
	dotRadius      = 7
)

// RaceRecord is one of the fastest ascents.
type RaceRecord struct {
	Name        string
	Nationality string
	Year        float64
	YearText    string
	// Time is the ascent duration as a time of day on 1900-01-01 UTC.
	Time   time.Time
	TimeOK bool
	Doping string
}

// Doped reports whether the rider faces a doping allegation.
func (r RaceRecord) Doped() bool { return r.Doping != "" }

// PrepareRaces maps rider rows to records, parsing "mm:ss" times.
func PrepareRaces(rows []map[string]any) []RaceRecord {
	out := make([]RaceRecord, len(rows))
	for i, row := range rows {
		rec := RaceRecord{
			Name:        textField(row, "Name"),
			Nationality: textField(row, "Nationality"),
		}
		rec.Year, rec.YearText = numberField(row, "Year")
		if s, ok := row["Time"].(string); ok {
			if t, err := format.ParseTime(raceTimeLayout, s); err == nil {
				rec.Time, rec.TimeOK = t, true
			}
		}
		if s, ok := row["Doping"].(string); ok {
			rec.Doping = s
		}
		out[i] = rec
	}
	return out
}

var raceLegend = []struct {
	title  string
	doping bool
}{
	{"No doping allegations", false},
	{"Riders with doping allegations", true},
}

// BuildScatter builds the scatterplot: one dot per ascent, year across and
// time down, coloured by doping allegation.
func BuildScatter(records []RaceRecord) *Chart {
	minYear, maxYear, ok := scale.ExtentFunc(records, func(r RaceRecord) float64 { return r.Year })
	if !ok {
		minYear, maxYear = math.NaN(), math.NaN()
	}
	x := scale.NewLinear(minYear-1, maxYear+1, scatterPadding, scatterWidth-scatterPadding)

	lo, hi, timesOK := scale.TimeExtent(records, func(r RaceRecord) (time.Time, bool) { return r.Time, r.TimeOK })
	y := scale.NewTime(lo, hi, scatterPadding, scatterHeight-scatterPadding)

	color := scale.NewOrdinal[bool](Set2)

	c := &Chart{
		Name:             ScatterName,
		Title:            "Doping in Professional Bicycle Racing",
		Description:      "35 Fastest times up Alpe d'Huez",
		Container:        "graph",
		PlainDescription: true,
		Width:            scatterWidth,
		Height:           scatterHeight,
		Placement:        tooltip.Placement{DX: 7, Opacity: "0.9"},
	}

	xAxis := NewAxis(Bottom, scatterPadding, scatterWidth-scatterPadding, LinearTicks(x, x.Ticks(defaultTickCount), format.Integer)).
		WithID("x-axis").
		WithTransform("translate(0, " + format.JSNumber(scatterHeight-scatterPadding) + ")")
	var yTicks []Tick
	if timesOK {
		every := y.Every(scale.Interval{Unit: scale.Second, Step: 15})
		yTicks = TimeTicks(y, every, func(t time.Time) string { return format.FormatTime(raceTimeLayout, t) })
	}
	yAxis := NewAxis(Left, scatterPadding, scatterHeight-scatterPadding, yTicks).
		WithID("y-axis").
		WithTransform("translate(" + format.JSNumber(scatterPadding) + ", 0)")

	rest := Stroke{Color: "dimgrey"}
	hover := Stroke{Color: "black"}
	c.Marks = make([]Mark, len(records))
	for i, r := range records {
		iso := "Invalid Date"
		cy := math.NaN()
		if r.TimeOK {
			iso = format.ISOString(r.Time)
			cy = y.Map(r.Time)
		}
		m := Mark{
			Kind:   KindCircle,
			Class:  "dot",
			CX:     x.Map(r.Year),
			CY:     cy,
			R:      dotRadius,
			Fill:   color.Map(r.Doped()),
			Stroke: rest,
			Attrs: []Attr{
				{Name: "data-xvalue", Value: r.YearText},
				{Name: "data-yvalue", Value: iso},
				{Name: "strokeWidth", Value: "1"},
				{Name: "fill-opacity", Value: "0.95"},
			},
		}
		content := raceTooltip(r)
		m.On(func(v *View, i int, p tooltip.Pointer) {
			v.SetStroke(i, hover)
			v.Tooltip.Show(tooltip.Update{
				HTML:    content,
				Data:    map[string]string{"data-year": r.YearText},
				Pointer: p,
				Target:  v.Target(i),
			})
		}, func(v *View, i int, _ tooltip.Pointer) {
			v.SetStroke(i, rest)
			v.Tooltip.Hide()
		})
		m.settle()
		c.Marks[i] = m
	}

	// the legend reads colours after the dots so the ordinal domain order
	// follows the data
	legend := Legend{
		ID:        "legend",
		Transform: "translate(" + format.JSNumber(scatterWidth-300) + "," + format.JSNumber(scatterHeight/3) + ")",
	}
	for i, key := range raceLegend {
		fill := color.Map(key.doping)
		legend.Swatches = append(legend.Swatches, Mark{
			Kind: KindCircle,
			CX:   100,
			CY:   100 + 25*float64(i),
			R:    dotRadius,
			Fill: fill,
		})
		legend.Labels = append(legend.Labels, Text{
			X:        110,
			Y:        103 + 25*float64(i),
			FontSize: "12px",
			Fill:     fill,
			Content:  key.title,
		})
	}

	c.Scaffold = []Element{
		Text{Transform: "rotate(-90)", FontSize: "18px", X: -scatterPadding * 4, Y: scatterPadding / 4, Content: "Time in Minutes"},
		*xAxis,
		*yAxis,
		MarkLayer{},
		legend,
	}
	return c
}

// raceTooltip reads "<span>Marco Pantani: ITA</span><br><span>Year: 1995,
// Time: 36:50</span>" plus the allegation when there is one.
func raceTooltip(r RaceRecord) string {
	clock := "NaN:NaN"
	if r.TimeOK {
		clock = format.FormatTime(raceTimeLayout, r.Time)
	}
	s := "<span>" + html.EscapeString(r.Name) + ": " + html.EscapeString(r.Nationality) + "</span>" +
		"<br><span>Year: " + html.EscapeString(r.YearText) + ", Time: " + clock + "</span>"
	if r.Doped() {
		s += "<br><br><span>" + html.EscapeString(r.Doping) + "</span>"
	}
	return s
}

