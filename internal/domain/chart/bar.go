package chart

import (
	"math"
	"strconv"
	"time"

	"github.com/okian/vizpages/internal/domain/format"
	"github.com/okian/vizpages/internal/domain/scale"
	"github.com/okian/vizpages/internal/domain/tooltip"
)

// BarChartName is the page name of the GDP bar chart.
const BarChartName = "bar-chart"

const (
	barWidth   = 900
	barHeight  = 600
	barPadding = 60
	dateLayout = "%Y-%m-%d"
	bureauLink = `More Information: <a href="http://www.bea.gov/national/pdf/nipaguid.pdf" target="_blank">http://www.bea.gov/national/pdf/nipaguid.pdf</a>`
)

// GDPRecord is one quarter of the GDP series.
type GDPRecord struct {
	// Date is the parsed quarter start; DateOK is false when the raw date
	// did not parse.
	Date   time.Time
	DateOK bool
	// RawDate is the date exactly as it appeared in the dataset.
	RawDate string
	GDP     float64
	// RawGDP is the value's text as written into data-gdp.
	RawGDP string
}

// PrepareGDP maps [date, value] rows to records. Rows that are too short or
// hold the wrong types produce records with DateOK false or a NaN value.
func PrepareGDP(rows [][]any) []GDPRecord {
	out := make([]GDPRecord, len(rows))
	for i, row := range rows {
		rec := GDPRecord{GDP: math.NaN(), RawGDP: "undefined", RawDate: "undefined"}
		if len(row) > 0 {
			if s, ok := row[0].(string); ok {
				rec.RawDate = s
				if t, err := format.ParseTime(dateLayout, s); err == nil {
					rec.Date, rec.DateOK = t, true
				}
			}
		}
		if len(row) > 1 {
			rec.GDP, rec.RawGDP = number(row[1])
		}
		out[i] = rec
	}
	return out
}

// number reads a JSON scalar the way arithmetic in a browser would coerce it,
// keeping the text the value prints as.
func number(v any) (float64, string) {
	switch x := v.(type) {
	case float64:
		return x, format.JSNumber(x)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return math.NaN(), x
		}
		return f, x
	case nil:
		return 0, "null"
	default:
		return math.NaN(), "undefined"
	}
}

// numberField reads row[key] with number. An absent key reads as undefined,
// which is not the same as an explicit null.
func numberField(row map[string]any, key string) (float64, string) {
	v, ok := row[key]
	if !ok {
		return math.NaN(), "undefined"
	}
	return number(v)
}

// BuildBar builds the GDP bar chart: one rect per quarter, spread evenly
// across the plot by index, with a time x-axis and a linear y-axis from zero
// to the largest value.
func BuildBar(records []GDPRecord) *Chart {
	plotW := float64(barWidth - 2*barPadding)
	bottom := float64(barHeight - barPadding)

	gdps := make([]float64, len(records))
	for i, r := range records {
		gdps[i] = r.GDP
	}
	maxGDP, ok := scale.Max(gdps)
	if !ok {
		maxGDP = math.NaN()
	}
	y := scale.NewLinear(0, maxGDP, bottom, barPadding)

	lo, hi, ok := scale.TimeExtent(records, func(r GDPRecord) (time.Time, bool) { return r.Date, r.DateOK })
	x := scale.NewTime(lo, hi, barPadding, barWidth-barPadding)

	c := &Chart{
		Name:      BarChartName,
		Title:     "United States GDP",
		Container: "chart",
		Width:     barWidth,
		Height:    barHeight,
		Placement: tooltip.Placement{DX: 50, Top: "70%", Opacity: "1"},
	}

	yAxis := NewAxis(Left, bottom, barPadding, LinearTicks(y, y.Ticks(defaultTickCount), DefaultLinearFormat(y, defaultTickCount))).
		WithID("y-axis").
		WithTransform("translate(" + format.JSNumber(barPadding) + ", 0)")
	var xTicks []Tick
	if ok {
		xTicks = TimeTicks(x, x.Ticks(defaultTickCount), scale.TickFormat)
	}
	xAxis := NewAxis(Bottom, barPadding, barWidth-barPadding, xTicks).
		WithID("x-axis").
		WithTransform("translate(0, " + format.JSNumber(bottom) + ")")

	c.Scaffold = []Element{
		Text{Transform: "rotate(-90)", X: -barPadding * 4, Y: barPadding * 1.3, Content: "Gross Domestic Product"},
		Text{FontSize: "14px", X: barWidth / 2, Y: barHeight - barPadding/4, Content: bureauLink, Raw: true},
		*yAxis,
		*xAxis,
		MarkLayer{},
	}

	n := float64(len(records))
	c.Marks = make([]Mark, len(records))
	for i, r := range records {
		top := y.Map(r.GDP)
		m := Mark{
			Kind:   KindRect,
			Class:  "bar",
			X:      plotW/n*float64(i) + barPadding,
			Y:      top,
			Width:  plotW / n,
			Height: bottom - top,
			Attrs: []Attr{
				{Name: "data-date", Value: r.RawDate},
				{Name: "data-gdp", Value: r.RawGDP},
			},
		}
		html := barTooltip(r)
		m.On(func(v *View, i int, p tooltip.Pointer) {
			v.Tooltip.Show(tooltip.Update{
				HTML:    html,
				Data:    map[string]string{"data-date": r.RawDate},
				Pointer: p,
				Target:  v.Target(i),
			})
		}, func(v *View, _ int, _ tooltip.Pointer) {
			v.Tooltip.Hide()
		})
		m.settle()
		c.Marks[i] = m
	}
	return c
}

// barTooltip reads "1950 1Q<br>$280.2 Billion".
func barTooltip(r GDPRecord) string {
	year, quarter := "NaN", "NaN"
	if r.DateOK {
		year = strconv.Itoa(r.Date.Year())
		quarter = format.JSNumber(float64(int(r.Date.Month())-1+3) / 3)
	}
	return year + " " + quarter + "Q<br>$" + format.Grouped(r.GDP) + " Billion"
}
