package chart

import (
	"html"
	"math"

	"github.com/okian/vizpages/internal/domain/format"
	"github.com/okian/vizpages/internal/domain/geo"
	"github.com/okian/vizpages/internal/domain/scale"
	"github.com/okian/vizpages/internal/domain/tooltip"
)

// ChoroplethName is the page name of the education choropleth.
const ChoroplethName = "choropleth-map"

// CountiesObject is the topology object holding county shapes.
const CountiesObject = "counties"

const (
	mapWidth        = 900
	mapHeight       = 600
	legendMapWidth  = 300
	legendMapHeight = 10
	legendTickSize  = 15
)

// EducationThresholds are the bucket boundaries, in percent, of the county
// fill colours.
var EducationThresholds = []float64{3, 12, 21, 30, 39, 48, 57, 66}

// EducationRecord is one county row of the education table.
type EducationRecord struct {
	FIPS     float64
	FIPSText string
	State    string
	AreaName string
	// Bachelors is the share of adults with a bachelor's degree or higher.
	Bachelors     float64
	BachelorsText string
}

// PrepareEducation maps decoded education rows to records.
func PrepareEducation(rows []map[string]any) []EducationRecord {
	out := make([]EducationRecord, len(rows))
	for i, row := range rows {
		rec := EducationRecord{}
		rec.FIPS, rec.FIPSText = numberField(row, "fips")
		rec.Bachelors, rec.BachelorsText = numberField(row, "bachelorsOrHigher")
		rec.State = textField(row, "state")
		rec.AreaName = textField(row, "area_name")
		out[i] = rec
	}
	return out
}

func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return format.JSNumber(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	case nil:
		return "null"
	default:
		return ""
	}
}

func textField(row map[string]any, key string) string {
	v, ok := row[key]
	if !ok {
		return "undefined"
	}
	return text(v)
}

// educationIndex maps a fips code to its first row.
func educationIndex(rows []EducationRecord) map[float64]int {
	idx := make(map[float64]int, len(rows))
	for i, r := range rows {
		if math.IsNaN(r.FIPS) {
			continue
		}
		if _, seen := idx[r.FIPS]; !seen {
			idx[r.FIPS] = i
		}
	}
	return idx
}

// BuildChoropleth builds the county map: one path per county feature,
// filled by the county's education bucket, with a threshold legend.
// Features are drawn with an identity projection; the topology is expected
// to be pre-projected to the 900x600 frame.
func BuildChoropleth(counties []geo.Feature, education []EducationRecord) *Chart {
	fill := scale.NewThreshold(EducationThresholds, Blues9)
	lo, hi, _ := scale.Extent(EducationThresholds)
	legendScale := scale.NewLinear(lo, hi, 600, 900)

	c := &Chart{
		Name:          ChoroplethName,
		Title:         "United States Educational Attainment",
		Description:   "Percentage of adults age 25 and older with a bachelor's degree or higher (2010-2014)",
		Container:     "chart",
		HeaderOutside: true,
		Width:         mapWidth,
		Height:        mapHeight,
		Placement:     tooltip.Placement{DX: 30, DY: -30, Opacity: "1", HiddenOpacity: "0"},
	}

	legend := Legend{ID: "legend", Transform: "translate(-40, 40)"}
	buckets := EducationThresholds[:len(EducationThresholds)-1]
	for _, d := range buckets {
		color, _ := fill.Map(d)
		legend.Swatches = append(legend.Swatches, Mark{
			Kind:   KindRect,
			X:      legendScale.Map(d),
			Width:  float64(legendMapWidth) / float64(len(buckets)),
			Height: legendMapHeight,
			Fill:   color,
		})
	}
	legend.Axis = NewAxis(Bottom, 600, 900, LinearTicks(legendScale, EducationThresholds, func(v float64) string {
		return format.JSNumber(v) + "%"
	})).WithTickSize(legendTickSize).WithoutDomain()

	c.Scaffold = []Element{legend, MarkLayer{Class: "counties"}}

	index := educationIndex(education)
	c.Marks = make([]Mark, len(counties))
	for i, f := range counties {
		m := Mark{Kind: KindPath, Class: "county", D: geo.Path(f.Geometry)}

		id, isNum := f.NumericID()
		row, found := 0, false
		if isNum {
			row, found = index[id]
		}
		if !found {
			// no education row: keep the county's slot but draw nothing
			m.Hidden = true
			m.Attrs = []Attr{{Name: "data-fips", Value: string(f.ID)}, {Name: "data-education", Value: ""}}
			c.Marks[i] = m
			continue
		}

		rec := education[row]
		m.Attrs = []Attr{
			{Name: "data-fips", Value: rec.FIPSText},
			{Name: "data-education", Value: rec.BachelorsText},
		}
		m.Fill, _ = fill.Map(rec.Bachelors)

		content := html.EscapeString(rec.AreaName) + ", " + html.EscapeString(rec.State) + ": " +
			html.EscapeString(rec.BachelorsText) + "%"
		hover := Stroke{Color: "black", Width: "1"}
		m.On(func(v *View, i int, p tooltip.Pointer) {
			v.SetStroke(i, hover)
			v.Tooltip.Show(tooltip.Update{
				HTML:    content,
				Data:    map[string]string{"data-education": rec.BachelorsText},
				Pointer: p,
				Target:  v.Target(i),
			})
		}, func(v *View, i int, _ tooltip.Pointer) {
			v.SetStroke(i, Stroke{})
			v.Tooltip.Hide()
		})
		c.Marks[i] = m
	}
	return c
}
