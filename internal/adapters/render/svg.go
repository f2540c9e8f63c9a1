// Package render writes built charts as SVG documents and standalone HTML
// pages.
package render

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/okian/vizpages/internal/domain/chart"
	"github.com/okian/vizpages/internal/domain/format"
	"github.com/okian/vizpages/internal/domain/tooltip"
)

// axisStyle is what a d3 axis sets on its group.
const axisStyle = `fill="none" font-size="10" font-family="sans-serif"`

// SVG writes c as a standalone SVG document. Geometry is rounded to whole
// pixels; rect edges are rounded rather than widths so adjacent bars still
// touch. Each data mark carries its precomputed tooltip and hover strokes
// in data-tip-* attributes for the page script.
func SVG(w io.Writer, c *chart.Chart) error {
	if c == nil {
		return ErrNilChart
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(round(c.Width), round(c.Height))

	tips := hoverTips(c)
	for _, el := range c.Scaffold {
		switch e := el.(type) {
		case chart.Text:
			writeText(canvas, e)
		case chart.Axis:
			writeAxis(canvas, &e, attrs("id", e.ID, "transform", e.Transform)...)
		case chart.Legend:
			writeLegend(canvas, e)
		case chart.MarkLayer:
			if e.Class != "" {
				canvas.Group(attr("class", e.Class))
			}
			for i := range c.Marks {
				writeMark(canvas, &c.Marks[i], tips[i])
			}
			if e.Class != "" {
				canvas.Gend()
			}
		}
	}
	canvas.End()
	return ew.err
}

// tip is what hovering one mark does, captured by replaying its handlers on
// a scratch view.
type tip struct {
	shown       bool
	snap        tooltip.Snapshot
	enterStroke chart.Stroke
	leaveStroke chart.Stroke
}

func hoverTips(c *chart.Chart) []tip {
	v := c.NewView()
	tips := make([]tip, len(c.Marks))
	for i := range c.Marks {
		if err := v.Enter(i, tooltip.Pointer{}); err != nil {
			continue
		}
		t := tip{snap: v.Tooltip.Snapshot(), enterStroke: v.Stroke(i)}
		t.shown = t.snap.State == tooltip.Shown
		_ = v.Leave(i)
		t.leaveStroke = v.Stroke(i)
		tips[i] = t
	}
	return tips
}

func writeMark(canvas *svg.SVG, m *chart.Mark, t tip) {
	s := markAttrs(m)
	if t.shown {
		data, _ := json.Marshal(t.snap.Data)
		s = append(s,
			attr("data-tip-html", t.snap.HTML),
			attr("data-tip-data", string(data)),
			attr("data-enter-stroke", t.enterStroke.Color),
			attr("data-enter-stroke-width", t.enterStroke.Width),
			attr("data-leave-stroke", t.leaveStroke.Color),
			attr("data-leave-stroke-width", t.leaveStroke.Width),
		)
	}
	switch m.Kind {
	case chart.KindRect:
		x0, x1 := round(m.X), round(m.X+m.Width)
		y0, y1 := round(m.Y), round(m.Y+m.Height)
		canvas.Rect(x0, y0, x1-x0, y1-y0, s...)
	case chart.KindCircle:
		canvas.Circle(round(m.CX), round(m.CY), round(m.R), s...)
	case chart.KindPath:
		canvas.Path(m.D, s...)
	}
}

func markAttrs(m *chart.Mark) []string {
	s := attrs("class", m.Class, "fill", m.Fill, "stroke", m.Stroke.Color, "stroke-width", m.Stroke.Width)
	for _, a := range m.Attrs {
		s = append(s, attr(a.Name, a.Value))
	}
	if m.Hidden {
		s = append(s, attr("display", "none"))
	}
	return s
}

func writeText(canvas *svg.SVG, t chart.Text) {
	s := attrs("id", t.ID, "transform", t.Transform, "font-size", t.FontSize, "fill", t.Fill)
	if !t.Raw {
		canvas.Text(round(t.X), round(t.Y), t.Content, s...)
		return
	}
	fmt.Fprintf(canvas.Writer, `<text x="%d" y="%d" %s>%s</text>`+"\n", round(t.X), round(t.Y), strings.Join(s, " "), t.Content)
}

func writeAxis(canvas *svg.SVG, a *chart.Axis, group ...string) {
	anchor := "middle"
	if a.Orient == chart.Left {
		anchor = "end"
	}
	canvas.Group(append(group, axisStyle, attr("text-anchor", anchor))...)
	writeAxisBody(canvas, a)
	canvas.Gend()
}

func writeAxisBody(canvas *svg.SVG, a *chart.Axis) {
	if !a.HideDomain {
		canvas.Path(a.DomainPath(), attr("class", "domain"), attr("stroke", "currentColor"))
	}
	k := a.Sign()
	inner := int(k * a.TickSizeInner)
	label := int(k * (math.Max(a.TickSizeInner, 0) + a.TickPadding))
	for _, t := range a.Ticks {
		if math.IsNaN(t.Pos) {
			continue
		}
		pos := format.JSNumber(t.Pos)
		if a.Orient == chart.Left {
			canvas.Group(attr("class", "tick"), attr("opacity", "1"), attr("transform", "translate(0,"+pos+")"))
			canvas.Line(0, 0, inner, 0, attr("stroke", "currentColor"))
			canvas.Text(label, 0, t.Label, attr("fill", "currentColor"), attr("dy", "0.32em"))
		} else {
			canvas.Group(attr("class", "tick"), attr("opacity", "1"), attr("transform", "translate("+pos+",0)"))
			canvas.Line(0, 0, 0, inner, attr("stroke", "currentColor"))
			canvas.Text(0, label, t.Label, attr("fill", "currentColor"), attr("dy", "0.71em"))
		}
		canvas.Gend()
	}
}

func writeLegend(canvas *svg.SVG, l chart.Legend) {
	group := attrs("id", l.ID, "transform", l.Transform)
	if l.Axis != nil {
		group = append(group, axisStyle, attr("text-anchor", "middle"))
	}
	canvas.Group(group...)
	if l.Axis != nil && l.AxisFirst {
		writeAxisBody(canvas, l.Axis)
	}
	for i := range l.Swatches {
		writeMark(canvas, &l.Swatches[i], tip{})
	}
	for _, t := range l.Labels {
		writeText(canvas, t)
	}
	if l.Axis != nil && !l.AxisFirst {
		writeAxisBody(canvas, l.Axis)
	}
	canvas.Gend()
}

// attr formats name="value" with the value escaped. svgo passes strings
// containing '=' through as raw attributes.
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

// attrs formats name/value pairs, skipping empty values.
func attrs(pairs ...string) []string {
	out := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		out = append(out, attr(pairs[i], pairs[i+1]))
	}
	return out
}

func round(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Floor(v + 0.5))
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err == nil {
		_, e.err = e.w.Write(p)
	}
	return len(p), nil
}
