// Package chart turns prepared datasets into chart view models: a static
// scaffold of texts, axes and legends, plus one mark per record carrying its
// own pointer handlers.
package chart

import (
	"fmt"
	"math"

	"github.com/okian/vizpages/internal/domain/tooltip"
)

// Kind is the SVG element a mark is drawn as.
type Kind string

const (
	KindRect   Kind = "rect"
	KindPath   Kind = "path"
	KindCircle Kind = "circle"
)

// Attr is one extra element attribute, written in order.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Stroke is a mark outline. Empty fields mean the attribute is absent.
type Stroke struct {
	Color string `json:"color,omitempty"`
	Width string `json:"width,omitempty"`
}

// Handler reacts to the pointer entering or leaving mark i of a view.
type Handler func(v *View, i int, p tooltip.Pointer)

// Mark is one visual element bound to one record.
type Mark struct {
	Kind  Kind   `json:"kind"`
	Class string `json:"class,omitempty"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`

	D string `json:"d,omitempty"`

	Fill   string `json:"fill,omitempty"`
	Stroke Stroke `json:"stroke"`
	Attrs  []Attr `json:"attrs,omitempty"`

	// Hidden marks keep their place in the mark list but have no usable
	// geometry (unparseable date, missing lookup row).
	Hidden bool `json:"hidden,omitempty"`

	enter, leave Handler
}

// On attaches the pointer handlers.
func (m *Mark) On(enter, leave Handler) {
	m.enter, m.leave = enter, leave
}

// Attr returns the value of the named extra attribute.
func (m *Mark) Attr(name string) (string, bool) {
	for _, a := range m.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Box is the mark's bounding box.
func (m *Mark) Box() tooltip.Box {
	switch m.Kind {
	case KindCircle:
		return tooltip.Box{X: m.CX - m.R, Y: m.CY - m.R, Width: 2 * m.R, Height: 2 * m.R}
	default:
		return tooltip.Box{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
	}
}

// settle hides marks whose geometry did not survive the scales and zeroes
// the non-finite fields so they can be encoded.
func (m *Mark) settle() {
	for _, f := range []*float64{&m.X, &m.Y, &m.Width, &m.Height, &m.CX, &m.CY, &m.R} {
		if math.IsNaN(*f) || math.IsInf(*f, 0) {
			*f = 0
			m.Hidden = true
		}
	}
}

// Element is one piece of the static scaffold.
type Element interface {
	element()
}

// Text is a static label. Raw content is trusted markup written as is;
// anything else is escaped.
type Text struct {
	ID        string
	X, Y      float64
	Transform string
	FontSize  string
	Fill      string
	Content   string
	Raw       bool
}

// MarkLayer marks where the data marks are drawn. A non-empty Class wraps
// them in a group with that class.
type MarkLayer struct {
	Class string
}

// Legend is a group of swatches, labels and an optional axis.
type Legend struct {
	ID        string
	Transform string
	Swatches  []Mark
	Labels    []Text
	// Axis, when set, is drawn into the legend group itself.
	Axis *Axis
	// AxisFirst draws the axis before the swatches.
	AxisFirst bool
}

func (Text) element()      {}
func (MarkLayer) element() {}
func (Legend) element()    {}
func (Axis) element()      {}

// Chart is a built page: frame, scaffold, marks and tooltip rules. A Chart is
// immutable once built; hover state lives in Views.
type Chart struct {
	Name        string
	Title       string
	Description string
	// Container is the id of the element wrapping the SVG and the tooltip.
	Container string
	// HeaderOutside puts the title and description before the container
	// instead of inside it.
	HeaderOutside bool
	// PlainDescription writes the description as a subtitle without the
	// description id.
	PlainDescription bool
	Width            float64
	Height           float64
	Scaffold         []Element
	Marks            []Mark
	Placement        tooltip.Placement
}

// Elements returns the scaffold elements of type T, in order.
func Elements[T Element](c *Chart) []T {
	var out []T
	for _, e := range c.Scaffold {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// View is one viewer's interaction state over a chart: its tooltip and the
// current stroke of every mark. Views are cheap and not shared.
type View struct {
	chart   *Chart
	Tooltip *tooltip.Controller
	strokes []Stroke
}

// NewView returns a view with a hidden tooltip and every mark at its
// initial stroke.
func (c *Chart) NewView(opts ...tooltip.Option) *View {
	v := &View{
		chart:   c,
		Tooltip: tooltip.NewController(c.Placement, opts...),
		strokes: make([]Stroke, len(c.Marks)),
	}
	for i := range c.Marks {
		v.strokes[i] = c.Marks[i].Stroke
	}
	return v
}

// Enter runs mark i's pointer-enter handler.
func (v *View) Enter(i int, p tooltip.Pointer) error {
	m, err := v.mark(i)
	if err != nil {
		return err
	}
	if m.enter != nil {
		m.enter(v, i, p)
	}
	return nil
}

// Leave runs mark i's pointer-leave handler.
func (v *View) Leave(i int) error {
	m, err := v.mark(i)
	if err != nil {
		return err
	}
	if m.leave != nil {
		m.leave(v, i, tooltip.Pointer{})
	}
	return nil
}

// Stroke returns mark i's current stroke.
func (v *View) Stroke(i int) Stroke {
	if i < 0 || i >= len(v.strokes) {
		return Stroke{}
	}
	return v.strokes[i]
}

// SetStroke changes mark i's stroke in this view only.
func (v *View) SetStroke(i int, s Stroke) {
	if i >= 0 && i < len(v.strokes) {
		v.strokes[i] = s
	}
}

// Target is mark i's bounding box, for anchored tooltips.
func (v *View) Target(i int) tooltip.Box {
	if i < 0 || i >= len(v.chart.Marks) {
		return tooltip.Box{}
	}
	return v.chart.Marks[i].Box()
}

func (v *View) mark(i int) (*Mark, error) {
	if i < 0 || i >= len(v.chart.Marks) {
		return nil, fmt.Errorf("%w: %d of %d", ErrMarkIndex, i, len(v.chart.Marks))
	}
	return &v.chart.Marks[i], nil
}
