package chart

import (
	"math"
	"time"

	"github.com/okian/vizpages/internal/domain/format"
	"github.com/okian/vizpages/internal/domain/scale"
)

// Orient is the side of the plot an axis is drawn on.
type Orient int

const (
	Bottom Orient = iota
	Left
)

const (
	defaultTickSize    = 6
	defaultTickPadding = 3
	// defaultTickCount is the tick count continuous axes ask their scale for.
	defaultTickCount = 10
)

// Tick is one labelled axis position.
type Tick struct {
	Pos   float64
	Label string
}

// Axis is a d3-style axis: a domain line spanning the scale's range plus a
// tick line and label per tick.
type Axis struct {
	ID            string
	Transform     string
	Orient        Orient
	Ticks         []Tick
	TickSizeInner float64
	TickSizeOuter float64
	TickPadding   float64
	// RangeStart and RangeEnd bound the domain line.
	RangeStart, RangeEnd float64
	HideDomain           bool
}

// NewAxis returns an axis over the range [r0, r1] with default tick sizes.
func NewAxis(orient Orient, r0, r1 float64, ticks []Tick) *Axis {
	return &Axis{
		Orient:        orient,
		Ticks:         ticks,
		TickSizeInner: defaultTickSize,
		TickSizeOuter: defaultTickSize,
		TickPadding:   defaultTickPadding,
		RangeStart:    r0,
		RangeEnd:      r1,
	}
}

// WithID sets the group id.
func (a *Axis) WithID(id string) *Axis { a.ID = id; return a }

// WithTransform sets the group transform.
func (a *Axis) WithTransform(t string) *Axis { a.Transform = t; return a }

// WithTickSize sets both inner and outer tick sizes.
func (a *Axis) WithTickSize(n float64) *Axis {
	a.TickSizeInner, a.TickSizeOuter = n, n
	return a
}

// WithoutDomain drops the domain line.
func (a *Axis) WithoutDomain() *Axis { a.HideDomain = true; return a }

// Sign is +1 for axes whose ticks point down or right, -1 otherwise.
func (a *Axis) Sign() float64 {
	if a.Orient == Left {
		return -1
	}
	return 1
}

// DomainPath is the SVG path of the domain line, with outer ticks at both
// ends.
func (a *Axis) DomainPath() string {
	k := a.Sign() * a.TickSizeOuter
	r0, r1 := format.JSNumber(a.RangeStart), format.JSNumber(a.RangeEnd)
	ks := format.JSNumber(k)
	if a.Orient == Left {
		return "M" + ks + "," + r0 + "H0V" + r1 + "H" + ks
	}
	return "M" + r0 + "," + ks + "V0H" + r1 + "V" + ks
}

// LinearTicks positions values through s and labels them with label.
func LinearTicks(s *scale.Linear, values []float64, label func(float64) string) []Tick {
	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, Tick{Pos: s.Map(v), Label: label(v)})
	}
	return ticks
}

// DefaultLinearFormat labels the ticks of s.Ticks(count) with comma grouping
// and just enough fraction digits for the tick step.
func DefaultLinearFormat(s *scale.Linear, count int) func(float64) string {
	digits := 0
	if step := s.TickStep(count); step > 0 {
		digits = max(0, -int(math.Floor(math.Log10(step))))
	}
	return func(v float64) string { return format.GroupedFixed(v, digits) }
}

// TimeTicks positions instants through s.
func TimeTicks(s *scale.Time, values []time.Time, label func(time.Time) string) []Tick {
	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, Tick{Pos: s.Map(v), Label: label(v)})
	}
	return ticks
}

// BandTicks centres a tick in each value's band.
func BandTicks[K comparable](b *scale.Band[K], values []K, label func(K) string) []Tick {
	half := b.Bandwidth() / 2
	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, Tick{Pos: b.Map(v) + half, Label: label(v)})
	}
	return ticks
}
