// Package scale maps data values into pixel coordinates and colours: linear
// and time scales for continuous axes, band scales for categorical grids,
// threshold and ordinal scales for fills.
package scale

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// Linear maps a continuous numeric domain onto a numeric range.
type Linear struct {
	norm   scale.Linear
	r0, r1 float64
}

// NewLinear returns a linear scale from [d0, d1] to [r0, r1]. The range may
// be inverted (r0 > r1), which is how SVG y axes grow upwards.
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{norm: scale.Linear{Min: d0, Max: d1}, r0: r0, r1: r1}
}

// Map returns the range position of x. A degenerate domain maps every value
// to the middle of the range. NaN propagates.
func (s *Linear) Map(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	var t float64
	if s.norm.Min == s.norm.Max {
		t = 0.5
	} else {
		t = s.norm.Map(x)
	}
	return s.r0 + t*(s.r1-s.r0)
}

// Invert is the inverse of Map.
func (s *Linear) Invert(y float64) float64 {
	if s.r0 == s.r1 {
		return s.norm.Min
	}
	t := (y - s.r0) / (s.r1 - s.r0)
	return s.norm.Min + t*(s.norm.Max-s.norm.Min)
}

// Domain returns the domain bounds as given.
func (s *Linear) Domain() (float64, float64) { return s.norm.Min, s.norm.Max }

// Range returns the range bounds as given.
func (s *Linear) Range() (float64, float64) { return s.r0, s.r1 }

// Ticks returns roughly count round values inside the domain, spaced by 1,
// 2 or 5 times a power of ten. The step is the one whose tick count is
// closest to count on a log scale, so the result may hold a few more or fewer
// than count values.
func (s *Linear) Ticks(count int) []float64 {
	lo, hi := s.norm.Min, s.norm.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	if count <= 0 || math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	if lo == hi {
		return []float64{lo}
	}
	ts, ok := newTickSpec(lo, hi, float64(count))
	if !ok {
		return nil
	}
	ticks := make([]float64, 0, ts.i2-ts.i1+1)
	for i := ts.i1; i <= ts.i2; i++ {
		ticks = append(ticks, ts.at(i))
	}
	return ticks
}

// TickStep returns the distance between the values Ticks(count) produces.
func (s *Linear) TickStep(count int) float64 {
	lo, hi := s.norm.Min, s.norm.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	if count <= 0 || !(hi > lo) {
		return 0
	}
	return tickStep(lo, hi, float64(count))
}

// Error thresholds between the 1, 2, 5 and 10 step factors: geometric means
// of adjacent factors.
var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickSpec describes ticks i1..i2 of a step. For negative powers of ten the
// step is stored as its inverse so decimal ticks divide exactly (0.1 rather
// than 0.30000000000000004/3).
type tickSpec struct {
	i1, i2  int
	inc     float64
	inverse bool
}

func (t tickSpec) at(i int) float64 {
	if t.inverse {
		return float64(i) / t.inc
	}
	return float64(i) * t.inc
}

func newTickSpec(lo, hi, count float64) (tickSpec, bool) {
	step := (hi - lo) / count
	power := math.Floor(math.Log10(step))
	factor := stepFactor(step / math.Pow(10, power))

	var ts tickSpec
	if power < 0 {
		ts.inc = math.Pow(10, -power) / factor
		ts.inverse = true
		ts.i1 = int(math.Round(lo * ts.inc))
		ts.i2 = int(math.Round(hi * ts.inc))
		if float64(ts.i1)/ts.inc < lo {
			ts.i1++
		}
		if float64(ts.i2)/ts.inc > hi {
			ts.i2--
		}
	} else {
		ts.inc = math.Pow(10, power) * factor
		ts.i1 = int(math.Round(lo / ts.inc))
		ts.i2 = int(math.Round(hi / ts.inc))
		if float64(ts.i1)*ts.inc < lo {
			ts.i1++
		}
		if float64(ts.i2)*ts.inc > hi {
			ts.i2--
		}
	}
	if ts.i2 < ts.i1 {
		if count >= 0.5 && count < 2 {
			return newTickSpec(lo, hi, count*2)
		}
		return tickSpec{}, false
	}
	return ts, true
}

// tickStep is the step newTickSpec settles on, as a plain number.
func tickStep(lo, hi, count float64) float64 {
	ts, ok := newTickSpec(lo, hi, count)
	if !ok {
		return 0
	}
	if ts.inverse {
		return 1 / ts.inc
	}
	return ts.inc
}

func stepFactor(e float64) float64 {
	switch {
	case e >= e10:
		return 10
	case e >= e5:
		return 5
	case e >= e2:
		return 2
	default:
		return 1
	}
}
