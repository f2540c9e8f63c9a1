package scale

import (
	"math"
	"sort"
)

// Threshold maps a number to the colour (or any value) of the bucket it falls
// in. With breaks b0 < b1 < ... < bn-1 and values v0..vn, x < b0 gives v0,
// b0 <= x < b1 gives v1 and x >= bn-1 gives vn.
type Threshold[V any] struct {
	breaks []float64
	values []V
}

// NewThreshold builds a threshold scale. When the lengths disagree only the
// first min(len(breaks), len(values)-1) breaks take part.
func NewThreshold[V any](breaks []float64, values []V) *Threshold[V] {
	t := &Threshold[V]{
		breaks: append([]float64(nil), breaks...),
		values: append([]V(nil), values...),
	}
	return t
}

// Map returns the value for x. NaN and an empty value list report false.
func (t *Threshold[V]) Map(x float64) (V, bool) {
	var zero V
	if math.IsNaN(x) || len(t.values) == 0 {
		return zero, false
	}
	n := len(t.breaks)
	if n > len(t.values)-1 {
		n = len(t.values) - 1
	}
	i := sort.Search(n, func(i int) bool { return t.breaks[i] > x })
	return t.values[i], true
}

// Breaks returns a copy of the bucket boundaries.
func (t *Threshold[V]) Breaks() []float64 { return append([]float64(nil), t.breaks...) }

// Values returns a copy of the bucket values.
func (t *Threshold[V]) Values() []V { return append([]V(nil), t.values...) }

// InvertExtent returns the half-open interval [lo, hi) of inputs mapped to the
// value at index i. Unbounded sides are infinite.
func (t *Threshold[V]) InvertExtent(i int) (lo, hi float64) {
	lo, hi = math.Inf(-1), math.Inf(1)
	if i > 0 && i-1 < len(t.breaks) {
		lo = t.breaks[i-1]
	}
	if i < len(t.breaks) {
		hi = t.breaks[i]
	}
	return lo, hi
}
