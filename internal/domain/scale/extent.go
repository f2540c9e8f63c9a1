package scale

import (
	"math"
	"time"

	"github.com/aclements/go-moremath/stats"
)

// Extent returns the minimum and maximum of xs, ignoring NaN and infinite
// values. ok is false when nothing remains.
func Extent(xs []float64) (lo, hi float64, ok bool) {
	finite := make([]float64, 0, len(xs))
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		finite = append(finite, x)
	}
	if len(finite) == 0 {
		return 0, 0, false
	}
	lo, hi = stats.Bounds(finite)
	return lo, hi, true
}

// ExtentFunc is Extent over a projection of items.
func ExtentFunc[T any](items []T, value func(T) float64) (lo, hi float64, ok bool) {
	xs := make([]float64, len(items))
	for i, it := range items {
		xs[i] = value(it)
	}
	return Extent(xs)
}

// Max returns the largest finite value of xs.
func Max(xs []float64) (float64, bool) {
	_, hi, ok := Extent(xs)
	return hi, ok
}

// TimeExtent returns the earliest and latest valid time in items.
func TimeExtent[T any](items []T, value func(T) (time.Time, bool)) (lo, hi time.Time, ok bool) {
	for _, it := range items {
		t, valid := value(it)
		if !valid {
			continue
		}
		if !ok || t.Before(lo) {
			lo = t
		}
		if !ok || t.After(hi) {
			hi = t
		}
		ok = true
	}
	return lo, hi, ok
}
