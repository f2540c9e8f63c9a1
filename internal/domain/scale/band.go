package scale

import "math"

// Band divides a continuous range into equal bands, one per distinct domain
// value, in first-seen order. There is no padding between bands. All NaN keys
// share one band.
type Band[K comparable] struct {
	domain []K
	index  map[K]int
	nan    int
	r0, r1 float64
}

// NewBand builds a band scale over the distinct values of domain.
func NewBand[K comparable](domain []K, r0, r1 float64) *Band[K] {
	b := &Band[K]{index: make(map[K]int, len(domain)), nan: -1, r0: r0, r1: r1}
	for _, k := range domain {
		if isNaN(k) {
			if b.nan < 0 {
				b.nan = len(b.domain)
				b.domain = append(b.domain, k)
			}
			continue
		}
		if _, seen := b.index[k]; seen {
			continue
		}
		b.index[k] = len(b.domain)
		b.domain = append(b.domain, k)
	}
	return b
}

// Map returns the start of k's band, or NaN when k is not in the domain.
func (b *Band[K]) Map(k K) float64 {
	i, ok := b.index[k]
	if isNaN(k) {
		i, ok = b.nan, b.nan >= 0
	}
	if !ok {
		return math.NaN()
	}
	lo, step := b.r0, b.Step()
	if b.r1 < b.r0 {
		// reversed range: the first value gets the band nearest r0
		lo = b.r1
		i = len(b.domain) - 1 - i
	}
	return lo + step*float64(i)
}

// Step is the distance between the starts of adjacent bands.
func (b *Band[K]) Step() float64 {
	n := len(b.domain)
	if n == 0 {
		return 0
	}
	return math.Abs(b.r1-b.r0) / float64(n)
}

// Bandwidth is the width of each band. With no padding it equals Step.
func (b *Band[K]) Bandwidth() float64 { return b.Step() }

// Domain returns the distinct domain values in order.
func (b *Band[K]) Domain() []K {
	out := make([]K, len(b.domain))
	copy(out, b.domain)
	return out
}

// Len is the number of bands.
func (b *Band[K]) Len() int { return len(b.domain) }

// isNaN reports whether k is unequal to itself, which only a floating-point
// NaN is. Map lookups never find such keys.
func isNaN[K comparable](k K) bool {
	return k != k //nolint:gocritic // NaN check for any comparable key
}
