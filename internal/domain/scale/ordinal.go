package scale

import "sync"

// Ordinal assigns range values to domain keys in the order keys are first
// seen, cycling through the range when it runs out.
type Ordinal[K comparable, V any] struct {
	mu     sync.Mutex
	index  map[K]int
	domain []K
	values []V
}

// NewOrdinal returns an ordinal scale with an implicit, growing domain.
func NewOrdinal[K comparable, V any](values []V) *Ordinal[K, V] {
	return &Ordinal[K, V]{index: map[K]int{}, values: append([]V(nil), values...)}
}

// Map returns the value for k, adding k to the domain if it is new. An empty
// range yields the zero value.
func (o *Ordinal[K, V]) Map(k K) V {
	o.mu.Lock()
	defer o.mu.Unlock()
	var zero V
	if len(o.values) == 0 {
		return zero
	}
	i, ok := o.index[k]
	if !ok {
		i = len(o.domain)
		o.index[k] = i
		o.domain = append(o.domain, k)
	}
	return o.values[i%len(o.values)]
}

// Domain returns the keys seen so far, in first-seen order.
func (o *Ordinal[K, V]) Domain() []K {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]K(nil), o.domain...)
}
