package scale

import (
	"math"
	"sort"
	"time"
)

// Unit is a calendar field a tick interval counts in.
type Unit int

const (
	Second Unit = iota
	Minute
	Hour
	Day
	Week
	Month
	Year
)

// Interval is a calendar step such as "every 15 seconds" or "every 10 years".
// Ticks fall on field values divisible by Step (seconds 0, 15, 30, 45; years
// 1950, 1960, ...), not on offsets from the domain start.
type Interval struct {
	Unit Unit
	Step int
}

// approximate lengths, used only to pick a tick level
var unitDuration = map[Unit]time.Duration{
	Second: time.Second,
	Minute: time.Minute,
	Hour:   time.Hour,
	Day:    24 * time.Hour,
	Week:   7 * 24 * time.Hour,
	Month:  30 * 24 * time.Hour,
	Year:   365 * 24 * time.Hour,
}

var tickIntervals = []Interval{
	{Second, 1}, {Second, 5}, {Second, 15}, {Second, 30},
	{Minute, 1}, {Minute, 5}, {Minute, 15}, {Minute, 30},
	{Hour, 1}, {Hour, 3}, {Hour, 6}, {Hour, 12},
	{Day, 1}, {Day, 2}, {Week, 1},
	{Month, 1}, {Month, 3},
	{Year, 1},
}

// Duration is the approximate length of one interval step.
func (iv Interval) Duration() time.Duration {
	return time.Duration(iv.Step) * unitDuration[iv.Unit]
}

// Time maps instants onto a numeric range. Instants are interpreted in UTC.
type Time struct {
	lin    *Linear
	d0, d1 time.Time
}

// NewTime returns a time scale from [d0, d1] to [r0, r1].
func NewTime(d0, d1 time.Time, r0, r1 float64) *Time {
	return &Time{lin: NewLinear(epochMillis(d0), epochMillis(d1), r0, r1), d0: d0, d1: d1}
}

// Map returns the range position of t.
func (s *Time) Map(t time.Time) float64 { return s.lin.Map(epochMillis(t)) }

// Domain returns the domain bounds.
func (s *Time) Domain() (time.Time, time.Time) { return s.d0, s.d1 }

// Range returns the range bounds.
func (s *Time) Range() (float64, float64) { return s.lin.Range() }

// Ticks returns roughly count calendar-aligned instants inside the domain.
func (s *Time) Ticks(count int) []time.Time {
	iv, ok := s.TickInterval(count)
	if !ok {
		return nil
	}
	return s.Every(iv)
}

// TickInterval returns the interval Ticks(count) uses: the table entry whose
// length is closest in ratio to span/count, or a year multiple beyond that.
func (s *Time) TickInterval(count int) (Interval, bool) {
	lo, hi := s.bounds()
	span := hi.Sub(lo)
	if count <= 0 || span <= 0 {
		return Interval{}, false
	}
	target := float64(span) / float64(count)
	i := sort.Search(len(tickIntervals), func(i int) bool {
		return float64(tickIntervals[i].Duration()) > target
	})
	switch {
	case i == len(tickIntervals):
		year, msec := float64(unitDuration[Year]), float64(time.Millisecond)
		step := tickStep(epochMillis(lo)*msec/year, epochMillis(hi)*msec/year, float64(count))
		return Interval{Unit: Year, Step: max(int(math.Round(step)), 1)}, true
	case i == 0:
		return tickIntervals[0], true
	}
	prev, next := tickIntervals[i-1], tickIntervals[i]
	if target/float64(prev.Duration()) < float64(next.Duration())/target {
		return prev, true
	}
	return next, true
}

// Every returns all instants aligned to iv inside the domain, inclusive.
func (s *Time) Every(iv Interval) []time.Time {
	if iv.Step <= 0 {
		return nil
	}
	lo, hi := s.bounds()
	var ticks []time.Time
	for t := ceilUnit(lo, iv.Unit); !t.After(hi); t = addUnit(t, iv.Unit, 1) {
		if aligned(t, iv) {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

func (s *Time) bounds() (time.Time, time.Time) {
	lo, hi := s.d0.UTC(), s.d1.UTC()
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	return lo, hi
}

// TickFormat labels t by its coarsest non-zero calendar field: ":05" for a
// second, "03:04" for a minute, "Jan 02" for a week start, "1990" for a year.
func TickFormat(t time.Time) string {
	t = t.UTC()
	var layout string
	switch {
	case t.Nanosecond() != 0:
		layout = ".000"
	case t.Second() != 0:
		layout = ":05"
	case t.Minute() != 0:
		layout = "03:04"
	case t.Hour() != 0:
		layout = "03 PM"
	case t.Day() != 1:
		if t.Weekday() == time.Sunday {
			layout = "Jan 02"
		} else {
			layout = "Mon 02"
		}
	case t.Month() != time.January:
		layout = "January"
	default:
		layout = "2006"
	}
	return t.Format(layout)
}

func epochMillis(t time.Time) float64 {
	return float64(t.UnixMilli()) + float64(t.Nanosecond()%int(time.Millisecond))/float64(time.Millisecond)
}

func floorUnit(t time.Time, u Unit) time.Time {
	y, m, d := t.Date()
	switch u {
	case Second:
		return t.Truncate(time.Second)
	case Minute:
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.UTC)
	case Hour:
		return time.Date(y, m, d, t.Hour(), 0, 0, 0, time.UTC)
	case Day:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case Week:
		return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, time.UTC)
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

func ceilUnit(t time.Time, u Unit) time.Time {
	f := floorUnit(t, u)
	if f.Before(t) {
		return addUnit(f, u, 1)
	}
	return f
}

func addUnit(t time.Time, u Unit, n int) time.Time {
	switch u {
	case Second:
		return t.Add(time.Duration(n) * time.Second)
	case Minute:
		return t.Add(time.Duration(n) * time.Minute)
	case Hour:
		return t.Add(time.Duration(n) * time.Hour)
	case Day:
		return t.AddDate(0, 0, n)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return t.AddDate(0, n, 0)
	default:
		return t.AddDate(n, 0, 0)
	}
}

func aligned(t time.Time, iv Interval) bool {
	if iv.Step == 1 {
		return true
	}
	switch iv.Unit {
	case Second:
		return t.Second()%iv.Step == 0
	case Minute:
		return t.Minute()%iv.Step == 0
	case Hour:
		return t.Hour()%iv.Step == 0
	case Day:
		return (t.Day()-1)%iv.Step == 0
	case Week:
		_, w := t.ISOWeek()
		return w%iv.Step == 0
	case Month:
		return (int(t.Month())-1)%iv.Step == 0
	default:
		return int(math.Abs(float64(t.Year())))%iv.Step == 0
	}
}
