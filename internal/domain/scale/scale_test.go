package scale_test

import (
	"math"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/vizpages/internal/domain/scale"
)

func TestLinear(t *testing.T) {
	convey.Convey("Given a linear scale with an inverted range", t, func() {
		s := scale.NewLinear(0, 100, 540, 60)

		convey.Convey("Then it maps domain ends onto range ends", func() {
			convey.So(s.Map(0), convey.ShouldEqual, 540.0)
			convey.So(s.Map(100), convey.ShouldEqual, 60.0)
			convey.So(s.Map(50), convey.ShouldEqual, 300.0)
		})

		convey.Convey("Then Invert undoes Map", func() {
			convey.So(s.Invert(300), convey.ShouldAlmostEqual, 50, 1e-9)
		})

		convey.Convey("Then NaN propagates", func() {
			convey.So(math.IsNaN(s.Map(math.NaN())), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a degenerate domain", t, func() {
		s := scale.NewLinear(5, 5, 0, 10)
		convey.So(s.Map(5), convey.ShouldEqual, 5.0)
		convey.So(s.Ticks(10), convey.ShouldResemble, []float64{5})
	})
}

func TestLinearTicks(t *testing.T) {
	convey.Convey("Given a GDP-sized domain", t, func() {
		s := scale.NewLinear(0, 18064.7, 540, 60)

		convey.Convey("Then ten ticks step by 2000", func() {
			ticks := s.Ticks(10)
			convey.So(len(ticks), convey.ShouldEqual, 10)
			convey.So(ticks[0], convey.ShouldEqual, 0.0)
			convey.So(ticks[9], convey.ShouldEqual, 18000.0)
			convey.So(s.TickStep(10), convey.ShouldEqual, 2000.0)
		})
	})

	convey.Convey("Given a small decimal domain", t, func() {
		s := scale.NewLinear(0, 1, 0, 100)
		ticks := s.Ticks(10)
		convey.So(len(ticks), convey.ShouldEqual, 11)
		convey.So(ticks[3], convey.ShouldEqual, 0.3)
	})

	convey.Convey("Given a year domain", t, func() {
		s := scale.NewLinear(1993, 2016, 60, 840)
		convey.So(s.Ticks(10), convey.ShouldResemble,
			[]float64{1994, 1996, 1998, 2000, 2002, 2004, 2006, 2008, 2010, 2012, 2014, 2016})
	})

	convey.Convey("Given a non-positive count", t, func() {
		convey.So(scale.NewLinear(0, 1, 0, 1).Ticks(0), convey.ShouldBeEmpty)
	})
}

func TestTime(t *testing.T) {
	d0 := time.Date(1947, 1, 1, 0, 0, 0, 0, time.UTC)
	d1 := time.Date(2015, 7, 1, 0, 0, 0, 0, time.UTC)

	convey.Convey("Given a time scale over the GDP quarters", t, func() {
		s := scale.NewTime(d0, d1, 60, 840)

		convey.Convey("Then domain ends map to range ends", func() {
			convey.So(s.Map(d0), convey.ShouldEqual, 60.0)
			convey.So(s.Map(d1), convey.ShouldEqual, 840.0)
		})

		convey.Convey("Then default ticks fall on every fifth year", func() {
			ticks := s.Ticks(10)
			convey.So(len(ticks), convey.ShouldEqual, 14)
			convey.So(ticks[0].Year(), convey.ShouldEqual, 1950)
			convey.So(ticks[13].Year(), convey.ShouldEqual, 2015)
			convey.So(scale.TickFormat(ticks[0]), convey.ShouldEqual, "1950")
		})
	})

	convey.Convey("Given a race-time domain", t, func() {
		lo := time.Date(1900, 1, 1, 0, 36, 50, 0, time.UTC)
		hi := time.Date(1900, 1, 1, 0, 39, 50, 0, time.UTC)
		s := scale.NewTime(lo, hi, 60, 540)

		convey.Convey("Then fifteen-second ticks land on aligned seconds", func() {
			ticks := s.Every(scale.Interval{Unit: scale.Second, Step: 15})
			convey.So(len(ticks), convey.ShouldEqual, 12)
			convey.So(ticks[0].Second(), convey.ShouldEqual, 0)
			convey.So(ticks[0].Minute(), convey.ShouldEqual, 37)
			convey.So(ticks[1].Second(), convey.ShouldEqual, 15)
		})
	})
}

func TestTickFormat(t *testing.T) {
	convey.Convey("Given instants at different granularities", t, func() {
		convey.So(scale.TickFormat(time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC)), convey.ShouldEqual, "March")
		convey.So(scale.TickFormat(time.Date(2000, 1, 1, 0, 0, 15, 0, time.UTC)), convey.ShouldEqual, ":15")
		convey.So(scale.TickFormat(time.Date(2000, 1, 1, 13, 0, 0, 0, time.UTC)), convey.ShouldEqual, "01 PM")
	})
}

func TestBand(t *testing.T) {
	convey.Convey("Given a band scale over repeated years", t, func() {
		b := scale.NewBand([]int{1753, 1753, 1754, 1755, 1754}, 120, 1140)

		convey.Convey("Then duplicates collapse in first-seen order", func() {
			convey.So(b.Domain(), convey.ShouldResemble, []int{1753, 1754, 1755})
			convey.So(b.Len(), convey.ShouldEqual, 3)
		})

		convey.Convey("Then bands tile the range", func() {
			convey.So(b.Bandwidth(), convey.ShouldEqual, 340.0)
			convey.So(b.Map(1753), convey.ShouldEqual, 120.0)
			convey.So(b.Map(1755), convey.ShouldEqual, 800.0)
		})

		convey.Convey("Then unknown keys map to NaN", func() {
			convey.So(math.IsNaN(b.Map(2000)), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given NaN keys among two years", t, func() {
		nan := math.NaN()
		b := scale.NewBand([]float64{1753, nan, 1754, nan, nan}, 120, 1140)

		convey.Convey("Then every NaN shares one band", func() {
			convey.So(b.Len(), convey.ShouldEqual, 3)
			convey.So(b.Bandwidth(), convey.ShouldEqual, 340.0)
			convey.So(b.Map(nan), convey.ShouldEqual, 460.0)
			convey.So(b.Map(1754), convey.ShouldEqual, 800.0)
		})
	})

	convey.Convey("Given a band scale without NaN keys", t, func() {
		b := scale.NewBand([]float64{1753, 1754}, 120, 1140)
		convey.So(math.IsNaN(b.Map(math.NaN())), convey.ShouldBeTrue)
	})

	convey.Convey("Given a reversed range", t, func() {
		b := scale.NewBand([]string{"a", "b"}, 100, 0)
		convey.So(b.Map("a"), convey.ShouldEqual, 50.0)
		convey.So(b.Map("b"), convey.ShouldEqual, 0.0)
	})
}

func TestThreshold(t *testing.T) {
	convey.Convey("Given the education thresholds", t, func() {
		th := scale.NewThreshold(
			[]float64{3, 12, 21, 30, 39, 48, 57, 66},
			[]string{"c0", "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"},
		)

		check := func(x float64, want string) {
			got, ok := th.Map(x)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(got, convey.ShouldEqual, want)
		}

		convey.Convey("Then boundaries belong to the upper bucket", func() {
			check(2.9, "c0")
			check(3, "c1")
			check(11.99, "c1")
			check(66, "c8")
			check(100, "c8")
		})

		convey.Convey("Then NaN is unmapped", func() {
			_, ok := th.Map(math.NaN())
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("Then InvertExtent recovers the bucket bounds", func() {
			lo, hi := th.InvertExtent(1)
			convey.So(lo, convey.ShouldEqual, 3.0)
			convey.So(hi, convey.ShouldEqual, 12.0)
			lo, _ = th.InvertExtent(0)
			convey.So(math.IsInf(lo, -1), convey.ShouldBeTrue)
		})
	})
}

func TestOrdinal(t *testing.T) {
	convey.Convey("Given an ordinal scale with two colours", t, func() {
		o := scale.NewOrdinal[bool]([]string{"green", "orange"})

		convey.Convey("Then keys take colours in first-seen order", func() {
			convey.So(o.Map(true), convey.ShouldEqual, "green")
			convey.So(o.Map(false), convey.ShouldEqual, "orange")
			convey.So(o.Map(true), convey.ShouldEqual, "green")
			convey.So(o.Domain(), convey.ShouldResemble, []bool{true, false})
		})
	})

	convey.Convey("Given more keys than colours", t, func() {
		o := scale.NewOrdinal[int]([]string{"a", "b"})
		o.Map(1)
		o.Map(2)
		convey.So(o.Map(3), convey.ShouldEqual, "a")
	})
}

func TestExtent(t *testing.T) {
	convey.Convey("Given values with NaN", t, func() {
		lo, hi, ok := scale.Extent([]float64{3, math.NaN(), -1, 8})
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(lo, convey.ShouldEqual, -1.0)
		convey.So(hi, convey.ShouldEqual, 8.0)

		_, _, ok = scale.Extent([]float64{math.NaN()})
		convey.So(ok, convey.ShouldBeFalse)
	})

	convey.Convey("Given times with invalid entries", t, func() {
		a := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		b := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
		type rec struct {
			t  time.Time
			ok bool
		}
		lo, hi, ok := scale.TimeExtent([]rec{{a, true}, {time.Time{}, false}, {b, true}},
			func(r rec) (time.Time, bool) { return r.t, r.ok })
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(lo, convey.ShouldEqual, b)
		convey.So(hi, convey.ShouldEqual, a)
	})
}
