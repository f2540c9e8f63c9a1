// Package format renders numbers and times the way the chart pages print them
// into data attributes and tooltips.
package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// jsFixedMin and jsFixedMax bound the magnitudes JavaScript prints without an
// exponent.
const (
	jsFixedMin = 1e-6
	jsFixedMax = 1e21
)

var englishPrinter = message.NewPrinter(language.English)

// JSNumber formats v like JavaScript's Number.prototype.toString: shortest
// round-trip digits, exponent only outside [1e-6, 1e21).
func JSNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= jsFixedMin && abs < jsFixedMax {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}
	return mant + "e" + sign + exp
}

// ToFixed formats v like JavaScript's Number.prototype.toFixed(digits):
// exact decimal rounding with ties going to the larger magnitude.
func ToFixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return JSNumber(v)
	}
	if digits < 0 {
		digits = 0
	}
	if math.Abs(v) >= jsFixedMax {
		return JSNumber(v)
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	r := new(big.Rat).SetFloat64(v)
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	r.Mul(r, new(big.Rat).SetInt(pow))
	r.Add(r, big.NewRat(1, 2))
	n := new(big.Int).Quo(r.Num(), r.Denom())

	s := n.String()
	if digits == 0 {
		return sign + s
	}
	if len(s) <= digits {
		s = strings.Repeat("0", digits-len(s)+1) + s
	}
	return sign + s[:len(s)-digits] + "." + s[len(s)-digits:]
}

// Grouped formats v the way Intl.NumberFormat('en') does by default: at most
// three fraction digits, trailing zeros dropped, comma thousands separators.
func Grouped(v float64) string {
	return GroupedDigits(v, 3)
}

// GroupedDigits is Grouped with an explicit maximum number of fraction digits.
func GroupedDigits(v float64, maxFraction int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return JSNumber(v)
	}
	fixed := ToFixed(math.Abs(v), maxFraction)
	intPart, frac, _ := strings.Cut(fixed, ".")
	frac = strings.TrimRight(frac, "0")

	sign := ""
	if v < 0 {
		sign = "-"
	}

	grouped := intPart
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		grouped = englishPrinter.Sprintf("%d", n)
	}
	if frac == "" {
		return sign + grouped
	}
	return sign + grouped + "." + frac
}

// Integer formats v with d3's "d" specifier: rounded, no grouping.
func Integer(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return JSNumber(v)
	}
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

// GroupedFixed formats v with exactly digits fraction digits and comma
// thousands separators, like d3.format(",.Nf").
func GroupedFixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return JSNumber(v)
	}
	fixed := ToFixed(math.Abs(v), digits)
	intPart, frac, _ := strings.Cut(fixed, ".")

	sign := ""
	if v < 0 && strings.Trim(fixed, "0.") != "" {
		sign = "-"
	}
	grouped := intPart
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		grouped = englishPrinter.Sprintf("%d", n)
	}
	if frac == "" {
		return sign + grouped
	}
	return sign + grouped + "." + frac
}
