package format

import (
	"fmt"
	"strings"
	"time"
)

// defaultYear is the year d3's time parser assigns when the specifier has no
// year directive.
const defaultYear = 1900

// directives maps strftime-style directives to Go reference layouts.
var directives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'e': "_2",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'L': "000",
	'p': "PM",
	'b': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'Z': "-0700",
}

// Layout converts a strftime-style specifier ("%Y-%m-%d") into a Go layout.
func Layout(pattern string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(pattern) {
			return "", fmt.Errorf("%w: trailing %% in %q", ErrSpecifier, pattern)
		}
		if pattern[i] == '%' {
			b.WriteByte('%')
			continue
		}
		if pattern[i] == 'L' {
			// milliseconds must follow a separator in Go layouts
			b.WriteString(".000")
			continue
		}
		layout, ok := directives[pattern[i]]
		if !ok {
			return "", fmt.Errorf("%w: %%%c in %q", ErrSpecifier, pattern[i], pattern)
		}
		b.WriteString(layout)
	}
	return b.String(), nil
}

// ParseTime parses value with a strftime-style specifier in UTC. Fields the
// specifier omits take d3's defaults (1900-01-01 00:00:00).
func ParseTime(pattern, value string) (time.Time, error) {
	layout, err := Layout(pattern)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(layout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q as %q: %v", ErrParse, value, pattern, err)
	}
	if !strings.Contains(pattern, "%Y") && !strings.Contains(pattern, "%y") {
		t = t.AddDate(defaultYear-t.Year(), 0, 0)
	}
	return t, nil
}

// FormatTime formats t in UTC with a strftime-style specifier. Unknown
// directives are written through unchanged.
func FormatTime(pattern string, t time.Time) string {
	layout, err := Layout(pattern)
	if err != nil {
		return pattern
	}
	return t.UTC().Format(layout)
}

// ISOString formats t like JavaScript's Date.prototype.toISOString.
func ISOString(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
