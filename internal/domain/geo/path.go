package geo

import (
	"math"
	"strings"

	"github.com/okian/vizpages/internal/domain/format"
)

// pathDigits is the coordinate precision of generated path data.
const pathDigits = 3

// pointRadius is the radius of the circle drawn for point geometries.
const pointRadius = 4.5

// Path returns SVG path data for g with an identity projection. Rings are
// closed with Z and written without their repeated closing point. A nil
// geometry yields "".
func Path(g *Geometry) string {
	if g == nil {
		return ""
	}
	var b strings.Builder
	switch g.Type {
	case "Point", "MultiPoint":
		for _, p := range g.Points {
			writePoint(&b, p)
		}
	case "LineString", "MultiLineString":
		for _, l := range g.Lines {
			writeLine(&b, l, false)
		}
	case "Polygon":
		for _, r := range g.Lines {
			writeLine(&b, r, true)
		}
	case "MultiPolygon":
		for _, poly := range g.Polygons {
			for _, r := range poly {
				writeLine(&b, r, true)
			}
		}
	}
	return b.String()
}

func writeLine(b *strings.Builder, pts []Position, closed bool) {
	if closed && len(pts) > 1 {
		pts = pts[:len(pts)-1]
	}
	for i, p := range pts {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		writePos(b, p)
	}
	if closed && len(pts) > 0 {
		b.WriteByte('Z')
	}
}

func writePoint(b *strings.Builder, p Position) {
	b.WriteByte('M')
	writePos(b, p)
	r := format.JSNumber(pointRadius)
	d := format.JSNumber(2 * pointRadius)
	b.WriteString("m0," + r + "a" + r + "," + r + " 0 1,1 0,-" + d + "a" + r + "," + r + " 0 1,1 0," + d + "z")
}

func writePos(b *strings.Builder, p Position) {
	b.WriteString(format.JSNumber(round(p[0])))
	b.WriteByte(',')
	b.WriteString(format.JSNumber(round(p[1])))
}

func round(v float64) float64 {
	k := math.Pow10(pathDigits)
	return math.Floor(v*k+0.5) / k
}
