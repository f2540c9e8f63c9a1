// Package geo decodes TopoJSON topologies into GeoJSON-like features and
// draws them as SVG path data with an identity projection.
package geo

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Position is a planar coordinate pair.
type Position [2]float64

// Geometry is a decoded geometry. Lines holds the rings of a Polygon or the
// single line of a LineString; Polygons holds the polygons of a MultiPolygon.
type Geometry struct {
	Type     string
	Points   []Position
	Lines    [][]Position
	Polygons [][][]Position
}

// Feature is one geometry with its identifier and properties.
type Feature struct {
	ID         json.RawMessage
	Properties map[string]any
	Geometry   *Geometry
}

// NumericID returns the feature id when it is a JSON number.
func (f Feature) NumericID() (float64, bool) {
	if len(f.ID) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(f.ID), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Topology is a parsed TopoJSON document.
type Topology struct {
	Type      string                     `json:"type"`
	Arcs      [][][]float64              `json:"arcs"`
	Transform *Transform                 `json:"transform,omitempty"`
	Objects   map[string]json.RawMessage `json:"objects"`
}

// Transform is the quantisation transform of a topology. When present, arc
// positions are delta-encoded integers.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

type object struct {
	Type        string          `json:"type"`
	ID          json.RawMessage `json:"id,omitempty"`
	Properties  map[string]any  `json:"properties,omitempty"`
	Arcs        json.RawMessage `json:"arcs,omitempty"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
	Geometries  []object        `json:"geometries,omitempty"`
}

// Parse decodes a TopoJSON topology.
func Parse(body []byte) (*Topology, error) {
	if t := gjson.GetBytes(body, "type"); t.String() != "Topology" {
		return nil, fmt.Errorf("%w: type %q", ErrNotTopology, t.String())
	}
	var topo Topology
	if err := json.Unmarshal(body, &topo); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotTopology, err)
	}
	return &topo, nil
}

// Features converts the named object into features. A GeometryCollection
// yields one feature per member; any other object yields a single feature.
func (t *Topology) Features(name string) ([]Feature, error) {
	raw, ok := t.Objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
	}
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("%w: object %s: %v", ErrGeometry, name, err)
	}
	members := []object{o}
	if o.Type == "GeometryCollection" {
		members = o.Geometries
	}
	features := make([]Feature, 0, len(members))
	for i, m := range members {
		g, err := t.geometry(m)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		props := m.Properties
		if props == nil {
			props = map[string]any{}
		}
		features = append(features, Feature{ID: m.ID, Properties: props, Geometry: g})
	}
	return features, nil
}

func (t *Topology) geometry(o object) (*Geometry, error) {
	g := &Geometry{Type: o.Type}
	switch o.Type {
	case "", "null":
		return nil, nil
	case "Point":
		var c []float64
		if err := json.Unmarshal(o.Coordinates, &c); err != nil {
			return nil, fmt.Errorf("%w: point: %v", ErrGeometry, err)
		}
		p, err := t.point(c)
		if err != nil {
			return nil, err
		}
		g.Points = []Position{p}
	case "MultiPoint":
		var cs [][]float64
		if err := json.Unmarshal(o.Coordinates, &cs); err != nil {
			return nil, fmt.Errorf("%w: multipoint: %v", ErrGeometry, err)
		}
		for _, c := range cs {
			p, err := t.point(c)
			if err != nil {
				return nil, err
			}
			g.Points = append(g.Points, p)
		}
	case "LineString":
		var arcs []int
		if err := json.Unmarshal(o.Arcs, &arcs); err != nil {
			return nil, fmt.Errorf("%w: linestring: %v", ErrGeometry, err)
		}
		line, err := t.line(arcs, 2)
		if err != nil {
			return nil, err
		}
		g.Lines = [][]Position{line}
	case "MultiLineString", "Polygon":
		var arcs [][]int
		if err := json.Unmarshal(o.Arcs, &arcs); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrGeometry, o.Type, err)
		}
		minLen := 2
		if o.Type == "Polygon" {
			minLen = 4
		}
		lines, err := t.lines(arcs, minLen)
		if err != nil {
			return nil, err
		}
		g.Lines = lines
	case "MultiPolygon":
		var arcs [][][]int
		if err := json.Unmarshal(o.Arcs, &arcs); err != nil {
			return nil, fmt.Errorf("%w: multipolygon: %v", ErrGeometry, err)
		}
		for _, poly := range arcs {
			rings, err := t.lines(poly, 4)
			if err != nil {
				return nil, err
			}
			g.Polygons = append(g.Polygons, rings)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported type %q", ErrGeometry, o.Type)
	}
	return g, nil
}

func (t *Topology) lines(arcs [][]int, minLen int) ([][]Position, error) {
	out := make([][]Position, 0, len(arcs))
	for _, a := range arcs {
		l, err := t.line(a, minLen)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// line stitches arcs end to end. Each arc's first point repeats the previous
// arc's last point and is dropped; a negative index ~i walks arc i backwards.
// Degenerate results are padded with their first point up to minLen.
func (t *Topology) line(arcs []int, minLen int) ([]Position, error) {
	var points []Position
	for _, i := range arcs {
		idx := i
		if idx < 0 {
			idx = ^idx
		}
		if idx >= len(t.Arcs) {
			return nil, fmt.Errorf("%w: %d", ErrArcIndex, i)
		}
		if len(points) > 0 {
			points = points[:len(points)-1]
		}
		start := len(points)
		decoded, err := t.arc(t.Arcs[idx])
		if err != nil {
			return nil, err
		}
		points = append(points, decoded...)
		if i < 0 {
			reverse(points[start:])
		}
	}
	for len(points) > 0 && len(points) < minLen {
		points = append(points, points[0])
	}
	return points, nil
}

func (t *Topology) arc(raw [][]float64) ([]Position, error) {
	out := make([]Position, len(raw))
	var x, y float64
	for k, p := range raw {
		if len(p) < 2 {
			return nil, fmt.Errorf("%w: arc position has %d values", ErrGeometry, len(p))
		}
		if t.Transform == nil {
			out[k] = Position{p[0], p[1]}
			continue
		}
		x += p[0]
		y += p[1]
		out[k] = Position{
			x*t.Transform.Scale[0] + t.Transform.Translate[0],
			y*t.Transform.Scale[1] + t.Transform.Translate[1],
		}
	}
	return out, nil
}

func (t *Topology) point(c []float64) (Position, error) {
	if len(c) < 2 {
		return Position{}, fmt.Errorf("%w: point has %d values", ErrGeometry, len(c))
	}
	if t.Transform == nil {
		return Position{c[0], c[1]}, nil
	}
	return Position{
		c[0]*t.Transform.Scale[0] + t.Transform.Translate[0],
		c[1]*t.Transform.Scale[1] + t.Transform.Translate[1],
	}, nil
}

func reverse(p []Position) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}
