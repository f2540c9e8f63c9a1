package geo

import "errors"

var (
	// ErrNotTopology is returned when a document is not a TopoJSON topology.
	ErrNotTopology = errors.New("geo: not a topology")
	// ErrObjectNotFound is returned when the named object is missing.
	ErrObjectNotFound = errors.New("geo: object not found")
	// ErrArcIndex is returned when a geometry references a missing arc.
	ErrArcIndex = errors.New("geo: arc index out of range")
	// ErrGeometry is returned for malformed geometry coordinates.
	ErrGeometry = errors.New("geo: malformed geometry")
)
