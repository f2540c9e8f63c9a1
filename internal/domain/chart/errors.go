package chart

import "errors"

var (
	// ErrMarkIndex is returned when a view is asked about a mark that does
	// not exist.
	ErrMarkIndex = errors.New("chart: mark index out of range")
)
