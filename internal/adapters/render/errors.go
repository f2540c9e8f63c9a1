package render

import "errors"

var (
	// ErrNilChart is returned when asked to render nothing.
	ErrNilChart = errors.New("render: nil chart")
	// ErrTemplate is returned when the page template fails.
	ErrTemplate = errors.New("render: page template failed")
)
