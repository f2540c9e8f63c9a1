package dataset

import "errors"

var (
	// ErrFetch is returned when a source cannot be read at all.
	ErrFetch = errors.New("dataset: fetch failed")
	// ErrStatus is returned when an HTTP source answers with a non-2xx status.
	ErrStatus = errors.New("dataset: unexpected status")
	// ErrDecode is returned when a body is not the JSON the caller expects.
	ErrDecode = errors.New("dataset: decode failed")
	// ErrPathNotFound is returned when an envelope path is missing from a body.
	ErrPathNotFound = errors.New("dataset: path not found")
	// ErrEmptySource is returned for a blank source location.
	ErrEmptySource = errors.New("dataset: empty source")
)
