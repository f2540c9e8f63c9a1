package service

import "errors"

var (
	// ErrUnknownPage is returned for a page name that is not registered.
	ErrUnknownPage = errors.New("unknown page")
	// ErrPageUnavailable is returned for a page whose datasets failed to load
	// or have not been loaded yet.
	ErrPageUnavailable = errors.New("page unavailable")
	// ErrNotStarted is returned when pages are requested before Start.
	ErrNotStarted = errors.New("service not started")
)
