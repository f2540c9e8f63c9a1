package format

import "errors"

// Sentinel error kinds for this package.
var (
	ErrSpecifier = errors.New("unsupported time specifier")
	ErrParse     = errors.New("time parse failed")
)
