package filter

import "errors"

// Sentinel kinds for filter errors.
var (
	ErrUnknownFilter = errors.New("unknown filter")
)
