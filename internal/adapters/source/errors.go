package source

import "errors"

// Sentinel kinds for data source errors.
var (
	ErrInvalidBase = errors.New("invalid data source base")
	ErrFetch       = errors.New("fetch failed")
	ErrStatus      = errors.New("unexpected response status")
	ErrDecode      = errors.New("decode failed")
)
