package ingest

import "errors"

// Sentinel errors returned by the ingest package.
var (
	ErrReadCSV      = errors.New("read standings csv")
	ErrReadSnapshot = errors.New("read existing leaderboard")
	ErrWrite        = errors.New("write leaderboard")
)
