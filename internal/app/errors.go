package service

import "errors"

// ErrUnknownIntent is returned by Session.Dispatch for unsupported intents.
var ErrUnknownIntent = errors.New("unknown intent")
