package recordings

import "errors"

var (
	// ErrNotFound indicates the short identifier matched no backing source.
	ErrNotFound = errors.New("recording not found")
	// ErrAmbiguous indicates a backing source holds more than one row for a
	// slug that must be unique. Callers must not pick a row silently.
	ErrAmbiguous = errors.New("ambiguous recording slug")
	// ErrLookupFailed indicates every backing source was unreachable.
	ErrLookupFailed = errors.New("recording lookup failed")
)
