package domain

import "errors"

var (
	// ErrInvalidRange rejects a malformed or inverted date range before any
	// resolution work begins.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrNotFound marks a hotel, rate plan, payment term, or eligible payment
	// method absent at a required step. Absence is never substituted with a
	// silent default.
	ErrNotFound = errors.New("not found")

	// ErrInconsistentConfig marks a rate plan with indirection enabled but no
	// resolvable master. The engine falls back to resolving against the rate
	// plan itself; the sentinel exists for callers that want to detect it.
	ErrInconsistentConfig = errors.New("inconsistent rate plan configuration")
)
