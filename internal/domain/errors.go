package domain

import "errors"

var (
	// ErrMetricsUnavailable is returned by metrics providers that cannot read host statistics.
	ErrMetricsUnavailable = errors.New("metrics provider unavailable")
	// ErrSessionLimit is returned when no further sessions may be created.
	ErrSessionLimit = errors.New("session limit reached")
	// ErrSessionNotFound is returned for unknown session ids.
	ErrSessionNotFound = errors.New("session not found")
)
