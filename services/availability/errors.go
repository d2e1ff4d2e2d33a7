package availability

import "errors"

var (
	// ErrServiceNotFound indicates the requested service has no catalog entry.
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput indicates a malformed request rejected before any fetch.
	ErrInvalidInput = errors.New("invalid input")
)
