package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound indicates no booking matches the tenant and id.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidTransition indicates a status change out of a terminal state.
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// ConflictError reports that a proposed time was rejected by the conflict
// check. Handlers map it to HTTP 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflict: %s", e.Message)
}
