package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoSeatsRequested  = errors.New("at least one seat must be requested")
	ErrConflictExhausted = errors.New("booking conflict: retry attempts exhausted")
	ErrForbidden         = errors.New("booking belongs to a different user")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrTooLateToCancel   = errors.New("booking can no longer be cancelled this close to the showtime")
)

// SeatsUnavailableError reports which of the requested seats are already in
// the showtime's booked set.
type SeatsUnavailableError struct {
	Seats []string
}

func (e SeatsUnavailableError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.Seats, ", "))
}

// InvalidSeatError reports the first requested seat identifier that is
// malformed, duplicated, or outside the hall's bounds.
type InvalidSeatError struct {
	Seat string
}

func (e InvalidSeatError) Error() string {
	return fmt.Sprintf("invalid seat: %s", e.Seat)
}

// CancellationFailedError wraps the store or transaction error that aborted a
// cancellation. The booking stays Confirmed; the caller may retry.
type CancellationFailedError struct {
	Cause error
}

func (e CancellationFailedError) Error() string {
	return fmt.Sprintf("cancellation failed: %v", e.Cause)
}

func (e CancellationFailedError) Unwrap() error {
	return e.Cause
}
