// Package booking implements the reservation engine: booking window
// normalisation, interval conflict detection, pricing and settlement
// arithmetic.  It is pure domain logic with no knowledge of HTTP or the
// database; handlers feed it values loaded by the repository layer.
package booking

import (
	"errors"
	"fmt"
)

// ErrConflict is returned when a proposed booking window overlaps an
// existing reservation for the same car.  Handlers translate this into
// an HTTP 409 response ("dates unavailable").
var ErrConflict = errors.New("booking window conflicts with an existing reservation")

// ErrInvalidWindow is returned when a window cannot be constructed at
// all: the end date precedes the start date, or a time string is not in
// HH:MM form.
var ErrInvalidWindow = errors.New("invalid booking window")

// ErrInvalidAmount is returned when a settlement amount is missing,
// non-positive or not a finite number.  Amounts are never coerced to
// zero; a broken client fails loudly instead of silently recording a
// free settlement.
var ErrInvalidAmount = errors.New("invalid payment amount")

// InvalidDurationError reports a violated minimum-duration rule for an
// hourly booking.  MinHours carries the specific minimum so callers can
// tell the user exactly which rule was broken.
type InvalidDurationError struct {
	Reason   Reason
	MinHours int
}

func (e *InvalidDurationError) Error() string {
	if e.MinHours > 0 {
		return fmt.Sprintf("minimum booking time for %s is %d hours", e.Reason, e.MinHours)
	}
	return "booking time must be longer than zero hours"
}
