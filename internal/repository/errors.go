// Package repository provides per-table data access over database/sql.
// Sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting driver-specific error values: not-found
// conditions map to 404, ErrForbidden to 403 and ErrConflict to 409.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot proceed because of
// conflicting state, such as persisting a reservation whose window
// overlaps an existing one for the same car.
var ErrConflict = errors.New("conflict")

// ErrCarNotFound is returned when no car exists with the requested id.
var ErrCarNotFound = errors.New("car not found")

// ErrReservationNotFound is returned when no reservation exists with
// the requested id.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrUserNotFound is returned when no user exists with the requested id
// or email.
var ErrUserNotFound = errors.New("user not found")

// ErrJobNotFound is returned when no driver job exists with the
// requested id.
var ErrJobNotFound = errors.New("job not found")

// ErrReviewNotFound is returned when no review exists with the
// requested id.
var ErrReviewNotFound = errors.New("review not found")

// ErrEmailExists is returned when registering with an email address
// that is already taken.
var ErrEmailExists = errors.New("email already exists")
