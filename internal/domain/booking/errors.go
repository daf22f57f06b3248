package booking

import "errors"

// Errors returned by the slot engine. Handlers map these to HTTP statuses;
// nothing in the engine ever falls back to a silent default when one of
// these would apply.
var (
	// ErrMalformedTime is returned for a wall-clock string that is not a
	// valid "HH:MM" value.
	ErrMalformedTime = errors.New("malformed time")

	// ErrValidation covers malformed or missing caller input.
	ErrValidation = errors.New("invalid request")

	// ErrUnknownService is returned when the requested service does not
	// exist or is inactive.
	ErrUnknownService = errors.New("unknown service")

	// ErrUnconfiguredPolicy is returned when no slot policy exists for the
	// doctor/service pair. Policies are never defaulted: a missing policy
	// means the pair is not bookable, not that some assumed interval applies.
	ErrUnconfiguredPolicy = errors.New("no slot policy configured for doctor/service")

	// ErrConflict is returned when the requested window overlaps an
	// existing pending or confirmed booking. Safe for the caller to retry
	// against a fresh slot list.
	ErrConflict = errors.New("selected time overlaps an existing booking")

	// ErrBookingNotFound is returned when a booking id does not resolve.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidTransition is returned for a status change the booking
	// state machine does not permit.
	ErrInvalidTransition = errors.New("invalid booking status transition")
)
