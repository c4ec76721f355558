package entities

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every error the engine returns wraps exactly one of
// these, so callers can branch with errors.Is without string matching.
var (
	// ErrNotFound means the lookup produced no usable candidate. Always
	// recoverable; the caller should prompt the user to retry.
	ErrNotFound = errors.New("no matching historical event found")

	// ErrExternalUnavailable means the external fact source could not be
	// reached. Gameplay treats it like ErrNotFound but it is worth
	// distinguishing in logs.
	ErrExternalUnavailable = errors.New("fact source unavailable")

	// ErrPrecondition marks contract violations by the caller: challenge on
	// an empty chain, submit outside the Playing phase, duplicate titles,
	// too few players. State is never mutated when this is returned.
	ErrPrecondition = errors.New("precondition violation")

	// ErrMalformedDate marks an extracted date that fails calendar
	// validation. Classification discards the candidate silently; the error
	// never reaches the presentation layer.
	ErrMalformedDate = errors.New("malformed date")
)

// PreconditionError carries a human-readable message for a contract
// violation. It unwraps to ErrPrecondition.
type PreconditionError struct {
	Message string
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition violation: %s", e.Message)
}

// Unwrap ties the error to the ErrPrecondition sentinel.
func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// Preconditionf builds a PreconditionError from a format string.
func Preconditionf(format string, args ...any) error {
	return &PreconditionError{Message: fmt.Sprintf(format, args...)}
}
