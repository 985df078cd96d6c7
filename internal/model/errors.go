package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a board id is unknown.
	ErrNotFound = errors.New("board not found")

	// ErrInvalidTransition is returned when a board's status does not permit
	// the requested operation.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrBoardNotAvailable is returned when sponsoring a board that is not
	// available. It matches ErrInvalidTransition under errors.Is.
	ErrBoardNotAvailable = fmt.Errorf("%w: board is not available", ErrInvalidTransition)

	// ErrInvalidAmount is returned when a payment is confirmed with a
	// non-positive amount.
	ErrInvalidAmount = errors.New("paid amount must be positive")

	// ErrInvalidDate is returned when contract dates are out of order, for
	// example a renewal whose end does not extend the current contract.
	ErrInvalidDate = errors.New("invalid contract date")

	// ErrValidation matches any *ValidationError.
	ErrValidation = errors.New("validation error")
)

// ValidationError reports a generic invariant violation on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
