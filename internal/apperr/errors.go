package apperr

import "errors"

var (
	// ErrInvalid marks malformed input: coordinates, vehicle class, rating, identifiers.
	ErrInvalid = errors.New("invalid input")
	// ErrConflict marks a business-rule rejection such as a second active delivery
	// or a stale state transition.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks an unknown customer, courier or delivery.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an actor that is not a party to the delivery
	// or whose role may not perform the requested action.
	ErrForbidden = errors.New("forbidden")
)
