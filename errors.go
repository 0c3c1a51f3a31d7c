package orrery

import "errors"

var (
	// ErrUnknownBody is returned when an operation targets an id that is
	// not in the catalog. The operation is a no-op.
	ErrUnknownBody = errors.New("unknown body")
	// ErrInvalidDistance is returned when a distance perturbation is
	// non-positive or targets the star. The operation is a no-op.
	ErrInvalidDistance = errors.New("invalid distance")
)
