package actor

import "errors"

var (
	// ErrEmptyCollider is returned (or panicked with) when a support query is
	// made against a collider without any vertex.
	ErrEmptyCollider = errors.New("collider has no vertices")
	ErrInvalidVertex = errors.New("collider vertex is not a finite point")
	ErrInvalidShape  = errors.New("collider dimensions must be finite and non-negative")
	// ErrInvalidMass is returned for a dynamic body without a positive finite mass.
	ErrInvalidMass = errors.New("dynamic body mass must be positive and finite")
)
