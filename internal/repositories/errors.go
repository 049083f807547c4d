package repositories

import "errors"

// Storage-level sentinels. Implementations translate their driver errors into
// these so services never import driver packages.
var (
	// ErrNotFound is returned when a lookup matches no document
	ErrNotFound = errors.New("repository: not found")

	// ErrDuplicateKey is returned when an insert violates a unique constraint
	ErrDuplicateKey = errors.New("repository: duplicate key")

	// ErrInsufficientPoints is returned by DecrementPointsIfEnough when the
	// conditional update matched the user but the balance was short
	ErrInsufficientPoints = errors.New("repository: insufficient points")
)
