package segment

import "errors"

var (
	// ErrBadCapacity indicates a non-positive total capacity.
	ErrBadCapacity = errors.New("segment: capacity must be positive")

	// ErrBadThreshold indicates a negative threshold or one larger than the capacity.
	ErrBadThreshold = errors.New("segment: threshold must be within [0, capacity]")
)
