package explore

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrNoUnit      = errors.New("no compiled document")
)
