package ecs

import "errors"

var (
	// ErrInvalidEntity prefixes the panic message raised when an
	// operation is given a handle that does not validate against the
	// universe: either the index was never allocated, or it was deleted
	// and its generation moved on. No function returns it as an error.
	ErrInvalidEntity = errors.New("ecs: invalid entity access")

	// ErrGenerationOverflow mirrors the original's generation-overflow
	// panic: the top generation counter has wrapped uint32, which would
	// silently alias a handle. Treated as unrecoverable.
	ErrGenerationOverflow = errors.New("ecs: entity generation overflow")

	// ErrIndexOverflow mirrors the original's index-overflow panic.
	ErrIndexOverflow = errors.New("ecs: entity index overflow")
)
