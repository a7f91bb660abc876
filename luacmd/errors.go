package luacmd

import "errors"

// Errors for engine operations.
var (
	// ErrEngineClosed is returned when operating on a closed engine.
	ErrEngineClosed = errors.New("lua engine is closed")
)
