package rewind

import (
	"errors"
	"fmt"
)

// Group errors.
var (
	// ErrNoActiveHistory is returned when a Group operation is forwarded
	// while no member is selected.
	ErrNoActiveHistory = errors.New("no active history")

	// ErrHistoryNotFound is returned when a Group id does not name a
	// current member.
	ErrHistoryNotFound = errors.New("history not found")
)

// CommandError reports a command whose Redo or Undo failed. It carries the
// command instance itself so callers can inspect exactly what failed, and
// unwraps to the receiver-side error for errors.Is and errors.As.
type CommandError[R any] struct {
	Cmd Command[R]
	Err error
}

// Error implements the error interface.
func (e *CommandError[R]) Error() string {
	return fmt.Sprintf("command %s: %v", describe(e.Cmd), e.Err)
}

// Unwrap returns the underlying error produced by the command.
func (e *CommandError[R]) Unwrap() error {
	return e.Err
}
