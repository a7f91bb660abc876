package rewind

import "fmt"

// Command is the unit of work a History records. Redo applies the command's
// effect to the receiver; Undo restores the receiver's observable state from
// just before the matching Redo. Both may be called many times as the caller
// walks the history, always in alternation for a given entry.
type Command[R any] interface {
	// Redo applies the command to the receiver.
	Redo(recv R) error

	// Undo reverses the command on the receiver.
	Undo(recv R) error
}

// Mergeable marks commands that may fuse with a neighboring entry. Two
// consecutive commands fuse when both return ok and the same id; a command
// that declines (ok=false) never merges. Typical use is collapsing a typing
// burst into one undo step by tagging each keystroke with the burst's id.
type Mergeable interface {
	// MergeID returns the command's merge id and whether the command is
	// willing to merge at all.
	MergeID() (id uint64, ok bool)
}

// Describer lets a command name itself in history listings. Commands without
// it are described by their Go type.
type Describer interface {
	Description() string
}

// mergeID extracts cmd's merge id, treating non-Mergeable commands as
// unwilling to merge.
func mergeID[R any](cmd Command[R]) (uint64, bool) {
	if m, ok := cmd.(Mergeable); ok {
		return m.MergeID()
	}
	return 0, false
}

// describe returns cmd's self-description or a type-derived fallback.
func describe[R any](cmd Command[R]) string {
	if d, ok := cmd.(Describer); ok {
		return d.Description()
	}
	return fmt.Sprintf("%T", cmd)
}

// Sequence bundles several commands into one history entry. Redo applies the
// steps in order and Undo reverses them back-to-front, failing fast either
// way: a failed step is reported as-is and the remaining steps are not
// attempted, with no rollback of the steps already run.
type Sequence[R any] struct {
	Name     string
	Commands []Command[R]
}

// NewSequence creates a named sequence from the given steps.
func NewSequence[R any](name string, cmds ...Command[R]) *Sequence[R] {
	return &Sequence[R]{Name: name, Commands: cmds}
}

// Add appends a step to the sequence.
func (s *Sequence[R]) Add(cmd Command[R]) {
	s.Commands = append(s.Commands, cmd)
}

// IsEmpty reports whether the sequence has no steps.
func (s *Sequence[R]) IsEmpty() bool {
	return len(s.Commands) == 0
}

// Redo applies every step in order.
func (s *Sequence[R]) Redo(recv R) error {
	for i, cmd := range s.Commands {
		if err := cmd.Redo(recv); err != nil {
			return fmt.Errorf("sequence %q step %d: %w", s.Description(), i, err)
		}
	}
	return nil
}

// Undo reverses every step in reverse order.
func (s *Sequence[R]) Undo(recv R) error {
	for i := len(s.Commands) - 1; i >= 0; i-- {
		if err := s.Commands[i].Undo(recv); err != nil {
			return fmt.Errorf("sequence %q step %d: %w", s.Description(), i, err)
		}
	}
	return nil
}

// Description returns the sequence name, or a step count when unnamed.
func (s *Sequence[R]) Description() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%d steps", len(s.Commands))
}
