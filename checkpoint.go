package rewind

// Checkpoint marks a cursor position in a History so a batch of later work
// can be walked back in one call. A checkpoint is a position, not a pin:
// pushing after an undo prunes entries, and a checkpoint past the pruned
// tail simply becomes unreachable.
type Checkpoint struct {
	cursor int
}

// Checkpoint captures the current cursor position.
func (h *History[R]) Checkpoint() Checkpoint {
	return Checkpoint{cursor: h.cursor}
}

// UndoTo undoes entries until the cursor is back at cp. It is a no-op when
// the cursor is already at or before cp, and stops at the first failing
// command, returning its error.
func (h *History[R]) UndoTo(cp Checkpoint, recv R) error {
	for h.cursor > cp.cursor && h.CanUndo() {
		if err := h.Undo(recv); err != nil {
			return err
		}
	}
	return nil
}

// RedoTo reapplies entries until the cursor reaches cp. It stops early if
// the entries up to cp were pruned by a push, or at the first failing
// command, returning its error.
func (h *History[R]) RedoTo(cp Checkpoint, recv R) error {
	for h.cursor < cp.cursor && h.CanRedo() {
		if err := h.Redo(recv); err != nil {
			return err
		}
	}
	return nil
}
