package rewind

import "time"

// entry is one recorded command with the time it last landed in the history.
type entry[R any] struct {
	cmd Command[R]
	at  time.Time
}

// History records commands applied to a receiver of type R and moves a
// cursor through them. Entries before the cursor are applied and can be
// undone; entries at or after it are undone and can be redone. The history
// is clean exactly when the cursor sits at the end.
//
// The zero value is ready to use; NewHistory and NewHistoryCap exist for
// symmetry with the rest of the package.
type History[R any] struct {
	entries []entry[R]
	cursor  int
	limit   int
	onClean func()
	onDirty func()
}

// NewHistory creates an empty history.
func NewHistory[R any]() *History[R] {
	return &History[R]{}
}

// NewHistoryCap creates an empty history with room for n entries allocated
// up front.
func NewHistoryCap[R any](n int) *History[R] {
	if n < 0 {
		n = 0
	}
	return &History[R]{entries: make([]entry[R], 0, n)}
}

// OnClean sets the hook fired when the history transitions dirty to clean.
// It returns the history for chaining; a later call replaces the hook.
func (h *History[R]) OnClean(fn func()) *History[R] {
	h.onClean = fn
	return h
}

// OnDirty sets the hook fired when the history transitions clean to dirty.
// It returns the history for chaining; a later call replaces the hook.
func (h *History[R]) OnDirty(fn func()) *History[R] {
	h.onDirty = fn
	return h
}

// WithLimit caps the number of retained entries; 0 means unlimited. When a
// push grows the history past the limit, the oldest entries are evicted.
func (h *History[R]) WithLimit(n int) *History[R] {
	if n < 0 {
		n = 0
	}
	h.limit = n
	return h
}

// IsClean reports whether every recorded entry is applied.
func (h *History[R]) IsClean() bool {
	return h.cursor == len(h.entries)
}

// IsDirty reports whether any entry has been undone and not reapplied.
func (h *History[R]) IsDirty() bool {
	return !h.IsClean()
}

// CanUndo reports whether an entry precedes the cursor.
func (h *History[R]) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether an undone entry follows the cursor.
func (h *History[R]) CanRedo() bool {
	return h.cursor < len(h.entries)
}

// Len returns the number of recorded entries, applied or not.
func (h *History[R]) Len() int {
	return len(h.entries)
}

// Cursor returns the number of applied entries.
func (h *History[R]) Cursor() int {
	return h.cursor
}

// Push records cmd and applies it by calling its Redo. Any undone entries
// past the cursor are discarded first; they can never be redone once a new
// command lands. If cmd is Mergeable and shares its merge id with the entry
// preceding it, the two fuse into a single entry instead of appending.
//
// The command keeps its slot even when its Redo fails, so the caller can
// undo it explicitly or inspect it through the returned CommandError. A
// push always lands the history clean.
func (h *History[R]) Push(cmd Command[R], recv R) error {
	wasDirty := h.IsDirty()

	h.entries = h.entries[:h.cursor]

	if !h.tryMerge(cmd) {
		h.entries = append(h.entries, entry[R]{cmd: cmd, at: time.Now()})
	}

	// Only the incoming command runs; on a merge, its partner was already
	// applied when it was pushed.
	err := cmd.Redo(recv)

	h.cursor = len(h.entries)
	if h.limit > 0 && len(h.entries) > h.limit {
		excess := len(h.entries) - h.limit
		h.entries = h.entries[excess:]
		h.cursor -= excess
	}

	if wasDirty {
		h.fireClean()
	}

	if err != nil {
		return &CommandError[R]{Cmd: cmd, Err: err}
	}
	return nil
}

// tryMerge fuses cmd into the last entry when both agree on a merge id.
func (h *History[R]) tryMerge(cmd Command[R]) bool {
	id, ok := mergeID(cmd)
	if !ok || len(h.entries) == 0 {
		return false
	}
	last := &h.entries[len(h.entries)-1]
	lastID, ok := mergeID(last.cmd)
	if !ok || lastID != id {
		return false
	}
	last.cmd = &merged[R]{a: last.cmd, b: cmd}
	last.at = time.Now()
	return true
}

// Redo reapplies the entry at the cursor by calling its Redo. It is a no-op
// when nothing is undone. The cursor advances only if the command succeeds;
// on failure the entry stays undone and the error is returned wrapped in a
// CommandError.
func (h *History[R]) Redo(recv R) error {
	if !h.CanRedo() {
		return nil
	}

	cmd := h.entries[h.cursor].cmd
	if err := cmd.Redo(recv); err != nil {
		return &CommandError[R]{Cmd: cmd, Err: err}
	}
	h.cursor++

	if h.IsClean() {
		h.fireClean()
	}
	return nil
}

// Undo reverts the entry before the cursor by calling its Undo. It is a
// no-op when nothing is applied. The cursor steps back before the command
// runs and stays there even if the command fails, leaving the failed entry
// first in line for Redo. The dirty hook fires only when the command
// succeeds; on failure the error is returned wrapped in a CommandError and
// no callback runs, even though IsDirty now reports true.
func (h *History[R]) Undo(recv R) error {
	if !h.CanUndo() {
		return nil
	}
	wasClean := h.IsClean()

	h.cursor--
	cmd := h.entries[h.cursor].cmd
	if err := cmd.Undo(recv); err != nil {
		return &CommandError[R]{Cmd: cmd, Err: err}
	}

	if wasClean {
		h.fireDirty()
	}
	return nil
}

// Clear forgets every recorded entry. The receiver is untouched; only the
// ability to undo or redo past work is dropped. An empty history is clean,
// so clearing a dirty one fires the clean hook.
func (h *History[R]) Clear() {
	wasDirty := h.IsDirty()
	h.entries = nil
	h.cursor = 0
	if wasDirty {
		h.fireClean()
	}
}

func (h *History[R]) fireClean() {
	if h.onClean != nil {
		h.onClean()
	}
}

func (h *History[R]) fireDirty() {
	if h.onDirty != nil {
		h.onDirty()
	}
}
