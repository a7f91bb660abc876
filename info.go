package rewind

import "time"

// EntryInfo describes one recorded entry for display, such as an undo menu
// or a history palette.
type EntryInfo struct {
	// Description is the entry's self-description, or its Go type when the
	// command does not implement Describer. Fused entries join both halves.
	Description string

	// At is when the entry last landed in the history. Merging into an
	// entry refreshes it.
	At time.Time
}

func (e entry[R]) info() EntryInfo {
	return EntryInfo{Description: describe(e.cmd), At: e.at}
}

// UndoInfo lists the applied entries, oldest first. Walking Undo repeatedly
// reverts them from the end of this list backward.
func (h *History[R]) UndoInfo() []EntryInfo {
	infos := make([]EntryInfo, h.cursor)
	for i, e := range h.entries[:h.cursor] {
		infos[i] = e.info()
	}
	return infos
}

// RedoInfo lists the undone entries in replay order. Walking Redo repeatedly
// reapplies them from the front of this list forward.
func (h *History[R]) RedoInfo() []EntryInfo {
	infos := make([]EntryInfo, len(h.entries)-h.cursor)
	for i, e := range h.entries[h.cursor:] {
		infos[i] = e.info()
	}
	return infos
}

// PeekUndo describes the entry the next Undo would revert.
func (h *History[R]) PeekUndo() (EntryInfo, bool) {
	if !h.CanUndo() {
		return EntryInfo{}, false
	}
	return h.entries[h.cursor-1].info(), true
}

// PeekRedo describes the entry the next Redo would reapply.
func (h *History[R]) PeekRedo() (EntryInfo, bool) {
	if !h.CanRedo() {
		return EntryInfo{}, false
	}
	return h.entries[h.cursor].info(), true
}
