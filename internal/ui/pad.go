package ui

import (
	"time"

	"github.com/dshills/rewind"
	"github.com/dshills/rewind/internal/pad"
)

// burstKind tags the edit kind a typing burst belongs to. Consecutive
// edits of the same kind inside the merge window share a burst id and
// collapse into one history entry.
type burstKind int

const (
	burstNone burstKind = iota
	burstInsert
	burstDelete
)

// Pad is one editable buffer with its own command history.
type Pad struct {
	name string
	path string // empty for scratch pads
	doc  *pad.Document
	hist *rewind.History[*pad.Document]
	id   rewind.HistoryID

	row, col int
	top      int // first visible row

	// atTip mirrors the history's clean flag via callbacks.
	atTip bool

	burstID   uint64
	burstKind burstKind
	lastEdit  time.Time
}

// burstFor returns the burst id for an edit of the given kind, starting
// a fresh burst when the kind changes or the merge window has elapsed.
// Returns 0 (no merging) when merging is disabled.
func (p *Pad) burstFor(kind burstKind, merge bool, window time.Duration) uint64 {
	if !merge {
		return 0
	}
	now := time.Now()
	if p.burstKind != kind || now.Sub(p.lastEdit) > window {
		p.burstID = pad.NewBurst()
		p.burstKind = kind
	}
	p.lastEdit = now
	return p.burstID
}

// breakBurst ends the current typing burst. Cursor motion, undo, and
// pad switches call this so the next edit starts a new history entry.
func (p *Pad) breakBurst() {
	p.burstKind = burstNone
}

// move shifts the cursor, clamping to the document. Horizontal motion
// wraps across line boundaries.
func (p *Pad) move(dRow, dCol int) {
	p.breakBurst()
	if dRow != 0 {
		p.row = clamp(p.row+dRow, 0, p.doc.LineCount()-1)
		p.col = min(p.col, p.doc.LineLen(p.row))
		return
	}
	c := p.col + dCol
	switch {
	case c < 0 && p.row > 0:
		p.row--
		p.col = p.doc.LineLen(p.row)
	case c > p.doc.LineLen(p.row) && p.row < p.doc.LineCount()-1:
		p.row++
		p.col = 0
	default:
		p.col = clamp(c, 0, p.doc.LineLen(p.row))
	}
}

func (p *Pad) startOfLine() {
	p.breakBurst()
	p.col = 0
}

func (p *Pad) endOfLine() {
	p.breakBurst()
	p.col = p.doc.LineLen(p.row)
}

// clampCursor pulls the cursor back inside the document after undo or
// redo reshapes it.
func (p *Pad) clampCursor() {
	p.row = clamp(p.row, 0, p.doc.LineCount()-1)
	p.col = clamp(p.col, 0, p.doc.LineLen(p.row))
}

// scrollTo adjusts the viewport so the cursor row is visible in a text
// area of the given height.
func (p *Pad) scrollTo(height int) {
	if height < 1 {
		height = 1
	}
	if p.row < p.top {
		p.top = p.row
	}
	if p.row >= p.top+height {
		p.top = p.row - height + 1
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
