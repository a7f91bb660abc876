package pad

import (
	"fmt"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dshills/rewind"
)

var burstCounter atomic.Uint64

// NewBurst returns a fresh nonzero burst id. Commands tagged with the same
// burst id fuse into a single undo step; the editor starts a new burst when
// the cursor jumps or the user pauses.
func NewBurst() uint64 {
	return burstCounter.Add(1)
}

// InsertText inserts text inside one line.
type InsertText struct {
	Row, Col int
	Text     string
	// Burst tags a typing run; zero never merges.
	Burst uint64
}

var (
	_ rewind.Command[*Document] = (*InsertText)(nil)
	_ rewind.Mergeable          = (*InsertText)(nil)
	_ rewind.Describer          = (*InsertText)(nil)
)

// Redo inserts the text.
func (c *InsertText) Redo(d *Document) error {
	return d.insertText(c.Row, c.Col, c.Text)
}

// Undo removes the inserted runes.
func (c *InsertText) Undo(d *Document) error {
	_, err := d.deleteText(c.Row, c.Col, utf8.RuneCountInString(c.Text))
	return err
}

// MergeID returns the burst id when set.
func (c *InsertText) MergeID() (uint64, bool) {
	return c.Burst, c.Burst != 0
}

// Description summarizes the insertion.
func (c *InsertText) Description() string {
	return fmt.Sprintf("insert %q", truncate(c.Text, 20))
}

// DeleteText removes a rune span from one line, remembering it for undo.
type DeleteText struct {
	Row, Col, Count int
	// Burst tags a deletion run; zero never merges.
	Burst   uint64
	deleted string
}

var (
	_ rewind.Command[*Document] = (*DeleteText)(nil)
	_ rewind.Mergeable          = (*DeleteText)(nil)
	_ rewind.Describer          = (*DeleteText)(nil)
)

// Redo captures the span, then removes it.
func (c *DeleteText) Redo(d *Document) error {
	removed, err := d.deleteText(c.Row, c.Col, c.Count)
	if err != nil {
		return err
	}
	c.deleted = removed
	return nil
}

// Undo puts the captured span back.
func (c *DeleteText) Undo(d *Document) error {
	return d.insertText(c.Row, c.Col, c.deleted)
}

// MergeID returns the burst id when set.
func (c *DeleteText) MergeID() (uint64, bool) {
	return c.Burst, c.Burst != 0
}

// Description summarizes the deletion.
func (c *DeleteText) Description() string {
	if c.deleted != "" {
		return fmt.Sprintf("delete %q", truncate(c.deleted, 20))
	}
	return fmt.Sprintf("delete %d runes", c.Count)
}

// SplitLine breaks a line in two, the editing half of pressing enter.
type SplitLine struct {
	Row, Col int
}

var (
	_ rewind.Command[*Document] = (*SplitLine)(nil)
	_ rewind.Describer          = (*SplitLine)(nil)
)

// Redo splits the line.
func (c *SplitLine) Redo(d *Document) error {
	return d.splitLine(c.Row, c.Col)
}

// Undo rejoins the halves.
func (c *SplitLine) Undo(d *Document) error {
	_, err := d.joinLines(c.Row)
	return err
}

// Description names the operation.
func (c *SplitLine) Description() string {
	return "split line"
}

// JoinLines merges a line with the one below it.
type JoinLines struct {
	Row int
	col int // junction, captured on redo
}

var (
	_ rewind.Command[*Document] = (*JoinLines)(nil)
	_ rewind.Describer          = (*JoinLines)(nil)
)

// Redo joins the lines, capturing where they met.
func (c *JoinLines) Redo(d *Document) error {
	col, err := d.joinLines(c.Row)
	if err != nil {
		return err
	}
	c.col = col
	return nil
}

// Undo splits at the captured junction.
func (c *JoinLines) Undo(d *Document) error {
	return d.splitLine(c.Row, c.col)
}

// Description names the operation.
func (c *JoinLines) Description() string {
	return "join lines"
}

// truncate shortens s to max runes for display.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
