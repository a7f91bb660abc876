// Package pad implements the text document and edit commands behind the
// rewindpad demo. The document is only ever mutated through commands, so
// every change that reaches it can be undone.
package pad

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned when a position does not exist in the document.
var ErrOutOfRange = errors.New("position out of range")

// Document is a line-oriented text buffer. Columns are rune offsets, not
// bytes. A document always has at least one line.
type Document struct {
	lines []string
}

// NewDocument creates an empty single-line document.
func NewDocument() *Document {
	return &Document{lines: []string{""}}
}

// FromString creates a document from s, splitting on newlines.
func FromString(s string) *Document {
	return &Document{lines: strings.Split(s, "\n")}
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the text of one line.
func (d *Document) Line(row int) (string, error) {
	if row < 0 || row >= len(d.lines) {
		return "", fmt.Errorf("row %d: %w", row, ErrOutOfRange)
	}
	return d.lines[row], nil
}

// LineLen returns the rune length of one line, or 0 for a missing row.
func (d *Document) LineLen(row int) int {
	if row < 0 || row >= len(d.lines) {
		return 0
	}
	return len([]rune(d.lines[row]))
}

// String returns the whole document with newline separators.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// insertText inserts text inside one line. The text must not contain
// newlines; line breaks go through splitLine.
func (d *Document) insertText(row, col int, text string) error {
	if strings.ContainsRune(text, '\n') {
		return fmt.Errorf("insert at %d:%d: text contains newline", row, col)
	}
	if row < 0 || row >= len(d.lines) {
		return fmt.Errorf("row %d: %w", row, ErrOutOfRange)
	}
	line := []rune(d.lines[row])
	if col < 0 || col > len(line) {
		return fmt.Errorf("col %d in row %d: %w", col, row, ErrOutOfRange)
	}
	d.lines[row] = string(line[:col]) + text + string(line[col:])
	return nil
}

// deleteText removes n runes from one line and returns them.
func (d *Document) deleteText(row, col, n int) (string, error) {
	if row < 0 || row >= len(d.lines) {
		return "", fmt.Errorf("row %d: %w", row, ErrOutOfRange)
	}
	line := []rune(d.lines[row])
	if col < 0 || n < 0 || col+n > len(line) {
		return "", fmt.Errorf("span %d+%d in row %d: %w", col, n, row, ErrOutOfRange)
	}
	removed := string(line[col : col+n])
	d.lines[row] = string(line[:col]) + string(line[col+n:])
	return removed, nil
}

// splitLine breaks a line in two at col.
func (d *Document) splitLine(row, col int) error {
	if row < 0 || row >= len(d.lines) {
		return fmt.Errorf("row %d: %w", row, ErrOutOfRange)
	}
	line := []rune(d.lines[row])
	if col < 0 || col > len(line) {
		return fmt.Errorf("col %d in row %d: %w", col, row, ErrOutOfRange)
	}
	rest := string(line[col:])
	d.lines[row] = string(line[:col])
	d.lines = append(d.lines[:row+1], append([]string{rest}, d.lines[row+1:]...)...)
	return nil
}

// joinLines appends the line below row onto row and returns the rune column
// of the junction.
func (d *Document) joinLines(row int) (int, error) {
	if row < 0 || row >= len(d.lines)-1 {
		return 0, fmt.Errorf("row %d: %w", row, ErrOutOfRange)
	}
	col := len([]rune(d.lines[row]))
	d.lines[row] += d.lines[row+1]
	d.lines = append(d.lines[:row+1], d.lines[row+2:]...)
	return col, nil
}
