package pad

import (
	"errors"
	"testing"
)

func TestFromStringRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lines int
	}{
		{"empty", "", 1},
		{"one line", "hello", 1},
		{"two lines", "hello\nworld", 2},
		{"trailing newline", "hello\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := FromString(tt.text)
			if got := doc.LineCount(); got != tt.lines {
				t.Errorf("LineCount() = %d, want %d", got, tt.lines)
			}
			if got := doc.String(); got != tt.text {
				t.Errorf("String() = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestLineAccess(t *testing.T) {
	doc := FromString("hello\nwörld")

	line, err := doc.Line(1)
	if err != nil {
		t.Fatalf("Line(1) error = %v", err)
	}
	if line != "wörld" {
		t.Errorf("Line(1) = %q, want wörld", line)
	}
	if got := doc.LineLen(1); got != 5 {
		t.Errorf("LineLen(1) = %d, want 5 runes", got)
	}

	if _, err := doc.Line(2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Line(2) error = %v, want ErrOutOfRange", err)
	}
	if got := doc.LineLen(9); got != 0 {
		t.Errorf("LineLen(9) = %d, want 0", got)
	}
}

func TestInsertTextBounds(t *testing.T) {
	doc := FromString("ab")

	if err := doc.insertText(0, 1, "x"); err != nil {
		t.Fatalf("insertText error = %v", err)
	}
	if got := doc.String(); got != "axb" {
		t.Errorf("String() = %q, want axb", got)
	}

	if err := doc.insertText(1, 0, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("insert bad row error = %v, want ErrOutOfRange", err)
	}
	if err := doc.insertText(0, 9, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("insert bad col error = %v, want ErrOutOfRange", err)
	}
	if err := doc.insertText(0, 0, "a\nb"); err == nil {
		t.Error("insert with newline should fail")
	}
}

func TestDeleteTextSpan(t *testing.T) {
	doc := FromString("héllo")

	removed, err := doc.deleteText(0, 1, 2)
	if err != nil {
		t.Fatalf("deleteText error = %v", err)
	}
	if removed != "él" {
		t.Errorf("removed = %q, want él", removed)
	}
	if got := doc.String(); got != "hlo" {
		t.Errorf("String() = %q, want hlo", got)
	}

	if _, err := doc.deleteText(0, 2, 5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("overlong span error = %v, want ErrOutOfRange", err)
	}
}

func TestSplitAndJoin(t *testing.T) {
	doc := FromString("hello world")

	if err := doc.splitLine(0, 5); err != nil {
		t.Fatalf("splitLine error = %v", err)
	}
	if got := doc.String(); got != "hello\n world" {
		t.Errorf("String() = %q, want split at col 5", got)
	}

	col, err := doc.joinLines(0)
	if err != nil {
		t.Fatalf("joinLines error = %v", err)
	}
	if col != 5 {
		t.Errorf("junction col = %d, want 5", col)
	}
	if got := doc.String(); got != "hello world" {
		t.Errorf("String() = %q, want original", got)
	}

	if _, err := doc.joinLines(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("join on last row error = %v, want ErrOutOfRange", err)
	}
}
