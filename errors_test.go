package rewind

import (
	"errors"
	"testing"
)

func TestCommandErrorMessage(t *testing.T) {
	boom := errors.New("disk full")
	err := &CommandError[*[]int]{Cmd: &addCmd{v: 3}, Err: boom}

	if got, want := err.Error(), "command add 3: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, boom) {
		t.Error("errors.Is should reach the wrapped error")
	}
}

func TestCommandErrorDescribesByType(t *testing.T) {
	err := &CommandError[*[]int]{Cmd: &failCmd{}, Err: errors.New("x")}
	if got, want := err.Error(), "command *rewind.failCmd: x"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	if errors.Is(ErrNoActiveHistory, ErrHistoryNotFound) {
		t.Error("sentinels should not match each other")
	}
}
