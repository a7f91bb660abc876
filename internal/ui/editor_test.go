package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rewind/internal/applog"
	"github.com/dshills/rewind/internal/config"
	"github.com/dshills/rewind/internal/pad"
)

// nullScreen records calls without a terminal.
type nullScreen struct {
	width, height int
	events        chan tcell.Event
	beeps         int
	synced        int
	finished      bool
}

func newNullScreen() *nullScreen {
	return &nullScreen{width: 80, height: 24, events: make(chan tcell.Event, 16)}
}

func (s *nullScreen) Init() error      { return nil }
func (s *nullScreen) Fini()            { s.finished = true }
func (s *nullScreen) Clear()           {}
func (s *nullScreen) Sync()            { s.synced++ }
func (s *nullScreen) Size() (int, int) { return s.width, s.height }
func (s *nullScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
}
func (s *nullScreen) ShowCursor(x, y int)          {}
func (s *nullScreen) HideCursor()                  {}
func (s *nullScreen) Show()                        {}
func (s *nullScreen) Beep() error                  { s.beeps++; return nil }
func (s *nullScreen) PollEvent() tcell.Event       { return <-s.events }
func (s *nullScreen) PostEventWait(ev tcell.Event) { s.events <- ev }

var _ Screen = (*nullScreen)(nil)

func newTestEditor(t *testing.T, cfg config.Config, files ...string) (*Editor, *nullScreen) {
	t.Helper()
	scr := newNullScreen()
	ed, err := New(scr, cfg, applog.Null, files)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ed, scr
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeString(e *Editor, s string) {
	for _, r := range s {
		e.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func text(e *Editor) string {
	return e.active().doc.String()
}

func TestTypingMergesIntoOneEntry(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())

	typeString(ed, "abc")
	if got := text(ed); got != "abc" {
		t.Fatalf("text = %q, want %q", got, "abc")
	}
	if got := ed.active().hist.Len(); got != 1 {
		t.Fatalf("history entries = %d, want 1", got)
	}

	ed.handleEvent(key(tcell.KeyCtrlZ))
	if got := text(ed); got != "" {
		t.Errorf("after undo text = %q, want empty", got)
	}
	ed.handleEvent(key(tcell.KeyCtrlY))
	if got := text(ed); got != "abc" {
		t.Errorf("after redo text = %q, want %q", got, "abc")
	}
}

func TestCursorMotionBreaksBurst(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())

	typeString(ed, "ab")
	ed.handleEvent(key(tcell.KeyLeft))
	typeString(ed, "c")

	if got := text(ed); got != "acb" {
		t.Fatalf("text = %q, want %q", got, "acb")
	}
	if got := ed.active().hist.Len(); got != 2 {
		t.Fatalf("history entries = %d, want 2", got)
	}
	ed.handleEvent(key(tcell.KeyCtrlZ))
	if got := text(ed); got != "ab" {
		t.Errorf("after undo text = %q, want %q", got, "ab")
	}
}

func TestBurstExpiresAfterWindow(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())

	typeString(ed, "a")
	ed.active().lastEdit = time.Now().Add(-time.Second)
	typeString(ed, "b")

	if got := ed.active().hist.Len(); got != 2 {
		t.Errorf("history entries = %d, want 2", got)
	}
}

func TestMergeTypingDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.MergeTyping = false
	ed, _ := newTestEditor(t, cfg)

	typeString(ed, "ab")
	if got := ed.active().hist.Len(); got != 2 {
		t.Errorf("history entries = %d, want 2", got)
	}
}

func TestEnterBackspaceAndJoin(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())

	typeString(ed, "hi")
	ed.handleEvent(key(tcell.KeyEnter))
	typeString(ed, "x")
	if got := text(ed); got != "hi\nx" {
		t.Fatalf("text = %q, want %q", got, "hi\nx")
	}

	ed.handleEvent(key(tcell.KeyBackspace2))
	if got := text(ed); got != "hi\n" {
		t.Fatalf("after backspace text = %q, want %q", got, "hi\n")
	}

	// Backspace at column 0 joins with the line above.
	ed.handleEvent(key(tcell.KeyBackspace2))
	if got := text(ed); got != "hi" {
		t.Fatalf("after join text = %q, want %q", got, "hi")
	}
	p := ed.active()
	if p.row != 0 || p.col != 2 {
		t.Errorf("cursor = (%d, %d), want (0, 2)", p.row, p.col)
	}
}

func TestUndoRedoTracksTipState(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())

	typeString(ed, "hello")
	ed.handleEvent(key(tcell.KeyEnter))
	typeString(ed, "world")

	p := ed.active()
	if !p.atTip || !ed.allTip {
		t.Fatalf("atTip = %v, allTip = %v, want both true", p.atTip, ed.allTip)
	}

	for i := 0; i < 3; i++ {
		ed.handleEvent(key(tcell.KeyCtrlZ))
	}
	if got := text(ed); got != "" {
		t.Fatalf("after undos text = %q, want empty", got)
	}
	if p.atTip || ed.allTip {
		t.Errorf("atTip = %v, allTip = %v, want both false", p.atTip, ed.allTip)
	}

	for i := 0; i < 3; i++ {
		ed.handleEvent(key(tcell.KeyCtrlY))
	}
	if got := text(ed); got != "hello\nworld" {
		t.Fatalf("after redos text = %q, want %q", got, "hello\nworld")
	}
	if !p.atTip || !ed.allTip {
		t.Errorf("atTip = %v, allTip = %v, want both true", p.atTip, ed.allTip)
	}
}

func TestPadSwitchingRoutesInput(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())

	ed.handleEvent(key(tcell.KeyCtrlN))
	if got := len(ed.pads); got != 2 {
		t.Fatalf("pads = %d, want 2", got)
	}
	if ed.current != 1 {
		t.Fatalf("current = %d, want 1", ed.current)
	}
	typeString(ed, "b")

	ed.handleEvent(key(tcell.KeyTab))
	if ed.current != 0 {
		t.Fatalf("after Tab current = %d, want 0", ed.current)
	}
	typeString(ed, "a")

	if got := ed.pads[0].doc.String(); got != "a" {
		t.Errorf("pad 0 text = %q, want %q", got, "a")
	}
	if got := ed.pads[1].doc.String(); got != "b" {
		t.Errorf("pad 1 text = %q, want %q", got, "b")
	}

	id, ok := ed.group.Active()
	if !ok || id != ed.pads[0].id {
		t.Errorf("active id = %v, %v, want %v, true", id, ok, ed.pads[0].id)
	}
}

func TestUndoOnlyTouchesActivePad(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())

	typeString(ed, "first")
	ed.handleEvent(key(tcell.KeyCtrlN))
	typeString(ed, "second")

	ed.handleEvent(key(tcell.KeyCtrlZ))
	if got := ed.pads[0].doc.String(); got != "first" {
		t.Errorf("pad 0 text = %q, want %q", got, "first")
	}
	if got := ed.pads[1].doc.String(); got != "" {
		t.Errorf("pad 1 text = %q, want empty", got)
	}
}

func TestCloseLastPadQuits(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())

	ed.handleEvent(key(tcell.KeyCtrlW))
	if !ed.quit {
		t.Error("closing the last pad should quit")
	}
	if got := ed.group.Len(); got != 0 {
		t.Errorf("group members = %d, want 0", got)
	}
}

func TestClosePadKeepsRemaining(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())

	ed.handleEvent(key(tcell.KeyCtrlN))
	ed.handleEvent(key(tcell.KeyCtrlW))

	if ed.quit {
		t.Fatal("should not quit with a pad remaining")
	}
	if got := len(ed.pads); got != 1 {
		t.Fatalf("pads = %d, want 1", got)
	}
	id, ok := ed.group.Active()
	if !ok || id != ed.pads[0].id {
		t.Errorf("active id = %v, %v, want %v, true", id, ok, ed.pads[0].id)
	}
}

func TestConfigReloadAppliesKnobs(t *testing.T) {
	ed, scr := newTestEditor(t, config.Default())

	next := config.Default()
	next.HistoryLimit = 1
	next.MergeTyping = false
	ed.ReloadConfig(next)
	ed.handleEvent(<-scr.events)

	if ed.cfg.HistoryLimit != 1 || ed.cfg.MergeTyping {
		t.Fatalf("cfg not applied: %+v", ed.cfg)
	}
	if got := ed.message; got != "config reloaded" {
		t.Errorf("message = %q, want %q", got, "config reloaded")
	}

	// Limit 1 with merging off keeps only the newest entry.
	typeString(ed, "ab")
	if got := ed.active().hist.Len(); got != 1 {
		t.Fatalf("history entries = %d, want 1", got)
	}
	ed.handleEvent(key(tcell.KeyCtrlZ))
	if got := text(ed); got != "a" {
		t.Errorf("after undo text = %q, want %q (evicted edit stays applied)", got, "a")
	}
}

func TestExhaustedUndoRedoSetsMessage(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())

	ed.handleEvent(key(tcell.KeyCtrlZ))
	if got := ed.message; got != "nothing to undo" {
		t.Errorf("message = %q, want %q", got, "nothing to undo")
	}
	ed.handleEvent(key(tcell.KeyCtrlY))
	if got := ed.message; got != "nothing to redo" {
		t.Errorf("message = %q, want %q", got, "nothing to redo")
	}
}

func TestEditMessagesDescribeCommands(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())

	typeString(ed, "h")
	if want := `insert "h"`; ed.message != want {
		t.Errorf("message = %q, want %q", ed.message, want)
	}
	ed.handleEvent(key(tcell.KeyCtrlZ))
	if !strings.HasPrefix(ed.message, "undid ") {
		t.Errorf("message = %q, want undid prefix", ed.message)
	}
	ed.handleEvent(key(tcell.KeyCtrlY))
	if !strings.HasPrefix(ed.message, "redid ") {
		t.Errorf("message = %q, want redid prefix", ed.message)
	}
}

func TestSaveWritesActivePad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	ed, _ := newTestEditor(t, config.Default(), path)

	typeString(ed, "hey")
	ed.handleEvent(key(tcell.KeyCtrlS))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got := string(data); got != "hey" {
		t.Errorf("file content = %q, want %q", got, "hey")
	}
}

func TestSaveScratchPadRefuses(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())

	ed.handleEvent(key(tcell.KeyCtrlS))
	if !strings.Contains(ed.message, "no file") {
		t.Errorf("message = %q, want a no-file notice", ed.message)
	}
}

func TestOpenExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.txt")
	if err := os.WriteFile(path, []byte("one\ntwo"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	ed, _ := newTestEditor(t, config.Default(), path)

	if got := text(ed); got != "one\ntwo" {
		t.Errorf("text = %q, want %q", got, "one\ntwo")
	}
	if got := ed.active().name; got != "seed.txt" {
		t.Errorf("pad name = %q, want %q", got, "seed.txt")
	}
}

func TestBadEditBeepsAndReports(t *testing.T) {
	ed, scr := newTestEditor(t, config.Default())

	// Bypass the key handlers to force a failing command through the
	// same push path they use.
	ok := ed.push(&pad.DeleteText{Row: 99, Col: 0, Count: 1})
	if ok {
		t.Fatal("push of failing command reported success")
	}
	if scr.beeps != 1 {
		t.Errorf("beeps = %d, want 1", scr.beeps)
	}
	if !strings.HasPrefix(ed.message, "edit failed:") {
		t.Errorf("message = %q, want edit failed prefix", ed.message)
	}
	// The failed command stays undoable.
	if !ed.active().hist.CanUndo() {
		t.Error("failed command should keep its history slot")
	}
}

func TestInterruptStopsRun(t *testing.T) {
	ed, scr := newTestEditor(t, config.Default())

	done := make(chan error, 1)
	go func() { done <- ed.Run() }()

	ed.Interrupt()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after interrupt")
	}
	if !scr.finished {
		t.Error("screen was not finalized")
	}
}

func TestMovementClampsToDocument(t *testing.T) {
	ed, _ := newTestEditor(t, config.Default())
	typeString(ed, "ab")
	ed.handleEvent(key(tcell.KeyEnter))
	typeString(ed, "cdef")

	p := ed.active()
	ed.handleEvent(key(tcell.KeyUp))
	if p.row != 0 || p.col != 2 {
		t.Errorf("after up cursor = (%d, %d), want (0, 2)", p.row, p.col)
	}
	// Right at end of line wraps to the next line.
	ed.handleEvent(key(tcell.KeyRight))
	if p.row != 1 || p.col != 0 {
		t.Errorf("after wrap cursor = (%d, %d), want (1, 0)", p.row, p.col)
	}
	ed.handleEvent(key(tcell.KeyEnd))
	if p.col != 4 {
		t.Errorf("after end col = %d, want 4", p.col)
	}
	ed.handleEvent(key(tcell.KeyUp))
	if p.row != 0 || p.col != 2 {
		t.Errorf("up onto shorter line cursor = (%d, %d), want (0, 2)", p.row, p.col)
	}
}
