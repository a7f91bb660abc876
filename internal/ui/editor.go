// Package ui implements the interactive rewindpad editor: a small
// multi-pad scratch editor that drives a rewind.Group of document
// histories from terminal input.
//
// Key bindings: Ctrl+Z undo, Ctrl+Y redo, Ctrl+S save, Tab/Backtab
// switch pads, Ctrl+N new pad, Ctrl+W close pad, Ctrl+Q or Ctrl+C quit.
package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rewind"
	"github.com/dshills/rewind/internal/applog"
	"github.com/dshills/rewind/internal/config"
	"github.com/dshills/rewind/internal/pad"
)

// configEvent delivers a reloaded configuration to the event loop.
type configEvent struct {
	when time.Time
	cfg  config.Config
}

func (e *configEvent) When() time.Time { return e.when }

// Editor owns the pads and routes input to the active one. All state is
// touched only from the Run loop; other goroutines talk to the editor by
// posting events through Interrupt and ReloadConfig.
type Editor struct {
	screen Screen
	cfg    config.Config
	log    *applog.Logger
	group  *rewind.Group[*pad.Document]

	pads    []*Pad
	current int
	scratch int // counter for scratch pad names

	// allTip mirrors the group's aggregate clean flag via callbacks.
	allTip  bool
	message string
	quit    bool
}

// New builds an editor over the given screen. Each file becomes a pad;
// missing files open as empty pads that are created on save. With no
// files a single scratch pad is opened.
func New(scr Screen, cfg config.Config, log *applog.Logger, files []string) (*Editor, error) {
	e := &Editor{
		screen: scr,
		cfg:    cfg,
		log:    log.WithComponent("editor"),
		allTip: true,
	}
	e.group = rewind.NewGroup[*pad.Document]().
		OnClean(func() {
			e.allTip = true
			e.log.Debug("all pads back at tip")
		}).
		OnDirty(func() {
			e.allTip = false
			e.log.Debug("a pad rewound from tip")
		})

	for _, path := range files {
		text, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		e.addPad(filepath.Base(path), path, string(text))
	}
	if len(e.pads) == 0 {
		e.scratch++
		e.addPad("scratch-1", "", "")
	}
	e.setActive(0)
	e.message = ""
	return e, nil
}

func (e *Editor) addPad(name, path, text string) *Pad {
	p := &Pad{
		name:  name,
		path:  path,
		doc:   pad.FromString(text),
		atTip: true,
	}
	p.hist = rewind.NewHistory[*pad.Document]().
		WithLimit(e.cfg.HistoryLimit).
		OnClean(func() { p.atTip = true }).
		OnDirty(func() { p.atTip = false })
	p.id = e.group.Add(p.hist)
	e.pads = append(e.pads, p)
	e.log.Info("opened pad %s (%d lines)", name, p.doc.LineCount())
	return p
}

func (e *Editor) active() *Pad { return e.pads[e.current] }

// Run drives the event loop until quit. It owns the screen lifecycle.
func (e *Editor) Run() error {
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer e.screen.Fini()

	e.log.Info("editor started: pads=%d merge=%v window=%s",
		len(e.pads), e.cfg.MergeTyping, e.cfg.MergeWindow())
	for !e.quit {
		e.draw()
		e.handleEvent(e.screen.PollEvent())
	}
	return nil
}

// Interrupt asks the running editor to quit. Safe from any goroutine.
func (e *Editor) Interrupt() {
	e.screen.PostEventWait(tcell.NewEventInterrupt(nil))
}

// ReloadConfig hands a new configuration to the event loop. Safe from
// any goroutine; config.Watch calls it from the watcher.
func (e *Editor) ReloadConfig(cfg config.Config) {
	e.screen.PostEventWait(&configEvent{when: time.Now(), cfg: cfg})
}

func (e *Editor) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case nil:
		// The screen was finalized under us.
		e.quit = true
	case *tcell.EventKey:
		e.handleKey(ev)
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventInterrupt:
		e.quit = true
	case *configEvent:
		e.applyConfig(ev.cfg)
	}
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		e.quit = true
	case tcell.KeyCtrlZ:
		e.undo()
	case tcell.KeyCtrlY:
		e.redo()
	case tcell.KeyCtrlS:
		e.save()
	case tcell.KeyCtrlN:
		e.newScratch()
	case tcell.KeyCtrlW:
		e.closePad()
	case tcell.KeyCtrlL:
		e.screen.Sync()
	case tcell.KeyTab:
		e.cyclePad(1)
	case tcell.KeyBacktab:
		e.cyclePad(-1)
	case tcell.KeyEnter:
		e.breakLine()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.deleteBack()
	case tcell.KeyDelete:
		e.deleteForward()
	case tcell.KeyUp:
		e.active().move(-1, 0)
	case tcell.KeyDown:
		e.active().move(1, 0)
	case tcell.KeyLeft:
		e.active().move(0, -1)
	case tcell.KeyRight:
		e.active().move(0, 1)
	case tcell.KeyHome:
		e.active().startOfLine()
	case tcell.KeyEnd:
		e.active().endOfLine()
	case tcell.KeyPgUp:
		e.active().move(-e.pageRows(), 0)
	case tcell.KeyPgDn:
		e.active().move(e.pageRows(), 0)
	case tcell.KeyRune:
		e.insertRune(ev.Rune())
	}
}

func (e *Editor) pageRows() int {
	_, h := e.screen.Size()
	return max(1, h-2)
}

// push runs a command on the active pad through the group. Reports
// whether it succeeded; the surrounding handler only moves the cursor
// on success.
func (e *Editor) push(cmd rewind.Command[*pad.Document]) bool {
	p := e.active()
	if err := e.group.Push(cmd, p.doc); err != nil {
		e.fail("edit", err)
		return false
	}
	if info, ok := p.hist.PeekUndo(); ok {
		e.message = info.Description
	}
	return true
}

func (e *Editor) fail(op string, err error) {
	var cerr *rewind.CommandError[*pad.Document]
	if errors.As(err, &cerr) {
		e.message = fmt.Sprintf("%s failed: %v", op, cerr.Err)
	} else {
		e.message = fmt.Sprintf("%s failed: %v", op, err)
	}
	e.log.Warn("%s failed: %v", op, err)
	_ = e.screen.Beep()
}

func (e *Editor) insertRune(r rune) {
	p := e.active()
	cmd := &pad.InsertText{
		Row:   p.row,
		Col:   p.col,
		Text:  string(r),
		Burst: p.burstFor(burstInsert, e.cfg.MergeTyping, e.cfg.MergeWindow()),
	}
	if e.push(cmd) {
		p.col++
	}
}

func (e *Editor) breakLine() {
	p := e.active()
	p.breakBurst()
	if e.push(&pad.SplitLine{Row: p.row, Col: p.col}) {
		p.row++
		p.col = 0
	}
}

func (e *Editor) deleteBack() {
	p := e.active()
	switch {
	case p.col > 0:
		cmd := &pad.DeleteText{
			Row:   p.row,
			Col:   p.col - 1,
			Count: 1,
			Burst: p.burstFor(burstDelete, e.cfg.MergeTyping, e.cfg.MergeWindow()),
		}
		if e.push(cmd) {
			p.col--
		}
	case p.row > 0:
		p.breakBurst()
		row := p.row - 1
		end := p.doc.LineLen(row)
		if e.push(&pad.JoinLines{Row: row}) {
			p.row = row
			p.col = end
		}
	}
}

func (e *Editor) deleteForward() {
	p := e.active()
	switch {
	case p.col < p.doc.LineLen(p.row):
		e.push(&pad.DeleteText{
			Row:   p.row,
			Col:   p.col,
			Count: 1,
			Burst: p.burstFor(burstDelete, e.cfg.MergeTyping, e.cfg.MergeWindow()),
		})
	case p.row < p.doc.LineCount()-1:
		p.breakBurst()
		e.push(&pad.JoinLines{Row: p.row})
	}
}

func (e *Editor) undo() {
	p := e.active()
	p.breakBurst()
	if !p.hist.CanUndo() {
		e.message = "nothing to undo"
		return
	}
	if err := e.group.Undo(p.doc); err != nil {
		e.fail("undo", err)
		p.clampCursor()
		return
	}
	p.clampCursor()
	if info, ok := p.hist.PeekRedo(); ok {
		e.message = "undid " + info.Description
	}
}

func (e *Editor) redo() {
	p := e.active()
	p.breakBurst()
	if !p.hist.CanRedo() {
		e.message = "nothing to redo"
		return
	}
	if err := e.group.Redo(p.doc); err != nil {
		e.fail("redo", err)
		p.clampCursor()
		return
	}
	p.clampCursor()
	if info, ok := p.hist.PeekUndo(); ok {
		e.message = "redid " + info.Description
	}
}

func (e *Editor) save() {
	p := e.active()
	if p.path == "" {
		e.message = p.name + " has no file; open rewindpad with a path to save"
		return
	}
	if err := os.WriteFile(p.path, []byte(p.doc.String()), 0o644); err != nil {
		e.message = "save failed: " + err.Error()
		e.log.Error("save %s: %v", p.path, err)
		return
	}
	e.message = "wrote " + p.path
	e.log.Info("saved %s (%d lines)", p.path, p.doc.LineCount())
}

func (e *Editor) newScratch() {
	e.scratch++
	e.addPad(fmt.Sprintf("scratch-%d", e.scratch), "", "")
	e.setActive(len(e.pads) - 1)
}

// closePad removes the active pad from the group. Its history stays
// valid but unreachable; closing the last pad quits. Applied edits are
// not rolled back.
func (e *Editor) closePad() {
	p := e.active()
	if _, err := e.group.Remove(p.id); err != nil {
		e.fail("close", err)
		return
	}
	e.log.Info("closed pad %s", p.name)
	e.pads = append(e.pads[:e.current], e.pads[e.current+1:]...)
	if len(e.pads) == 0 {
		e.quit = true
		return
	}
	e.setActive(min(e.current, len(e.pads)-1))
}

func (e *Editor) cyclePad(delta int) {
	if len(e.pads) < 2 {
		return
	}
	e.setActive((e.current + delta + len(e.pads)) % len(e.pads))
}

func (e *Editor) setActive(i int) {
	// The old index may be stale after a close; breaking a burst on the
	// wrong pad is harmless, indexing past the slice is not.
	if e.current < len(e.pads) {
		e.pads[e.current].breakBurst()
	}
	e.current = i
	p := e.pads[i]
	if err := e.group.SetActive(p.id); err != nil {
		e.fail("switch", err)
		return
	}
	e.message = "pad " + p.name
}

func (e *Editor) applyConfig(cfg config.Config) {
	e.cfg = cfg
	e.log.SetLevel(applog.ParseLevel(cfg.LogLevel))
	for _, p := range e.pads {
		p.hist.WithLimit(cfg.HistoryLimit)
		p.breakBurst()
	}
	e.message = "config reloaded"
	e.log.Info("config applied: limit=%d merge=%v window=%s",
		cfg.HistoryLimit, cfg.MergeTyping, cfg.MergeWindow())
}
