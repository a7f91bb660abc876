package ui

import "github.com/gdamore/tcell/v2"

// Screen is the subset of tcell.Screen the editor needs. A real terminal
// screen satisfies it directly; tests substitute a canned implementation.
type Screen interface {
	Init() error
	Fini()
	Clear()
	Sync()
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	ShowCursor(x, y int)
	HideCursor()
	Show()
	Beep() error
	PollEvent() tcell.Event
	PostEventWait(ev tcell.Event)
}

var _ Screen = (tcell.Screen)(nil)
