package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

var (
	styleText    = tcell.StyleDefault
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleMessage = tcell.StyleDefault.Dim(true)
)

const keyHelp = "C-z undo  C-y redo  C-s save  Tab next pad  C-n new  C-w close  C-q quit"

func (e *Editor) draw() {
	scr := e.screen
	scr.Clear()
	w, h := scr.Size()
	if w <= 0 || h < 2 {
		scr.Show()
		return
	}

	p := e.active()
	textH := h - 2
	p.scrollTo(textH)
	for y := 0; y < textH; y++ {
		row := p.top + y
		if row >= p.doc.LineCount() {
			break
		}
		line, _ := p.doc.Line(row)
		x := 0
		for _, r := range line {
			if x >= w {
				break
			}
			scr.SetContent(x, y, r, nil, styleText)
			x++
		}
	}

	e.drawStatus(w, h)

	if p.col < w && p.row-p.top < textH {
		scr.ShowCursor(p.col, p.row-p.top)
	} else {
		scr.HideCursor()
	}
	scr.Show()
}

func (e *Editor) drawStatus(w, h int) {
	p := e.active()
	mark := "tip"
	if !p.atTip {
		mark = fmt.Sprintf("-%d", p.hist.Len()-p.hist.Cursor())
	}
	group := "all tip"
	if !e.allTip {
		group = "rewound"
	}
	status := fmt.Sprintf(" %s [%s]  pad %d/%d  %d:%d  hist %d/%d  group: %s",
		p.name, mark, e.current+1, len(e.pads), p.row+1, p.col+1,
		p.hist.Cursor(), p.hist.Len(), group)
	drawLine(e.screen, 0, h-2, w, status, styleStatus)

	msg := e.message
	if msg == "" {
		msg = keyHelp
	}
	drawLine(e.screen, 0, h-1, w, msg, styleMessage)
}

// drawLine writes text at (x, y) and pads the rest of the width with
// spaces in the same style.
func drawLine(scr Screen, x, y, w int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= w {
			return
		}
		scr.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		scr.SetContent(x, y, ' ', nil, style)
	}
}
