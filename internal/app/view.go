package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/mode"
)

var (
	statusStyle = tcell.StyleDefault.Reverse(true)
	modeStyles  = map[mode.Mode]tcell.Style{
		mode.Normal: tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite).Bold(true),
		mode.Insert: tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack).Bold(true),
		mode.Visual: tcell.StyleDefault.Background(tcell.ColorPurple).Foreground(tcell.ColorWhite).Bold(true),
	}
	errorStyle  = tcell.StyleDefault.Reverse(true).Foreground(tcell.ColorRed)
	titleStyle  = tcell.StyleDefault.Bold(true)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

var cursorStyles = map[mode.CursorStyle]tcell.CursorStyle{
	mode.CursorBlock:     tcell.CursorStyleSteadyBlock,
	mode.CursorBar:       tcell.CursorStyleSteadyBar,
	mode.CursorUnderline: tcell.CursorStyleSteadyUnderline,
}

// render draws the panel, when visible, and the status line.
func (a *Application) render() {
	if a.screen == nil {
		return
	}
	a.screen.Clear()
	w, h := a.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	if a.panel.Visible(PanelFlag) {
		a.drawPanel(w, h-1)
	}
	a.drawStatus(w, h-1)

	a.screen.SetCursorStyle(cursorStyles[a.dispatcher.Mode().CursorStyle()])
	a.screen.Show()
}

// drawStatus draws the mode, the pending chord and the last load problem
// on row y.
func (a *Application) drawStatus(w, y int) {
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, y, ' ', nil, statusStyle)
	}

	state := a.dispatcher.State()
	x := drawText(a.screen, 0, y, w, modeStyles[state.Mode], " "+state.Mode.DisplayName()+" ")
	if !state.Buffer.IsEmpty() {
		x = drawText(a.screen, x+1, y, w, statusStyle, state.Buffer.String())
	}
	a.screen.ShowCursor(x, y)

	if a.loadErr != nil {
		msg := firstLine(a.loadErr.Error())
		start := max(x+2, w-len([]rune(msg))-1)
		drawText(a.screen, start, y, w, errorStyle, msg)
	}
}

// drawPanel draws a bordered listing of every binding in rows [0, h).
func (a *Application) drawPanel(w, h int) {
	if w < 4 || h < 3 {
		return
	}
	lines := a.Listing()

	for x := 1; x < w-1; x++ {
		a.screen.SetContent(x, 0, tcell.RuneHLine, nil, borderStyle)
		a.screen.SetContent(x, h-1, tcell.RuneHLine, nil, borderStyle)
	}
	for y := 1; y < h-1; y++ {
		a.screen.SetContent(0, y, tcell.RuneVLine, nil, borderStyle)
		a.screen.SetContent(w-1, y, tcell.RuneVLine, nil, borderStyle)
	}
	a.screen.SetContent(0, 0, tcell.RuneULCorner, nil, borderStyle)
	a.screen.SetContent(w-1, 0, tcell.RuneURCorner, nil, borderStyle)
	a.screen.SetContent(0, h-1, tcell.RuneLLCorner, nil, borderStyle)
	a.screen.SetContent(w-1, h-1, tcell.RuneLRCorner, nil, borderStyle)

	drawText(a.screen, 2, 0, w-1, titleStyle, " keychord ")
	for i, line := range lines {
		y := i + 1
		if y >= h-1 {
			break
		}
		drawText(a.screen, 2, y, w-1, tcell.StyleDefault, line)
	}
}

// drawText draws s from (x, y), clipped before column limit, and returns
// the column after the last rune drawn.
func drawText(s tcell.Screen, x, y, limit int, style tcell.Style, text string) int {
	for _, r := range text {
		if x >= limit {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
