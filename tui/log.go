package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/arborian/logscope/filterstate"
	"github.com/arborian/logscope/screenbuffer"
	"github.com/arborian/logscope/utils"
)

// Log is the main log view: it renders ScreenBuffer.CurrentLines() into
// fixed columns, color-codes the level column, and shows the active
// filter's summary plus "Go to [d]ate" on the status line. Unlike the
// picker windows, Log is usually the bottom of the stack and is never
// itself closed by the Manager's Show loop except on quit.
type Log struct {
	Base
	buf      *screenbuffer.ScreenBuffer
	filter   *filterstate.Filter
	maxWidth int
	padX     int

	// OnCommand is invoked for keys Log does not handle itself (d for the
	// date picker, l/f/h/p for the filter pickers; q is handled by Log
	// itself, which closes); the caller (Application) owns the
	// picker windows and the Manager stack, so Log just reports intent.
	OnCommand func(cmd rune)
}

var logColumnWidths = [5]int{14, 8, 16, 4, 3}

func logColumnPos(i int) int {
	pos := 0
	for j := 0; j < i && j < len(logColumnWidths); j++ {
		pos += logColumnWidths[j] + 1
	}
	return pos
}

func logColumnWidth(i int) int {
	if i >= len(logColumnWidths) {
		return 0
	}
	return logColumnWidths[i]
}

// NewLog builds a log view over buf, whose lines are padded out to
// maxWidth columns before horizontal scrolling takes effect.
func NewLog(buf *screenbuffer.ScreenBuffer, filter *filterstate.Filter, maxWidth int) *Log {
	return &Log{buf: buf, filter: filter, maxWidth: maxWidth}
}

func (l *Log) Resize(h, w int) {
	maxPadX := l.maxWidth - w
	if maxPadX < 0 {
		maxPadX = 0
	}
	if l.padX > maxPadX {
		l.padX = maxPadX
	}
}

// ScrollLeft/ScrollRight mirror the original implementation's Log.scroll_left/
// scroll_right, moving the horizontal viewport in fixed steps.
const logScrollStep = 4

func (l *Log) ScrollLeft() {
	l.padX -= logScrollStep
	if l.padX < 0 {
		l.padX = 0
	}
}

func (l *Log) ScrollRight() {
	l.padX += logScrollStep
}

func (l *Log) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		l.buf.GoToPreviousLine()
		return
	case tcell.KeyDown:
		l.buf.GoToNextLine()
		return
	case tcell.KeyPgUp:
		l.buf.GoToPreviousPage()
		return
	case tcell.KeyPgDn:
		l.buf.GoToNextPage()
		return
	case tcell.KeyLeft:
		l.ScrollLeft()
		return
	case tcell.KeyRight:
		l.ScrollRight()
		return
	case tcell.KeyEscape:
		l.Close(nil)
		return
	}

	if ev.Key() == tcell.KeyRune && l.OnCommand != nil {
		switch ev.Rune() {
		case 'q':
			l.Close(nil)
		case 'd', 'l', 'f', 'h', 'p':
			l.OnCommand(ev.Rune())
		}
	}
}

func (l *Log) Refresh(screen tcell.Screen) {
	w, h := screen.Size()
	if h < 2 {
		return
	}

	// A filter with several active fields plus the date hint can run past
	// a narrow terminal's width; wrap it across as many of the bottom rows
	// as fit rather than truncating it, leaving at least one row for log
	// lines.
	statusRows := utils.WordWrap(l.statusLine(), w)
	if len(statusRows) == 0 {
		statusRows = []string{l.statusLine()}
	}
	if max := h - 1; len(statusRows) > max {
		statusRows = statusRows[:max]
	}
	logRows := h - len(statusRows)

	lines := l.buf.CurrentLines()
	for i, line := range lines {
		y := i
		if y >= logRows {
			break
		}
		if !line.IsContinuation || i == 0 {
			drawString(screen, logColumnPos(0)-l.padX, y, logColumnWidth(0), line.Time.Format("01-02 15:04:05"), tcell.StyleDefault)
			drawString(screen, logColumnPos(1)-l.padX, y, logColumnWidth(1), line.Host, tcell.StyleDefault)
			drawString(screen, logColumnPos(2)-l.padX, y, logColumnWidth(2), line.Program, tcell.StyleDefault)
			drawString(screen, logColumnPos(3)-l.padX, y, logColumnWidth(3), facilityName(line.Facility), tcell.StyleDefault)
			drawString(screen, logColumnPos(4)-l.padX, y, logColumnWidth(4), levelName(line.Level), levelStyle(line.Level))
		}
		drawString(screen, logColumnPos(5)-l.padX, y, w, line.Message, tcell.StyleDefault)
	}

	statusStyle := tcell.StyleDefault.Bold(true).Reverse(true)
	for i, row := range statusRows {
		y := logRows + i
		drawString(screen, 0, y, w, row, statusStyle)
		for x := len(row); x < w; x++ {
			screen.SetContent(x, y, ' ', nil, statusStyle)
		}
	}
}

func (l *Log) statusLine() string {
	s := " "
	for _, kv := range l.filter.GetSummary() {
		s += fmt.Sprintf("%s: %s  ", kv[0], kv[1])
	}
	return s + "Go to [d]ate"
}

func facilityName(facility int) string {
	if facility >= 0 && facility < len(filterstate.FacilityNames) {
		return filterstate.FacilityNames[facility]
	}
	return fmt.Sprintf("%d", facility)
}

func levelName(level int) string {
	if level >= 0 && level < len(filterstate.LevelNames) {
		return filterstate.LevelNames[level]
	}
	return fmt.Sprintf("%d", level)
}

func levelStyle(level int) tcell.Style {
	switch levelName(level) {
	case "emerg", "alert":
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	case "crit", "err":
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case "warning":
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case "notice":
		return tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	case "info":
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	default:
		return tcell.StyleDefault.Bold(true)
	}
}
