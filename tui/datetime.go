package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/arborian/logscope/filterstate"
)

// Datetime is the segmented date/time field used by the "go to date"
// picker. Result() is true/false for accept/cancel; Value() returns the
// picked moment regardless.
type Datetime struct {
	*Centered
	state *filterstate.DatetimeState
}

// NewDatetime builds a picker seeded at initial.
func NewDatetime(title string, initial time.Time) *Datetime {
	state := filterstate.NewDatetimeState(initial)
	width := len(state.Text())
	return &Datetime{
		Centered: NewCentered(title, width, 1, width, 1),
		state:    state,
	}
}

// Value returns the picker's current moment.
func (d *Datetime) Value() time.Time {
	return d.state.Value()
}

func (d *Datetime) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		d.Close(true)
	case tcell.KeyEscape:
		d.Close(false)
	case tcell.KeyRight:
		d.state.MoveRight()
	case tcell.KeyLeft:
		d.state.MoveLeft()
	case tcell.KeyUp:
		d.state.Increment()
	case tcell.KeyDown:
		d.state.Decrement()
	}
}

func (d *Datetime) Refresh(screen tcell.Screen) {
	d.DrawFrame(screen)
	if !d.Visible() {
		return
	}
	style := tcell.StyleDefault.Reverse(true)
	drawString(screen, d.ContentX, d.ContentY, d.ContentW, d.state.Text(), style)
	offset, width := d.state.Position()
	hilite := style.Bold(true)
	for i := 0; i < width; i++ {
		screen.SetContent(d.ContentX+offset+i, d.ContentY, []rune(d.state.Text())[offset+i], nil, hilite)
	}
}
