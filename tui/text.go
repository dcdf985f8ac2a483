package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/arborian/logscope/input"
)

// Text is a single-line text field, used for the host/program filter
// prompts. Result() is true/false depending on whether it was accepted
// (Enter) or cancelled (Escape); the caller reads Value() regardless.
//
// Key events from tcell already arrive as decoded runes (unlike the
// original curses implementation's byte-at-a-time getch()), so this window
// feeds TextInput directly and does not use input.UTF8Parser.
type Text struct {
	*Centered
	ti     *input.TextInput
	maxLen int
}

// NewText builds a text field seeded with initial, accepting up to maxLen
// runes.
func NewText(title string, maxLen int, initial string) *Text {
	ti := input.NewTextInput(maxLen, initial)
	width := maxLen
	if width <= 0 {
		width = 32
	}
	return &Text{
		Centered: NewCentered(title, width, 1, 2, 1),
		ti:       ti,
		maxLen:   maxLen,
	}
}

// Value returns the field's current contents.
func (t *Text) Value() string {
	return t.ti.Text()
}

func (t *Text) Resize(screenH, screenW int) {
	t.Centered.Resize(screenH, screenW)
	if t.Visible() {
		t.ti.Width = t.ContentW
	}
}

func (t *Text) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		t.Close(true)
	case tcell.KeyEscape:
		t.Close(false)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		t.ti.Backspace()
	case tcell.KeyDelete:
		t.ti.Delete()
	case tcell.KeyLeft:
		t.ti.MoveLeft()
	case tcell.KeyRight:
		t.ti.MoveRight()
	case tcell.KeyHome:
		t.ti.Home()
	case tcell.KeyEnd:
		t.ti.End()
	case tcell.KeyRune:
		t.ti.PutRune(ev.Rune())
	}
}

func (t *Text) Refresh(screen tcell.Screen) {
	t.DrawFrame(screen)
	if !t.Visible() {
		return
	}
	style := tcell.StyleDefault.Reverse(true)
	drawString(screen, t.ContentX, t.ContentY, t.ContentW, t.ti.VisibleText(), style)
	screen.ShowCursor(t.ContentX+t.ti.Cursor(), t.ContentY)
}
