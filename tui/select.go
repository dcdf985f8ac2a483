package tui

import "github.com/gdamore/tcell/v2"

// Select is a scrollable single-choice list, used for the level and
// facility pickers. Result() is the chosen index, or nil if cancelled.
type Select struct {
	*Centered
	items    []string
	position int
	visStart int
}

// NewSelect builds a picker over items, initially positioned at initial.
func NewSelect(title string, items []string, initial int) *Select {
	if len(items) == 0 {
		panic("tui: cannot create a Select window with an empty item list")
	}
	maxLen := 0
	for _, it := range items {
		if len(it)+1 > maxLen {
			maxLen = len(it) + 1
		}
	}
	s := &Select{
		Centered: NewCentered(title, maxLen, len(items), maxLen, 1),
		items:    items,
		position: initial,
	}
	return s
}

// Position returns the currently highlighted index.
func (s *Select) Position() int {
	return s.position
}

func (s *Select) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		s.Close(s.position)
	case tcell.KeyEscape:
		s.Close(nil)
	case tcell.KeyDown:
		if s.position < len(s.items)-1 {
			s.position++
		}
	case tcell.KeyUp:
		if s.position > 0 {
			s.position--
		}
	}
}

func (s *Select) Refresh(screen tcell.Screen) {
	s.DrawFrame(screen)
	if !s.Visible() {
		return
	}

	if s.position < s.visStart {
		s.visStart = s.position
	}
	if s.position >= s.visStart+s.ContentH {
		s.visStart = s.position - s.ContentH + 1
	}

	style := tcell.StyleDefault.Reverse(true)
	for row := 0; row < s.ContentH; row++ {
		i := s.visStart + row
		if i >= len(s.items) {
			break
		}
		prefix := " "
		if i == s.position {
			prefix = "▶"
		}
		drawString(screen, s.ContentX, s.ContentY+row, s.ContentW, prefix+s.items[i], style)
	}
}
