package input

// TextInput is a cursor-addressable single-line edit buffer with a
// Width-bounded visible window, the same role the original implementation's
// text field state object played for the host/program filter prompts.
type TextInput struct {
	runes  []rune
	cursor int
	maxLen int

	// Width is the number of visible columns; VisibleText and Cursor are
	// computed against it. Zero means unbounded.
	Width int

	scroll int
}

// NewTextInput returns a TextInput seeded with text, truncated to maxLen
// runes if necessary. maxLen <= 0 means unbounded.
func NewTextInput(maxLen int, text string) *TextInput {
	runes := []rune(text)
	if maxLen > 0 && len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	return &TextInput{runes: runes, cursor: len(runes), maxLen: maxLen}
}

// Text returns the full buffer contents.
func (t *TextInput) Text() string {
	return string(t.runes)
}

// Cursor returns the cursor's offset into the visible window, for caret
// placement.
func (t *TextInput) Cursor() int {
	t.scrollIntoView()
	return t.cursor - t.scroll
}

// VisibleText returns the Width-wide slice of the buffer currently
// scrolled into view.
func (t *TextInput) VisibleText() string {
	t.scrollIntoView()
	end := t.scroll + t.Width
	if t.Width <= 0 || end > len(t.runes) {
		end = len(t.runes)
	}
	return string(t.runes[t.scroll:end])
}

func (t *TextInput) scrollIntoView() {
	if t.Width <= 0 {
		t.scroll = 0
		return
	}
	if t.cursor < t.scroll {
		t.scroll = t.cursor
	}
	if t.cursor >= t.scroll+t.Width {
		t.scroll = t.cursor - t.Width + 1
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
}

// PutRune inserts r at the cursor, unless the buffer is already at maxLen.
func (t *TextInput) PutRune(r rune) {
	if t.maxLen > 0 && len(t.runes) >= t.maxLen {
		return
	}
	t.runes = append(t.runes[:t.cursor], append([]rune{r}, t.runes[t.cursor:]...)...)
	t.cursor++
}

// Backspace deletes the rune before the cursor, if any.
func (t *TextInput) Backspace() {
	if t.cursor == 0 {
		return
	}
	t.runes = append(t.runes[:t.cursor-1], t.runes[t.cursor:]...)
	t.cursor--
}

// Delete deletes the rune at the cursor, if any.
func (t *TextInput) Delete() {
	if t.cursor >= len(t.runes) {
		return
	}
	t.runes = append(t.runes[:t.cursor], t.runes[t.cursor+1:]...)
}

// MoveLeft moves the cursor one rune to the left, clamped at 0.
func (t *TextInput) MoveLeft() {
	if t.cursor > 0 {
		t.cursor--
	}
}

// MoveRight moves the cursor one rune to the right, clamped at the end.
func (t *TextInput) MoveRight() {
	if t.cursor < len(t.runes) {
		t.cursor++
	}
}

// Home moves the cursor to the start of the buffer.
func (t *TextInput) Home() {
	t.cursor = 0
}

// End moves the cursor to the end of the buffer.
func (t *TextInput) End() {
	t.cursor = len(t.runes)
}
