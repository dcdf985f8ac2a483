package tui

import "github.com/gdamore/tcell/v2"

// Base is the show/close/result bookkeeping every window embeds, mirroring
// the original implementation's Base class. Concrete windows embed Base
// and implement HandleKey/Refresh/Resize themselves.
type Base struct {
	closed bool
	result any
}

// Close marks the window closed with the given result; the owning
// Manager's Show loop exits on the next iteration.
func (b *Base) Close(result any) {
	b.result = result
	b.closed = true
}

// Closed reports whether Close has been called.
func (b *Base) Closed() bool {
	return b.closed
}

// Result returns the value passed to Close, or nil if still open.
func (b *Base) Result() any {
	return b.result
}

func drawString(screen tcell.Screen, x, y, maxWidth int, s string, style tcell.Style) {
	if maxWidth <= 0 {
		return
	}
	col := x
	for _, r := range s {
		if col >= x+maxWidth {
			break
		}
		if col >= 0 {
			screen.SetContent(col, y, r, nil, style)
		}
		col++
	}
}
