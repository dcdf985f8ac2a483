package tui

import "github.com/gdamore/tcell/v2"

// Centered is a bordered frame, centered on the screen, that other pickers
// embed. Its content area (ContentX/ContentY/ContentW/ContentH) excludes
// the one-cell border on each side, mirroring the original implementation's
// curses subwin-based Centered window.
type Centered struct {
	Base
	title            string
	wantW, wantH     int
	minW, minH       int
	X, Y, W, H       int
	ContentX, ContentY int
	ContentW, ContentH int
	visible          bool
}

// NewCentered lays out a frame wantW x wantH content cells (plus a 1-cell
// border on each side), shrinking down to minW x minH if the screen is too
// small, and hiding entirely if even that doesn't fit.
func NewCentered(title string, wantW, wantH, minW, minH int) *Centered {
	return &Centered{title: title, wantW: wantW, wantH: wantH, minW: minW, minH: minH}
}

// Resize recomputes the frame's position given the new screen size.
func (c *Centered) Resize(screenH, screenW int) {
	const border = 1
	fullW, fullH := c.wantW+2*border, c.wantH+2*border
	minFullW, minFullH := c.minW+2*border, c.minH+2*border

	w, h := fullW, fullH
	if w > screenW {
		w = screenW
	}
	if h > screenH {
		h = screenH
	}
	if w < minFullW || h < minFullH {
		c.visible = false
		return
	}

	c.visible = true
	c.W, c.H = w, h
	c.X, c.Y = (screenW-w)/2, (screenH-h)/2
	c.ContentX, c.ContentY = c.X+border, c.Y+border
	c.ContentW, c.ContentH = w-2*border, h-2*border
}

// DrawFrame draws the border and centered title onto screen. Concrete
// windows call this first in their own Refresh, then draw their content
// inside ContentX/ContentY/ContentW/ContentH.
func (c *Centered) DrawFrame(screen tcell.Screen) {
	if !c.visible {
		return
	}
	style := tcell.StyleDefault.Reverse(true)

	for x := c.X; x < c.X+c.W; x++ {
		screen.SetContent(x, c.Y, tcell.RuneHLine, nil, style)
		screen.SetContent(x, c.Y+c.H-1, tcell.RuneHLine, nil, style)
	}
	for y := c.Y; y < c.Y+c.H; y++ {
		screen.SetContent(c.X, y, tcell.RuneVLine, nil, style)
		screen.SetContent(c.X+c.W-1, y, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(c.X, c.Y, tcell.RuneULCorner, nil, style)
	screen.SetContent(c.X+c.W-1, c.Y, tcell.RuneURCorner, nil, style)
	screen.SetContent(c.X, c.Y+c.H-1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(c.X+c.W-1, c.Y+c.H-1, tcell.RuneLRCorner, nil, style)

	for y := c.ContentY; y < c.ContentY+c.ContentH; y++ {
		for x := c.ContentX; x < c.ContentX+c.ContentW; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}

	t := "|" + c.title + "|"
	drawString(screen, c.X+(c.W-len(t))/2, c.Y, c.W, t, style)
}

// Visible reports whether the frame fit on the last Resize.
func (c *Centered) Visible() bool {
	return c.visible
}
