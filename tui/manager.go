// Package tui is the curses-style window stack: a tcell.Screen, a stack of
// modal windows, and an event loop that dispatches key and resize events to
// whichever window is on top. It replaces curses' getch()/refresh cycle
// with tcell's PollEvent/Show cycle but keeps the same "push a window, loop
// until it closes, pop it" shape as the original implementation's Base.show().
package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/arborian/logscope/log"
)

// Window is the show/close/result lifecycle every window in the stack
// shares, plus the two callbacks the Manager drives: key handling and
// drawing.
type Window interface {
	HandleKey(ev *tcell.EventKey)
	Refresh(screen tcell.Screen)
	Resize(h, w int)
	Closed() bool
	Result() any
}

// Manager owns the terminal screen and the stack of currently shown
// windows. Only the top of the stack receives key events; every window in
// the stack is redrawn bottom-to-top each frame, so a modal picker can be
// shown over the log view without erasing it.
type Manager struct {
	screen      tcell.Screen
	stack       []Window
	quit        bool
	prevRawMode bool
}

// quitSignal is the EventInterrupt payload that tells the Show loop to
// stop, distinguishing a shutdown request from a plain "something changed,
// redraw" wakeup (also delivered as an EventInterrupt, with a nil payload,
// e.g. by a ScreenBuffer observer).
type quitSignal struct{}

// PostQuit wakes the event loop and stops it after the current window
// returns control, without needing the top-of-stack window to handle a key
// press itself. Safe to call from any goroutine.
func (m *Manager) PostQuit() {
	m.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
}

// NewManager initializes a tcell screen in full-screen (alternate buffer)
// mode.
func NewManager() (*Manager, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	// The alternate-screen buffer already puts the terminal in the raw-ish
	// mode tcell needs, so anything logged while a window is showing must
	// get the same CR prefixing a real raw-mode terminal would need, or
	// log lines come out staircased. Restored on Close.
	prevRawMode := log.Default().RawMode()
	log.Default().SetRawMode(true)

	return &Manager{screen: screen, prevRawMode: prevRawMode}, nil
}

// Close tears down the terminal screen. Safe to call once, at shutdown.
func (m *Manager) Close() {
	log.Default().SetRawMode(m.prevRawMode)
	m.screen.Fini()
}

// Screen returns the underlying tcell.Screen, for windows that need direct
// access (e.g. to query its size during layout).
func (m *Manager) Screen() tcell.Screen {
	return m.screen
}

// Show pushes w onto the stack and runs the event loop until w closes,
// then pops it and returns its result.
func (m *Manager) Show(w Window) any {
	m.stack = append(m.stack, w)
	defer func() { m.stack = m.stack[:len(m.stack)-1] }()

	for !w.Closed() && !m.quit {
		m.draw()
		ev := m.screen.PollEvent()
		m.dispatch(ev)
	}
	return w.Result()
}

func (m *Manager) dispatch(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		for _, win := range m.stack {
			win.Resize(h, w)
		}
		m.screen.Sync()
	case *tcell.EventKey:
		if len(m.stack) == 0 {
			return
		}
		m.stack[len(m.stack)-1].HandleKey(ev)
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitSignal); ok {
			m.quit = true
		}
	}
}

func (m *Manager) draw() {
	m.screen.Clear()
	for _, win := range m.stack {
		win.Refresh(m.screen)
	}
	m.screen.Show()
}
