package main

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/arborian/logscope/filesource"
	"github.com/arborian/logscope/filterstate"
	"github.com/arborian/logscope/log"
	"github.com/arborian/logscope/screenbuffer"
	"github.com/arborian/logscope/sqlsource"
	"github.com/arborian/logscope/tui"
)

// Config is the resolved, typed configuration produced by the command
// surface (flags and LOGSCOPE_ environment variables layered over typed
// defaults via viper, see config.go).
type Config struct {
	PageSize           int
	BufferSize         int
	LowBufferThreshold int
	MaxWidth           int

	// Source selects the Record Source implementation: "sqlite" (the
	// default, backed by sqlsource.Driver) or "file" (filesource.Driver).
	Source string
	DSN    string
	Path   string
	Follow bool
}

// Application wires a Record Source, a ScreenBuffer, and the tui window
// stack together, and owns the picker windows that mutate the active
// filter. It is the direct replacement for the teacher's file-only
// Application/Buffer pair.
type Application struct {
	cfg    Config
	source screenbuffer.RecordSource
	buf    *screenbuffer.ScreenBuffer
	filter *filterstate.Filter

	manager *tui.Manager
}

// NewApplication constructs the Record Source named by cfg.Source and the
// ScreenBuffer that will page over it. The Record Source is not connected
// until Run starts the Fetch Loop.
func NewApplication(cfg Config) (*Application, error) {
	var source screenbuffer.RecordSource
	switch cfg.Source {
	case "file":
		source = filesource.NewDriver(cfg.Path, cfg.Follow)
	default:
		source = sqlsource.NewDriver(cfg.DSN)
	}

	buf := screenbuffer.NewScreenBuffer(cfg.PageSize, cfg.BufferSize, cfg.LowBufferThreshold)

	if registrar, ok := source.(pushRegistrar); ok {
		registrar.SetPushHandler(buf.AppendRecord)
	}

	return &Application{
		cfg:    cfg,
		source: source,
		buf:    buf,
		filter: &filterstate.Filter{},
	}, nil
}

// Run starts the Fetch Loop, opens the terminal window stack, and blocks
// until the user quits. The Fetch Loop and the terminal are both torn down
// before Run returns.
func (a *Application) Run(ctx context.Context) error {
	manager, err := tui.NewManager()
	if err != nil {
		return err
	}
	a.manager = manager
	defer manager.Close()

	a.buf.Start(a.source)
	defer a.buf.Stop()

	unsub := a.buf.AddObserver(func() {
		manager.Screen().PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer a.buf.RemoveObserver(unsub)

	logWin := tui.NewLog(a.buf, a.filter, a.cfg.MaxWidth)
	logWin.OnCommand = a.handleCommand

	go func() {
		<-ctx.Done()
		manager.PostQuit()
	}()

	manager.Show(logWin)
	return nil
}

func (a *Application) handleCommand(cmd rune) {
	switch cmd {
	case 'd':
		a.pickDate()
	case 'l':
		a.pickLevel()
	case 'f':
		a.pickFacility()
	case 'h':
		a.pickHost()
	case 'p':
		a.pickProgram()
	}
}

// filterApplier is implemented by Record Sources that support the query
// builder's structured filter. filesource.Driver does not: a flat log file
// has no facility/level columns to filter on.
type filterApplier interface {
	SetFilter(sqlsource.Filter)
}

// dateSeekable is implemented by Record Sources that can resolve a moment
// in time to the newest record id at or before it.
type dateSeekable interface {
	FindIdForTime(ctx context.Context, t time.Time) (int64, bool, error)
}

// pushRegistrar is implemented by Record Sources that can push records
// asynchronously outside of PrepareQuery/FetchRecord (filesource.Driver's
// tail-follow goroutine). Wiring the handler straight to buf.AppendRecord
// in NewApplication, rather than inside Run, means it is installed before
// anything can call Start and race the tailing goroutine's first push.
type pushRegistrar interface {
	SetPushHandler(func(screenbuffer.Record))
}

func (a *Application) applyFilter() {
	applier, ok := a.source.(filterApplier)
	if !ok {
		log.Println("logscope: the active record source does not support structured filters")
		return
	}
	applier.SetFilter(a.filter.AsSQLFilter())
	a.buf.Restart(a.source)
}

func (a *Application) pickLevel() {
	items := append([]string{"any"}, filterstate.LevelNames...)
	initial := 0
	if a.filter.Level != nil {
		initial = *a.filter.Level + 1
	}
	res := a.manager.Show(tui.NewSelect("Level", items, initial))
	idx, ok := res.(int)
	if !ok {
		return
	}
	if idx == 0 {
		a.filter.Level = nil
	} else {
		v := idx - 1
		a.filter.Level = &v
	}
	a.applyFilter()
}

func (a *Application) pickFacility() {
	items := append([]string{"any"}, filterstate.FacilityNames...)
	initial := 0
	if a.filter.Facility != nil {
		initial = *a.filter.Facility + 1
	}
	res := a.manager.Show(tui.NewSelect("Facility", items, initial))
	idx, ok := res.(int)
	if !ok {
		return
	}
	if idx == 0 {
		a.filter.Facility = nil
	} else {
		v := idx - 1
		a.filter.Facility = &v
	}
	a.applyFilter()
}

func (a *Application) pickHost() {
	txt := tui.NewText("Host", 64, a.filter.Host)
	res := a.manager.Show(txt)
	if accept, ok := res.(bool); ok && accept {
		a.filter.Host = txt.Value()
		a.applyFilter()
	}
}

func (a *Application) pickProgram() {
	txt := tui.NewText("Program", 64, a.filter.Program)
	res := a.manager.Show(txt)
	if accept, ok := res.(bool); ok && accept {
		a.filter.Program = txt.Value()
		a.applyFilter()
	}
}

func (a *Application) pickDate() {
	seeker, ok := a.source.(dateSeekable)
	if !ok {
		log.Println("logscope: the active record source does not support go-to-date")
		return
	}

	picker := tui.NewDatetime("Go to date", time.Now())
	res := a.manager.Show(picker)
	accept, ok := res.(bool)
	if !ok || !accept {
		return
	}

	id, found, err := seeker.FindIdForTime(context.Background(), picker.Value())
	if err != nil {
		log.Println("logscope: failed to resolve date:", err)
		return
	}
	if !found {
		return
	}

	a.buf.Restart(&anchoredSource{RecordSource: a.source, anchor: id})
}

// anchoredSource substitutes anchor for the very first nil-anchor
// PrepareQuery call after a restart, which is exactly the initial fetch
// ScreenBuffer.Start issues against an empty buffer. Every subsequent call
// already carries an explicit anchor from the paging buffer's own lines, so
// it passes straight through. This lets "go to date" reuse Start's
// existing initial-fetch behavior instead of adding a seek operation to
// the paging buffer itself.
type anchoredSource struct {
	screenbuffer.RecordSource
	anchor int64
	used   bool
}

func (a *anchoredSource) PrepareQuery(anchorId *int64, descending bool, count int) (screenbuffer.QueryHandle, error) {
	if anchorId == nil && !a.used {
		a.used = true
		id := a.anchor
		return a.RecordSource.PrepareQuery(&id, descending, count)
	}
	return a.RecordSource.PrepareQuery(anchorId, descending, count)
}
