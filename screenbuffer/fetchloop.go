package screenbuffer

import (
	"context"

	"github.com/arborian/logscope/log"
)

// runFetchLoop is the Fetch Loop: it owns source for the duration of the run
// (borrowed, not back-referenced - see SPEC_FULL.md §9), repeatedly waits on b's
// condition variable, and on each wakeup either exits (stopped) or executes
// the current prefetch plan (invalid). A source-transient failure is logged
// and the loop keeps waiting; a fatal failure at StartConnection ends the
// loop but StopConnection is still guaranteed to run.
func runFetchLoop(b *ScreenBuffer, source RecordSource, ctx context.Context, done chan struct{}) {
	defer close(done)

	b.Clear()

	defer func() {
		if err := source.StopConnection(ctx); err != nil {
			log.Println("logscope: failed to stop record source connection cleanly:", err)
		}
	}()
	if err := source.StartConnection(ctx); err != nil {
		log.Println("logscope: fatal: failed to start record source connection:", err)
		return
	}

	for {
		if b.waitEvent() {
			return
		}

		if err := b.PullRecords(ctx, source); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Println("logscope: transient fetch failure, resuming:", err)
		}
	}
}
