package screenbuffer

import (
	"context"
	"fmt"
)

// PullRecords executes the current buffer instructions against source. For
// each instruction, a descending plan is skipped entirely once bottomSeen is
// true: that flag guards re-requesting the known-empty forward region only
// when looking backwards past the current top, which is the asymmetric
// behavior this was deliberately modeled on (see DESIGN.md). Records are
// drained one at a time and folded in with PrependRecord/AppendRecord so
// invariants 2 and 3 hold even on a partial fetch: each fold is a single
// atomic buffer mutation.
func (b *ScreenBuffer) PullRecords(ctx context.Context, source RecordSource) error {
	for _, instr := range b.BufferInstructions() {
		b.mu.Lock()
		skip := instr.Descending && b.bottomSeen
		b.mu.Unlock()
		if skip {
			continue
		}

		if err := b.pullOne(ctx, source, instr); err != nil {
			return err
		}
	}
	return nil
}

func (b *ScreenBuffer) pullOne(ctx context.Context, source RecordSource, instr FetchInstruction) error {
	handle, err := source.PrepareQuery(instr.AnchorId, instr.Descending, instr.Count)
	if err != nil {
		return fmt.Errorf("%w: prepare query: %v", ErrSourceTransient, err)
	}

	remaining := instr.Count
	for remaining > 0 {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rec, err := source.FetchRecord(handle)
		if err != nil {
			return fmt.Errorf("%w: fetch record: %v", ErrSourceTransient, err)
		}
		if rec == nil {
			break
		}

		remaining--
		if instr.Descending {
			b.PrependRecord(*rec)
		} else {
			b.AppendRecord(*rec)
		}
	}

	if remaining > 0 {
		b.mu.Lock()
		b.bottomSeen = true
		b.mu.Unlock()
	}

	return nil
}
