package screenbuffer

// FetchInstruction is one (anchor, direction, count) prefetch request, as
// produced by BufferInstructions and consumed by PullRecords.
type FetchInstruction struct {
	AnchorId   *int64
	Descending bool
	Count      int
}

// BufferInstructions derives the prefetch plan from current buffer state. It
// is a pure function of state: calling it does not mutate anything, which is
// what makes it independently testable from PullRecords.
//
// With N = len(lines), P = position, K = pageSize, T = lowBufferThreshold,
// B = bufferSize:
//
//   - N == 0: one descending instruction (nil, true, B+K). Oversized so the
//     first view is centered with prefetch on both sides.
//   - otherwise, up to two instructions:
//     1. forward low, if P+K >= N-T: (lines[N-1].Id, false, B)
//     2. backward low, if P <= T:    (lines[0].Id, true, B)
//
// Both may fire in the same plan when the buffer is small relative to a wide
// viewport.
func (b *ScreenBuffer) BufferInstructions() []FetchInstruction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bufferInstructionsLocked()
}

func (b *ScreenBuffer) bufferInstructionsLocked() []FetchInstruction {
	n := len(b.lines)
	if n == 0 {
		return []FetchInstruction{
			{AnchorId: nil, Descending: true, Count: b.bufferSize + b.pageSize},
		}
	}

	var result []FetchInstruction

	if b.position+b.pageSize >= n-b.lowBufferThreshold {
		id := b.lines[n-1].Id
		result = append(result, FetchInstruction{AnchorId: &id, Descending: false, Count: b.bufferSize})
	}
	if b.position <= b.lowBufferThreshold {
		id := b.lines[0].Id
		result = append(result, FetchInstruction{AnchorId: &id, Descending: true, Count: b.bufferSize})
	}

	return result
}
