package screenbuffer

import (
	"fmt"
	"testing"
	"time"
)

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	if !cond() {
		t.Fatalf("condition not met within %s", timeout)
	}
}

func idsOf(lines []Line) []int64 {
	ids := make([]int64, len(lines))
	for i, l := range lines {
		ids[i] = l.Id
	}
	return ids
}

func idsEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Scenario 1: initialization, ample history.
func TestScenario_InitializationAmpleHistory(t *testing.T) {
	src := newFakeSource(1, 100)
	b := NewScreenBuffer(2, 5, 2)

	instr := b.BufferInstructions()
	if len(instr) != 1 || instr[0].AnchorId != nil || !instr[0].Descending || instr[0].Count != 7 {
		t.Fatalf("expected initial plan (nil, desc, 7), got %+v", instr)
	}

	b.Start(src)
	defer b.Stop()

	waitUntil(t, time.Second, func() bool {
		return idsEqual(idsOf(b.CurrentLines()), []int64{99, 100})
	})
}

// Scenario 2: scroll back once, no extra fetch needed. The distilled spec's
// prose for this scenario says "go_to_previous_page() twice" but its own
// numeric example (buffer holds exactly 7 lines, result [97, 98]) is only
// reachable after a single call; we implement and test the
// numerically-consistent behavior and record the prose/example mismatch in
// DESIGN.md rather than silently picking one without a note.
func TestScenario_ScrollBackOnce(t *testing.T) {
	src := newFakeSource(1, 100)
	b := NewScreenBuffer(2, 5, 2)
	b.Start(src)
	defer b.Stop()

	waitUntil(t, time.Second, func() bool {
		return idsEqual(idsOf(b.CurrentLines()), []int64{99, 100})
	})
	waitUntil(t, time.Second, func() bool {
		b.mu.Lock()
		n := len(b.lines)
		b.mu.Unlock()
		return n == 7
	})

	b.GoToPreviousPage()

	waitUntil(t, time.Second, func() bool {
		return idsEqual(idsOf(b.CurrentLines()), []int64{97, 98})
	})
}

// Scenario 3: forward past known tail sets bottomSeen and leaves the
// viewport unchanged when the source returns nothing more. The initial fetch
// (nil, desc, 6) fills the buffer with [95..100] without coming up short, so
// bottomSeen can only be set by the forward fetch the page move triggers.
func TestScenario_ForwardPastKnownTail(t *testing.T) {
	src := newFakeSource(1, 100)
	b := NewScreenBuffer(2, 4, 2)
	b.Start(src)
	defer b.Stop()

	waitUntil(t, time.Second, func() bool {
		return idsEqual(idsOf(b.CurrentLines()), []int64{99, 100})
	})

	b.GoToNextPage()

	waitUntil(t, time.Second, func() bool {
		b.mu.Lock()
		seen := b.bottomSeen
		b.mu.Unlock()
		return seen
	})
	if !idsEqual(idsOf(b.CurrentLines()), []int64{99, 100}) {
		t.Fatalf("viewport should remain at [99 100], got %v", idsOf(b.CurrentLines()))
	}
}

// Scenario 4: low-buffer refill backward re-anchors at the current top id.
// page_size=2, buffer_size=6, low_buffer_threshold=2: the initial fetch
// (nil, desc, buffer_size+page_size=8) lands [93..100], matching the
// distilled spec's stated starting buffer for this scenario.
func TestScenario_LowBufferRefillBackward(t *testing.T) {
	src := newFakeSource(1, 100)
	b := NewScreenBuffer(2, 6, 2)
	b.Start(src)
	defer b.Stop()

	waitUntil(t, time.Second, func() bool {
		return idsEqual(idsOf(b.CurrentLines()), []int64{99, 100})
	})
	waitUntil(t, time.Second, func() bool {
		b.mu.Lock()
		n := len(b.lines)
		id0 := int64(-1)
		if n > 0 {
			id0 = b.lines[0].Id
		}
		b.mu.Unlock()
		return n == 8 && id0 == 93
	})

	// Two previous-page calls cross the low-buffer threshold and must
	// request (93, desc, 6) - anchored at the current top id.
	b.GoToPreviousPage()
	b.GoToPreviousPage()

	instrAtThreshold := b.BufferInstructions()
	foundBackward := false
	for _, instr := range instrAtThreshold {
		if instr.Descending && instr.AnchorId != nil && *instr.AnchorId == 93 && instr.Count == 6 {
			foundBackward = true
		}
	}
	if !foundBackward {
		t.Fatalf("expected a pending (93, desc, 6) instruction, got %+v", instrAtThreshold)
	}

	waitUntil(t, time.Second, func() bool {
		b.mu.Lock()
		n := len(b.lines)
		id0 := int64(-1)
		if n > 0 {
			id0 = b.lines[0].Id
		}
		b.mu.Unlock()
		return n == 14 && id0 == 87
	})

	// Enough further backward moves land on [91, 92].
	b.GoToPreviousPage()
	b.GoToPreviousPage()

	waitUntil(t, time.Second, func() bool {
		return idsEqual(idsOf(b.CurrentLines()), []int64{91, 92})
	})
}

// Scenario 5: growing page size past the tail triggers a forward fetch that
// comes back short and sets bottomSeen.
func TestScenario_PageSizeGrowsPastTail(t *testing.T) {
	src := newFakeSource(1, 100)
	b := NewScreenBuffer(2, 5, 2)
	b.Start(src)
	defer b.Stop()

	waitUntil(t, time.Second, func() bool {
		return idsEqual(idsOf(b.CurrentLines()), []int64{99, 100})
	})

	b.SetPageSize(3)

	waitUntil(t, time.Second, func() bool {
		b.mu.Lock()
		seen := b.bottomSeen
		b.mu.Unlock()
		return seen
	})
	waitUntil(t, time.Second, func() bool {
		return idsEqual(idsOf(b.CurrentLines()), []int64{98, 99, 100})
	})
}

// P1: position stays within [0, max(0, len(lines)-pageSize)] across a random
// walk of operations.
func TestProperty_PositionWithinBounds(t *testing.T) {
	b := NewScreenBuffer(3, 9, 3)
	for id := int64(1); id <= 50; id++ {
		b.AppendRecord(Record{Id: id, Message: fmt.Sprint(id)})
	}

	ops := []func(){b.GoToPreviousLine, b.GoToNextLine, b.GoToPreviousPage, b.GoToNextPage}
	for i, op := range ops {
		for j := 0; j < 20; j++ {
			op()
			b.mu.Lock()
			pMax := len(b.lines) - b.pageSize
			if pMax < 0 {
				pMax = 0
			}
			pos := b.position
			b.mu.Unlock()
			if pos < 0 || pos > pMax {
				t.Fatalf("op %d iter %d: position %d out of [0,%d]", i, j, pos, pMax)
			}
		}
	}
}

// P3: all lines derived from one record stay contiguous and in order, even
// as other records are appended/prepended around them.
func TestProperty_RecordLinesContiguous(t *testing.T) {
	b := NewScreenBuffer(5, 25, 5)
	b.AppendRecord(Record{Id: 1, Message: "x"})
	b.AppendRecord(Record{Id: 2, Message: "a\nb\nc"})
	b.AppendRecord(Record{Id: 3, Message: "y"})
	b.PrependRecord(Record{Id: 0, Message: "z"})

	b.mu.Lock()
	lines := append([]Line(nil), b.lines...)
	b.mu.Unlock()

	start := -1
	for i, l := range lines {
		if l.Id == 2 {
			start = i
			break
		}
	}
	if start == -1 {
		t.Fatalf("record 2 not found")
	}
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if lines[start+i].Id != 2 || lines[start+i].Message != w {
			t.Fatalf("expected contiguous [a b c] at offset %d, got %+v", start, lines[start:start+3])
		}
	}
}

// P4: after PrependRecord(r), the line that was visible at position before
// the call is visible at position+k afterwards, where k is the number of
// lines r produced.
func TestProperty_PrependPreservesVisibleIdentity(t *testing.T) {
	b := NewScreenBuffer(2, 10, 2)
	for id := int64(1); id <= 10; id++ {
		b.AppendRecord(Record{Id: id, Message: fmt.Sprint(id)})
	}
	b.GoToNextPage()
	b.GoToNextPage()

	before := b.CurrentLines()

	b.PrependRecord(Record{Id: 0, Message: "x\ny"})

	b.mu.Lock()
	pos := b.position
	b.mu.Unlock()
	if pos != 4+2 {
		t.Fatalf("expected position to shift by 2, got %d", pos)
	}
	after := b.CurrentLines()
	if !idsEqual(idsOf(before), idsOf(after)) {
		t.Fatalf("visible ids changed across prepend: before=%v after=%v", idsOf(before), idsOf(after))
	}
}

// P5: AppendRecord on an already-full viewport does not change
// CurrentLines().
func TestProperty_AppendOnFullViewportDoesNotChangeView(t *testing.T) {
	b := NewScreenBuffer(2, 10, 2)
	b.AppendRecord(Record{Id: 1, Message: "1"})
	b.AppendRecord(Record{Id: 2, Message: "2"})

	before := b.CurrentLines()
	b.AppendRecord(Record{Id: 3, Message: "3"})
	after := b.CurrentLines()

	if !idsEqual(idsOf(before), idsOf(after)) {
		t.Fatalf("expected unchanged view, before=%v after=%v", idsOf(before), idsOf(after))
	}
}

// Round-trip: N forward page moves followed by N backward page moves return
// CurrentLines() to its initial contents, against a source that never runs
// out in either direction. The source's range is widened after the initial
// view is taken so that forward moves have records to fetch, and each move
// waits until the buffer holds a full page in its direction, so no move is
// clamped.
func TestRoundTrip_ForwardThenBackward(t *testing.T) {
	src := newFakeSource(1, 1_000_000)
	b := NewScreenBuffer(4, 20, 4)
	b.Start(src)
	defer b.Stop()

	waitUntil(t, time.Second, func() bool { return len(b.CurrentLines()) == 4 })
	initial := idsOf(b.CurrentLines())
	src.setRange(1, 2_000_000)
	b.invalidate()

	const n = 5
	for i := 0; i < n; i++ {
		waitUntil(t, time.Second, func() bool {
			b.mu.Lock()
			defer b.mu.Unlock()
			return len(b.lines)-b.position-b.pageSize >= b.pageSize
		})
		b.GoToNextPage()
		waitUntil(t, time.Second, func() bool { return len(b.CurrentLines()) == 4 })
	}
	for i := 0; i < n; i++ {
		waitUntil(t, time.Second, func() bool {
			b.mu.Lock()
			defer b.mu.Unlock()
			return b.position >= b.pageSize
		})
		b.GoToPreviousPage()
		waitUntil(t, time.Second, func() bool { return len(b.CurrentLines()) == 4 })
	}

	if !idsEqual(idsOf(b.CurrentLines()), initial) {
		t.Fatalf("round trip mismatch: initial=%v final=%v", initial, idsOf(b.CurrentLines()))
	}
}

func TestClear_NotifiesOnlyWhenNonEmpty(t *testing.T) {
	b := NewScreenBuffer(2, 10, 2)
	notified := 0
	b.AddObserver(func() { notified++ })

	b.Clear()
	if notified != 0 {
		t.Fatalf("clearing an empty buffer should not notify, got %d", notified)
	}

	b.AppendRecord(Record{Id: 1, Message: "x"})
	b.Clear()
	if notified == 0 {
		t.Fatalf("clearing a non-empty buffer should notify")
	}
}

func TestObserver_PanicIsolated(t *testing.T) {
	b := NewScreenBuffer(2, 10, 2)
	calledSecond := false
	b.AddObserver(func() { panic("boom") })
	b.AddObserver(func() { calledSecond = true })

	b.AppendRecord(Record{Id: 1, Message: "x"})
	b.AppendRecord(Record{Id: 2, Message: "y"})

	if !calledSecond {
		t.Fatalf("second observer should still run despite the first panicking")
	}
}

func TestStop_IsIdempotent(t *testing.T) {
	b := NewScreenBuffer(2, 10, 2)
	b.Stop()
	b.Stop()
}

func TestStart_WhileRunning_Panics(t *testing.T) {
	src := newFakeSource(1, 10)
	b := NewScreenBuffer(2, 10, 2)
	b.Start(src)
	defer b.Stop()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Start on a running buffer to panic")
		}
	}()
	b.Start(src)
}
