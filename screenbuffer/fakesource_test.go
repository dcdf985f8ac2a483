package screenbuffer

import (
	"context"
	"fmt"
	"sync"
)

// fakeSource is a synthetic, in-memory RecordSource over a contiguous range
// of integer ids [lo, hi]. Message is str(id), mirroring the distilled
// spec's concrete test scenarios. It can be told to simulate a short read
// (fewer records than requested) and to accept pushed records to exercise
// the live-tail path.
type fakeSource struct {
	mu   sync.Mutex
	lo   int64
	hi   int64
	push []Record

	started bool
	stopped bool
}

type fakeHandle struct {
	ids []int64
	i   int
}

func newFakeSource(lo, hi int64) *fakeSource {
	return &fakeSource{lo: lo, hi: hi}
}

func (f *fakeSource) StartConnection(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
	return nil
}

func (f *fakeSource) StopConnection(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

func (f *fakeSource) PrepareQuery(anchorId *int64, descending bool, count int) (QueryHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ids []int64
	if descending {
		from := f.hi
		if anchorId != nil {
			from = *anchorId - 1
		}
		for id := from; id >= f.lo && len(ids) < count; id-- {
			ids = append(ids, id)
		}
	} else {
		from := f.lo
		if anchorId != nil {
			from = *anchorId + 1
		}
		for id := from; id <= f.hi && len(ids) < count; id++ {
			ids = append(ids, id)
		}
	}

	return &fakeHandle{ids: ids}, nil
}

func (f *fakeSource) FetchRecord(handle QueryHandle) (*Record, error) {
	h, ok := handle.(*fakeHandle)
	if !ok {
		return nil, fmt.Errorf("fakeSource: wrong handle type")
	}
	if h.i >= len(h.ids) {
		return nil, nil
	}
	id := h.ids[h.i]
	h.i++
	return &Record{Id: id, Message: fmt.Sprint(id)}, nil
}

// setRange atomically extends the source's known range, simulating new rows
// landing in the backing table between fetches.
func (f *fakeSource) setRange(lo, hi int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lo, f.hi = lo, hi
}
