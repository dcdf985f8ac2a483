// Package filesource adapts the backwards/forwards line-scanning machinery
// built for flat log files into the Record Source contract. A record's Id
// is the byte offset of its first byte in the file; "descending" reads
// backwards from an offset, "ascending" reads forwards from one.
package filesource

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/arborian/logscope/log"
	"github.com/arborian/logscope/reader"
	"github.com/arborian/logscope/screenbuffer"
)

const backwardsChunkSize = 4096

// Driver is a Record Source backed by a local append-only, newline
// delimited log file. When Follow is true, a background goroutine tails
// the file and pushes newly appended lines through the handler installed
// with SetPushHandler.
type Driver struct {
	path   string
	Follow bool

	// onPush is invoked from the tailing goroutine for each newly appended
	// line, with the byte offset it starts at. It is nil until a caller
	// installs one via SetPushHandler.
	mu       sync.Mutex
	onPush   func(screenbuffer.Record)
	f        *os.File
	stopTail chan struct{}
	tailDone chan struct{}
}

type direction bool

const (
	forward  direction = false
	backward direction = true
)

type queryHandle struct {
	dir     direction
	forward *reader.ForwardsLineScanner
	back    *reader.BackwardsLineScanner
	f       *os.File
	count   int
	read    int
	offset  int64
	started bool
}

func NewDriver(path string, follow bool) *Driver {
	return &Driver{path: path, Follow: follow}
}

// SetPushHandler installs the callback used to feed tailed lines back into
// the paging buffer as pushed records. Tailing starts at the end of the file
// as it stands when StartConnection runs; lines the tailing goroutine reads
// while no handler is installed are dropped.
func (d *Driver) SetPushHandler(fn func(screenbuffer.Record)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onPush = fn
}

func (d *Driver) StartConnection(ctx context.Context) error {
	f, err := os.Open(d.path)
	if err != nil {
		return fmt.Errorf("filesource: open %s: %w", d.path, err)
	}

	d.mu.Lock()
	d.f = f
	d.mu.Unlock()

	if d.Follow {
		d.startTail()
	}
	return nil
}

func (d *Driver) StopConnection(ctx context.Context) error {
	d.mu.Lock()
	f := d.f
	stopTail := d.stopTail
	tailDone := d.tailDone
	d.f = nil
	d.mu.Unlock()

	if stopTail != nil {
		close(stopTail)
		<-tailDone
	}
	if f == nil {
		return nil
	}
	return f.Close()
}

func (d *Driver) PrepareQuery(anchorId *int64, descending bool, count int) (screenbuffer.QueryHandle, error) {
	d.mu.Lock()
	path := d.path
	d.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if descending {
		var seek, whence int64 = 0, io.SeekEnd
		if anchorId != nil {
			seek, whence = *anchorId, io.SeekStart
		}
		scanner, err := reader.NewBackwardsLineScanner(f, backwardsChunkSize, seek, whence)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &queryHandle{dir: backward, back: scanner, f: f, count: count}, nil
	}

	var seek int64
	if anchorId != nil {
		seek = *anchorId
	}
	if _, err := f.Seek(seek, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}
	scanner := reader.NewForwardsLineScanner(f)
	// The anchor's own line is not part of the result; skip past it.
	if anchorId != nil && scanner.Scan() {
		seek += int64(len(scanner.Text())) + 1
	}
	return &queryHandle{dir: forward, forward: scanner, f: f, count: count, offset: seek}, nil
}

func (d *Driver) FetchRecord(handle screenbuffer.QueryHandle) (*screenbuffer.Record, error) {
	h, ok := handle.(*queryHandle)
	if !ok {
		return nil, fmt.Errorf("filesource: wrong handle type %T", handle)
	}

	if h.read >= h.count {
		return nil, nil
	}

	if h.dir == backward {
		line, offset, err := h.back.ReadLine()
		if !h.started {
			h.started = true
			// When the start position follows a newline, the first segment
			// is the empty one ending there; it is not a record.
			if len(line) == 0 && err == nil {
				line, offset, err = h.back.ReadLine()
			}
		}
		if err == io.EOF {
			h.f.Close()
			if len(line) == 0 {
				return nil, nil
			}
		} else if err != nil {
			h.f.Close()
			return nil, fmt.Errorf("filesource: %s: read backward: %w", d.path, err)
		}
		h.read++
		return &screenbuffer.Record{Id: offset, Message: string(line)}, nil
	}

	if !h.forward.Scan() {
		h.f.Close()
		if err := h.forward.Err(); err != nil {
			return nil, fmt.Errorf("filesource: %s: read forward: %w", d.path, err)
		}
		return nil, nil
	}
	text := h.forward.Text()
	lineStart := h.offset
	h.offset += int64(len(text)) + 1
	h.read++
	return &screenbuffer.Record{Id: lineStart, Message: text}, nil
}

func (d *Driver) startTail() {
	f, err := os.Open(d.path)
	if err != nil {
		return
	}
	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return
	}

	d.mu.Lock()
	d.stopTail = make(chan struct{})
	d.tailDone = make(chan struct{})
	stop, done := d.stopTail, d.tailDone
	d.mu.Unlock()

	go func() {
		defer close(done)
		defer f.Close()

		scanner := reader.NewForwardsLineScanner(f)

		for {
			select {
			case <-stop:
				return
			default:
			}

			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					log.Println("filesource:", d.path, "tail: giving up after a read error:", err)
					return
				}
				select {
				case <-stop:
					return
				case <-time.After(500 * time.Millisecond):
					continue
				}
			}

			text := scanner.Text()
			lineStart := offset
			offset += int64(len(text)) + 1

			d.mu.Lock()
			onPush := d.onPush
			d.mu.Unlock()
			if onPush == nil {
				continue
			}

			onPush(screenbuffer.Record{Id: lineStart, Message: text})
		}
	}()
}
