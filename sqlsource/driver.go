package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/arborian/logscope/screenbuffer"
)

// Driver is a Record Source backed by an embedded SQL database holding a
// "logs" table. It satisfies screenbuffer.RecordSource.
type Driver struct {
	dsn string

	mu     sync.Mutex
	db     *sql.DB
	filter Filter
}

type queryHandle struct {
	rows *sql.Rows
}

// NewDriver returns a Driver that will open dsn (a modernc.org/sqlite data
// source name) on StartConnection.
func NewDriver(dsn string) *Driver {
	return &Driver{dsn: dsn}
}

// SetFilter replaces the filter used by subsequent PrepareQuery calls.
// Callers must not invoke SetFilter concurrently with an in-flight
// PrepareQuery/FetchRecord pair; the Fetch Loop only calls the Record
// Source from one goroutine at a time, so ordinary use is already safe.
func (d *Driver) SetFilter(f Filter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filter = f
}

func (d *Driver) StartConnection(ctx context.Context) error {
	db, err := sql.Open("sqlite", d.dsn)
	if err != nil {
		return fmt.Errorf("sqlsource: open %s: %w", d.dsn, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("sqlsource: ping %s: %w", d.dsn, err)
	}
	d.mu.Lock()
	d.db = db
	d.mu.Unlock()
	return nil
}

func (d *Driver) StopConnection(ctx context.Context) error {
	d.mu.Lock()
	db := d.db
	d.db = nil
	d.mu.Unlock()
	if db == nil {
		return nil
	}
	return db.Close()
}

func (d *Driver) PrepareQuery(anchorId *int64, descending bool, count int) (screenbuffer.QueryHandle, error) {
	d.mu.Lock()
	db, filter := d.db, d.filter
	d.mu.Unlock()

	if db == nil {
		return nil, fmt.Errorf("sqlsource: PrepareQuery called before StartConnection")
	}

	query, args := buildQuery(anchorId, descending, count, filter)
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return &queryHandle{rows: rows}, nil
}

func (d *Driver) FetchRecord(handle screenbuffer.QueryHandle) (*screenbuffer.Record, error) {
	h, ok := handle.(*queryHandle)
	if !ok {
		return nil, fmt.Errorf("sqlsource: wrong handle type %T", handle)
	}

	if !h.rows.Next() {
		err := h.rows.Err()
		h.rows.Close()
		return nil, err
	}

	var (
		rec         screenbuffer.Record
		datetimeStr string
	)
	if err := h.rows.Scan(&rec.Id, &rec.Facility, &rec.Level, &rec.Host, &datetimeStr, &rec.Program, &rec.Pid, &rec.Message); err != nil {
		return nil, err
	}

	if t, err := time.Parse(time.RFC3339, datetimeStr); err == nil {
		rec.Time = t
	}

	return &rec, nil
}

// FindIdForTime returns the id of the newest record at or before t, for the
// "go to date" picker. found is false if the table has no such record.
func (d *Driver) FindIdForTime(ctx context.Context, t time.Time) (id int64, found bool, err error) {
	d.mu.Lock()
	db := d.db
	d.mu.Unlock()

	if db == nil {
		return 0, false, fmt.Errorf("sqlsource: FindIdForTime called before StartConnection")
	}

	row := db.QueryRowContext(ctx,
		"SELECT id FROM logs WHERE datetime <= ? ORDER BY id DESC LIMIT 1",
		t.Format(time.RFC3339))
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}
	return id, true, nil
}
