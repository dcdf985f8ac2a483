package sqlsource

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func newTestDriver(t *testing.T) *Driver {
	path := filepath.Join(t.TempDir(), "logs.db")
	setup, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open setup db: %v", err)
	}
	defer setup.Close()

	schema := `CREATE TABLE logs (
		id INTEGER PRIMARY KEY,
		facility_num INTEGER,
		level_num INTEGER,
		host TEXT,
		datetime TEXT,
		program TEXT,
		pid INTEGER,
		message TEXT
	)`
	if _, err := setup.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 5; i++ {
		_, err := setup.Exec(
			"INSERT INTO logs (id, facility_num, level_num, host, datetime, program, pid, message) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			i, 1, 6, "host1", base.Add(time.Duration(i)*time.Hour).Format(time.RFC3339), "sshd", 100, "message "+string(rune('0'+i)),
		)
		if err != nil {
			t.Fatalf("insert row %d: %v", i, err)
		}
	}

	d := NewDriver(path)
	ctx := context.Background()
	if err := d.StartConnection(ctx); err != nil {
		t.Fatalf("StartConnection: %v", err)
	}
	t.Cleanup(func() { d.StopConnection(ctx) })
	return d
}

func TestDriver_FetchRecordDescendingFromNil(t *testing.T) {
	d := newTestDriver(t)

	handle, err := d.PrepareQuery(nil, true, 10)
	if err != nil {
		t.Fatalf("PrepareQuery: %v", err)
	}

	var ids []int64
	for {
		rec, err := d.FetchRecord(handle)
		if err != nil {
			t.Fatalf("FetchRecord: %v", err)
		}
		if rec == nil {
			break
		}
		ids = append(ids, rec.Id)
	}

	want := []int64{5, 4, 3, 2, 1}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
}

func TestDriver_FindIdForTime(t *testing.T) {
	d := newTestDriver(t)

	at := time.Date(2024, 1, 1, 3, 30, 0, 0, time.UTC)
	id, found, err := d.FindIdForTime(context.Background(), at)
	if err != nil {
		t.Fatalf("FindIdForTime: %v", err)
	}
	if !found || id != 3 {
		t.Fatalf("expected id=3 found=true, got id=%d found=%v", id, found)
	}
}

func TestDriver_FindIdForTimeBeforeAllRows(t *testing.T) {
	d := newTestDriver(t)

	at := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	_, found, err := d.FindIdForTime(context.Background(), at)
	if err != nil {
		t.Fatalf("FindIdForTime: %v", err)
	}
	if found {
		t.Fatalf("expected no row found before all data")
	}
}
