package filterstate

import (
	"testing"
	"time"
)

func TestDatetimeState_TextFormat(t *testing.T) {
	d := NewDatetimeState(time.Date(2024, 3, 5, 9, 30, 15, 0, time.UTC))
	if got := d.Text(); got != "2024-03-05 09:30:15" {
		t.Fatalf("got %q", got)
	}
}

func TestDatetimeState_IncrementActiveSegment(t *testing.T) {
	d := NewDatetimeState(time.Date(2024, 3, 5, 9, 30, 15, 0, time.UTC))
	d.MoveRight() // month
	d.Increment()
	if got := d.Text(); got != "2024-04-05 09:30:15" {
		t.Fatalf("got %q", got)
	}
}

func TestDatetimeState_PositionTracksSegment(t *testing.T) {
	d := NewDatetimeState(time.Date(2024, 3, 5, 9, 30, 15, 0, time.UTC))
	offset, width := d.Position()
	if offset != 0 || width != 4 {
		t.Fatalf("expected year segment (0,4), got (%d,%d)", offset, width)
	}
	d.MoveRight()
	offset, width = d.Position()
	if offset != 5 || width != 2 {
		t.Fatalf("expected month segment (5,2), got (%d,%d)", offset, width)
	}
}

func TestDatetimeState_MoveLeftClampsAtYear(t *testing.T) {
	d := NewDatetimeState(time.Now())
	d.MoveLeft()
	d.MoveLeft()
	offset, _ := d.Position()
	if offset != 0 {
		t.Fatalf("expected clamp to year segment, got offset %d", offset)
	}
}
