package filterstate

import (
	"fmt"
	"time"
)

type dtSegment struct {
	start, width int
	get          func(time.Time) int
	add          func(time.Time, int) time.Time
}

var dtSegments = []dtSegment{
	{0, 4, func(t time.Time) int { return t.Year() }, func(t time.Time, d int) time.Time { return t.AddDate(d, 0, 0) }},
	{5, 2, func(t time.Time) int { return int(t.Month()) }, func(t time.Time, d int) time.Time { return t.AddDate(0, d, 0) }},
	{8, 2, func(t time.Time) int { return t.Day() }, func(t time.Time, d int) time.Time { return t.AddDate(0, 0, d) }},
	{11, 2, func(t time.Time) int { return t.Hour() }, func(t time.Time, d int) time.Time { return t.Add(time.Duration(d) * time.Hour) }},
	{14, 2, func(t time.Time) int { return t.Minute() }, func(t time.Time, d int) time.Time { return t.Add(time.Duration(d) * time.Minute) }},
	{17, 2, func(t time.Time) int { return t.Second() }, func(t time.Time, d int) time.Time { return t.Add(time.Duration(d) * time.Second) }},
}

const dtLayout = "2006-01-02 15:04:05"

// DatetimeState is the segment-addressable date/time editing state behind
// the "go to date" picker: a single moment in time with a cursor over one
// of its six segments (year/month/day/hour/minute/second), each
// independently incrementable and decrementable.
type DatetimeState struct {
	t       time.Time
	segment int
}

// NewDatetimeState returns state seeded at t, with the cursor on the first
// (year) segment.
func NewDatetimeState(t time.Time) *DatetimeState {
	return &DatetimeState{t: t}
}

// Value returns the current moment in time.
func (d *DatetimeState) Value() time.Time {
	return d.t
}

// Text renders the current value as "YYYY-MM-DD HH:MM:SS".
func (d *DatetimeState) Text() string {
	return d.t.Format(dtLayout)
}

// Position returns the (offset, width) of the active segment within
// Text(), for placing a cursor highlight.
func (d *DatetimeState) Position() (offset, width int) {
	s := dtSegments[d.segment]
	return s.start, s.width
}

// MoveLeft moves the cursor to the previous segment, clamped at year.
func (d *DatetimeState) MoveLeft() {
	if d.segment > 0 {
		d.segment--
	}
}

// MoveRight moves the cursor to the next segment, clamped at second.
func (d *DatetimeState) MoveRight() {
	if d.segment < len(dtSegments)-1 {
		d.segment++
	}
}

// Increment adds one unit to the active segment.
func (d *DatetimeState) Increment() {
	d.t = dtSegments[d.segment].add(d.t, 1)
}

// Decrement subtracts one unit from the active segment.
func (d *DatetimeState) Decrement() {
	d.t = dtSegments[d.segment].add(d.t, -1)
}

func (d *DatetimeState) String() string {
	return fmt.Sprintf("DatetimeState(%s, segment=%d)", d.Text(), d.segment)
}
