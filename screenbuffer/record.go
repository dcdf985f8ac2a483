package screenbuffer

import "time"

// Record is one row produced by a Record Source. Identity is Id; every other
// field is opaque to the paging buffer except Message, which the line model
// splits on newlines.
type Record struct {
	Id       int64
	Time     time.Time
	Level    int
	Facility int
	Host     string
	Program  string
	Pid      int
	Message  string
}
