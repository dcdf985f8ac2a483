package screenbuffer

import (
	"strings"
	"time"
)

// Line is one renderable row derived from a Record. A record with an
// embedded newline in its message expands to several Lines that share Id and
// all scalar fields but carry one chunk of the message each.
type Line struct {
	Id             int64
	Time           time.Time
	Level          int
	Facility       int
	Host           string
	Program        string
	Pid            int
	Message        string
	IsContinuation bool
}

// linesFromRecord splits rec.Message on "\n" and emits one Line per chunk.
// The split is deliberately "\n" only (not "\r\n"): a CRLF message leaves a
// trailing "\r" on every produced line. The first chunk is not a
// continuation; every later chunk is. An empty message still yields exactly
// one Line. This function is pure and total.
func linesFromRecord(rec Record) []Line {
	chunks := strings.Split(rec.Message, "\n")
	lines := make([]Line, len(chunks))
	for i, chunk := range chunks {
		lines[i] = Line{
			Id:             rec.Id,
			Time:           rec.Time,
			Level:          rec.Level,
			Facility:       rec.Facility,
			Host:           rec.Host,
			Program:        rec.Program,
			Pid:            rec.Pid,
			Message:        chunk,
			IsContinuation: i > 0,
		}
	}
	return lines
}
