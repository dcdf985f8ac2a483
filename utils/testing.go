package utils

import (
	"io"
	"os"
	"path"
	"testing"
)

// CreateTestFile creates a temporary file with the given contents and
// returns the open handle along with the seek position from the start of
// the file. seekStuff is either empty (seek to start), one int (positive ==
// SeekStart, negative == that many bytes back from SeekEnd), or an
// (offset, whence) pair.
func CreateTestFile(t *testing.T, contents string, seekStuff ...int) (*os.File, int64) {
	filepath := path.Join(t.TempDir(), "test.txt")
	if err := os.WriteFile(filepath, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	f, err := os.Open(filepath)
	if err != nil {
		t.Fatalf("Failed to open temp file: %v", err)
	}

	var seek, whence int
	switch len(seekStuff) {
	case 0:
		seek, whence = 0, io.SeekStart
	case 1:
		seek = seekStuff[0]
		if seek >= 0 {
			whence = io.SeekStart
		} else {
			whence = io.SeekEnd
		}
	case 2:
		seek, whence = seekStuff[0], seekStuff[1]
	default:
		panic("utils.CreateTestFile: too many arguments")
	}

	var pos int64
	if seek != 0 || whence != io.SeekStart {
		pos, err = f.Seek(int64(seek), whence)
		if err != nil {
			t.Fatalf("Failed to seek temp file: %v", err)
		}
	}

	t.Cleanup(func() {
		if err := f.Close(); err != nil {
			t.Fatalf("Failed to close temp file: %v", err)
		}
	})

	return f, pos
}
