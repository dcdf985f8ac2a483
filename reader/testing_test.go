package reader

import (
	"os"
	"testing"

	"github.com/arborian/logscope/utils"
)

// createTestFile is a thin wrapper so this package's scanner tests, carried
// over from before the teacher's test helper was promoted to utils for
// reuse by the reader package's own read_backwards_test.go, don't need to
// change their call sites.
func createTestFile(t *testing.T, contents string, seekStuff ...int) (*os.File, int64) {
	return utils.CreateTestFile(t, contents, seekStuff...)
}

// appendToTestFile appends contents to the file behind f through a separate
// write handle, so f's own seek position is left where it was.
func appendToTestFile(t *testing.T, f *os.File, contents string) {
	w, err := os.OpenFile(f.Name(), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("Failed to open temp file for append: %v", err)
	}
	defer w.Close()
	if _, err := w.WriteString(contents); err != nil {
		t.Fatalf("Failed to append to temp file: %v", err)
	}
}
