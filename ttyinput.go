package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-tty"
	"golang.org/x/term"

	"github.com/arborian/logscope/log"
)

// ttyReader is the minimal keyboard source the headless dump command needs: a
// way to detect the quit key without engaging the full tui window stack.
type ttyReader interface {
	ReadRune() (rune, error)
}

type stdinTTY struct {
	reader *bufio.Reader
}

func (s *stdinTTY) ReadRune() (rune, error) {
	r, _, err := s.reader.ReadRune()
	return r, err
}

// ensureTty returns a keyboard source for the dump command's "press q to
// stop following" control. If stdin is itself a terminal it is put into
// raw mode and read directly; otherwise (stdin is piped log content)
// /dev/tty is reopened so keys can still reach the program.
func ensureTty() (reader ttyReader, cleanup func() error, err error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Println("logscope: reopening /dev/tty for dump-mode key input")
		t, err := tty.Open()
		if err != nil {
			return nil, nil, errors.New("failed to open /dev/tty: " + err.Error())
		}
		return t, t.Close, nil
	}

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, nil, errors.New("failed to make stdin raw: " + err.Error())
	}

	oldRawMode := log.Default().RawMode()
	log.Default().SetRawMode(true)
	reader = &stdinTTY{reader: bufio.NewReader(os.Stdin)}
	cleanup = func() error {
		log.Default().SetRawMode(oldRawMode)
		return term.Restore(int(os.Stdin.Fd()), oldState)
	}
	return reader, cleanup, nil
}

// prepareSeekableFile returns a path to a seekable file holding filename's
// contents. filesource.Driver needs random access (for backwards scanning)
// that a pipe or socket can't provide, so "-" or any non-seekable input is
// first buffered into a temporary file, mirroring the original
// implementation's handling of unseekable stdin.
func prepareSeekableFile(filename string) (path string, cleanup func(), err error) {
	var f *os.File
	if filename == "-" {
		f = os.Stdin
	} else {
		f, err = os.Open(filename)
		if err != nil {
			return "", nil, errors.New("failed to open input: " + err.Error())
		}
	}

	if _, err := f.Seek(0, io.SeekCurrent); err == nil {
		// Already seekable; nothing to buffer.
		name := f.Name()
		cleanup = func() {
			if f != os.Stdin {
				f.Close()
			}
		}
		return name, cleanup, nil
	}

	log.Println("logscope: input is not seekable, buffering through a temporary file")
	tmp, err := os.CreateTemp("", "logscope-*.log")
	if err != nil {
		return "", nil, errors.New("failed to create temp file: " + err.Error())
	}
	tmpName := tmp.Name()

	go func(w *os.File, r *os.File) {
		_, copyErr := io.Copy(w, r)
		closeErr := w.Close()
		alreadyClosed := closeErr != nil && strings.HasSuffix(closeErr.Error(), "file already closed")
		if closeErr != nil && !alreadyClosed {
			log.Println("logscope: failed to close temp file writer:", closeErr)
		}
		if copyErr != nil && copyErr != io.EOF {
			log.Println("logscope: failed to buffer input:", copyErr)
		}
	}(tmp, f)

	cleanup = func() {
		if err := os.Remove(tmpName); err != nil && !os.IsNotExist(err) {
			log.Println("logscope: failed to remove temp file:", err)
		}
	}
	return tmpName, cleanup, nil
}
