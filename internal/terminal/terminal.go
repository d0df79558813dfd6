// Package terminal reads passwords from the user without echoing them.
package terminal

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	apperrors "github.com/khanhnv2901/pwcheck/internal/shared/errors"
)

// MaskedReader returns one completed password per call.
type MaskedReader interface {
	ReadMaskedLine() (string, error)
}

const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyDelete    = 0x7f
)

// RawReader puts a terminal into raw mode and echoes one '*' per character.
type RawReader struct {
	in  *os.File
	out io.Writer
	r   *bufio.Reader
}

// NewRawReader wraps a terminal file descriptor.
func NewRawReader(in *os.File, out io.Writer) *RawReader {
	return NewRawReaderFrom(in, bufio.NewReader(in), out)
}

// NewRawReaderFrom reads keystrokes through br, a buffer the caller also uses
// for other input on the same terminal. in is only used to switch modes.
func NewRawReaderFrom(in *os.File, br *bufio.Reader, out io.Writer) *RawReader {
	return &RawReader{in: in, out: out, r: br}
}

// ReadMaskedLine reads until Enter. The terminal state is restored before
// returning.
func (rr *RawReader) ReadMaskedLine() (string, error) {
	fd := int(rr.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return "", err
	}
	defer func() { _ = term.Restore(fd, state) }()

	return readMasked(rr.r, rr.out)
}

// LineReader reads a plain line, for piped or redirected input where there
// is nothing to echo to.
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader wraps any reader.
func NewLineReader(in io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(in)}
}

func (lr *LineReader) ReadMaskedLine() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewReader picks RawReader when in is a terminal and LineReader otherwise.
func NewReader(in *os.File, out io.Writer) MaskedReader {
	if IsTerminal(in) {
		return NewRawReader(in, out)
	}
	return NewLineReader(in)
}

// readMasked implements the key handling shared by every raw terminal:
// Enter finishes, Backspace/Delete erase one character, Ctrl-C aborts and
// Ctrl-D on an empty line signals EOF.
func readMasked(r io.RuneReader, w io.Writer) (string, error) {
	var buf []rune
	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}

		switch ch {
		case '\r', '\n':
			_, _ = io.WriteString(w, "\r\n")
			return string(buf), nil
		case keyBackspace, keyDelete:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				_, _ = io.WriteString(w, "\b \b")
			}
		case keyCtrlC:
			_, _ = io.WriteString(w, "\r\n")
			return "", apperrors.ErrInterrupted
		case keyCtrlD:
			if len(buf) == 0 {
				return "", io.EOF
			}
		default:
			buf = append(buf, ch)
			_, _ = io.WriteString(w, "*")
		}
	}
}
