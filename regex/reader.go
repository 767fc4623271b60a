package regex

import (
	"bufio"
	"io"
	"strings"

	"github.com/TypeMonkey/grammatica"
)

// Reader is a look-ahead character stream. It decodes runes from an io.Reader
// and lets callers peek an arbitrary distance beyond the committed read
// position without consuming anything. Peeking is idempotent: the same
// relative offset always yields the same rune until Commit advances the
// stream. The committed position is tracked as 1-based line and column.
//
// End of input and I/O failures are kept apart: Peek reports io.EOF for the
// former and the wrapped source error for the latter.
type Reader struct {
	in     *bufio.Reader
	lookup []rune // peeked but uncommitted runes
	ioErr  error  // sticky source error, never io.EOF
	eof    bool   // source exhausted
	line   int    // committed position, 1-based
	col    int
	offset uint64 // committed rune offset from start of input
}

// NewReader creates a look-ahead reader over an io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{in: bufio.NewReader(r), line: 1, col: 1}
}

// NewStringReader creates a look-ahead reader over a string.
func NewStringReader(s string) *Reader {
	return NewReader(strings.NewReader(s))
}

// fill decodes runes from the source until at least n runes are buffered, the
// source is exhausted, or an I/O error occurs.
func (rd *Reader) fill(n int) {
	for len(rd.lookup) < n && !rd.eof && rd.ioErr == nil {
		r, _, err := rd.in.ReadRune()
		if err == io.EOF {
			rd.eof = true
			return
		}
		if err != nil {
			rd.ioErr = err
			return
		}
		rd.lookup = append(rd.lookup, r)
	}
}

// Peek returns the rune at the given distance from the committed position
// without consuming it. Offset 0 denotes the next unconsumed rune. Peek
// returns io.EOF beyond the end of input, and the source's error verbatim if
// reading failed.
func (rd *Reader) Peek(offset int) (rune, error) {
	rd.fill(offset + 1)
	if offset < len(rd.lookup) {
		return rd.lookup[offset], nil
	}
	if rd.ioErr != nil {
		return 0, rd.ioErr
	}
	return 0, io.EOF
}

// Text materializes the peeked runes in [offset, offset+length) as a string.
// The range must have been certified by earlier Peek calls.
func (rd *Reader) Text(offset, length int) string {
	rd.fill(offset + length)
	end := offset + length
	if end > len(rd.lookup) {
		end = len(rd.lookup)
	}
	if offset >= end {
		return ""
	}
	return string(rd.lookup[offset:end])
}

// Commit consumes n peeked runes, advancing the committed position and the
// line/column bookkeeping. It returns the consumed text.
func (rd *Reader) Commit(n int) string {
	rd.fill(n)
	if n > len(rd.lookup) {
		n = len(rd.lookup)
	}
	consumed := rd.lookup[:n]
	for _, r := range consumed {
		if r == '\n' {
			rd.line++
			rd.col = 1
		} else {
			rd.col++
		}
	}
	text := string(consumed)
	rd.lookup = rd.lookup[n:]
	rd.offset += uint64(n)
	return text
}

// Line returns the 1-based line of the committed position.
func (rd *Reader) Line() int {
	return rd.line
}

// Col returns the 1-based column of the committed position.
func (rd *Reader) Col() int {
	return rd.col
}

// Offset returns the committed rune offset from the start of the input.
func (rd *Reader) Offset() uint64 {
	return rd.offset
}

// Err converts a Peek failure into a classified error. io.EOF yields nil.
func (rd *Reader) Err(err error) error {
	if err == nil || err == io.EOF {
		return nil
	}
	return grammatica.Errorf(grammatica.ErrIO, rd.line, rd.col, "cannot read input: %v", err)
}
