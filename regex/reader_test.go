package regex

import (
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestReaderPeekIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.regex")
	defer teardown()
	//
	rd := NewStringReader("hello")
	for round := 0; round < 3; round++ {
		for i, want := range []rune("hello") {
			r, err := rd.Peek(i)
			if err != nil {
				t.Fatalf("round %d: Peek(%d) failed: %v", round, i, err)
			}
			if r != want {
				t.Errorf("round %d: Peek(%d) = %q, want %q", round, i, r, want)
			}
		}
	}
	if _, err := rd.Peek(5); err != io.EOF {
		t.Errorf("Peek beyond end: expected io.EOF, got %v", err)
	}
	if rd.Offset() != 0 {
		t.Errorf("peeking must not advance the committed position, offset is %d", rd.Offset())
	}
}

func TestReaderCommitTracksPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.regex")
	defer teardown()
	//
	rd := NewStringReader("ab\ncd\n")
	if rd.Line() != 1 || rd.Col() != 1 {
		t.Fatalf("fresh reader at (%d,%d), want (1,1)", rd.Line(), rd.Col())
	}
	if text := rd.Commit(2); text != "ab" {
		t.Errorf("Commit(2) = %q, want \"ab\"", text)
	}
	if rd.Line() != 1 || rd.Col() != 3 {
		t.Errorf("after \"ab\" at (%d,%d), want (1,3)", rd.Line(), rd.Col())
	}
	if text := rd.Commit(1); text != "\n" {
		t.Errorf("Commit(1) = %q, want newline", text)
	}
	if rd.Line() != 2 || rd.Col() != 1 {
		t.Errorf("after newline at (%d,%d), want (2,1)", rd.Line(), rd.Col())
	}
	rd.Commit(3)
	if rd.Line() != 3 || rd.Col() != 1 {
		t.Errorf("after draining at (%d,%d), want (3,1)", rd.Line(), rd.Col())
	}
	if rd.Offset() != 6 {
		t.Errorf("offset is %d, want 6", rd.Offset())
	}
}

func TestReaderText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.regex")
	defer teardown()
	//
	rd := NewStringReader("tokenizer")
	if s := rd.Text(0, 5); s != "token" {
		t.Errorf("Text(0,5) = %q, want \"token\"", s)
	}
	if s := rd.Text(5, 4); s != "izer" {
		t.Errorf("Text(5,4) = %q, want \"izer\"", s)
	}
	rd.Commit(5)
	if s := rd.Text(0, 4); s != "izer" {
		t.Errorf("Text after commit = %q, want \"izer\"", s)
	}
}

// failingReader errors after yielding a prefix.
type failingReader struct {
	prefix io.Reader
	failed bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	n, err := f.prefix.Read(p)
	if err == io.EOF {
		f.failed = true
		return n, io.ErrUnexpectedEOF
	}
	return n, err
}

func TestReaderKeepsIOErrorDistinctFromEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.regex")
	defer teardown()
	//
	rd := NewReader(&failingReader{prefix: strings.NewReader("ab")})
	if _, err := rd.Peek(0); err != nil {
		t.Fatalf("Peek(0) failed: %v", err)
	}
	if _, err := rd.Peek(2); err == nil || err == io.EOF {
		t.Errorf("expected a propagated I/O error, got %v", err)
	}
}

func TestReaderUnicode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.regex")
	defer teardown()
	//
	rd := NewStringReader("añb")
	r, err := rd.Peek(1)
	if err != nil || r != 'ñ' {
		t.Errorf("Peek(1) = %q, %v, want ñ", r, err)
	}
	if text := rd.Commit(3); text != "añb" {
		t.Errorf("Commit(3) = %q", text)
	}
	if rd.Offset() != 3 {
		t.Errorf("offset counts runes, not bytes: got %d, want 3", rd.Offset())
	}
}
