package regex

import (
	"io"
	"unicode"

	"github.com/TypeMonkey/grammatica"
)

// maxMatchDepth bounds the element-tree nesting a single match attempt will
// explore. Compiled trees are as shallow as the pattern that produced them,
// so the cap only fires on pathologically nested patterns.
const maxMatchDepth = 10000

// Matcher is one matching session, binding a compiled element tree to a
// look-ahead reader. A matcher may be reused for any number of attempts and
// re-targeted to a new reader with Reset, but must not be shared between
// concurrent attempts: MatchFrom mutates the session state.
type Matcher struct {
	elem    *Element
	rd      *Reader
	fold    bool
	start   int
	length  int
	readEOF bool
}

// NewMatcher creates a matching session for a compiled pattern over a reader.
func NewMatcher(elem *Element, rd *Reader) *Matcher {
	m := &Matcher{elem: elem}
	m.Reset(rd)
	return m
}

// Reset re-targets the matcher to a reader and clears all match state. The
// case-sensitivity setting survives a reset.
func (m *Matcher) Reset(rd *Reader) {
	m.rd = rd
	m.start = 0
	m.length = -1
	m.readEOF = false
}

// SetIgnoreCase switches the session to case-insensitive comparisons. The
// flag lives on the session, not in the compiled tree, so one tree serves
// both sensitivities.
func (m *Matcher) SetIgnoreCase(ignore bool) {
	m.fold = ignore
}

// IgnoreCase reports whether the session compares case-insensitively.
func (m *Matcher) IgnoreCase() bool {
	return m.fold
}

// Match attempts a match anchored at the reader's committed position.
func (m *Matcher) Match() (int, error) {
	return m.MatchFrom(0)
}

// MatchFrom attempts a match anchored exactly at the given peek offset. It
// returns the length of the longest match the pattern can certify there, or
// -1 if the pattern does not match. Quantifiers and alternation branches are
// explored exhaustively, so the reported length is the true longest match at
// this offset, not a greedy approximation.
//
// A nil error with length -1 is a definitive mismatch. An I/O failure of the
// underlying reader surfaces as an error of kind ErrIO.
func (m *Matcher) MatchFrom(offset int) (int, error) {
	s := &session{rd: m.rd, fold: m.fold}
	end := s.match(m.elem, offset, 0, func(o int) int { return o })
	m.start = offset
	m.readEOF = s.readEOF
	if s.err != nil {
		m.length = -1
		return -1, s.err
	}
	if end < 0 {
		m.length = -1
		return -1, nil
	}
	m.length = end - offset
	return m.length, nil
}

// Start returns the peek offset of the last attempt.
func (m *Matcher) Start() int {
	return m.start
}

// Length returns the longest match length found by the last attempt, or -1.
func (m *Matcher) Length() int {
	return m.length
}

// HasReadEOF reports whether the last attempt ran off the end of the
// available input. For a streaming source this signals that a longer match
// might exist once more input arrives, so the attempt is worth repeating; it
// does not mean the attempt failed.
func (m *Matcher) HasReadEOF() bool {
	return m.readEOF
}

// session is the state of one match attempt. It is created per attempt and
// never shared, so backtracking branches cannot corrupt each other's
// bookkeeping.
type session struct {
	rd      *Reader
	fold    bool
	readEOF bool
	err     error
}

// cont is a match continuation: given the offset an element matched up to, it
// returns the furthest offset the rest of the pattern reaches from there, or
// -1 if no completion exists.
type cont func(off int) int

// match evaluates elem anchored at off and returns the furthest end offset
// reachable by elem followed by k, or -1. Every branch that could yield a
// longer overall match is explored.
func (s *session) match(elem *Element, off, depth int, k cont) int {
	if s.err != nil {
		return -1
	}
	if depth > maxMatchDepth {
		s.err = grammatica.Errorf(grammatica.ErrInvalidPattern, s.rd.Line(), s.rd.Col(),
			"pattern too complex, exploration exceeds depth %d", maxMatchDepth)
		return -1
	}
	switch elem.op {
	case opChar:
		r, err := s.peek(off)
		if err != nil {
			return -1
		}
		if !s.eqRune(r, elem.ch) {
			return -1
		}
		return k(off + 1)
	case opAny:
		r, err := s.peek(off)
		if err != nil {
			return -1
		}
		if r == '\n' || r == '\r' {
			return -1
		}
		return k(off + 1)
	case opSet:
		r, err := s.peek(off)
		if err != nil {
			return -1
		}
		if !elem.set.contains(r, s.fold) {
			return -1
		}
		return k(off + 1)
	case opBegin:
		if s.rd.Offset() == 0 && off == 0 {
			return k(off)
		}
		return -1
	case opEnd:
		if _, err := s.peek(off); err == io.EOF {
			return k(off)
		}
		return -1
	case opConcat:
		var step func(i, o int) int
		step = func(i, o int) int {
			if i == len(elem.subs) {
				return k(o)
			}
			return s.match(elem.subs[i], o, depth+1, func(o2 int) int {
				return step(i+1, o2)
			})
		}
		return step(0, off)
	case opAlt:
		best := -1
		for _, sub := range elem.subs {
			if end := s.match(sub, off, depth+1, k); end > best {
				best = end
			}
		}
		return best
	case opRepeat:
		sub := elem.subs[0]
		var rep func(count, o int) int
		rep = func(count, o int) int {
			best := -1
			if count >= elem.min {
				best = k(o)
			}
			if elem.max < 0 || count < elem.max {
				end := s.match(sub, o, depth+1, func(o2 int) int {
					if o2 == o {
						// the iteration matched nothing; repeating it
						// covers any outstanding minimum (min <= max
						// holds for every compiled tree) without ever
						// advancing, so complete here instead of
						// cycling
						return k(o)
					}
					return rep(count+1, o2)
				})
				if end > best {
					best = end
				}
			}
			return best
		}
		return rep(0, off)
	}
	return -1
}

// peek reads one rune of look-ahead, recording end-of-input and sticky I/O
// failures in the session.
func (s *session) peek(off int) (rune, error) {
	r, err := s.rd.Peek(off)
	if err == io.EOF {
		s.readEOF = true
		return 0, err
	}
	if err != nil {
		s.err = s.rd.Err(err)
		return 0, err
	}
	return r, nil
}

func (s *session) eqRune(a, b rune) bool {
	if a == b {
		return true
	}
	if !s.fold {
		return false
	}
	return unicode.ToLower(a) == unicode.ToLower(b)
}
