package regex

import (
	"fmt"
	"strings"
)

// opCode enumerates the element kinds of a compiled pattern. The set is
// closed: session.match switches exhaustively over it.
type opCode int8

const (
	opChar   opCode = iota // a single rune
	opAny                  // '.', any rune except line terminators
	opSet                  // a character set
	opConcat               // sequence of sub-elements
	opAlt                  // alternation over sub-elements
	opRepeat               // repetition of subs[0], bounds in min/max
	opBegin                // '^', start of input
	opEnd                  // '$', end of input
)

// Element is one node of a compiled pattern tree. Elements are immutable
// after compilation and may be shared read-only between any number of
// matchers.
type Element struct {
	op   opCode
	ch   rune
	set  *CharSet
	subs []*Element
	min  int // repetition bounds; max < 0 means unbounded
	max  int
}

func charElem(r rune) *Element {
	return &Element{op: opChar, ch: r}
}

func setElem(cs *CharSet) *Element {
	return &Element{op: opSet, set: cs}
}

func concatElem(subs []*Element) *Element {
	if len(subs) == 1 {
		return subs[0]
	}
	return &Element{op: opConcat, subs: subs}
}

func altElem(subs []*Element) *Element {
	if len(subs) == 1 {
		return subs[0]
	}
	return &Element{op: opAlt, subs: subs}
}

func repeatElem(sub *Element, min, max int) *Element {
	return &Element{op: opRepeat, subs: []*Element{sub}, min: min, max: max}
}

// String renders the element tree back into pattern-like syntax. Intended for
// tracing and error messages, not as a parseable round trip.
func (e *Element) String() string {
	switch e.op {
	case opChar:
		return string(e.ch)
	case opAny:
		return "."
	case opSet:
		return e.set.String()
	case opBegin:
		return "^"
	case opEnd:
		return "$"
	case opConcat:
		var b strings.Builder
		for _, sub := range e.subs {
			b.WriteString(sub.String())
		}
		return b.String()
	case opAlt:
		parts := make([]string, len(e.subs))
		for i, sub := range e.subs {
			parts[i] = sub.String()
		}
		return "(" + strings.Join(parts, "|") + ")"
	case opRepeat:
		sub := "(" + e.subs[0].String() + ")"
		switch {
		case e.min == 0 && e.max < 0:
			return sub + "*"
		case e.min == 1 && e.max < 0:
			return sub + "+"
		case e.min == 0 && e.max == 1:
			return sub + "?"
		case e.max < 0:
			return fmt.Sprintf("%s{%d,}", sub, e.min)
		case e.min == e.max:
			return fmt.Sprintf("%s{%d}", sub, e.min)
		}
		return fmt.Sprintf("%s{%d,%d}", sub, e.min, e.max)
	}
	return "?"
}
