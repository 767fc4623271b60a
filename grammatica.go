package grammatica

import "fmt"

// --- Token categories -------------------------------------------------------

// TokType is a category type for tokens. Token patterns assign one TokType per
// lexical rule; generated parsers and hand-written grammars use the same values
// as terminal identifiers. Applications are free to choose any non-negative
// values. Negative values are reserved.
type TokType int

// EOF is the reserved token category signalling exhausted input. It is never
// carried by an emitted token; it appears as the lookahead value handed to a
// production selector once the token source is drained.
const EOF TokType = -1

// TokTypeStringer translates token categories to printable names. A scanner
// publishes one so that diagnostics and tree dumps can show symbolic names.
type TokTypeStringer func(TokType) string

// --- Spans ------------------------------------------------------------------

// Span is a small type for capturing a run of input characters. Tokens and
// parse-tree nodes track which rune positions of the input they cover. A span
// denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
