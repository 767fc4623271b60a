package regex

import (
	"strings"
	"unicode"
)

// CharSet is a set of runes, stored as inclusive ranges with an optional
// negation flag. Sets are immutable once compiled into an element tree.
type CharSet struct {
	negate bool
	ranges []charRange
}

type charRange struct {
	lo, hi rune
}

func newCharSet(negate bool) *CharSet {
	return &CharSet{negate: negate}
}

func (cs *CharSet) addRune(r rune) {
	cs.addRange(r, r)
}

func (cs *CharSet) addRange(lo, hi rune) {
	cs.ranges = append(cs.ranges, charRange{lo, hi})
}

func (cs *CharSet) addSet(other *CharSet) {
	cs.ranges = append(cs.ranges, other.ranges...)
}

// contains reports set membership. With foldCase set, a rune is a member if
// any of its simple case variants is.
func (cs *CharSet) contains(r rune, foldCase bool) bool {
	in := cs.containsExact(r)
	if !in && foldCase {
		if lower := unicode.ToLower(r); lower != r {
			in = cs.containsExact(lower)
		}
		if !in {
			if upper := unicode.ToUpper(r); upper != r {
				in = cs.containsExact(upper)
			}
		}
	}
	if cs.negate {
		return !in
	}
	return in
}

func (cs *CharSet) containsExact(r rune) bool {
	for _, rg := range cs.ranges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return false
}

func (cs *CharSet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if cs.negate {
		b.WriteByte('^')
	}
	for _, rg := range cs.ranges {
		if rg.lo == rg.hi {
			b.WriteRune(rg.lo)
		} else {
			b.WriteRune(rg.lo)
			b.WriteByte('-')
			b.WriteRune(rg.hi)
		}
	}
	b.WriteByte(']')
	return b.String()
}

// Predefined classes for the \d, \w and \s escapes. The \D, \W and \S forms
// are the same ranges with the negation flag set.

func digitSet(negate bool) *CharSet {
	cs := newCharSet(negate)
	cs.addRange('0', '9')
	return cs
}

func wordSet(negate bool) *CharSet {
	cs := newCharSet(negate)
	cs.addRange('0', '9')
	cs.addRange('a', 'z')
	cs.addRange('A', 'Z')
	cs.addRune('_')
	return cs
}

func spaceSet(negate bool) *CharSet {
	cs := newCharSet(negate)
	for _, r := range " \t\n\r\f\v" {
		cs.addRune(r)
	}
	return cs
}
