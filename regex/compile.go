package regex

import (
	"fmt"

	"github.com/TypeMonkey/grammatica"
)

// Compile translates a pattern string into an immutable element tree.
// Compilation is pure: it touches no input stream and allocates no matcher
// state. A malformed pattern yields a grammatica.Error of kind
// ErrInvalidPattern naming the defect and its position within the pattern.
func Compile(text string) (*Element, error) {
	c := &compiler{pat: []rune(text)}
	elem, err := c.alternation(false)
	if err != nil {
		return nil, err
	}
	if c.pos < len(c.pat) {
		// the only way alternation stops early at top level is a stray ')'
		return nil, c.errorf("unbalanced group, unexpected ')'")
	}
	tracer().Debugf("compiled pattern /%s/", elem)
	return elem, nil
}

type compiler struct {
	pat []rune
	pos int
}

func (c *compiler) errorf(format string, args ...interface{}) *grammatica.Error {
	msg := fmt.Sprintf(format, args...)
	return grammatica.Errorf(grammatica.ErrInvalidPattern, 0, 0,
		"%s at position %d in %q", msg, c.pos, string(c.pat))
}

func (c *compiler) end() bool {
	return c.pos >= len(c.pat)
}

func (c *compiler) peek() rune {
	if c.end() {
		return 0
	}
	return c.pat[c.pos]
}

func (c *compiler) next() rune {
	r := c.pat[c.pos]
	c.pos++
	return r
}

// alternation := branch ('|' branch)*
func (c *compiler) alternation(inGroup bool) (*Element, error) {
	branches := make([]*Element, 0, 1)
	for {
		b, err := c.branch(inGroup)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
		if c.end() || c.peek() != '|' {
			break
		}
		c.next()
	}
	return altElem(branches), nil
}

// branch := piece*, ending at '|', at a closing ')' inside a group, or at the
// end of the pattern.
func (c *compiler) branch(inGroup bool) (*Element, error) {
	pieces := make([]*Element, 0, 4)
	for !c.end() && c.peek() != '|' {
		if c.peek() == ')' {
			if inGroup {
				break
			}
			// stray ')' at top level, reported by Compile
			return concatElem(pieces), nil
		}
		p, err := c.piece()
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, p)
	}
	return concatElem(pieces), nil
}

// piece := atom quantifier?
func (c *compiler) piece() (*Element, error) {
	atom, err := c.atom()
	if err != nil {
		return nil, err
	}
	if c.end() {
		return atom, nil
	}
	min, max := 1, 1
	switch c.peek() {
	case '*':
		c.next()
		min, max = 0, -1
	case '+':
		c.next()
		min, max = 1, -1
	case '?':
		c.next()
		min, max = 0, 1
	case '{':
		c.next()
		min, max, err = c.bounds()
		if err != nil {
			return nil, err
		}
	default:
		return atom, nil
	}
	// reluctant ('*?') and possessive ('*+') forms certify shorter matches
	// than the longest one and are not part of the dialect
	if !c.end() {
		switch c.peek() {
		case '?':
			return nil, c.errorf("reluctant quantifiers are not supported")
		case '+':
			return nil, c.errorf("possessive quantifiers are not supported")
		case '*':
			return nil, c.errorf("nested quantifier")
		}
	}
	return repeatElem(atom, min, max), nil
}

// bounds parses the inside of '{n}', '{n,}' or '{n,m}'. The opening brace is
// already consumed.
func (c *compiler) bounds() (int, int, error) {
	min, ok := c.number()
	if !ok {
		return 0, 0, c.errorf("malformed repetition bounds")
	}
	max := min
	if !c.end() && c.peek() == ',' {
		c.next()
		if !c.end() && c.peek() == '}' {
			max = -1
		} else {
			max, ok = c.number()
			if !ok {
				return 0, 0, c.errorf("malformed repetition bounds")
			}
		}
	}
	if c.end() || c.peek() != '}' {
		return 0, 0, c.errorf("unterminated repetition bounds")
	}
	c.next()
	if max >= 0 && max < min {
		return 0, 0, c.errorf("repetition bounds out of order, {%d,%d}", min, max)
	}
	return min, max, nil
}

func (c *compiler) number() (int, bool) {
	start := c.pos
	n := 0
	for !c.end() && c.peek() >= '0' && c.peek() <= '9' {
		n = n*10 + int(c.next()-'0')
	}
	return n, c.pos > start
}

// atom := char | '.' | '^' | '$' | escape | class | '(' alternation ')'
func (c *compiler) atom() (*Element, error) {
	switch r := c.next(); r {
	case '.':
		return &Element{op: opAny}, nil
	case '^':
		return &Element{op: opBegin}, nil
	case '$':
		return &Element{op: opEnd}, nil
	case '(':
		sub, err := c.alternation(true)
		if err != nil {
			return nil, err
		}
		if c.end() || c.peek() != ')' {
			return nil, c.errorf("unbalanced group, missing ')'")
		}
		c.next()
		return sub, nil
	case '[':
		return c.class()
	case '\\':
		return c.escape()
	case '*', '+', '?':
		return nil, c.errorf("quantifier %q without preceding element", r)
	default:
		return charElem(r), nil
	}
}

// escape handles a backslash sequence outside a character class. The
// backslash is already consumed.
func (c *compiler) escape() (*Element, error) {
	if c.end() {
		return nil, c.errorf("trailing backslash")
	}
	switch r := c.next(); r {
	case 'n':
		return charElem('\n'), nil
	case 't':
		return charElem('\t'), nil
	case 'r':
		return charElem('\r'), nil
	case 'f':
		return charElem('\f'), nil
	case 'v':
		return charElem('\v'), nil
	case 'd':
		return setElem(digitSet(false)), nil
	case 'D':
		return setElem(digitSet(true)), nil
	case 'w':
		return setElem(wordSet(false)), nil
	case 'W':
		return setElem(wordSet(true)), nil
	case 's':
		return setElem(spaceSet(false)), nil
	case 'S':
		return setElem(spaceSet(true)), nil
	default:
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return nil, c.errorf("unsupported escape \"\\%c\"", r)
		}
		return charElem(r), nil
	}
}

// class parses a character set. The opening '[' is already consumed. A ']' as
// the first member is taken literally; '-' is literal at either end of the
// set.
func (c *compiler) class() (*Element, error) {
	negate := false
	if !c.end() && c.peek() == '^' {
		c.next()
		negate = true
	}
	cs := newCharSet(negate)
	first := true
	for {
		if c.end() {
			return nil, c.errorf("unterminated character class")
		}
		if c.peek() == ']' && !first {
			c.next()
			return setElem(cs), nil
		}
		first = false
		lo, multi, err := c.classMember(cs)
		if err != nil {
			return nil, err
		}
		if multi {
			continue
		}
		if !c.end() && c.peek() == '-' && c.pos+1 < len(c.pat) && c.pat[c.pos+1] != ']' {
			c.next()
			hi, hiMulti, err := c.classMember(nil)
			if err != nil {
				return nil, err
			}
			if hiMulti {
				return nil, c.errorf("character class cannot be a range bound")
			}
			if hi < lo {
				return nil, c.errorf("character range out of order, %c-%c", lo, hi)
			}
			cs.addRange(lo, hi)
		} else {
			cs.addRune(lo)
		}
	}
}

// classMember parses one member of a character set. It either returns a
// single rune, or adds a predefined class to cs and reports multi=true.
func (c *compiler) classMember(cs *CharSet) (rune, bool, error) {
	r := c.next()
	if r != '\\' {
		return r, false, nil
	}
	if c.end() {
		return 0, false, c.errorf("trailing backslash")
	}
	switch e := c.next(); e {
	case 'n':
		return '\n', false, nil
	case 't':
		return '\t', false, nil
	case 'r':
		return '\r', false, nil
	case 'f':
		return '\f', false, nil
	case 'v':
		return '\v', false, nil
	case 'd', 'w', 's':
		if cs == nil {
			return 0, true, nil
		}
		cs.addSet(predefined(e))
		return 0, true, nil
	case 'D', 'W', 'S':
		// negated classes cannot be unioned into a range list; [^0-9]
		// style sets express the same thing
		return 0, false, c.errorf("negated class escape \"\\%c\" not allowed inside a character class", e)
	default:
		if e >= 'a' && e <= 'z' || e >= 'A' && e <= 'Z' || e >= '0' && e <= '9' {
			return 0, false, c.errorf("unsupported escape \"\\%c\"", e)
		}
		return e, false, nil
	}
}

// predefined resolves a class escape letter inside a character set.
func predefined(letter rune) *CharSet {
	switch letter {
	case 'd':
		return digitSet(false)
	case 'w':
		return wordSet(false)
	case 's':
		return spaceSet(false)
	}
	return newCharSet(false)
}
