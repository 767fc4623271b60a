package scanner

import (
	"fmt"
	"io"
	"unicode"

	"github.com/TypeMonkey/grammatica"
	"github.com/TypeMonkey/grammatica/regex"
)

// TokenSource is the surface the parse driver consumes. Both the Tokenizer
// and the lexmachine adapter in sub-package lexmach satisfy it.
type TokenSource interface {
	// Next returns the next significant token, (nil, nil) once the input
	// is exhausted, or a classified error.
	Next() (*Token, error)

	// Position returns the 1-based line and column of the current input
	// position.
	Position() (line, col int)
}

// Tokenizer performs lexical analysis over one character stream. It is not
// safe for concurrent use: Next advances the stream position and, with
// history tracking on, the token links. Independent tokenizers over distinct
// streams may run concurrently; compiled pattern trees are shared read-only.
type Tokenizer struct {
	rd         *regex.Reader
	patterns   []*compiledPattern
	ignoreCase bool
	useList    bool
	run        *tokenRun
}

var _ TokenSource = (*Tokenizer)(nil)

// Option configures a tokenizer.
type Option func(t *Tokenizer)

// CaseInsensitive makes all pattern matching case-insensitive. The flag is
// applied per matching session, so compiled patterns stay shareable with
// case-sensitive tokenizers.
func CaseInsensitive(b bool) Option {
	return func(t *Tokenizer) {
		t.ignoreCase = b
	}
}

// UseTokenList enables history tracking from the start of the run.
func UseTokenList(b bool) Option {
	return func(t *Tokenizer) {
		t.useList = b
	}
}

// New creates a tokenizer over a character stream. Patterns are registered
// separately with AddPattern.
func New(input io.Reader, opts ...Option) *Tokenizer {
	t := &Tokenizer{rd: regex.NewReader(input), run: newTokenRun()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewFromString creates a tokenizer over a string.
func NewFromString(input string, opts ...Option) *Tokenizer {
	t := &Tokenizer{rd: regex.NewStringReader(input), run: newTokenRun()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddPattern validates, compiles and registers a pattern. Registration order
// is significant: it is the tie-break between equally long matches. On error
// the tokenizer is left unchanged.
func (t *Tokenizer) AddPattern(p TokenPattern) error {
	cp, err := compilePattern(p)
	if err != nil {
		return err
	}
	tracer().Debugf("registered pattern %s", p)
	t.patterns = append(t.patterns, cp)
	return nil
}

// AddPatterns registers patterns in order, stopping at the first invalid one.
func (t *Tokenizer) AddPatterns(patterns ...TokenPattern) error {
	for _, p := range patterns {
		if err := t.AddPattern(p); err != nil {
			return err
		}
	}
	return nil
}

// SetUseTokenList toggles history tracking. Toggling has no effect on tokens
// already emitted: earlier tokens stay linked, later ones are only appended
// while the setting is on.
func (t *Tokenizer) SetUseTokenList(b bool) {
	t.useList = b
}

// GetUseTokenList reports whether history tracking is on.
func (t *Tokenizer) GetUseTokenList() bool {
	return t.useList
}

// Tokens returns the history of the run so far, oldest first. Empty unless
// history tracking was on.
func (t *Tokenizer) Tokens() []*Token {
	return t.run.tokens()
}

// Position returns the 1-based line and column of the current input
// position.
func (t *Tokenizer) Position() (int, int) {
	return t.rd.Line(), t.rd.Col()
}

// Next finds the next token. At the current position every registered
// pattern is attempted; the strictly longest match wins, ties go to the
// pattern registered first. Ignored lexemes are skipped and the search
// repeats behind them. A lexeme matched by an error pattern is consumed
// before the classified error is returned, so the following call continues
// behind it. Once the input is exhausted, Next returns (nil, nil).
//
// With no matching pattern at a position, the offending character is
// consumed and an error of kind ErrUnexpectedChar is returned; subsequent
// calls continue behind the character.
func (t *Tokenizer) Next() (*Token, error) {
	for {
		if _, err := t.rd.Peek(0); err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, t.rd.Err(err)
		}
		best, bestLen, err := t.resolve()
		if err != nil {
			return nil, err
		}
		line, col := t.rd.Line(), t.rd.Col()
		if best == nil {
			r, _ := t.rd.Peek(0)
			t.rd.Commit(1)
			return nil, grammatica.Errorf(grammatica.ErrUnexpectedChar, line, col,
				"unexpected character \"%c\" (u+%04x)", r, r)
		}
		from := t.rd.Offset()
		lexeme := t.rd.Commit(bestLen)
		span := grammatica.Span{from, from + uint64(bestLen)}
		p := best.pattern
		switch {
		case p.Error:
			msg := p.ErrorMessage
			if msg == "" {
				msg = fmt.Sprintf("bad token %q", lexeme)
			}
			return nil, grammatica.NewError(grammatica.ErrErrorToken, msg, line, col)
		case p.Ignore:
			tracer().Debugf("ignoring %s lexeme %q", p.Name, lexeme)
			continue
		}
		tok := &Token{typ: p.ID, name: p.Name, lexeme: lexeme, line: line, col: col, span: span, index: -1}
		if t.useList {
			t.run.append(tok)
		}
		return tok, nil
	}
}

// resolve runs the ambiguity-resolution algorithm at the current position:
// attempt every pattern in registration order, keep the strictly longest
// match. Replacing only on a strictly greater length makes the insertion
// order the tie-break.
func (t *Tokenizer) resolve() (*compiledPattern, int, error) {
	var best *compiledPattern
	bestLen := 0
	for _, cp := range t.patterns {
		var length int
		if cp.elem == nil {
			length = t.matchLiteral(cp.lit)
		} else {
			if cp.matcher == nil {
				cp.matcher = regex.NewMatcher(cp.elem, t.rd)
			} else {
				cp.matcher.Reset(t.rd)
			}
			cp.matcher.SetIgnoreCase(t.ignoreCase)
			var err error
			length, err = cp.matcher.Match()
			if err != nil {
				return nil, 0, err
			}
		}
		if length > bestLen {
			best, bestLen = cp, length
		}
	}
	return best, bestLen, nil
}

// matchLiteral compares a literal pattern against the look-ahead, honoring
// the tokenizer's case sensitivity. Returns the literal's length on a match,
// 0 otherwise.
func (t *Tokenizer) matchLiteral(lit []rune) int {
	for i, want := range lit {
		r, err := t.rd.Peek(i)
		if err != nil {
			return 0
		}
		if r != want && !(t.ignoreCase && unicode.ToLower(r) == unicode.ToLower(want)) {
			return 0
		}
	}
	return len(lit)
}
