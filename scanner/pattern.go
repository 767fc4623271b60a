package scanner

import (
	"fmt"
	"sync"

	"github.com/TypeMonkey/grammatica"
	"github.com/TypeMonkey/grammatica/regex"
	"github.com/cnf/structhash"
)

// PatternKind selects how a token pattern's text is interpreted.
type PatternKind int

const (
	// Literal matches the pattern text verbatim.
	Literal PatternKind = iota

	// Regexp matches the pattern text as a regular expression, in the
	// dialect of package regex.
	Regexp
)

func (k PatternKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Regexp:
		return "regexp"
	}
	return fmt.Sprintf("kind %d", int(k))
}

// TokenPattern declares one lexical token type. Patterns are immutable after
// registration with a tokenizer.
//
// Ignore and Error are mutually exclusive. An ignore pattern's lexemes are
// consumed silently; an error pattern's lexemes are consumed and reported as
// a classified error, with ErrorMessage as the message if set.
type TokenPattern struct {
	ID           grammatica.TokType
	Name         string
	Kind         PatternKind
	Text         string
	Ignore       bool
	Error        bool
	ErrorMessage string
}

// Validate checks the structural invariants of a pattern. It does not compile
// the pattern text; registration does that.
func (p TokenPattern) Validate() error {
	if p.Kind != Literal && p.Kind != Regexp {
		return grammatica.Errorf(grammatica.ErrInvalidPattern, 0, 0,
			"pattern %s has invalid match kind %d", p.Name, int(p.Kind))
	}
	if p.Text == "" {
		return grammatica.Errorf(grammatica.ErrInvalidPattern, 0, 0,
			"pattern %s has empty text", p.Name)
	}
	if p.Ignore && p.Error {
		return grammatica.Errorf(grammatica.ErrInvalidPattern, 0, 0,
			"pattern %s cannot be both ignored and an error", p.Name)
	}
	return nil
}

func (p TokenPattern) String() string {
	s := fmt.Sprintf("%s(%d): %s %q", p.Name, p.ID, p.Kind, p.Text)
	switch {
	case p.Ignore:
		s += " [ignore]"
	case p.Error:
		s += " [error]"
	}
	return s
}

// compiledPattern pairs a pattern with its matcher-ready form: a decoded rune
// sequence for literals, a shared element tree plus a reusable matcher
// session for regexps.
type compiledPattern struct {
	pattern TokenPattern
	lit     []rune         // Literal kind
	elem    *regex.Element // Regexp kind
	matcher *regex.Matcher // lazily bound to the tokenizer's reader
}

// Compiled element trees are immutable, so tokenizers with identical patterns
// share one tree. The cache key is a version-tagged structural hash of the
// pattern.
var (
	cacheMu   sync.Mutex
	elemCache = make(map[string]*regex.Element)
)

func compiledElement(p TokenPattern) (*regex.Element, error) {
	key, err := structhash.Hash(p, 1)
	if err != nil {
		// not a pattern defect; fall back to an uncached compile
		tracer().Errorf("cannot fingerprint pattern %s: %v", p.Name, err)
		return regex.Compile(p.Text)
	}
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if elem, ok := elemCache[key]; ok {
		return elem, nil
	}
	elem, cerr := regex.Compile(p.Text)
	if cerr != nil {
		return nil, cerr
	}
	elemCache[key] = elem
	return elem, nil
}

// compilePattern validates and compiles a pattern. Patterns able to match the
// empty string are rejected: a zero-length token would stall the tokenizer.
func compilePattern(p TokenPattern) (*compiledPattern, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cp := &compiledPattern{pattern: p}
	if p.Kind == Literal {
		cp.lit = []rune(p.Text)
		return cp, nil
	}
	elem, err := compiledElement(p)
	if err != nil {
		return nil, err
	}
	probe := regex.NewMatcher(elem, regex.NewStringReader(""))
	if length, _ := probe.Match(); length >= 0 {
		return nil, grammatica.Errorf(grammatica.ErrInvalidPattern, 0, 0,
			"pattern %s matches the empty string", p.Name)
	}
	cp.elem = elem
	return cp, nil
}
