package scanner

import (
	"fmt"

	"github.com/TypeMonkey/grammatica"
	"github.com/emirpasic/gods/lists/arraylist"
)

// Token is a classified, located lexeme. Tokens are immutable; the optional
// neighbor links resolve through the owning tokenizer run's history and are
// nil when history tracking was off when the token was emitted.
type Token struct {
	typ    grammatica.TokType
	name   string
	lexeme string
	line   int // 1-based position of the first character
	col    int
	span   grammatica.Span
	run    *tokenRun
	index  int
}

// NewToken creates a free-standing token, not linked into any run. The
// lexmachine adapter and tests use this; the tokenizer builds its tokens
// internally.
func NewToken(typ grammatica.TokType, name, lexeme string, line, col int, span grammatica.Span) *Token {
	return &Token{typ: typ, name: name, lexeme: lexeme, line: line, col: col, span: span, index: -1}
}

// TokType returns the token's category, the ID of the winning pattern.
func (t *Token) TokType() grammatica.TokType {
	return t.typ
}

// Name returns the winning pattern's name.
func (t *Token) Name() string {
	return t.name
}

// Lexeme returns the matched text.
func (t *Token) Lexeme() string {
	return t.lexeme
}

// Line returns the 1-based line of the token's first character.
func (t *Token) Line() int {
	return t.line
}

// Col returns the 1-based column of the token's first character.
func (t *Token) Col() int {
	return t.col
}

// Span returns the rune-offset interval the token covers.
func (t *Token) Span() grammatica.Span {
	return t.span
}

// Prev returns the previous significant token of the run, or nil at the
// start of the run or when history tracking was off.
func (t *Token) Prev() *Token {
	if t.run == nil {
		return nil
	}
	return t.run.at(t.index - 1)
}

// Next returns the following significant token of the run, or nil at the end
// of the run or when history tracking was off.
func (t *Token) Next() *Token {
	if t.run == nil {
		return nil
	}
	return t.run.at(t.index + 1)
}

func (t *Token) String() string {
	return fmt.Sprintf("%s(%d): %q, line: %d, col: %d", t.name, t.typ, t.lexeme, t.line, t.col)
}

// tokenRun is the history of one tokenization run. It is an append-only
// sequence; tokens address their neighbors by index into it rather than with
// direct back-references, so the run owns all links and navigation stays
// O(1) in both directions.
type tokenRun struct {
	list *arraylist.List
}

func newTokenRun() *tokenRun {
	return &tokenRun{list: arraylist.New()}
}

func (run *tokenRun) append(t *Token) {
	t.run = run
	t.index = run.list.Size()
	run.list.Add(t)
}

func (run *tokenRun) at(index int) *Token {
	value, ok := run.list.Get(index)
	if !ok {
		return nil
	}
	return value.(*Token)
}

func (run *tokenRun) tokens() []*Token {
	tokens := make([]*Token, 0, run.list.Size())
	it := run.list.Iterator()
	for it.Next() {
		tokens = append(tokens, it.Value().(*Token))
	}
	return tokens
}
