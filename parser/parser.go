package parser

import (
	"fmt"
	"strings"

	"github.com/TypeMonkey/grammatica"
	"github.com/TypeMonkey/grammatica/scanner"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// maxParseDepth is the default bound on production nesting. A selector that
// keeps choosing alternatives without consuming tokens would otherwise
// recurse forever; inputs with deeper legitimate nesting can raise the bound
// with WithMaxDepth.
const maxParseDepth = 10000

// Selector is the injected production-selection table: given the current
// production and the lookahead token type, it picks the alternative to
// apply. The lookahead is grammatica.EOF once the input is exhausted. A
// selector must be a pure function of its arguments.
type Selector func(prodID int, lookahead grammatica.TokType) (alt int, ok bool)

// Parser drives one syntactic analysis over one token source. A parser is
// not safe for concurrent use; the grammar and selector it references are
// read-only and may be shared between parsers.
type Parser struct {
	g        *Grammar
	sel      Selector
	src      scanner.TokenSource
	names    grammatica.TokTypeStringer
	maxDepth int
	look     *scanner.Token // nil once the source is drained
}

// Option configures a parser.
type Option func(p *Parser)

// WithTokenNames supplies symbolic names for token types, used in
// diagnostics.
func WithTokenNames(names grammatica.TokTypeStringer) Option {
	return func(p *Parser) {
		p.names = names
	}
}

// WithMaxDepth overrides the default bound on production nesting.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// New creates a parser for a grammar, a selection table and a token source.
func New(g *Grammar, sel Selector, src scanner.TokenSource, opts ...Option) *Parser {
	p := &Parser{g: g, sel: sel, src: src, maxDepth: maxParseDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse consumes the token source and builds the parse tree for the
// grammar's start production. The whole input must be covered: trailing
// tokens fail the parse. On failure the partial tree is discarded and the
// first classified error is returned; the token source is left positioned at
// the point of failure.
func (p *Parser) Parse() (*Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	root, err := p.parseProduction(p.g.Start(), 0)
	if err != nil {
		return nil, err
	}
	if p.look != nil {
		return nil, grammatica.Errorf(grammatica.ErrUnexpectedToken,
			p.look.Line(), p.look.Col(),
			"unexpected token %q, expected end of input", p.look.Lexeme())
	}
	if root == nil {
		// the start production derived no tokens at all
		root = productionNode(p.g.Production(p.g.Start()))
	}
	tracer().Debugf("parse of %s succeeded, tree spans %v", p.g.Name(), root.Span())
	return root, nil
}

func (p *Parser) parseProduction(id, depth int) (*Node, error) {
	if depth > p.maxDepth {
		return nil, fmt.Errorf("parse exceeds production nesting depth %d", p.maxDepth)
	}
	prod := p.g.Production(id)
	if prod == nil {
		return nil, fmt.Errorf("grammar %s has no production %d", p.g.Name(), id)
	}
	alt, ok := p.sel(id, p.lookType())
	if !ok {
		return nil, p.noSelection(prod)
	}
	if alt < 0 || alt >= len(prod.Alternatives) {
		return nil, fmt.Errorf("selector chose alternative %d of %s, which has %d",
			alt, prod, len(prod.Alternatives))
	}
	node := productionNode(prod)
	for _, sym := range prod.Alternatives[alt] {
		if sym.IsTerminal() {
			if err := p.expectTerminal(node, sym); err != nil {
				return nil, err
			}
			continue
		}
		child, err := p.parseProduction(sym.Production(), depth+1)
		if err != nil {
			return nil, err
		}
		if child != nil {
			node.addChild(child)
		}
	}
	if len(node.children) == 0 {
		return nil, nil // zero-token derivation, no node
	}
	return node, nil
}

// expectTerminal matches the lookahead against a terminal symbol, attaches
// the token leaf, and advances.
func (p *Parser) expectTerminal(node *Node, sym Symbol) error {
	if p.look == nil {
		line, col := p.src.Position()
		return grammatica.Errorf(grammatica.ErrUnexpectedEOF, line, col,
			"unexpected end of input, expected %s", p.tokenName(sym.TokType()))
	}
	if p.look.TokType() != sym.TokType() {
		return grammatica.Errorf(grammatica.ErrUnexpectedToken,
			p.look.Line(), p.look.Col(),
			"unexpected token %q, expected %s", p.look.Lexeme(), p.tokenName(sym.TokType()))
	}
	node.addChild(tokenNode(p.look))
	return p.advance()
}

// advance reads the next lookahead token. Lexical failures (unexpected
// characters, error tokens, I/O) propagate from the source already
// classified and positioned.
func (p *Parser) advance() error {
	tok, err := p.src.Next()
	if err != nil {
		return err
	}
	p.look = tok
	return nil
}

func (p *Parser) lookType() grammatica.TokType {
	if p.look == nil {
		return grammatica.EOF
	}
	return p.look.TokType()
}

// noSelection classifies a failed alternative selection: end of input yields
// ErrUnexpectedEOF, anything else ErrUnexpectedToken with the set of token
// types the selector would have accepted for this production.
func (p *Parser) noSelection(prod *Production) error {
	if p.look == nil {
		line, col := p.src.Position()
		return grammatica.Errorf(grammatica.ErrUnexpectedEOF, line, col,
			"unexpected end of input in %s", prod.Name)
	}
	expected := p.expectedFor(prod)
	msg := fmt.Sprintf("unexpected token %q", p.look.Lexeme())
	if len(expected) > 0 {
		msg += ", expected one of " + strings.Join(expected, ", ")
	}
	return grammatica.NewError(grammatica.ErrUnexpectedToken, msg, p.look.Line(), p.look.Col())
}

// expectedFor probes the selector with every terminal of the grammar to
// reconstruct the acceptable set for a production. The treeset keeps the
// report ordered and duplicate-free regardless of probe order.
func (p *Parser) expectedFor(prod *Production) []string {
	set := treeset.NewWith(utils.IntComparator)
	for _, tok := range p.g.Terminals() {
		if _, ok := p.sel(prod.ID, tok); ok {
			set.Add(int(tok))
		}
	}
	names := make([]string, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		names = append(names, p.tokenName(grammatica.TokType(it.Value().(int))))
	}
	if _, ok := p.sel(prod.ID, grammatica.EOF); ok {
		names = append(names, "end of input")
	}
	return names
}

func (p *Parser) tokenName(tok grammatica.TokType) string {
	if p.names != nil {
		return p.names(tok)
	}
	return fmt.Sprintf("token %d", int(tok))
}
