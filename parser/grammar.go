package parser

import (
	"fmt"
	"sort"

	"github.com/TypeMonkey/grammatica"
)

// Symbol is one element of a production alternative: either a terminal,
// carrying a token type, or a reference to another production.
type Symbol struct {
	terminal bool
	tok      grammatica.TokType
	prod     int
}

// T creates a terminal symbol.
func T(tok grammatica.TokType) Symbol {
	return Symbol{terminal: true, tok: tok}
}

// N creates a non-terminal symbol referencing a production by ID.
func N(prod int) Symbol {
	return Symbol{prod: prod}
}

// IsTerminal reports whether the symbol is a terminal.
func (sym Symbol) IsTerminal() bool {
	return sym.terminal
}

// TokType returns the token type of a terminal symbol.
func (sym Symbol) TokType() grammatica.TokType {
	return sym.tok
}

// Production returns the production ID of a non-terminal symbol.
func (sym Symbol) Production() int {
	return sym.prod
}

func (sym Symbol) String() string {
	if sym.terminal {
		return fmt.Sprintf("t(%d)", sym.tok)
	}
	return fmt.Sprintf("n(%d)", sym.prod)
}

// Production is one grammar rule: a name, a numeric ID and one or more
// alternatives, each an ordered sequence of symbols. An empty sequence is an
// epsilon alternative.
type Production struct {
	ID           int
	Name         string
	Alternatives [][]Symbol
}

func (p *Production) String() string {
	return fmt.Sprintf("%s(%d)", p.Name, p.ID)
}

// Grammar is a validated, immutable set of productions with a designated
// start production. Grammars are safe for concurrent read-only use by any
// number of parsers.
type Grammar struct {
	name  string
	prods map[int]*Production
	start int
	terms []grammatica.TokType // all terminals, ascending
}

// Name returns the grammar's name.
func (g *Grammar) Name() string {
	return g.name
}

// Start returns the ID of the start production.
func (g *Grammar) Start() int {
	return g.start
}

// Production returns a production by ID, or nil.
func (g *Grammar) Production(id int) *Production {
	return g.prods[id]
}

// Terminals returns all terminal token types the grammar mentions, in
// ascending order.
func (g *Grammar) Terminals() []grammatica.TokType {
	terms := make([]grammatica.TokType, len(g.terms))
	copy(terms, g.terms)
	return terms
}

// Dump traces the grammar's rules, for debugging.
func (g *Grammar) Dump() {
	tracer().Debugf("grammar %s, start %d", g.name, g.start)
	for _, p := range g.prods {
		for _, alt := range p.Alternatives {
			tracer().Debugf("%4d: [%s] ::= %v", p.ID, p.Name, alt)
		}
	}
}

// GrammarBuilder builds a Grammar object incrementally. Clients declare one
// alternative per LHS call; the first LHS becomes the start production.
// Declaration errors are collected and reported by Grammar.
type GrammarBuilder struct {
	name  string
	order []int
	prods map[int]*Production
	errs  []error
}

// NewGrammarBuilder creates a builder for a named grammar.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name, prods: make(map[int]*Production)}
}

// LHS starts one alternative of the production with the given ID and name.
// All alternatives of one ID must agree on the name.
func (b *GrammarBuilder) LHS(id int, name string) *RuleBuilder {
	p, ok := b.prods[id]
	if !ok {
		p = &Production{ID: id, Name: name}
		b.prods[id] = p
		b.order = append(b.order, id)
	} else if p.Name != name {
		b.errs = append(b.errs, fmt.Errorf("production %d declared as both %q and %q", id, p.Name, name))
	}
	return &RuleBuilder{builder: b, prod: p}
}

// Grammar validates the declarations and returns the finished grammar.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if len(b.order) == 0 {
		return nil, fmt.Errorf("grammar %s has no productions", b.name)
	}
	termSet := make(map[grammatica.TokType]bool)
	for _, p := range b.prods {
		for _, alt := range p.Alternatives {
			for _, sym := range alt {
				if sym.IsTerminal() {
					termSet[sym.TokType()] = true
				} else if b.prods[sym.Production()] == nil {
					return nil, fmt.Errorf("production %s references undeclared production %d",
						p, sym.Production())
				}
			}
		}
	}
	terms := make([]grammatica.TokType, 0, len(termSet))
	for tok := range termSet {
		terms = append(terms, tok)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })
	g := &Grammar{name: b.name, prods: b.prods, start: b.order[0], terms: terms}
	g.Dump()
	return g, nil
}

// RuleBuilder collects the symbols of one alternative.
type RuleBuilder struct {
	builder *GrammarBuilder
	prod    *Production
	rhs     []Symbol
}

// T appends a terminal symbol to the alternative.
func (rb *RuleBuilder) T(tok grammatica.TokType) *RuleBuilder {
	rb.rhs = append(rb.rhs, T(tok))
	return rb
}

// N appends a non-terminal symbol to the alternative.
func (rb *RuleBuilder) N(prod int) *RuleBuilder {
	rb.rhs = append(rb.rhs, N(prod))
	return rb
}

// End finishes the alternative and attaches it to the production.
func (rb *RuleBuilder) End() {
	if len(rb.rhs) == 0 {
		rb.builder.errs = append(rb.builder.errs,
			fmt.Errorf("empty alternative for %s, use Epsilon instead", rb.prod))
		return
	}
	rb.prod.Alternatives = append(rb.prod.Alternatives, rb.rhs)
}

// Epsilon finishes the alternative as an empty derivation.
func (rb *RuleBuilder) Epsilon() {
	if len(rb.rhs) > 0 {
		rb.builder.errs = append(rb.builder.errs,
			fmt.Errorf("Epsilon on a non-empty alternative for %s", rb.prod))
		return
	}
	rb.prod.Alternatives = append(rb.prod.Alternatives, []Symbol{})
}
