package parser

import (
	"testing"

	"github.com/TypeMonkey/grammatica"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.parser")
	defer teardown()
	//
	g := arithGrammar(t)
	if g.Name() != "Arithmetic" {
		t.Errorf("grammar name is %q", g.Name())
	}
	if g.Start() != exprProd {
		t.Errorf("start production is %d, want the first LHS declared", g.Start())
	}
	if p := g.Production(exprRestProd); p == nil || len(p.Alternatives) != 3 {
		t.Errorf("ExpressionRest should carry 3 alternatives, got %v", p)
	}
	terms := g.Terminals()
	want := []grammatica.TokType{addTok, subTok, mulTok, divTok, lparenTok, rparenTok, numberTok, identTok}
	if len(terms) != len(want) {
		t.Fatalf("grammar has %d terminals, want %d", len(terms), len(want))
	}
	for i := 1; i < len(terms); i++ {
		if terms[i-1] >= terms[i] {
			t.Errorf("Terminals() not sorted: %v", terms)
		}
	}
}

func TestGrammarBuilderRejectsDanglingReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.parser")
	defer teardown()
	//
	b := NewGrammarBuilder("broken")
	b.LHS(1, "S").N(99).End() // production 99 never declared
	if _, err := b.Grammar(); err == nil {
		t.Error("builder accepted a reference to an undeclared production")
	}
}

func TestGrammarBuilderRejectsEmptyRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.parser")
	defer teardown()
	//
	b := NewGrammarBuilder("broken")
	b.LHS(1, "S").End() // empty alternatives must be declared with Epsilon
	if _, err := b.Grammar(); err == nil {
		t.Error("builder accepted an empty rule body")
	}
	b = NewGrammarBuilder("broken")
	b.LHS(1, "S").T(numberTok).Epsilon()
	if _, err := b.Grammar(); err == nil {
		t.Error("builder accepted Epsilon on a non-empty rule body")
	}
}

type countingListener struct {
	enters, exits, terminals int
	maxLevel                 int
}

func (c *countingListener) EnterProduction(n *Node, level int) {
	c.enters++
	if level > c.maxLevel {
		c.maxLevel = level
	}
}

func (c *countingListener) ExitProduction(n *Node, level int) {
	c.exits++
}

func (c *countingListener) Terminal(n *Node, level int) {
	c.terminals++
	if level > c.maxLevel {
		c.maxLevel = level
	}
}

func TestTreeWalk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.parser")
	defer teardown()
	//
	tree, err := arithParser(t, "1 + 2").Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	c := &countingListener{}
	tree.Walk(c)
	if c.enters != c.exits {
		t.Errorf("%d enter events but %d exit events", c.enters, c.exits)
	}
	// Expression, Term, Factor, Atom, ExpressionRest, Expression, Term,
	// Factor, Atom
	if c.enters != 9 {
		t.Errorf("walk visited %d productions, want 9", c.enters)
	}
	if c.terminals != 3 {
		t.Errorf("walk visited %d terminals, want 3", c.terminals)
	}
}

func TestTreeSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.parser")
	defer teardown()
	//
	tree, err := arithParser(t, "1 + 23").Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if span := tree.Span(); span.From() != 0 || span.To() != 6 {
		t.Errorf("root span is %v, want [0,6]", span)
	}
	rest := tree.Child(1) // ExpressionRest covering "+ 23"
	if rest == nil || rest.Name() != "ExpressionRest" {
		t.Fatalf("unexpected second child %v", rest)
	}
	if span := rest.Span(); span.From() != 2 || span.To() != 6 {
		t.Errorf("ExpressionRest span is %v, want [2,6]", span)
	}
}
