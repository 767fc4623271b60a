package parser

import (
	"fmt"
	"strings"

	"github.com/TypeMonkey/grammatica"
	"github.com/TypeMonkey/grammatica/scanner"
)

// Node is one node of a parse tree: either a production node with ordered
// children, or a token leaf. Concatenating the lexemes of all token leaves in
// left-to-right order reconstructs the consumed input, ignored lexemes
// excluded.
//
// The tree-shape policy is fixed: every applied production that derived at
// least one token yields a node, single-child nodes included; a production
// whose derivation consumed no tokens yields no node at all.
type Node struct {
	prod     *Production
	token    *scanner.Token
	children []*Node
	span     grammatica.Span
}

func productionNode(prod *Production) *Node {
	return &Node{prod: prod}
}

func tokenNode(tok *scanner.Token) *Node {
	return &Node{token: tok, span: tok.Span()}
}

// IsToken reports whether the node is a token leaf.
func (n *Node) IsToken() bool {
	return n.token != nil
}

// ID returns the grammar-assigned production ID, or the token type for a
// leaf.
func (n *Node) ID() int {
	if n.token != nil {
		return int(n.token.TokType())
	}
	return n.prod.ID
}

// Name returns the production name, or the token's pattern name for a leaf.
func (n *Node) Name() string {
	if n.token != nil {
		return n.token.Name()
	}
	return n.prod.Name
}

// Token returns the wrapped token of a leaf, or nil for a production node.
func (n *Node) Token() *scanner.Token {
	return n.token
}

// Span returns the rune-offset interval the node covers.
func (n *Node) Span() grammatica.Span {
	return n.span
}

// ChildCount returns the number of children; 0 for a leaf.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns the ordered children of a production node.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) addChild(child *Node) {
	if n.span.IsNull() {
		n.span = child.span
	} else {
		n.span = n.span.Extend(child.span)
	}
	n.children = append(n.children, child)
}

func (n *Node) String() string {
	if n.token != nil {
		return n.token.String()
	}
	return n.prod.String()
}

// Listener is a type for walking a parse tree.
type Listener interface {
	// EnterProduction is called for a production node before its children.
	EnterProduction(n *Node, level int)

	// ExitProduction is called for a production node after its children.
	ExitProduction(n *Node, level int)

	// Terminal is called for every token leaf.
	Terminal(n *Node, level int)
}

// Walk traverses the tree in depth-first, left-to-right order, calling the
// listener on each node.
func (n *Node) Walk(l Listener) {
	n.walk(l, 0)
}

func (n *Node) walk(l Listener, level int) {
	if n.IsToken() {
		l.Terminal(n, level)
		return
	}
	l.EnterProduction(n, level)
	for _, child := range n.children {
		child.walk(l, level+1)
	}
	l.ExitProduction(n, level)
}

// Dump renders the tree line by line, two spaces of indent per level. Token
// leaves show lexeme and position. The layout matches what generated-parser
// test suites diff against.
func (n *Node) Dump() string {
	d := &dumper{}
	n.Walk(d)
	return d.b.String()
}

type dumper struct {
	b strings.Builder
}

func (d *dumper) EnterProduction(n *Node, level int) {
	d.line(level, n.String())
}

func (d *dumper) ExitProduction(n *Node, level int) {}

func (d *dumper) Terminal(n *Node, level int) {
	d.line(level, n.String())
}

func (d *dumper) line(level int, text string) {
	fmt.Fprintf(&d.b, "%s%s\n", strings.Repeat("  ", level), text)
}
