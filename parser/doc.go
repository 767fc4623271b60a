/*
Package parser implements the parse driver of the runtime engine.

The driver consumes a token source under the direction of an externally
supplied production-selection table and builds a parse tree whose internal
nodes are grammar productions and whose leaves are tokens. How the table was
derived — LL(1) FIRST/FOLLOW analysis, hand-written switch, generated code —
is of no concern here: the driver only calls an injected pure function
mapping (production, lookahead token type) to the alternative to apply.

Productions are declared through a grammar builder:

	b := parser.NewGrammarBuilder("Arithmetic")
	b.LHS(exprProd, "Expression").N(termProd).N(exprRestProd).End()
	b.LHS(exprRestProd, "ExpressionRest").T(addTok).N(exprProd).End()
	b.LHS(exprRestProd, "ExpressionRest").Epsilon()
	g, err := b.Grammar()

Parsing is fail-fast: the first classified failure terminates the run and
the partial tree is discarded. Every failure carries the 1-based line and
column where it was detected.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammatica.parser'.
func tracer() tracing.Trace {
	return tracing.Select("grammatica.parser")
}
