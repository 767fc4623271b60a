/*
Package scanner implements the longest-match tokenizer of the runtime engine.

A Tokenizer owns an ordered collection of token patterns, each either a
literal string or a regular expression compiled by package regex. Every call
to Next attempts all patterns at the current input position and resolves
ambiguity deterministically: the strictly longest match wins, and among
matches of equal length the pattern registered first wins. Lexemes matched by
ignore-flagged patterns are skipped transparently; lexemes matched by
error-flagged patterns are consumed and reported as classified errors, so the
following call resumes cleanly behind the bad lexeme.

An optional token history links every significant token to its neighbors, so
a consumer can navigate the whole tokenization run in both directions after
the fact.

Sub-package lexmach provides an alternative, DFA-compiled token source over
the same pattern surface, backed by lexmachine.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammatica.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("grammatica.scanner")
}
