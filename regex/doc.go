/*
Package regex implements the regular-expression matching engine used by the
tokenizer.

The engine is deliberately self-contained and does not delegate to a host
regex library: tokenization requires the true longest match a pattern can
certify at a given input offset, which first-match or leftmost-greedy engines
do not guarantee. Patterns compile once into an immutable tree of matching
elements; a Matcher binds such a tree to a look-ahead reader for one or more
match attempts.

The supported syntax covers literal characters, escapes, character classes
and sets, the '.' wildcard, grouping, alternation, the quantifiers '*', '+',
'?' and bounded repetition, and the '^' and '$' anchors. Reluctant and
possessive quantifiers are rejected at compile time.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package regex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammatica.regex'.
func tracer() tracing.Trace {
	return tracing.Select("grammatica.regex")
}
