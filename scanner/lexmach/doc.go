/*
Package lexmach provides an adapter to use the lexmachine scanner generator
as a token source for the grammatica parse driver.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The adapter consumes the same TokenPattern declarations as the hand-built
tokenizer in package scanner, but compiles them into a DFA up front: literal
patterns are escaped verbatim, regexp patterns are handed to lexmachine in
its own dialect, ignore patterns become skip actions, and error patterns
report classified errors when their lexemes match.

	adapter, err := lexmach.NewAdapter(patterns...)
	if err != nil {
		// a pattern was invalid or the DFA failed to compile
	}

A scanner is instantiated for each concrete input sequence. The scanner
implements the scanner.TokenSource interface.

	scan, err := adapter.Scanner("input string to tokenize")
	if err != nil {
		// do error handling
	}

The trade-offs against the hand-built tokenizer: the DFA matches in one pass
without backtracking, but lexmachine's regex dialect differs in detail from
package regex, resolves ties by its own rule ordering, has no
case-insensitive mode, and track positions byte-wise rather than rune-wise.
The hand-built tokenizer remains the reference implementation of the
longest-match contract.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammatica.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("grammatica.scanner")
}
