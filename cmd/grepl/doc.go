/*
Package grepl/main provides an interactive command line tool (G.REPL)
for experimenting with the grammatica tokenizer and parser. It ships
with a small arithmetic expression language and lets users type
expressions, inspect the resulting token stream and display the parse
tree on the terminal. G.REPL is intended as a sandbox during the early
stages of grammar development.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammatica.parser'
func tracer() tracing.Trace {
	return tracing.Select("grammatica.parser")
}
