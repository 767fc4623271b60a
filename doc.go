/*
Package grammatica is the runtime engine behind a grammar-driven parser
generator.

Given a set of lexical token patterns and a set of grammar productions,
grammatica performs lexical analysis (longest-match tokenization) and
syntactic analysis (table-driven parsing) over character input, producing a
typed parse tree or a precisely located, classified syntax error.
Package structure is as follows:

■ regex: Package regex implements a from-scratch regular-expression matching
engine over a look-ahead character stream. Matching certifies the true longest
match at a given offset, which the tokenizer's ambiguity resolution depends on.

■ scanner: Package scanner implements the longest-match tokenizer: token
pattern registration, deterministic ambiguity resolution, and an optional
bidirectional token history.

■ parser: Package parser implements the parse driver. It consumes a token
source under the direction of an externally supplied production-selection
table and builds a parse tree of production and token nodes.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammatica
