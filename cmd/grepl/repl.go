package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/TypeMonkey/grammatica"
	"github.com/TypeMonkey/grammatica/parser"
	"github.com/TypeMonkey/grammatica/scanner"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Token types and production IDs for the demo language, numbered the way
// generated parsers number them.
const (
	tokADD grammatica.TokType = 1001 + iota
	tokSUB
	tokMUL
	tokDIV
	tokLPAREN
	tokRPAREN
	tokNUMBER
	tokIDENT
	tokWS
)

const (
	prodExpr = 2001 + iota
	prodExprRest
	prodTerm
	prodTermRest
	prodFactor
	prodAtom
)

var tokenNames = map[grammatica.TokType]string{
	tokADD:    "ADD",
	tokSUB:    "SUB",
	tokMUL:    "MUL",
	tokDIV:    "DIV",
	tokLPAREN: "LPAREN",
	tokRPAREN: "RPAREN",
	tokNUMBER: "NUMBER",
	tokIDENT:  "IDENTIFIER",
}

// We provide a simple expression grammar as a default for tokenizing and
// parsing experiments.
//
//  Expression     ➞ Term ExpressionRest
//  ExpressionRest ➞ + Expression  |  - Expression  |  ε
//  Term           ➞ Factor TermRest
//  TermRest       ➞ * Term  |  / Term  |  ε
//  Factor         ➞ Atom  |  ( Expression )
//  Atom           ➞ number  |  identifier
//
func makeExprGrammar() *parser.Grammar {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelError)
	b := parser.NewGrammarBuilder("Expression")
	b.LHS(prodExpr, "Expression").N(prodTerm).N(prodExprRest).End()
	b.LHS(prodExprRest, "ExpressionRest").T(tokADD).N(prodExpr).End()
	b.LHS(prodExprRest, "ExpressionRest").T(tokSUB).N(prodExpr).End()
	b.LHS(prodExprRest, "ExpressionRest").Epsilon()
	b.LHS(prodTerm, "Term").N(prodFactor).N(prodTermRest).End()
	b.LHS(prodTermRest, "TermRest").T(tokMUL).N(prodTerm).End()
	b.LHS(prodTermRest, "TermRest").T(tokDIV).N(prodTerm).End()
	b.LHS(prodTermRest, "TermRest").Epsilon()
	b.LHS(prodFactor, "Factor").N(prodAtom).End()
	b.LHS(prodFactor, "Factor").T(tokLPAREN).N(prodExpr).T(tokRPAREN).End()
	b.LHS(prodAtom, "Atom").T(tokNUMBER).End()
	b.LHS(prodAtom, "Atom").T(tokIDENT).End()
	g, err := b.Grammar()
	if err != nil {
		panic(fmt.Errorf("error creating grammar: %s", err.Error()))
	}
	tracer().SetTraceLevel(level)
	return g
}

var exprPatterns = []scanner.TokenPattern{
	{ID: tokADD, Name: "ADD", Kind: scanner.Literal, Text: "+"},
	{ID: tokSUB, Name: "SUB", Kind: scanner.Literal, Text: "-"},
	{ID: tokMUL, Name: "MUL", Kind: scanner.Literal, Text: "*"},
	{ID: tokDIV, Name: "DIV", Kind: scanner.Literal, Text: "/"},
	{ID: tokLPAREN, Name: "LPAREN", Kind: scanner.Literal, Text: "("},
	{ID: tokRPAREN, Name: "RPAREN", Kind: scanner.Literal, Text: ")"},
	{ID: tokNUMBER, Name: "NUMBER", Kind: scanner.Regexp, Text: "[0-9]+"},
	{ID: tokIDENT, Name: "IDENTIFIER", Kind: scanner.Regexp, Text: "[a-z][a-z0-9]*"},
	{ID: tokWS, Name: "WHITESPACE", Kind: scanner.Regexp, Text: "[ \\t\\n]+", Ignore: true},
}

// exprSelector is the LL(1) selection table for the expression grammar.
func exprSelector(prodID int, look grammatica.TokType) (int, bool) {
	switch prodID {
	case prodExpr, prodTerm:
		if look == tokNUMBER || look == tokIDENT || look == tokLPAREN {
			return 0, true
		}
	case prodExprRest:
		switch look {
		case tokADD:
			return 0, true
		case tokSUB:
			return 1, true
		case tokRPAREN, grammatica.EOF:
			return 2, true
		}
	case prodTermRest:
		switch look {
		case tokMUL:
			return 0, true
		case tokDIV:
			return 1, true
		case tokADD, tokSUB, tokRPAREN, grammatica.EOF:
			return 2, true
		}
	case prodFactor:
		switch look {
		case tokNUMBER, tokIDENT:
			return 0, true
		case tokLPAREN:
			return 1, true
		}
	case prodAtom:
		switch look {
		case tokNUMBER:
			return 0, true
		case tokIDENT:
			return 1, true
		}
	}
	return 0, false
}

// main() starts an interactive CLI ("G.REPL"), where users may enter
// arithmetic expressions. G.REPL will tokenize and parse the input and
// print out the parse tree, or a classified error with its position.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to GREPL")    // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	g := makeExprGrammar()
	tracer().SetTraceLevel(traceLevel(*tlevel)) // now set the user supplied level
	g.Dump()                                    // only visible in debug mode
	input := strings.Join(flag.Args(), " ")
	input = strings.TrimSpace(input)
	//
	// set up REPL
	repl, err := readline.New("grepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		grammar: g,
		repl:    repl,
	}
	if input != "" {
		intp.Eval(input)
	}
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	grammar *parser.Grammar
	repl    *readline.Instance
	tokens  bool // also display the token stream
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	println("Good bye!")
}

// Eval parses a single input line and prints the parse tree. Lines starting
// with a colon are interpreted as commands.
func (intp *Intp) Eval(line string) bool {
	if strings.HasPrefix(line, ":") {
		return intp.command(line)
	}
	if intp.tokens {
		if err := intp.printTokens(line); err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
	}
	tree, err := intp.parse(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	intp.printTree(tree)
	return false
}

func (intp *Intp) command(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":tokens":
		intp.tokens = !intp.tokens
		pterm.Info.Printf("token stream display is now %v\n", intp.tokens)
	case ":grammar":
		intp.printGrammar()
	case ":help":
		pterm.Info.Println(":tokens | :grammar | :quit")
	default:
		pterm.Error.Printf("unknown command %q, try :help\n", line)
	}
	return false
}

// printGrammar renders the demo grammar, one alternative per line.
func (intp *Intp) printGrammar() {
	for _, id := range []int{prodExpr, prodExprRest, prodTerm, prodTermRest, prodFactor, prodAtom} {
		p := intp.grammar.Production(id)
		for _, alt := range p.Alternatives {
			rhs := make([]string, 0, len(alt))
			for _, sym := range alt {
				if sym.IsTerminal() {
					rhs = append(rhs, tokenName(sym.TokType()))
				} else {
					rhs = append(rhs, intp.grammar.Production(sym.Production()).Name)
				}
			}
			if len(rhs) == 0 {
				rhs = append(rhs, "ε")
			}
			pterm.Printf("%-14s ➞ %s\n", p.Name, strings.Join(rhs, " "))
		}
	}
}

func (intp *Intp) tokenizer(input string) (*scanner.Tokenizer, error) {
	tz := scanner.NewFromString(input)
	if err := tz.AddPatterns(exprPatterns...); err != nil {
		return nil, err
	}
	return tz, nil
}

func (intp *Intp) printTokens(input string) error {
	tz, err := intp.tokenizer(input)
	if err != nil {
		return err
	}
	for {
		tok, err := tz.Next()
		if err != nil {
			return err
		}
		if tok == nil {
			return nil
		}
		pterm.Println(tok.String())
	}
}

func (intp *Intp) parse(input string) (*parser.Node, error) {
	tz, err := intp.tokenizer(input)
	if err != nil {
		return nil, err
	}
	p := parser.New(intp.grammar, exprSelector, tz,
		parser.WithTokenNames(tokenName))
	return p.Parse()
}

func tokenName(tok grammatica.TokType) string {
	if name, ok := tokenNames[tok]; ok {
		return name
	}
	if tok == grammatica.EOF {
		return "EOF"
	}
	return fmt.Sprintf("token %d", tok)
}

// printTree renders a parse tree on the terminal.
func (intp *Intp) printTree(tree *parser.Node) {
	ll := pterm.LeveledList{}
	tree.Walk(&leveler{ll: &ll})
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

// leveler collects tree nodes into a pterm.LeveledList.
type leveler struct {
	ll *pterm.LeveledList
}

func (l *leveler) EnterProduction(n *parser.Node, level int) {
	*l.ll = append(*l.ll, pterm.LeveledListItem{Level: level, Text: n.String()})
}

func (l *leveler) ExitProduction(n *parser.Node, level int) {}

func (l *leveler) Terminal(n *parser.Node, level int) {
	*l.ll = append(*l.ll, pterm.LeveledListItem{Level: level, Text: n.String()})
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
