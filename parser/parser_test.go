package parser

import (
	"testing"

	"github.com/TypeMonkey/grammatica"
	"github.com/TypeMonkey/grammatica/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// The arithmetic demo language. Token and production IDs follow the
// numbering scheme of generated parsers: 1000-range for terminals,
// 2000-range for productions.
const (
	addTok grammatica.TokType = 1001 + iota
	subTok
	mulTok
	divTok
	lparenTok
	rparenTok
	numberTok
	identTok
	whitespaceTok
)

const (
	exprProd = 2001 + iota
	exprRestProd
	termProd
	termRestProd
	factorProd
	atomProd
)

var arithTokenNames = map[grammatica.TokType]string{
	addTok:    "ADD",
	subTok:    "SUB",
	mulTok:    "MUL",
	divTok:    "DIV",
	lparenTok: "LPAREN",
	rparenTok: "RPAREN",
	numberTok: "NUMBER",
	identTok:  "IDENTIFIER",
	grammatica.EOF: "EOF",
}

func arithTokenizer(t *testing.T, input string) *scanner.Tokenizer {
	t.Helper()
	tz := scanner.NewFromString(input)
	err := tz.AddPatterns(
		scanner.TokenPattern{ID: addTok, Name: "ADD", Kind: scanner.Literal, Text: "+"},
		scanner.TokenPattern{ID: subTok, Name: "SUB", Kind: scanner.Literal, Text: "-"},
		scanner.TokenPattern{ID: mulTok, Name: "MUL", Kind: scanner.Literal, Text: "*"},
		scanner.TokenPattern{ID: divTok, Name: "DIV", Kind: scanner.Literal, Text: "/"},
		scanner.TokenPattern{ID: lparenTok, Name: "LPAREN", Kind: scanner.Literal, Text: "("},
		scanner.TokenPattern{ID: rparenTok, Name: "RPAREN", Kind: scanner.Literal, Text: ")"},
		scanner.TokenPattern{ID: numberTok, Name: "NUMBER", Kind: scanner.Regexp, Text: "[0-9]+"},
		scanner.TokenPattern{ID: identTok, Name: "IDENTIFIER", Kind: scanner.Regexp, Text: "[a-z]+"},
		scanner.TokenPattern{ID: whitespaceTok, Name: "WHITESPACE", Kind: scanner.Regexp, Text: "[ \\t\\n]+", Ignore: true},
	)
	if err != nil {
		t.Fatalf("pattern registration failed: %v", err)
	}
	return tz
}

// An expression grammar in the shape generated parsers use:
//
//	Expression     -> Term ExpressionRest
//	ExpressionRest -> ADD Expression | SUB Expression | ε
//	Term           -> Factor TermRest
//	TermRest       -> MUL Term | DIV Term | ε
//	Factor         -> Atom | LPAREN Expression RPAREN
//	Atom           -> NUMBER | IDENTIFIER
func arithGrammar(t *testing.T) *Grammar {
	t.Helper()
	b := NewGrammarBuilder("Arithmetic")
	b.LHS(exprProd, "Expression").N(termProd).N(exprRestProd).End()
	b.LHS(exprRestProd, "ExpressionRest").T(addTok).N(exprProd).End()
	b.LHS(exprRestProd, "ExpressionRest").T(subTok).N(exprProd).End()
	b.LHS(exprRestProd, "ExpressionRest").Epsilon()
	b.LHS(termProd, "Term").N(factorProd).N(termRestProd).End()
	b.LHS(termRestProd, "TermRest").T(mulTok).N(termProd).End()
	b.LHS(termRestProd, "TermRest").T(divTok).N(termProd).End()
	b.LHS(termRestProd, "TermRest").Epsilon()
	b.LHS(factorProd, "Factor").N(atomProd).End()
	b.LHS(factorProd, "Factor").T(lparenTok).N(exprProd).T(rparenTok).End()
	b.LHS(atomProd, "Atom").T(numberTok).End()
	b.LHS(atomProd, "Atom").T(identTok).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot build grammar: %v", err)
	}
	return g
}

// arithSelector is the LL(1) selection table for the grammar above, as a
// grammar analyzer would derive it from FIRST and FOLLOW sets.
func arithSelector(prodID int, look grammatica.TokType) (int, bool) {
	switch prodID {
	case exprProd, termProd:
		if look == numberTok || look == identTok || look == lparenTok {
			return 0, true
		}
	case exprRestProd:
		switch look {
		case addTok:
			return 0, true
		case subTok:
			return 1, true
		case rparenTok, grammatica.EOF:
			return 2, true
		}
	case termRestProd:
		switch look {
		case mulTok:
			return 0, true
		case divTok:
			return 1, true
		case addTok, subTok, rparenTok, grammatica.EOF:
			return 2, true
		}
	case factorProd:
		switch look {
		case numberTok, identTok:
			return 0, true
		case lparenTok:
			return 1, true
		}
	case atomProd:
		switch look {
		case numberTok:
			return 0, true
		case identTok:
			return 1, true
		}
	}
	return 0, false
}

func arithParser(t *testing.T, input string) *Parser {
	t.Helper()
	return New(arithGrammar(t), arithSelector, arithTokenizer(t, input),
		WithTokenNames(func(tok grammatica.TokType) string {
			if name, ok := arithTokenNames[tok]; ok {
				return name
			}
			return "?"
		}))
}

const validInput = "1 + 2*a\n + 345"

const validOutput = `Expression(2001)
  Term(2003)
    Factor(2005)
      Atom(2006)
        NUMBER(1007): "1", line: 1, col: 1
  ExpressionRest(2002)
    ADD(1001): "+", line: 1, col: 3
    Expression(2001)
      Term(2003)
        Factor(2005)
          Atom(2006)
            NUMBER(1007): "2", line: 1, col: 5
        TermRest(2004)
          MUL(1003): "*", line: 1, col: 6
          Term(2003)
            Factor(2005)
              Atom(2006)
                IDENTIFIER(1008): "a", line: 1, col: 7
      ExpressionRest(2002)
        ADD(1001): "+", line: 2, col: 2
        Expression(2001)
          Term(2003)
            Factor(2005)
              Atom(2006)
                NUMBER(1007): "345", line: 2, col: 4
`

func TestParseValidInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.parser")
	defer teardown()
	//
	tree, err := arithParser(t, validInput).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if dump := tree.Dump(); dump != validOutput {
		t.Errorf("tree mismatch.\n--- got ---\n%s--- want ---\n%s", dump, validOutput)
	}
}

func failParse(t *testing.T, input string, kind grammatica.ErrorKind, line, col int) *grammatica.Error {
	t.Helper()
	tree, err := arithParser(t, input).Parse()
	if err == nil {
		t.Fatalf("parse of %q succeeded:\n%s", input, tree.Dump())
	}
	pe, ok := err.(*grammatica.Error)
	if !ok {
		t.Fatalf("parse of %q failed unclassified: %v", input, err)
	}
	if pe.Kind != kind {
		t.Fatalf("parse of %q failed with %v, want %v", input, pe.Kind, kind)
	}
	if pe.Line != line || pe.Col != col {
		t.Errorf("parse of %q failed at (%d,%d), want (%d,%d): %v",
			input, pe.Line, pe.Col, line, col, pe)
	}
	t.Logf("%q -> %v", input, pe)
	return pe
}

func TestParseUnexpectedEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.parser")
	defer teardown()
	//
	failParse(t, "1 *\t \n", grammatica.ErrUnexpectedEOF, 2, 1)
}

func TestParseUnexpectedChar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.parser")
	defer teardown()
	//
	failParse(t, "1\n # 4", grammatica.ErrUnexpectedChar, 2, 2)
}

func TestParseUnexpectedToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.parser")
	defer teardown()
	//
	pe := failParse(t, "1 + 2 3", grammatica.ErrUnexpectedToken, 1, 7)
	// the expected set is reconstructed by probing the selector
	for _, name := range []string{"ADD", "SUB", "MUL", "DIV"} {
		if !containsWord(pe.Message, name) {
			t.Errorf("message %q does not mention expected token %s", pe.Message, name)
		}
	}
}

func containsWord(haystack, word string) bool {
	for i := 0; i+len(word) <= len(haystack); i++ {
		if haystack[i:i+len(word)] == word {
			return true
		}
	}
	return false
}

func TestParseNestedParens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.parser")
	defer teardown()
	//
	tree, err := arithParser(t, "((1 + 2)) * x").Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	// round trip: the token leaves reconstruct the input, whitespace removed
	var lexemes string
	collectLexemes(tree, &lexemes)
	if lexemes != "((1+2))*x" {
		t.Errorf("leaves concatenate to %q, want \"((1+2))*x\"", lexemes)
	}
}

func collectLexemes(n *Node, acc *string) {
	if n.IsToken() {
		*acc += n.Token().Lexeme()
		return
	}
	for _, child := range n.Children() {
		collectLexemes(child, acc)
	}
}

func TestParseErrorTokenPropagates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.parser")
	defer teardown()
	//
	tz := arithTokenizer(t, "1 + bad$")
	err := tz.AddPattern(scanner.TokenPattern{
		ID: 1100, Name: "RESERVED", Kind: scanner.Literal, Text: "bad$",
		Error: true, ErrorMessage: "reserved word \"bad$\"",
	})
	if err != nil {
		t.Fatal(err)
	}
	p := New(arithGrammar(t), arithSelector, tz)
	_, perr := p.Parse()
	if !grammatica.IsKind(perr, grammatica.ErrErrorToken) {
		t.Fatalf("expected ErrErrorToken, got %v", perr)
	}
	pe := perr.(*grammatica.Error)
	if pe.Line != 1 || pe.Col != 5 {
		t.Errorf("error at (%d,%d), want (1,5)", pe.Line, pe.Col)
	}
	if pe.Message != "reserved word \"bad$\"" {
		t.Errorf("message is %q, must carry the pattern's designated message", pe.Message)
	}
}
