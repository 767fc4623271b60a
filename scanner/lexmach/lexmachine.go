package lexmach

import (
	"strings"

	"github.com/TypeMonkey/grammatica"
	"github.com/TypeMonkey/grammatica/scanner"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// Adapter compiles a set of token patterns into a lexmachine DFA. Building
// the DFA is the expensive part; an adapter is immutable afterwards and may
// serve any number of scanners.
type Adapter struct {
	lexer    *lexmachine.Lexer
	patterns map[int]scanner.TokenPattern
}

// NewAdapter validates the patterns and compiles the DFA. It returns an
// error of kind ErrInvalidPattern if a pattern is structurally invalid or
// lexmachine rejects its text.
func NewAdapter(patterns ...scanner.TokenPattern) (*Adapter, error) {
	a := &Adapter{
		lexer:    lexmachine.NewLexer(),
		patterns: make(map[int]scanner.TokenPattern, len(patterns)),
	}
	for _, p := range patterns {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		a.patterns[int(p.ID)] = p
		text := p.Text
		if p.Kind == scanner.Literal {
			text = "\\" + strings.Join(strings.Split(p.Text, ""), "\\")
		}
		switch {
		case p.Ignore:
			a.lexer.Add([]byte(text), Skip)
		case p.Error:
			a.lexer.Add([]byte(text), failToken(p))
		default:
			a.lexer.Add([]byte(text), MakeToken(int(p.ID)))
		}
	}
	if err := a.lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, grammatica.Errorf(grammatica.ErrInvalidPattern, 0, 0,
			"cannot compile patterns to a DFA: %v", err)
	}
	return a, nil
}

// Scanner creates a token source for one input. The scanner implements the
// scanner.TokenSource interface.
func (a *Adapter) Scanner(input string) (*Scanner, error) {
	s, err := a.lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &Scanner{adapter: a, scanner: s, line: 1, col: 1}, nil
}

// Scanner is one tokenization run over one input, implementing the
// scanner.TokenSource interface.
type Scanner struct {
	adapter *Adapter
	scanner *lexmachine.Scanner
	line    int
	col     int
}

var _ scanner.TokenSource = (*Scanner)(nil)

// Next is part of the TokenSource interface. Input that no pattern matches
// surfaces as an error of kind ErrUnexpectedChar; the unmatched region is
// skipped, so the following call continues behind it.
func (s *Scanner) Next() (*scanner.Token, error) {
	raw, err, eof := s.scanner.Next()
	if err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			s.scanner.TC = ui.FailTC
			s.line, s.col = ui.FailLine, ui.FailColumn
			return nil, grammatica.Errorf(grammatica.ErrUnexpectedChar,
				ui.StartLine, ui.StartColumn, "no pattern matches the input at position %d", ui.StartTC)
		}
		if pe, is := err.(*grammatica.Error); is {
			return nil, pe
		}
		return nil, grammatica.Errorf(grammatica.ErrIO, s.line, s.col, "scanner failure: %v", err)
	}
	if eof {
		return nil, nil
	}
	token := raw.(*lexmachine.Token)
	s.line, s.col = token.EndLine, token.EndColumn+1
	p := s.adapter.patterns[token.Type]
	return scanner.NewToken(
		grammatica.TokType(token.Type),
		p.Name,
		string(token.Lexeme),
		token.StartLine,
		token.StartColumn,
		grammatica.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	), nil
}

// Position is part of the TokenSource interface. Positions are byte-based,
// as reported by lexmachine.
func (s *Scanner) Position() (int, int) {
	return s.line, s.col
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// failToken is the action for error-flagged patterns: the match is consumed
// and reported as a classified error.
func failToken(p scanner.TokenPattern) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		msg := p.ErrorMessage
		if msg == "" {
			msg = "bad token " + string(m.Bytes)
		}
		return nil, grammatica.NewError(grammatica.ErrErrorToken, msg, m.StartLine, m.StartColumn)
	}
}
