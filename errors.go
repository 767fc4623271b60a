package grammatica

import "fmt"

// ErrorKind classifies the failures the runtime engine can report.
type ErrorKind int

// Error kinds, in the order a failure can first occur: pattern registration,
// then lexical analysis, then syntactic analysis.
const (
	// ErrInvalidPattern marks a token pattern that failed to compile or is
	// structurally invalid. Raised at registration time, never during a run.
	ErrInvalidPattern ErrorKind = iota

	// ErrUnexpectedChar marks input that no registered pattern matches.
	ErrUnexpectedChar

	// ErrErrorToken marks a lexeme matched by a pattern flagged as an error
	// pattern, e.g. a reserved word.
	ErrErrorToken

	// ErrUnexpectedToken marks a well-formed token without any grammatical
	// continuation in the current parser state.
	ErrUnexpectedToken

	// ErrUnexpectedEOF marks input that ended while the grammar still
	// expected further tokens.
	ErrUnexpectedEOF

	// ErrIO marks a failure of the underlying character source. Distinct
	// from end of input.
	ErrIO
)

var errorKindNames = map[ErrorKind]string{
	ErrInvalidPattern:  "invalid pattern",
	ErrUnexpectedChar:  "unexpected character",
	ErrErrorToken:      "error token",
	ErrUnexpectedToken: "unexpected token",
	ErrUnexpectedEOF:   "unexpected end of input",
	ErrIO:              "I/O error",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error-kind %d", int(k))
}

// Error is a classified, positioned failure. Line and Col are 1-based and
// point at the first character of the offending lexeme, or at the input
// position where the failure was detected. Setup-time failures (pattern
// registration) carry no position; Line is 0 then.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Col     int
}

// NewError creates a positioned error.
func NewError(kind ErrorKind, message string, line, col int) *Error {
	return &Error{Kind: kind, Message: message, Line: line, Col: col}
}

// Errorf creates a positioned error with a formatted message.
func Errorf(kind ErrorKind, line, col int, format string, args ...interface{}) *Error {
	return NewError(kind, fmt.Sprintf(format, args...), line, col)
}

// Error renders kind, message and position. Positionless errors omit the
// location part.
func (e *Error) Error() string {
	if e.Line <= 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s, on line: %d column: %d", e.Kind, e.Message, e.Line, e.Col)
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	if pe, ok := err.(*Error); ok {
		return pe.Kind == kind
	}
	return false
}
