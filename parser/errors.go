package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure kinds. Callers can classify a parse
// failure with errors.Is without inspecting the *Error struct:
//
//	_, _, err := parser.Parse(src)
//	if errors.Is(err, parser.ErrDepthExceeded) { ... }
var (
	// ErrUnexpectedToken reports input that matches no alternative at the
	// current position.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrUnterminatedConstruct reports a missing closing token (')', 'in',
	// 'then', 'else', '.', ...) after its opening construct matched.
	ErrUnterminatedConstruct = errors.New("unterminated construct")
	// ErrDepthExceeded reports that expression nesting exceeded the
	// configured bound. It distinguishes a resource limit from bad input.
	ErrDepthExceeded = errors.New("expression nesting too deep")
)

// ErrorKind discriminates the failure taxonomy of the parser.
type ErrorKind int

const (
	// UnexpectedToken — the input at the current position does not begin any
	// expression form, or an expected token is wrong.
	UnexpectedToken ErrorKind = iota
	// UnterminatedConstruct — a construct opened but its required closing
	// token is missing.
	UnterminatedConstruct
	// DepthExceeded — the configured nesting bound was reached.
	DepthExceeded
)

// sentinel maps each kind to its errors.Is sentinel.
var sentinel = map[ErrorKind]error{
	UnexpectedToken:       ErrUnexpectedToken,
	UnterminatedConstruct: ErrUnterminatedConstruct,
	DepthExceeded:         ErrDepthExceeded,
}

// String returns the name of the kind, matching the sentinel's message.
func (k ErrorKind) String() string {
	if s, ok := sentinel[k]; ok {
		return s.Error()
	}
	return "unknown error kind"
}

// Error is the structured parse failure returned by every entry point.
// It identifies the input position reached, the production being attempted,
// and (for token-level failures) what was found and what was wanted.
// No partial AST accompanies an Error.
type Error struct {
	Kind       ErrorKind
	Line       int    // 1-based line of the offending position
	Col        int    // 1-based column of the offending position
	Offset     int    // byte offset of the offending position
	Got        string // offending literal; "" at end of input
	Want       string // expected token or form, human-readable
	Production string // the production being attempted, e.g. "if expression"
}

// Error renders the failure with position information.
func (e *Error) Error() string {
	got := e.Got
	if got == "" {
		got = "end of input"
	} else {
		got = fmt.Sprintf("%q", got)
	}
	msg := fmt.Sprintf("%s at line %d col %d: got %s", e.Kind, e.Line, e.Col, got)
	if e.Want != "" {
		msg += fmt.Sprintf(", want %s", e.Want)
	}
	if e.Production != "" {
		msg += fmt.Sprintf(" (while parsing %s)", e.Production)
	}
	return msg
}

// Unwrap lets errors.Is match the kind sentinels.
func (e *Error) Unwrap() error {
	return sentinel[e.Kind]
}
