// Package lexer implements the PCF-lang lexer (tokeniser).
//
// The lexer converts a source string into a flat stream of [ast.Token] values.
// Call [New] to create a lexer and then call [Lexer.NextToken] repeatedly until
// you receive a token with Type == [ast.EOF].
//
// Design notes:
//   - Single-pass, character-by-character scanning using a read position cursor.
//   - No global state; every [Lexer] is independent, so concurrent callers
//     tokenising independent inputs need no coordination.
//   - Whitespace is skipped before every token, uniformly — the grammar itself
//     is whitespace-insensitive, so all skipping lives here.
//   - Line comments (-- …) are consumed silently — no token is emitted.
//   - Line, column, and byte offset are tracked for every token; offsets let
//     the parser hand the unconsumed remainder of the input back to callers.
//   - Identifiers are scanned first and then classified as keywords via
//     [ast.LookupIdent]; this keeps the main switch statement small.
//   - The two-character operators (:: and ==) require one character of
//     look-ahead and are handled by peekChar.
package lexer

import (
	"github.com/metaphox/pcf-lang/ast"
)

// Lexer holds all state required to tokenise a single source string.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input   string // the full source text
	pos     int    // current read position (index of ch)
	readPos int    // next read position (pos + 1)
	ch      byte   // current character under examination

	line int // current 1-based line number
	col  int // 1-based column of ch
}

// New creates a [Lexer] that tokenises the given input string.
// The lexer is positioned at the first character; call [Lexer.NextToken]
// immediately to begin scanning.
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar() // prime: set l.ch = input[0]
	return l
}

// NextToken returns the next token from the input.
//
// Whitespace (spaces, tabs, carriage returns, newlines) is skipped before each
// token. Comments (-- …) are also skipped entirely. When the input is exhausted,
// NextToken returns a token with Type == [ast.EOF] on every subsequent call;
// the EOF token's Offset is len(input).
func (l *Lexer) NextToken() ast.Token {
	l.skipWhitespaceAndComments()

	switch l.ch {
	// ── End of input ────────────────────────────────────────────────────────
	case 0:
		return ast.Token{Type: ast.EOF, Line: l.line, Col: l.col, Offset: len(l.input)}

	// ── Single-character delimiters and operators ───────────────────────────
	case '(':
		return l.single(ast.LPAREN, "(")
	case ')':
		return l.single(ast.RPAREN, ")")
	case '<':
		return l.single(ast.LANGLE, "<")
	case '>':
		return l.single(ast.RANGLE, ">")
	case ',':
		return l.single(ast.COMMA, ",")
	case '+':
		return l.single(ast.PLUS, "+")
	case '.':
		return l.single(ast.DOT, ".")

	// ── Operators that need one character of look-ahead ─────────────────────
	case '=':
		if l.peekChar() == '=' {
			return l.double(ast.EQ, "==")
		}
		return l.single(ast.ASSIGN, "=")
	case ':':
		if l.peekChar() == ':' {
			return l.double(ast.CONS, "::")
		}
		return l.single(ast.ILLEGAL, ":")

	// ── Identifiers, keywords, numbers ───────────────────────────────────────
	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
		return l.single(ast.ILLEGAL, string(l.ch))
	}
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// readChar advances the lexer by one character.
// When the input is exhausted l.ch is set to 0 (the null byte sentinel for EOF).
// Line and column counters are updated here; col is 1-based.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	// Track position. Newlines bump the line counter and reset the column.
	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without consuming it.
// Returns 0 when the end of input has been reached.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// single constructs a one-character token at the current position and
// advances past it.
func (l *Lexer) single(tt ast.TokenType, literal string) ast.Token {
	tok := ast.Token{Type: tt, Literal: literal, Line: l.line, Col: l.col, Offset: l.pos}
	l.readChar()
	return tok
}

// double constructs a two-character token starting at the current position
// and advances past both characters.
func (l *Lexer) double(tt ast.TokenType, literal string) ast.Token {
	tok := ast.Token{Type: tt, Literal: literal, Line: l.line, Col: l.col, Offset: l.pos}
	l.readChar()
	l.readChar()
	return tok
}

// skipWhitespaceAndComments advances past all whitespace characters and any
// line comments (-- … \n) before the next meaningful token.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case '-':
			// A second '-' means a line comment — skip to end of line.
			// A lone '-' is not part of the grammar; leave it for NextToken
			// to report as ILLEGAL.
			if l.peekChar() == '-' {
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// readIdentifier scans an identifier or keyword starting at the current
// position. The cursor is left ON the first non-identifier character, so no
// trailing readChar is needed (or allowed) here.
func (l *Lexer) readIdentifier() ast.Token {
	startCol := l.col
	startLine := l.line
	start := l.pos

	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}

	literal := l.input[start:l.pos]
	tt := ast.LookupIdent(literal)
	return ast.Token{Type: tt, Literal: literal, Line: startLine, Col: startCol, Offset: start}
}

// readNumber scans a maximal run of decimal digits starting at the current
// position. Leading zeros are accepted; conversion to a value happens in the
// parser. Like readIdentifier, the cursor is left on the first non-digit.
func (l *Lexer) readNumber() ast.Token {
	startCol := l.col
	startLine := l.line
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	literal := l.input[start:l.pos]
	return ast.Token{Type: ast.INT, Literal: literal, Line: startLine, Col: startCol, Offset: start}
}

// isLetter reports whether b is a valid identifier-start or identifier-continue
// character. Identifiers follow the pattern [a-zA-Z_][a-zA-Z0-9_]*.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
