// Package ast defines the token types and the Token struct used by the PCF-lang lexer and parser.
//
// Tokens are the smallest meaningful units of a source expression. Every token carries its
// type, the exact literal text it was scanned from, its source position (line + column), and
// the byte offset of its first character. Position is 1-based: the first character of the
// input is Line 1, Col 1, Offset 0.
package ast

// TokenType identifies the category of a scanned token.
// The zero value is ILLEGAL, so a zero Token is never mistaken for valid input.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// ILLEGAL represents a character the lexer could not recognise,
	// such as a lone ':' or an unexpected byte value.
	ILLEGAL TokenType = iota
	// EOF marks the end of the input stream. Its Offset equals len(input) so
	// the parser's remainder computation needs no special case.
	EOF

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENT is an identifier: [a-zA-Z_][a-zA-Z0-9_]*
	// Identifiers that match a keyword are re-classified to their keyword type
	// by the lexer before the token is returned.
	IDENT
	// INT is a maximal run of decimal digits, e.g. 0, 42, 007.
	// Leading zeros are accepted; there is no sign token in the grammar.
	INT

	// ── Keywords ───────────────────────────────────────────────────────────────

	// LET opens a binding: let x = e1 in e2
	LET
	// IN separates the definition from the body of a let.
	IN
	// FN introduces a single-argument anonymous function: fn x. e
	FN
	// IF begins a conditional: if c then t else f
	IF
	// THEN separates the condition from the true branch of an if.
	THEN
	// ELSE separates the true branch from the false branch of an if.
	ELSE
	// NOT is boolean negation: not(e)
	NOT
	// SUCC is the integer successor form: succ(e)
	SUCC
	// PRED is the integer predecessor form: pred(e)
	PRED
	// FST projects the first component of a pair: fst(e)
	FST
	// SND projects the second component of a pair: snd(e)
	SND
	// HD is the head of a list: hd(e)
	HD
	// TL is the tail of a list: tl(e)
	TL
	// AND is the boolean conjunction operator: a and b
	AND
	// TRUE is the boolean literal true.
	TRUE
	// FALSE is the boolean literal false.
	FALSE
	// NIL is the empty-list literal.
	NIL

	// ── Operators ──────────────────────────────────────────────────────────────

	// PLUS is the addition operator: a + b
	PLUS
	// CONS is the list-construction operator: x :: xs
	CONS
	// EQ is the equality operator: a == b
	EQ
	// ASSIGN binds a name inside a let definition: let x = e in ...
	ASSIGN
	// DOT terminates a fn binder: fn x. e
	DOT

	// ── Delimiters ──────────────────────────────────────────────────────────────

	// LPAREN is the left parenthesis: (
	LPAREN
	// RPAREN is the right parenthesis: )
	RPAREN
	// LANGLE opens a pair literal: < e1 , e2 >
	LANGLE
	// RANGLE closes a pair literal.
	RANGLE
	// COMMA separates the two components of a pair literal.
	COMMA
)

// tokenNames maps each TokenType to a short descriptive name, used in
// error messages and token dumps.
var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	IDENT:   "identifier",
	INT:     "integer",
	LET:     "'let'",
	IN:      "'in'",
	FN:      "'fn'",
	IF:      "'if'",
	THEN:    "'then'",
	ELSE:    "'else'",
	NOT:     "'not'",
	SUCC:    "'succ'",
	PRED:    "'pred'",
	FST:     "'fst'",
	SND:     "'snd'",
	HD:      "'hd'",
	TL:      "'tl'",
	AND:     "'and'",
	TRUE:    "'true'",
	FALSE:   "'false'",
	NIL:     "'nil'",
	PLUS:    "'+'",
	CONS:    "'::'",
	EQ:      "'=='",
	ASSIGN:  "'='",
	DOT:     "'.'",
	LPAREN:  "'('",
	RPAREN:  "')'",
	LANGLE:  "'<'",
	RANGLE:  "'>'",
	COMMA:   "','",
}

// String returns the descriptive name of the token type.
func (tt TokenType) String() string {
	if n, ok := tokenNames[tt]; ok {
		return n
	}
	return "UNKNOWN"
}

// keywords maps the literal text of every keyword to its TokenType.
// The lexer consults this map when it finishes scanning an identifier.
var keywords = map[string]TokenType{
	"let":   LET,
	"in":    IN,
	"fn":    FN,
	"if":    IF,
	"then":  THEN,
	"else":  ELSE,
	"not":   NOT,
	"succ":  SUCC,
	"pred":  PRED,
	"fst":   FST,
	"snd":   SND,
	"hd":    HD,
	"tl":    TL,
	"and":   AND,
	"true":  TRUE,
	"false": FALSE,
	"nil":   NIL,
}

// LookupIdent checks whether ident is a reserved keyword and returns the
// corresponding TokenType. If ident is not a keyword, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Token is a single lexical unit produced by the lexer.
//
// Fields:
//   - Type    — the category of this token (see TokenType constants)
//   - Literal — the exact source text that was scanned
//   - Line    — 1-based source line number
//   - Col     — 1-based column of the first character of this token
//   - Offset  — byte index of the first character in the original input
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
	Offset  int
}

// String returns a human-readable representation of the token, useful for
// debugging and error messages.
func (t Token) String() string {
	return t.Literal
}
