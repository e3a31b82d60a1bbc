// Package parser implements the PCF-lang recursive-descent parser.
//
// The parser reads a token stream from a [lexer.Lexer] and builds an
// [ast.Expression]. Expression parsing uses Pratt (top-down operator
// precedence): every recursive call either consumes at least one token or
// descends to a strictly tighter binding level, so parsing terminates on
// every finite input — including the bare-identifier-then-operator inputs
// (e.g. "x+y") that defeat a naively layered grammar.
//
// Usage:
//
//	expr, rest, err := parser.Parse(src)
//	if err != nil { ... }
//
// or, managing the lexer yourself:
//
//	p := parser.New(lexer.New(src))
//	expr, err := p.ParseExpression()
//
// Binding powers, tightest to loosest: juxtaposition application, '+', 'and',
// '::', '=='. The fn binder and the sub-expressions of if/let parse at the
// lowest level, so binders extend as far right as possible. '::' is
// right-associative (list building); the other operators and application are
// left-associative.
//
// Failure policy: the first error aborts the parse and no partial AST is
// returned. Errors are [*Error] values carrying position, kind, and the
// production being attempted; the parser never panics. Nesting depth is
// bounded (see [WithMaxDepth]) so pathological input fails with
// [ErrDepthExceeded] instead of overflowing the stack.
package parser

import (
	"strconv"

	"github.com/metaphox/pcf-lang/ast"
	"github.com/metaphox/pcf-lang/lexer"
)

// ── Operator precedence ───────────────────────────────────────────────────────

// Precedence levels, ordered from loosest to tightest binding.
// Each level must be strictly greater than the previous.
const (
	precLowest = iota // 0 — starting point; fn/if/let bodies parse here
	precEquals        // 1 — ==
	precCons          // 2 — ::
	precAnd           // 3 — and
	precSum           // 4 — +
	precApply         // 5 — juxtaposition application
)

// tokenPrecedence maps a TokenType to its infix precedence level.
// Tokens not in this map have precLowest. Application has no operator token;
// it is driven by canBeginExpression in the Pratt loop.
var tokenPrecedence = map[ast.TokenType]int{
	ast.EQ:   precEquals,
	ast.CONS: precCons,
	ast.AND:  precAnd,
	ast.PLUS: precSum,
}

// infixOps maps an operator token to its AST operator.
var infixOps = map[ast.TokenType]ast.InfixOp{
	ast.EQ:   ast.OpEq,
	ast.CONS: ast.OpCons,
	ast.AND:  ast.OpAnd,
	ast.PLUS: ast.OpAdd,
}

// prefixOps maps a keyword-call token (not, succ, ...) to its AST operator.
// pred maps to OpPred: the upstream grammar this parser derives from built a
// Succ node for pred(...), which was a copy-paste mistake.
var prefixOps = map[ast.TokenType]ast.PrefixOp{
	ast.NOT:  ast.OpNot,
	ast.SUCC: ast.OpSucc,
	ast.PRED: ast.OpPred,
	ast.FST:  ast.OpFst,
	ast.SND:  ast.OpSnd,
	ast.HD:   ast.OpHd,
	ast.TL:   ast.OpTl,
}

// DefaultMaxDepth is the nesting bound applied when no [WithMaxDepth] option
// is given. Deep enough for any expression a person would write, shallow
// enough that the bound trips long before the goroutine stack is at risk.
const DefaultMaxDepth = 512

// ── Parser ────────────────────────────────────────────────────────────────────

// prefixParseFn parses a prefix (or standalone) expression starting with the
// current token.
type prefixParseFn func() ast.Expression

// Option configures a Parser created by [New], [Parse], or [ParseProgram].
type Option func(*Parser)

// WithMaxDepth sets the maximum expression nesting depth. Exceeding it yields
// an error matching [ErrDepthExceeded]. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n >= 1 {
			p.maxDepth = n
		}
	}
}

// Parser holds all state needed to parse one expression.
// Create one with [New] and call [Parser.ParseExpression]. A Parser holds no
// process-wide state; concurrent callers parsing independent inputs need no
// coordination.
type Parser struct {
	l    *lexer.Lexer
	cur  ast.Token // current token (the one being examined)
	peek ast.Token // next token (one-token look-ahead)

	err      *Error // first error; once set, all parsing bails out
	depth    int    // current expression nesting depth
	maxDepth int

	prefixFns map[ast.TokenType]prefixParseFn
}

// New creates a Parser that reads tokens from l.
// It primes the two-token lookahead and registers all parse functions.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		l:         l,
		maxDepth:  DefaultMaxDepth,
		prefixFns: make(map[ast.TokenType]prefixParseFn),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.registerPrefix(ast.IDENT, p.parseIdentifier)
	p.registerPrefix(ast.INT, p.parseIntLiteral)
	p.registerPrefix(ast.TRUE, p.parseBoolLiteral)
	p.registerPrefix(ast.FALSE, p.parseBoolLiteral)
	p.registerPrefix(ast.NIL, p.parseNilLiteral)
	p.registerPrefix(ast.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(ast.LANGLE, p.parsePairExpression)
	p.registerPrefix(ast.IF, p.parseIfExpression)
	p.registerPrefix(ast.LET, p.parseLetExpression)
	p.registerPrefix(ast.FN, p.parseFnExpression)
	for tt := range prefixOps {
		p.registerPrefix(tt, p.parsePrefixCall)
	}

	// Prime the lookahead: after two advances, cur = first token, peek = second.
	p.advance()
	p.advance()

	return p
}

// ── Entry points ──────────────────────────────────────────────────────────────

// Parse parses one expression from the front of src and returns it together
// with the unconsumed suffix of src. Whitespace and comments between the
// expression and the remainder are already skipped, so the remainder begins
// at the first unconsumed token (or is "" when the input was fully consumed).
// On failure the expression is nil, the remainder is "", and the error is a
// [*Error].
func Parse(src string, opts ...Option) (ast.Expression, string, error) {
	p := New(lexer.New(src), opts...)
	expr := p.parseExpression(precLowest)
	if p.err != nil {
		return nil, "", p.err
	}
	return expr, src[p.peek.Offset:], nil
}

// ParseProgram parses src as a single whole expression. Trailing input after
// the expression is an error matching [ErrUnexpectedToken].
func ParseProgram(src string, opts ...Option) (ast.Expression, error) {
	p := New(lexer.New(src), opts...)
	expr := p.parseExpression(precLowest)
	if p.err != nil {
		return nil, p.err
	}
	if p.peek.Type != ast.EOF {
		return nil, &Error{
			Kind:       UnexpectedToken,
			Line:       p.peek.Line,
			Col:        p.peek.Col,
			Offset:     p.peek.Offset,
			Got:        p.peek.Literal,
			Want:       "end of input",
			Production: "program",
		}
	}
	return expr, nil
}

// ParseExpression parses one expression from the parser's token stream.
// For callers constructing the Parser via [New].
func (p *Parser) ParseExpression() (ast.Expression, error) {
	expr := p.parseExpression(precLowest)
	if p.err != nil {
		return nil, p.err
	}
	return expr, nil
}

// ── Internal token management ─────────────────────────────────────────────────

// advance consumes one token from the lexer, shifting peek into cur.
func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

// expect checks that the peek token matches tt. If so it advances and returns
// true; otherwise it records an UnterminatedConstruct error — tt is always a
// required fixed token of an already-opened construct here — and returns
// false (no advance).
func (p *Parser) expect(tt ast.TokenType, production string) bool {
	if p.peek.Type == tt {
		p.advance()
		return true
	}
	p.recordError(&Error{
		Kind:       UnterminatedConstruct,
		Line:       p.peek.Line,
		Col:        p.peek.Col,
		Offset:     p.peek.Offset,
		Got:        p.peek.Literal,
		Want:       tt.String(),
		Production: production,
	})
	return false
}

// expectIdent checks that the peek token is an identifier (the bound name of
// a fn or let). Unlike expect, a mismatch here is an UnexpectedToken: the
// construct has not reached a closing-token position yet.
func (p *Parser) expectIdent(production string) bool {
	if p.peek.Type == ast.IDENT {
		p.advance()
		return true
	}
	p.recordError(&Error{
		Kind:       UnexpectedToken,
		Line:       p.peek.Line,
		Col:        p.peek.Col,
		Offset:     p.peek.Offset,
		Got:        p.peek.Literal,
		Want:       "identifier",
		Production: production,
	})
	return false
}

// recordError keeps the first error and ignores the rest; everything after
// the first failure is noise from bailing out.
func (p *Parser) recordError(e *Error) {
	if p.err == nil {
		p.err = e
	}
}

// peekPrec returns the precedence of the peek token.
func (p *Parser) peekPrec() int {
	if prec, ok := tokenPrecedence[p.peek.Type]; ok {
		return prec
	}
	return precLowest
}

// registerPrefix registers a prefix parse function for a token type.
func (p *Parser) registerPrefix(tt ast.TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

// canBeginExpression reports whether tt can start an expression. The Pratt
// loop uses it to detect juxtaposition application, which has no operator
// token: any expression-starting token directly after a complete expression
// is the argument of an application.
func canBeginExpression(tt ast.TokenType) bool {
	switch tt {
	case ast.IDENT, ast.INT, ast.TRUE, ast.FALSE, ast.NIL,
		ast.LPAREN, ast.LANGLE,
		ast.NOT, ast.SUCC, ast.PRED, ast.FST, ast.SND, ast.HD, ast.TL,
		ast.IF, ast.LET, ast.FN:
		return true
	}
	return false
}

// ── Expression parsing (Pratt) ────────────────────────────────────────────────

// parseExpression is the Pratt parser core.
// prec is the minimum binding power of operators the caller will accept.
// Returns nil if an error has been recorded.
func (p *Parser) parseExpression(prec int) ast.Expression {
	if p.err != nil {
		return nil
	}

	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		p.recordError(&Error{
			Kind:       DepthExceeded,
			Line:       p.cur.Line,
			Col:        p.cur.Col,
			Offset:     p.cur.Offset,
			Got:        p.cur.Literal,
			Production: "expression",
		})
		return nil
	}

	prefix := p.prefixFns[p.cur.Type]
	if prefix == nil {
		p.recordError(&Error{
			Kind:       UnexpectedToken,
			Line:       p.cur.Line,
			Col:        p.cur.Col,
			Offset:     p.cur.Offset,
			Got:        p.cur.Literal,
			Want:       "expression",
			Production: "expression",
		})
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.err == nil {
		switch {
		case prec < p.peekPrec():
			p.advance()
			left = p.parseInfixExpression(left)

		case prec < precApply && canBeginExpression(p.peek.Type):
			// Juxtaposition application. The argument binds at application
			// level, so it is a single atom-level expression and repeated
			// arguments associate left: f x y == ((f x) y).
			argTok := p.peek
			p.advance()
			arg := p.parseExpression(precApply)
			if arg == nil {
				return nil
			}
			left = &ast.ApplyExpr{Token: argTok, Fn: left, Arg: arg}

		default:
			return left
		}
		if left == nil {
			return nil
		}
	}
	return nil
}

// ── Prefix parse functions ────────────────────────────────────────────────────

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.cur, Name: p.cur.Literal}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.cur
	val, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		// A maximal digit run always lexes; only overflow can fail here.
		p.recordError(&Error{
			Kind:       UnexpectedToken,
			Line:       tok.Line,
			Col:        tok.Col,
			Offset:     tok.Offset,
			Got:        tok.Literal,
			Want:       "integer in range",
			Production: "integer literal",
		})
		return nil
	}
	return &ast.IntLiteral{Token: tok, Value: val}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{Token: p.cur, Value: p.cur.Type == ast.TRUE}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	return &ast.NilLiteral{Token: p.cur}
}

// parseGroupedExpression handles `( expr )`. The parentheses contribute no
// node of their own, so bracketing is transparent in the resulting tree.
func (p *Parser) parseGroupedExpression() ast.Expression {
	p.advance() // move past '('
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	if !p.expect(ast.RPAREN, "parenthesised expression") {
		return nil
	}
	return expr
}

// parsePrefixCall handles the keyword-call forms: not(e), succ(e), pred(e),
// fst(e), snd(e), hd(e), tl(e).
func (p *Parser) parsePrefixCall() ast.Expression {
	tok := p.cur
	op := prefixOps[tok.Type]
	production := op.String() + " form"

	if !p.expect(ast.LPAREN, production) {
		return nil
	}
	p.advance() // move past '('
	operand := p.parseExpression(precLowest)
	if operand == nil {
		return nil
	}
	if !p.expect(ast.RPAREN, production) {
		return nil
	}
	return &ast.PrefixExpr{Token: tok, Op: op, Operand: operand}
}

// parsePairExpression handles the pair literal `< e1 , e2 >`.
func (p *Parser) parsePairExpression() ast.Expression {
	tok := p.cur // '<'
	p.advance()  // move to first component

	first := p.parseExpression(precLowest)
	if first == nil {
		return nil
	}
	if !p.expect(ast.COMMA, "pair literal") {
		return nil
	}
	p.advance() // move to second component

	second := p.parseExpression(precLowest)
	if second == nil {
		return nil
	}
	if !p.expect(ast.RANGLE, "pair literal") {
		return nil
	}
	return &ast.PairExpr{Token: tok, First: first, Second: second}
}

// parseIfExpression handles `if cond then e1 else e2`. The else branch is
// mandatory.
func (p *Parser) parseIfExpression() ast.Expression {
	tok := p.cur // 'if'
	p.advance()  // move to condition

	cond := p.parseExpression(precLowest)
	if cond == nil {
		return nil
	}
	if !p.expect(ast.THEN, "if expression") {
		return nil
	}
	p.advance() // move to then-branch

	thenExpr := p.parseExpression(precLowest)
	if thenExpr == nil {
		return nil
	}
	if !p.expect(ast.ELSE, "if expression") {
		return nil
	}
	p.advance() // move to else-branch

	elseExpr := p.parseExpression(precLowest)
	if elseExpr == nil {
		return nil
	}
	return &ast.IfExpr{Token: tok, Condition: cond, Then: thenExpr, Else: elseExpr}
}

// parseLetExpression handles `let name = value in body`.
func (p *Parser) parseLetExpression() ast.Expression {
	tok := p.cur // 'let'

	if !p.expectIdent("let expression") {
		return nil
	}
	name := &ast.Identifier{Token: p.cur, Name: p.cur.Literal}

	if !p.expect(ast.ASSIGN, "let expression") {
		return nil
	}
	p.advance() // move to bound value

	value := p.parseExpression(precLowest)
	if value == nil {
		return nil
	}
	if !p.expect(ast.IN, "let expression") {
		return nil
	}
	p.advance() // move to body

	body := p.parseExpression(precLowest)
	if body == nil {
		return nil
	}
	return &ast.LetExpr{
		Token: tok,
		Def:   &ast.Definition{Name: name, Value: value},
		Body:  body,
	}
}

// parseFnExpression handles the binder `fn param. body`. The body extends as
// far right as possible: fn x. x + y is fn x. (x + y).
func (p *Parser) parseFnExpression() ast.Expression {
	tok := p.cur // 'fn'

	if !p.expectIdent("fn expression") {
		return nil
	}
	param := &ast.Identifier{Token: p.cur, Name: p.cur.Literal}

	if !p.expect(ast.DOT, "fn expression") {
		return nil
	}
	p.advance() // move to body

	body := p.parseExpression(precLowest)
	if body == nil {
		return nil
	}
	return &ast.FnExpr{Token: tok, Param: param, Body: body}
}

// ── Infix parse functions ─────────────────────────────────────────────────────

// parseInfixExpression handles all binary infix operators. The current token
// is the operator. '::' parses its right operand one level below its own
// precedence, making it right-associative; the others are left-associative.
func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.cur
	op := infixOps[tok.Type]
	prec := tokenPrecedence[tok.Type]
	if tok.Type == ast.CONS {
		prec--
	}
	p.advance()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.InfixExpr{Token: tok, Op: op, Left: left, Right: right}
}
