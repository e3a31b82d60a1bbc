// Package ast defines the Abstract Syntax Tree (AST) node types for PCF-lang.
//
// PCF-lang is expression-only: there is no statement layer, so the whole AST
// is one Expression tree. The hierarchy is:
//
//	Expression (interface)
//	  Identifier, IntLiteral, BoolLiteral, NilLiteral   — leaves
//	  PrefixExpr                                        — not/succ/pred/fst/snd/hd/tl
//	  InfixExpr                                         — + :: and ==
//	  ApplyExpr                                         — juxtaposition application f x
//	  PairExpr                                          — < e1 , e2 >
//	  IfExpr                                            — if c then t else f
//	  LetExpr (owning a Definition)                     — let x = e1 in e2
//	  FnExpr                                            — fn x. e
//
// Nodes are built bottom-up by the parser and never mutated afterwards. Every
// node exclusively owns its children; trees are finite, acyclic, and unshared.
// Positional information (line + column + byte offset) is stored on the Token
// field present in every node.
package ast

import "fmt"

// ── Interfaces ────────────────────────────────────────────────────────────────

// Expression is the root interface for every node in the AST.
// Every node carries the token at which it starts (for error reporting).
type Expression interface {
	// TokenLiteral returns the literal string of the token that began this node.
	TokenLiteral() string
	// String returns a compact, fully parenthesised representation of the node.
	// It is intended for debugging and test output, not pretty-printing.
	String() string
	expressionNode()
}

// ── Operator enums ────────────────────────────────────────────────────────────

// PrefixOp identifies one of the seven keyword-call unary forms.
type PrefixOp int

const (
	// OpNot is boolean negation: not(e)
	OpNot PrefixOp = iota
	// OpSucc is the integer successor: succ(e)
	OpSucc
	// OpPred is the integer predecessor: pred(e)
	OpPred
	// OpFst projects the first component of a pair: fst(e)
	OpFst
	// OpSnd projects the second component of a pair: snd(e)
	OpSnd
	// OpHd is the head of a list: hd(e)
	OpHd
	// OpTl is the tail of a list: tl(e)
	OpTl
)

var prefixOpNames = map[PrefixOp]string{
	OpNot:  "not",
	OpSucc: "succ",
	OpPred: "pred",
	OpFst:  "fst",
	OpSnd:  "snd",
	OpHd:   "hd",
	OpTl:   "tl",
}

// String returns the source keyword of the operator.
func (op PrefixOp) String() string { return prefixOpNames[op] }

// InfixOp identifies one of the four token-driven binary forms.
// Application and pairing are separate node types ([ApplyExpr], [PairExpr])
// because no operator token drives them.
type InfixOp int

const (
	// OpAdd is integer addition: a + b
	OpAdd InfixOp = iota
	// OpAnd is boolean conjunction: a and b
	OpAnd
	// OpCons is list construction: x :: xs
	OpCons
	// OpEq is equality: a == b
	OpEq
)

var infixOpNames = map[InfixOp]string{
	OpAdd:  "+",
	OpAnd:  "and",
	OpCons: "::",
	OpEq:   "==",
}

// String returns the source spelling of the operator.
func (op InfixOp) String() string { return infixOpNames[op] }

// ── Support types ─────────────────────────────────────────────────────────────

// Definition is the binding inside a let: name = value.
// It is owned exclusively by its enclosing [LetExpr].
type Definition struct {
	Name  *Identifier
	Value Expression
}

// String returns the definition in source form.
func (d *Definition) String() string {
	return fmt.Sprintf("%s = %s", d.Name.String(), d.Value.String())
}

// ── Leaves ────────────────────────────────────────────────────────────────────

// Identifier is a reference to a name bound by an enclosing fn or let.
// Two identifiers are equal iff their Name text is equal; binding resolution
// is the evaluator's concern, not the parser's.
type Identifier struct {
	Token Token
	Name  string
}

func (e *Identifier) expressionNode()      {}
func (e *Identifier) TokenLiteral() string { return e.Token.Literal }
func (e *Identifier) String() string       { return e.Name }

// IntLiteral is a decimal integer literal value.
// The grammar has no sign token, so the parsed value is always non-negative.
type IntLiteral struct {
	Token Token
	Value int64
}

func (e *IntLiteral) expressionNode()      {}
func (e *IntLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *IntLiteral) String() string       { return e.Token.Literal }

// BoolLiteral is the boolean literal true or false.
type BoolLiteral struct {
	Token Token
	Value bool
}

func (e *BoolLiteral) expressionNode()      {}
func (e *BoolLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *BoolLiteral) String() string       { return e.Token.Literal }

// NilLiteral is the empty-list literal nil.
type NilLiteral struct {
	Token Token
}

func (e *NilLiteral) expressionNode()      {}
func (e *NilLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *NilLiteral) String() string       { return "nil" }

// ── Composite nodes ───────────────────────────────────────────────────────────

// PrefixExpr is one of the keyword-call unary forms: op(operand).
//
//	succ(pred(3))
//	not(true)
type PrefixExpr struct {
	Token   Token // the keyword token (not, succ, ...)
	Op      PrefixOp
	Operand Expression
}

func (e *PrefixExpr) expressionNode()      {}
func (e *PrefixExpr) TokenLiteral() string { return e.Token.Literal }
func (e *PrefixExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Op, e.Operand.String())
}

// InfixExpr is a binary infix expression: left op right.
// Left-then-right order is significant in the tree even for operators that
// are commutative in meaning.
type InfixExpr struct {
	Token Token // the operator token
	Op    InfixOp
	Left  Expression
	Right Expression
}

func (e *InfixExpr) expressionNode()      {}
func (e *InfixExpr) TokenLiteral() string { return e.Token.Literal }
func (e *InfixExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Op, e.Right.String())
}

// ApplyExpr is function application by juxtaposition: fn arg.
// Application is left-associative, so f x y is Apply(Apply(f, x), y).
type ApplyExpr struct {
	Token Token // the first token of the argument
	Fn    Expression
	Arg   Expression
}

func (e *ApplyExpr) expressionNode()      {}
func (e *ApplyExpr) TokenLiteral() string { return e.Token.Literal }
func (e *ApplyExpr) String() string {
	return fmt.Sprintf("(%s %s)", e.Fn.String(), e.Arg.String())
}

// PairExpr is a pair literal: < first , second >.
type PairExpr struct {
	Token  Token // the '<' token
	First  Expression
	Second Expression
}

func (e *PairExpr) expressionNode()      {}
func (e *PairExpr) TokenLiteral() string { return e.Token.Literal }
func (e *PairExpr) String() string {
	return fmt.Sprintf("<%s, %s>", e.First.String(), e.Second.String())
}

// IfExpr is a conditional expression with mandatory else branch.
//
//	if a == b then 1 else 0
type IfExpr struct {
	Token     Token // the 'if' token
	Condition Expression
	Then      Expression
	Else      Expression
}

func (e *IfExpr) expressionNode()      {}
func (e *IfExpr) TokenLiteral() string { return e.Token.Literal }
func (e *IfExpr) String() string {
	return fmt.Sprintf("if %s then %s else %s",
		e.Condition.String(), e.Then.String(), e.Else.String())
}

// LetExpr binds a name for the extent of its body.
// The bound name is in scope only within Body; the parser records structure
// and leaves scope resolution to the evaluator.
//
//	let x = succ(0) in x + x
type LetExpr struct {
	Token Token // the 'let' token
	Def   *Definition
	Body  Expression
}

func (e *LetExpr) expressionNode()      {}
func (e *LetExpr) TokenLiteral() string { return e.Token.Literal }
func (e *LetExpr) String() string {
	return fmt.Sprintf("let %s in %s", e.Def.String(), e.Body.String())
}

// FnExpr is a single-argument anonymous function: fn x. body.
// Multi-argument functions are expressed by nesting: fn x. fn y. e.
type FnExpr struct {
	Token Token // the 'fn' token
	Param *Identifier
	Body  Expression
}

func (e *FnExpr) expressionNode()      {}
func (e *FnExpr) TokenLiteral() string { return e.Token.Literal }
func (e *FnExpr) String() string {
	return fmt.Sprintf("(fn %s. %s)", e.Param.String(), e.Body.String())
}
