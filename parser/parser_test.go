// Package parser_test contains tests for the PCF-lang parser.
//
// Each test parses a snippet and inspects the returned AST, either through
// type assertions or through the compact String() rendering (which is fully
// parenthesised and therefore encodes the resolved precedence).
//
// Test categories:
//   - Literals and atoms:  integers, booleans, nil, identifiers
//   - Termination:         the bare-operand-then-operator inputs that defeat
//                          a naively layered grammar
//   - Precedence:          + vs and, :: vs ==, application vs everything
//   - Associativity:       left for + / and / == / application, right for ::
//   - Grouping:            bracket transparency
//   - Keyword forms:       not/succ/pred/fst/snd/hd/tl, if, let, fn, pairs
//   - Contract:            remainder handling, determinism, error taxonomy,
//                          nesting depth bound
package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaphox/pcf-lang/ast"
	"github.com/metaphox/pcf-lang/parser"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

// mustParse parses input as a whole program and fails the test on error.
func mustParse(t *testing.T, input string) ast.Expression {
	t.Helper()
	expr, err := parser.ParseProgram(input)
	require.NoError(t, err, "input: %s", input)
	require.NotNil(t, expr)
	return expr
}

// ignoreTokens makes cmp compare tree shape and values but not source
// positions, so differently-spaced spellings of the same expression compare
// equal.
var ignoreTokens = cmpopts.IgnoreTypes(ast.Token{})

// ── Literals and atoms ────────────────────────────────────────────────────────

func TestParse_IntLiteral(t *testing.T) {
	lit, ok := mustParse(t, "42").(*ast.IntLiteral)
	require.True(t, ok, "expected *ast.IntLiteral")
	assert.Equal(t, int64(42), lit.Value)
}

func TestParse_IntLiteralLeadingZeros(t *testing.T) {
	lit, ok := mustParse(t, "007").(*ast.IntLiteral)
	require.True(t, ok, "expected *ast.IntLiteral")
	assert.Equal(t, int64(7), lit.Value)
}

func TestParse_BoolLiterals(t *testing.T) {
	bt, ok := mustParse(t, "true").(*ast.BoolLiteral)
	require.True(t, ok, "expected *ast.BoolLiteral")
	assert.True(t, bt.Value)

	bf, ok := mustParse(t, "false").(*ast.BoolLiteral)
	require.True(t, ok, "expected *ast.BoolLiteral")
	assert.False(t, bf.Value)
}

func TestParse_NilLiteral(t *testing.T) {
	_, ok := mustParse(t, "nil").(*ast.NilLiteral)
	require.True(t, ok, "expected *ast.NilLiteral")
}

func TestParse_Identifier(t *testing.T) {
	id, ok := mustParse(t, "foo_bar").(*ast.Identifier)
	require.True(t, ok, "expected *ast.Identifier")
	assert.Equal(t, "foo_bar", id.Name)
}

// ── Termination ───────────────────────────────────────────────────────────────

// TestParse_Termination parses the inputs whose left operand is a bare atom
// followed immediately by an infix operator. A grammar that re-enters its
// top rule for the left operand recurses forever on these; the Pratt core
// must return promptly with the right tree.
func TestParse_Termination(t *testing.T) {
	cases := map[string]string{
		"x+y":     "(x + y)",
		"x and y": "(x and y)",
		"x::y":    "(x :: y)",
		"x==y":    "(x == y)",
		"f x":     "(f x)",
		"x":       "x",
	}
	for input, want := range cases {
		expr := mustParse(t, input)
		assert.Equal(t, want, expr.String(), "input: %s", input)
	}
}

// ── Precedence ────────────────────────────────────────────────────────────────

func TestParse_Precedence(t *testing.T) {
	cases := map[string]string{
		// + binds tighter than and
		"a+b and c": "((a + b) and c)",
		"a and b+c": "(a and (b + c))",
		// :: binds tighter than ==
		"a::b==c": "((a :: b) == c)",
		"a==b::c": "(a == (b :: c))",
		// and binds tighter than ::
		"a and b::c": "((a and b) :: c)",
		// application binds tightest of all
		"f x + y":     "((f x) + y)",
		"f x and g y": "((f x) and (g y))",
		"f x :: g y":  "((f x) :: (g y))",
		"f x == g y":  "((f x) == (g y))",
		// fn extends maximally right
		"fn x. x + y":  "(fn x. (x + y))",
		"fn x. x == y": "(fn x. (x == y))",
	}
	for input, want := range cases {
		expr := mustParse(t, input)
		assert.Equal(t, want, expr.String(), "input: %s", input)
	}
}

func TestParse_Associativity(t *testing.T) {
	cases := map[string]string{
		"a+b+c":         "((a + b) + c)",     // left
		"a and b and c": "((a and b) and c)", // left
		"a==b==c":       "((a == b) == c)",   // left
		"f x y":         "((f x) y)",         // left
		"a::b::nil":     "(a :: (b :: nil))", // right, list building
	}
	for input, want := range cases {
		expr := mustParse(t, input)
		assert.Equal(t, want, expr.String(), "input: %s", input)
	}
}

// ── Grouping ──────────────────────────────────────────────────────────────────

// TestParse_BracketTransparency checks that parentheses contribute no node:
// "(a+b)" and "a+b" produce structurally identical trees.
func TestParse_BracketTransparency(t *testing.T) {
	cases := [][2]string{
		{"(a+b)", "a+b"},
		{"((42))", "42"},
		{"(a) + (b)", "a + b"},
	}
	for _, c := range cases {
		left := mustParse(t, c[0])
		right := mustParse(t, c[1])
		if diff := cmp.Diff(right, left, ignoreTokens); diff != "" {
			t.Errorf("%q vs %q: tree mismatch (-want +got):\n%s", c[0], c[1], diff)
		}
	}
}

// TestParse_GroupingOverridesPrecedence verifies brackets force the looser
// operator inward.
func TestParse_GroupingOverridesPrecedence(t *testing.T) {
	expr := mustParse(t, "a + (b and c)")
	assert.Equal(t, "(a + (b and c))", expr.String())
}

// ── Keyword-call forms ────────────────────────────────────────────────────────

func TestParse_PrefixCalls(t *testing.T) {
	cases := map[string]ast.PrefixOp{
		"not(true)": ast.OpNot,
		"succ(0)":   ast.OpSucc,
		"pred(0)":   ast.OpPred,
		"fst(p)":    ast.OpFst,
		"snd(p)":    ast.OpSnd,
		"hd(xs)":    ast.OpHd,
		"tl(xs)":    ast.OpTl,
	}
	for input, op := range cases {
		pe, ok := mustParse(t, input).(*ast.PrefixExpr)
		require.True(t, ok, "input %q: expected *ast.PrefixExpr", input)
		assert.Equal(t, op, pe.Op, "input: %s", input)
	}
}

// TestParse_SuccPredRoundTrip nests the two numeric forms: pred(...) must
// build a pred node, not a second succ.
func TestParse_SuccPredRoundTrip(t *testing.T) {
	outer, ok := mustParse(t, "succ(pred(3))").(*ast.PrefixExpr)
	require.True(t, ok, "expected *ast.PrefixExpr")
	require.Equal(t, ast.OpSucc, outer.Op)

	inner, ok := outer.Operand.(*ast.PrefixExpr)
	require.True(t, ok, "expected nested *ast.PrefixExpr")
	require.Equal(t, ast.OpPred, inner.Op)

	lit, ok := inner.Operand.(*ast.IntLiteral)
	require.True(t, ok, "expected *ast.IntLiteral operand")
	assert.Equal(t, int64(3), lit.Value)
}

// ── Binder and application ────────────────────────────────────────────────────

func TestParse_FnExpression(t *testing.T) {
	fn, ok := mustParse(t, "fn x. x").(*ast.FnExpr)
	require.True(t, ok, "expected *ast.FnExpr")
	assert.Equal(t, "x", fn.Param.Name)

	body, ok := fn.Body.(*ast.Identifier)
	require.True(t, ok, "expected *ast.Identifier body")
	assert.Equal(t, "x", body.Name)
}

func TestParse_ApplicationOfFn(t *testing.T) {
	app, ok := mustParse(t, "(fn x. x) y").(*ast.ApplyExpr)
	require.True(t, ok, "expected *ast.ApplyExpr")

	_, ok = app.Fn.(*ast.FnExpr)
	require.True(t, ok, "expected *ast.FnExpr on the left")

	arg, ok := app.Arg.(*ast.Identifier)
	require.True(t, ok, "expected *ast.Identifier argument")
	assert.Equal(t, "y", arg.Name)
}

func TestParse_NestedFn(t *testing.T) {
	expr := mustParse(t, "fn x. fn y. x + y")
	assert.Equal(t, "(fn x. (fn y. (x + y)))", expr.String())
}

// Keyword forms are legal application arguments.
func TestParse_ApplicationArguments(t *testing.T) {
	cases := map[string]string{
		"f succ(3)": "(f succ(3))",
		"f (g x)":   "(f (g x))",
		"f <1, 2>":  "(f <1, 2>)",
		"f 1 2":     "((f 1) 2)",
	}
	for input, want := range cases {
		expr := mustParse(t, input)
		assert.Equal(t, want, expr.String(), "input: %s", input)
	}
}

// ── if / let / pair ───────────────────────────────────────────────────────────

func TestParse_IfExpression(t *testing.T) {
	ife, ok := mustParse(t, "if a == b then 1 else 0").(*ast.IfExpr)
	require.True(t, ok, "expected *ast.IfExpr")
	assert.Equal(t, "(a == b)", ife.Condition.String())
	assert.Equal(t, "1", ife.Then.String())
	assert.Equal(t, "0", ife.Else.String())
}

func TestParse_LetExpression(t *testing.T) {
	let, ok := mustParse(t, "let x = succ(0) in x + x").(*ast.LetExpr)
	require.True(t, ok, "expected *ast.LetExpr")
	assert.Equal(t, "x", let.Def.Name.Name)
	assert.Equal(t, "succ(0)", let.Def.Value.String())
	assert.Equal(t, "(x + x)", let.Body.String())
}

func TestParse_PairExpression(t *testing.T) {
	pair, ok := mustParse(t, "<1, nil>").(*ast.PairExpr)
	require.True(t, ok, "expected *ast.PairExpr")
	assert.Equal(t, "1", pair.First.String())
	assert.Equal(t, "nil", pair.Second.String())

	nested := mustParse(t, "<a, <b, c>>")
	assert.Equal(t, "<a, <b, c>>", nested.String())
}

// TestParse_EndToEnd exercises every construct in one expression.
func TestParse_EndToEnd(t *testing.T) {
	input := `let f = fn x. succ(x) in if f 0 == 1 and not(false) then <1, nil> else 2 :: nil`
	expr := mustParse(t, input)
	// Note the ladder: 'and' binds tighter than '==', so the conjunction
	// lands inside the equality's right operand.
	want := "let f = (fn x. succ(x)) in if ((f 0) == (1 and not(false))) then <1, nil> else (2 :: nil)"
	assert.Equal(t, want, expr.String())
}

// ── Remainder contract ────────────────────────────────────────────────────────

func TestParse_Remainder(t *testing.T) {
	expr, rest, err := parser.Parse("x + y then whatever")
	require.NoError(t, err)
	assert.Equal(t, "(x + y)", expr.String())
	assert.Equal(t, "then whatever", rest)
}

func TestParse_EmptyRemainder(t *testing.T) {
	expr, rest, err := parser.Parse("succ(41)  ") // trailing whitespace consumed
	require.NoError(t, err)
	assert.Equal(t, "succ(41)", expr.String())
	assert.Equal(t, "", rest)
}

// TestParse_RemainderReparse checks that the remainder of one parse feeds a
// fresh parse with no residual state: the second result is identical to
// parsing the same text directly.
func TestParse_RemainderReparse(t *testing.T) {
	first, rest, err := parser.Parse("f 1 , g 2")
	require.NoError(t, err)
	assert.Equal(t, "(f 1)", first.String())
	require.Equal(t, ", g 2", rest)

	second, rest2, err := parser.Parse(strings.TrimPrefix(rest, ","))
	require.NoError(t, err)
	assert.Equal(t, "(g 2)", second.String())
	assert.Equal(t, "", rest2)

	direct, _, err := parser.Parse("g 2")
	require.NoError(t, err)
	if diff := cmp.Diff(direct, second, ignoreTokens); diff != "" {
		t.Errorf("remainder reparse differs from direct parse (-want +got):\n%s", diff)
	}
}

func TestParseProgram_RejectsTrailingInput(t *testing.T) {
	_, err := parser.ParseProgram("a + b) stray")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrUnexpectedToken), "got %v", err)
}

func TestParseProgram_AllowsTrailingCommentAndWhitespace(t *testing.T) {
	expr, err := parser.ParseProgram("a + b  -- done\n")
	require.NoError(t, err)
	assert.Equal(t, "(a + b)", expr.String())
}

// ── Determinism ───────────────────────────────────────────────────────────────

func TestParse_Determinism(t *testing.T) {
	input := `let f = fn x. x :: nil in if true then f 1 else f 2`
	a := mustParse(t, input)
	b := mustParse(t, input)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("two parses of the same input differ:\n%s", diff)
	}
}

// ── Error taxonomy ────────────────────────────────────────────────────────────

func TestParse_UnterminatedConstructs(t *testing.T) {
	cases := []string{
		"if a then b",   // missing else
		"if a",          // missing then
		"(a + b",        // missing )
		"succ(1",        // missing )
		"let x = 1",     // missing in
		"let x 1 in x",  // missing =
		"fn x x",        // missing .
		"<1, 2",         // missing >
		"<1 2>",         // missing ,
	}
	for _, input := range cases {
		_, err := parser.ParseProgram(input)
		require.Error(t, err, "input: %s", input)
		assert.True(t, errors.Is(err, parser.ErrUnterminatedConstruct),
			"input %q: got %v", input, err)
	}
}

func TestParse_UnexpectedTokens(t *testing.T) {
	cases := []string{
		"",        // empty input
		"   ",     // whitespace only
		")",       // no expression starts with )
		"x + ",    // missing right operand
		"fn . x",  // missing parameter name
		"let = 1 in x", // missing bound name
		"::",      // bare operator
	}
	for _, input := range cases {
		_, err := parser.ParseProgram(input)
		require.Error(t, err, "input: %q", input)
		assert.True(t, errors.Is(err, parser.ErrUnexpectedToken),
			"input %q: got %v", input, err)
	}
}

func TestParse_ErrorCarriesPosition(t *testing.T) {
	_, err := parser.ParseProgram("if a\nthen b")
	require.Error(t, err)

	var perr *parser.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, parser.UnterminatedConstruct, perr.Kind)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, "if expression", perr.Production)
	assert.Contains(t, perr.Error(), "line 2")
}

func TestParse_NoPartialAST(t *testing.T) {
	expr, rest, err := parser.Parse("if a then b")
	require.Error(t, err)
	assert.Nil(t, expr)
	assert.Equal(t, "", rest)
}

// ── Depth bound ───────────────────────────────────────────────────────────────

func TestParse_DepthExceeded(t *testing.T) {
	deep := strings.Repeat("(", 64) + "x" + strings.Repeat(")", 64)
	_, err := parser.ParseProgram(deep, parser.WithMaxDepth(16))
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrDepthExceeded), "got %v", err)

	var perr *parser.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, parser.DepthExceeded, perr.Kind)
}

func TestParse_DepthWithinBound(t *testing.T) {
	ok := strings.Repeat("(", 10) + "x" + strings.Repeat(")", 10)
	expr, err := parser.ParseProgram(ok, parser.WithMaxDepth(16))
	require.NoError(t, err)
	assert.Equal(t, "x", expr.String())
}

// The default bound accepts any sane expression and still trips before the
// goroutine stack is in danger.
func TestParse_DefaultDepthBound(t *testing.T) {
	deep := strings.Repeat("succ(", 100000) + "0" + strings.Repeat(")", 100000)
	_, err := parser.ParseProgram(deep)
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrDepthExceeded), "got %v", err)
}
