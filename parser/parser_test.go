/*
File    : dune/parser/parser_test.go
*/
package parser

import (
	"testing"

	"github.com/dune-shell/dune/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) Node {
	t.Helper()
	stmts, err := New(src).Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func TestParse_Literals(t *testing.T) {
	assert.Equal(t, int64(42), parseOne(t, "42").(*Integer).Value)
	assert.Equal(t, 3.5, parseOne(t, "3.5").(*Float).Value)
	assert.Equal(t, "hi", parseOne(t, `"hi"`).(*String).Value)
	assert.True(t, parseOne(t, "true").(*Boolean).Value)
	assert.IsType(t, &None{}, parseOne(t, "none"))
}

func TestParse_ExpressionFormDoesNotBecomeCommand(t *testing.T) {
	n := parseOne(t, "x + 1").(*BinOp)
	assert.Equal(t, "+", n.Op)
	assert.IsType(t, &Symbol{}, n.Lhs)
	assert.Equal(t, int64(1), n.Rhs.(*Integer).Value)
}

func TestParse_CallFormIsApplyNotCommand(t *testing.T) {
	n := parseOne(t, "x(1)").(*Apply)
	assert.IsType(t, &Symbol{}, n.Callee)
	assert.Equal(t, "x", n.Callee.(*Symbol).Name)
	assert.Len(t, n.Args, 1)
}

func TestParse_IndexAndField(t *testing.T) {
	idx := parseOne(t, "x[0]").(*Index)
	assert.Equal(t, "x", idx.Container.(*Symbol).Name)
	assert.Equal(t, int64(0), idx.Key.(*Integer).Value)

	field := parseOne(t, "x@y").(*Field)
	assert.Equal(t, "x", field.Container.(*Symbol).Name)
	assert.Equal(t, "y", field.Name)
}

func TestParse_BareSymbolStatementIsPlainSymbol(t *testing.T) {
	// Zero-arg command fallback is an eval-time concern, not a parser one.
	assert.IsType(t, &Symbol{}, parseOne(t, "foo"))
}

func TestParse_CommandFormBuildsApply(t *testing.T) {
	n := parseOne(t, "ls -la ./foo.txt").(*Apply)
	assert.Equal(t, "ls", n.Callee.(*Symbol).Name)
	require.Len(t, n.Args, 2)
	assert.Equal(t, "-la", n.Args[0].(*Symbol).Name)
	assert.Equal(t, "./foo.txt", n.Args[1].(*Symbol).Name)
}

func TestParse_CommandFormArgCanBeQuotedOrBareSymbol(t *testing.T) {
	n := parseOne(t, `echo "hi" there`).(*Apply)
	require.Len(t, n.Args, 2)
	assert.Equal(t, "hi", n.Args[0].(*String).Value)
	assert.Equal(t, "there", n.Args[1].(*Symbol).Name)
}

func TestParse_LambdaSingleParam(t *testing.T) {
	n := parseOne(t, "x -> x + 1").(*Lambda)
	assert.Equal(t, []string{"x"}, n.Params)
	assert.Equal(t, "+", n.Body.(*BinOp).Op)
}

func TestParse_LambdaCurried(t *testing.T) {
	n := parseOne(t, "x -> y -> x + y").(*Lambda)
	assert.Equal(t, []string{"x"}, n.Params)
	inner := n.Body.(*Lambda)
	assert.Equal(t, []string{"y"}, inner.Params)
}

func TestParse_LambdaMultiParam(t *testing.T) {
	n := parseOne(t, "(a, b) -> a + b").(*Lambda)
	assert.Equal(t, []string{"a", "b"}, n.Params)
}

func TestParse_GroupIsNotLambda(t *testing.T) {
	n := parseOne(t, "(1 + 2)").(*Group)
	assert.Equal(t, "+", n.Inner.(*BinOp).Op)
}

func TestParse_Macro(t *testing.T) {
	n := parseOne(t, "macro (a, b) -> a").(*Macro)
	assert.Equal(t, []string{"a", "b"}, n.Params)

	single := parseOne(t, "macro a -> a").(*Macro)
	assert.Equal(t, []string{"a"}, single.Params)
}

func TestParse_QuoteBareSymbol(t *testing.T) {
	n := parseOne(t, "'x").(*Quote)
	assert.Equal(t, "x", n.Expr.(*Symbol).Name)
}

func TestParse_QuoteOperatorSymbol(t *testing.T) {
	n := parseOne(t, "'+").(*Quote)
	assert.Equal(t, "+", n.Expr.(*Symbol).Name)
}

func TestParse_QuoteFormWithLeadingSymbolIsApply(t *testing.T) {
	n := parseOne(t, "'(add 1 2)").(*Quote)
	app := n.Expr.(*Apply)
	assert.Equal(t, "add", app.Callee.(*Symbol).Name)
	require.Len(t, app.Args, 2)
}

func TestParse_QuoteFormWithoutLeadingSymbolIsList(t *testing.T) {
	n := parseOne(t, "'(1 2 3)").(*Quote)
	lst := n.Expr.(*List)
	require.Len(t, lst.Elements, 3)
}

func TestParse_MapLiteralUsesAssignSeparator(t *testing.T) {
	n := parseOne(t, `{a = 1, b = 2}`).(*Map)
	require.Len(t, n.Entries, 2)
	assert.Equal(t, "a", n.Entries[0].Key.(*Symbol).Name)
	assert.Equal(t, int64(1), n.Entries[0].Value.(*Integer).Value)
}

func TestParse_ListLiteral(t *testing.T) {
	n := parseOne(t, "[1, 2, 3]").(*List)
	require.Len(t, n.Elements, 3)
}

func TestParse_If(t *testing.T) {
	n := parseOne(t, "if x { 1 } else { 2 }").(*If)
	assert.IsType(t, &Symbol{}, n.Cond)
	assert.IsType(t, &Block{}, n.Then)
	assert.IsType(t, &Block{}, n.Else)
}

func TestParse_IfElseIfChain(t *testing.T) {
	n := parseOne(t, "if a { 1 } else if b { 2 } else { 3 }").(*If)
	elseIf := n.Else.(*If)
	assert.IsType(t, &Symbol{}, elseIf.Cond)
}

func TestParse_IfOneLinerWithoutBraces(t *testing.T) {
	n := parseOne(t, "if x 1 else 2").(*If)
	assert.Equal(t, int64(1), n.Then.(*Integer).Value)
}

func TestParse_For(t *testing.T) {
	n := parseOne(t, "for x in xs { x }").(*For)
	assert.Equal(t, "x", n.Name)
	assert.Equal(t, "xs", n.Iter.(*Symbol).Name)
}

func TestParse_While(t *testing.T) {
	n := parseOne(t, "while x { x }").(*While)
	assert.IsType(t, &Symbol{}, n.Cond)
}

func TestParse_Let(t *testing.T) {
	n := parseOne(t, "let x = 1").(*Let)
	assert.Equal(t, []string{"x"}, n.Names)
	require.Len(t, n.Inits, 1)
	assert.Nil(t, n.Body)
}

func TestParse_LetWithoutInit(t *testing.T) {
	n := parseOne(t, "let x").(*Let)
	assert.Equal(t, []string{"x"}, n.Names)
	assert.Empty(t, n.Inits)
}

func TestParse_LetIn(t *testing.T) {
	n := parseOne(t, "let x = 1 in x + 1").(*Let)
	require.NotNil(t, n.Body)
	assert.Equal(t, "+", n.Body.(*BinOp).Op)
}

func TestParse_LetOperatorTarget(t *testing.T) {
	n := parseOne(t, "let '+ = 5").(*Let)
	assert.Equal(t, []string{"+"}, n.Names)
	require.Len(t, n.Inits, 1)
	assert.Equal(t, int64(5), n.Inits[0].(*Integer).Value)
}

func TestParse_LetOperatorTargetWithLambda(t *testing.T) {
	n := parseOne(t, "let '+ = (a, b) -> a * b").(*Let)
	assert.Equal(t, []string{"+"}, n.Names)
	lam := n.Inits[0].(*Lambda)
	assert.Equal(t, []string{"a", "b"}, lam.Params)
}

func TestParse_Assign(t *testing.T) {
	n := parseOne(t, "x = 1").(*Assign)
	assert.Equal(t, "x", n.Target.(*Symbol).Name)
}

func TestParse_AssignToIndex(t *testing.T) {
	n := parseOne(t, "x[0] = 1").(*Assign)
	assert.IsType(t, &Index{}, n.Target)
}

func TestParse_UnaryMinusVsBinaryMinus(t *testing.T) {
	neg := parseOne(t, "-5").(*UnOp)
	assert.Equal(t, "-", neg.Op)
	assert.Equal(t, int64(5), neg.Operand.(*Integer).Value)

	sub := parseOne(t, "a - 1").(*BinOp)
	assert.Equal(t, "-", sub.Op)
}

func TestParse_ArrowVsMinusVsFlag(t *testing.T) {
	n := parseOne(t, "x -> -1")
	lam := n.(*Lambda)
	un := lam.Body.(*UnOp)
	assert.Equal(t, "-", un.Op)
}

func TestParse_IncompleteOnUnterminatedParen(t *testing.T) {
	_, err := New("(1 + 2").Parse()
	require.Error(t, err)
	derr, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Equal(t, errors.KindIncomplete, derr.Kind)
}

func TestParse_IncompleteOnUnterminatedBrace(t *testing.T) {
	_, err := New("if x { 1").Parse()
	require.Error(t, err)
	derr, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Equal(t, errors.KindIncomplete, derr.Kind)
}

func TestParse_ToValueFromValueRoundTrip(t *testing.T) {
	stmts, err := New("add(1, 2)").Parse()
	require.NoError(t, err)
	v := ToValue(stmts[0])
	back, err := FromValue(v)
	require.NoError(t, err)
	app := back.(*Apply)
	assert.Equal(t, "add", app.Callee.(*Symbol).Name)
	require.Len(t, app.Args, 2)
	assert.Equal(t, int64(1), app.Args[0].(*Integer).Value)
	assert.Equal(t, int64(2), app.Args[1].(*Integer).Value)
}

func TestParse_QuoteIdentityThroughReparse(t *testing.T) {
	stmts, err := New("'(greet name)").Parse()
	require.NoError(t, err)
	quote := stmts[0].(*Quote)
	app := quote.Expr.(*Apply)
	assert.Equal(t, "greet", app.Callee.(*Symbol).Name)
	assert.Equal(t, "name", app.Args[0].(*Symbol).Name)
}
