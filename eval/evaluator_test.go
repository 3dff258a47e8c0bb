/*
File    : dune/eval/evaluator_test.go
*/
package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/host"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/parser"
	"github.com/dune-shell/dune/scope"
)

func run(t *testing.T, e *Evaluator, env *scope.Environment, src string) objects.Value {
	t.Helper()
	stmts, err := parser.New(src).Parse()
	require.NoError(t, err)
	v, err := e.Run(stmts, env)
	require.NoError(t, err)
	return v
}

func newEvalEnv(h host.Host) (*Evaluator, *scope.Environment) {
	e := New(h)
	return e, e.NewRootEnv()
}

func TestEval_ArithmeticWithLet(t *testing.T) {
	e, env := newEvalEnv(host.NewFakeHost())
	v := run(t, e, env, "let x = 10\nx + 2*3")
	assert.Equal(t, int64(16), v.(*objects.Int).Value)
}

func TestEval_CurriedLambda(t *testing.T) {
	e, env := newEvalEnv(host.NewFakeHost())
	v := run(t, e, env, "let f = x -> y -> x + y\n(f 3) 4")
	assert.Equal(t, int64(7), v.(*objects.Int).Value)
}

func TestEval_MacroReceivesUnevaluatedSymbol(t *testing.T) {
	e, env := newEvalEnv(host.NewFakeHost())
	v := run(t, e, env, "let greet = macro name -> name\ngreet hello")
	sym, ok := v.(*objects.Symbol)
	require.True(t, ok, "expected a Symbol, got %T", v)
	assert.Equal(t, "hello", sym.Name)
}

func TestEval_OperatorOverload(t *testing.T) {
	// §8 scenario 4: rebinding `+` to multiplication via the quoted-operator
	// let target. The target is written `'+` here: `'+'` would lex as a
	// single-quoted string literal, which is not a valid let target.
	e, env := newEvalEnv(host.NewFakeHost())
	v := run(t, e, env, "let '+ = (a, b) -> a * b\n2 + 3")
	assert.Equal(t, int64(6), v.(*objects.Int).Value)
}

func TestEval_ExecSeesCallerFrame(t *testing.T) {
	// exec runs the quoted form directly in the caller's frame, so it
	// resolves x to the caller's binding.
	e, env := newEvalEnv(host.NewFakeHost())
	v := run(t, e, env, "let x = 99\nexec '(x)")
	assert.Equal(t, int64(99), v.(*objects.Int).Value)
}

func TestEval_EvalIsolatedFromCallerFrame(t *testing.T) {
	// eval runs the quoted form against a child of the root env, not the
	// caller's frame, so x fails to resolve and evaluates to itself
	// (§4.6's symbol fallback) instead of the caller's binding.
	e, env := newEvalEnv(host.NewFakeHost())
	v := run(t, e, env, "let x = 99\neval '(x)")
	sym, ok := v.(*objects.Symbol)
	require.True(t, ok, "expected an unresolved Symbol, got %T (%v)", v, v)
	assert.Equal(t, "x", sym.Name)
}

func TestEval_IncompleteThenCompletes(t *testing.T) {
	_, err := parser.New("let x = (1+").Parse()
	require.Error(t, err)
	derr, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Equal(t, errors.KindIncomplete, derr.Kind)

	stmts, err := parser.New("let x = (1+\n 2)").Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 1)
}

func TestEval_BareSymbolDispatchesAsCommand(t *testing.T) {
	h := host.NewFakeHost()
	e, env := newEvalEnv(h)
	v := run(t, e, env, "echo hi there")
	require.Len(t, h.Calls, 1)
	assert.Equal(t, []string{"echo", "hi", "there"}, h.Calls[0].Argv)
	assert.Equal(t, int64(0), v.(*objects.Int).Value)
}

func TestEval_ArityMismatch(t *testing.T) {
	e, env := newEvalEnv(host.NewFakeHost())
	stmts, err := parser.New("let f = x -> x\nf(1, 2)").Parse()
	require.NoError(t, err)
	_, err = e.Run(stmts, env)
	require.Error(t, err)
	derr, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Equal(t, errors.KindArityMismatch, derr.Kind)
}

func TestEval_RecursionDepthExceeded(t *testing.T) {
	// The self-application combinator (x -> x(x))(x -> x(x)) recurses forever
	// purely through parameter binding, with no named self-reference needed,
	// so it exercises the depth counter without depending on how `let`
	// resolves a name inside its own initializer.
	e, env := newEvalEnv(host.NewFakeHost())
	e.RecursionLimit = 10
	stmts, err := parser.New("(x -> x(x))(x -> x(x))").Parse()
	require.NoError(t, err)
	_, err = e.Run(stmts, env)
	require.Error(t, err)
	derr, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Equal(t, errors.KindRecursionDepthExceeded, derr.Kind)
}

func TestEval_NamedRecursionTerminatesWithDepthError(t *testing.T) {
	e, env := newEvalEnv(host.NewFakeHost())
	e.RecursionLimit = 20
	stmts, err := parser.New("let loop = x -> loop(x + 1)\nloop(0)").Parse()
	require.NoError(t, err)
	_, err = e.Run(stmts, env)
	require.Error(t, err)
	derr, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Equal(t, errors.KindRecursionDepthExceeded, derr.Kind)
}

func TestEval_NamedRecursionComputesFactorial(t *testing.T) {
	e, env := newEvalEnv(host.NewFakeHost())
	v := run(t, e, env, `
let fact = n -> if n <= 1 1 else n * fact(n - 1)
fact(5)
`)
	assert.Equal(t, int64(120), v.(*objects.Int).Value)
}

func TestEval_ClosuresCaptureLoopVariableEachIteration(t *testing.T) {
	e, env := newEvalEnv(host.NewFakeHost())
	v := run(t, e, env, `
let fns = []
for i in [1, 2, 3] {
  fns = fns + [(() -> i)]
}
let results = []
for f in fns {
  results = results + [f()]
}
results
`)
	list, ok := v.(*objects.List)
	require.True(t, ok)
	require.Len(t, list.Elements, 3)
	assert.Equal(t, int64(1), list.Elements[0].(*objects.Int).Value)
	assert.Equal(t, int64(2), list.Elements[1].(*objects.Int).Value)
	assert.Equal(t, int64(3), list.Elements[2].(*objects.Int).Value)
}

func TestEval_UnboundSymbolInExpressionPositionStaysASymbol(t *testing.T) {
	e, env := newEvalEnv(host.NewFakeHost())
	v := run(t, e, env, "let x = foo\nx")
	sym, ok := v.(*objects.Symbol)
	require.True(t, ok)
	assert.Equal(t, "foo", sym.Name)
}
