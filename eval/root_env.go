/*
File    : dune/eval/root_env.go
*/
package eval

import (
	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/function"
	"github.com/dune-shell/dune/lexer"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/parser"
	"github.com/dune-shell/dune/scope"
	"github.com/dune-shell/dune/std"
)

// NewRootEnv returns an environment populated with every builtin module
// (std.Register) plus the two quoting primitives that only make sense with
// an Evaluator attached: `eval` (pure) and `exec` (side-effecting) — see
// §4.4's "Quoting" paragraph and §9's eval/exec open question. The returned
// environment is retained on e so builtinEval can isolate against it
// regardless of where `eval` is called from.
func (e *Evaluator) NewRootEnv() *scope.Environment {
	root := scope.New(nil)
	std.Register(root, e.Host)
	root.Let("eval", &function.Builtin{Name: "eval", Arity: 1, Fn: e.builtinEval})
	root.Let("exec", &function.Builtin{Name: "exec", Arity: 1, Fn: e.builtinExec})
	e.root = root
	return root
}

// builtinEval decodes a quoted AST value and evaluates it in a fresh child
// of the root environment recorded by NewRootEnv — the "pure" half of the
// eval/exec split: it cannot see or mutate any local frame the caller is
// running in, only what's reachable from the root (builtins and whatever
// has been let-bound at the top level). If NewRootEnv was never called,
// falls back to a child of the call-site env.
func (e *Evaluator) builtinEval(args []objects.Value, env *scope.Environment) (objects.Value, error) {
	node, err := parser.FromValue(args[0])
	if err != nil {
		return nil, errors.TypeMismatch("eval", []string{string(args[0].GetType())}, lexer.Span{})
	}
	base := e.root
	if base == nil {
		base = env
	}
	return e.EvalStatement(node, base.Child())
}

// builtinExec decodes a quoted AST value and evaluates it directly in the
// caller's environment, so it may introduce or mutate bindings there — the
// side-effecting half (§9).
func (e *Evaluator) builtinExec(args []objects.Value, env *scope.Environment) (objects.Value, error) {
	node, err := parser.FromValue(args[0])
	if err != nil {
		return nil, errors.TypeMismatch("exec", []string{string(args[0].GetType())}, lexer.Span{})
	}
	return e.EvalStatement(node, env)
}
