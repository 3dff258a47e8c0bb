/*
File    : dune/eval/apply.go
*/
package eval

import (
	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/function"
	"github.com/dune-shell/dune/lexer"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/parser"
	"github.com/dune-shell/dune/scope"
)

// evalApply implements Apply(callee, args) per §4.4. The callee is always
// evaluated first; what it evaluates to decides whether the argument nodes
// are evaluated at all (they are not, for a Macro).
func (e *Evaluator) evalApply(n *parser.Apply, env *scope.Environment) (objects.Value, error) {
	callee, err := e.Eval(n.Callee, env)
	if err != nil {
		return nil, err
	}
	switch c := callee.(type) {
	case *function.Lambda:
		args, err := e.evalArgs(n.Args, env)
		if err != nil {
			return nil, err
		}
		return e.callLambda(c, args, n.Span())
	case *function.Builtin:
		args, err := e.evalArgs(n.Args, env)
		if err != nil {
			return nil, err
		}
		return e.callBuiltin(c, args, env, n.Span())
	case *function.Macro:
		return e.callMacro(c, n.Args, env, n.Span())
	case *objects.Symbol:
		args, err := e.evalArgs(n.Args, env)
		if err != nil {
			return nil, err
		}
		return e.dispatchCommand(c.Name, args, env, n.Span())
	default:
		return nil, errors.NotCallable(string(callee.GetType()), n.Callee.Span())
	}
}

func (e *Evaluator) evalArgs(nodes []parser.Node, env *scope.Environment) ([]objects.Value, error) {
	out := make([]objects.Value, len(nodes))
	for i, a := range nodes {
		v, err := e.Eval(a, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *Evaluator) enterCall(span lexer.Span) error {
	e.depth++
	if e.depth > e.RecursionLimit {
		e.depth--
		return errors.RecursionDepthExceeded(e.RecursionLimit, span)
	}
	return nil
}

func (e *Evaluator) leaveCall() { e.depth-- }

func (e *Evaluator) callLambda(l *function.Lambda, args []objects.Value, span lexer.Span) (objects.Value, error) {
	if len(args) != len(l.Params) {
		return nil, errors.ArityMismatch(len(l.Params), len(args), span)
	}
	if err := e.enterCall(span); err != nil {
		return nil, err
	}
	defer e.leaveCall()
	callEnv := l.Env.Child()
	for i, p := range l.Params {
		callEnv.Let(p, args[i])
	}
	return e.EvalStatement(l.Body, callEnv)
}

func (e *Evaluator) callBuiltin(b *function.Builtin, args []objects.Value, env *scope.Environment, span lexer.Span) (objects.Value, error) {
	if b.Arity >= 0 && len(args) != b.Arity {
		return nil, errors.ArityMismatch(b.Arity, len(args), span)
	}
	return b.Fn(args, env)
}

// callMacro binds each argument *expression* as its quoted AST value in a
// fresh child of the caller's environment, per §4.4 item 4 and §4.5. A
// zero-arg call to a one-parameter macro binds that parameter to the host's
// current working directory string instead — the mechanism that lets a
// macro like `cd` called with empty parentheses (`cd()`) default to "here".
func (e *Evaluator) callMacro(m *function.Macro, argNodes []parser.Node, callerEnv *scope.Environment, span lexer.Span) (objects.Value, error) {
	if len(argNodes) == 0 && len(m.Params) == 1 {
		cwd, err := e.Host.CurrentDirectory()
		if err != nil {
			return nil, errors.HostError(err.Error(), span)
		}
		if err := e.enterCall(span); err != nil {
			return nil, err
		}
		defer e.leaveCall()
		callEnv := callerEnv.Child()
		callEnv.Let(m.Params[0], &objects.String{Value: cwd})
		return e.EvalStatement(m.Body, callEnv)
	}
	if len(argNodes) != len(m.Params) {
		return nil, errors.ArityMismatch(len(m.Params), len(argNodes), span)
	}
	if err := e.enterCall(span); err != nil {
		return nil, err
	}
	defer e.leaveCall()
	callEnv := callerEnv.Child()
	for i, p := range m.Params {
		callEnv.Let(p, parser.ToValue(argNodes[i]))
	}
	return e.EvalStatement(m.Body, callEnv)
}

// applyValues calls an already-resolved callable with already-evaluated
// argument values: used by operator overloading (§4.4) and by builtins that
// need to call back into user code (e.g. a `map`/`filter` builtin calling a
// lambda argument). A Macro invoked this way binds its parameters directly
// to the given values rather than to quoted AST — there is no argument
// expression left to quote once the caller has already evaluated it.
func (e *Evaluator) applyValues(callee objects.Value, args []objects.Value, env *scope.Environment, span lexer.Span) (objects.Value, error) {
	switch c := callee.(type) {
	case *function.Lambda:
		return e.callLambda(c, args, span)
	case *function.Builtin:
		return e.callBuiltin(c, args, env, span)
	case *function.Macro:
		if len(args) != len(c.Params) {
			return nil, errors.ArityMismatch(len(c.Params), len(args), span)
		}
		if err := e.enterCall(span); err != nil {
			return nil, err
		}
		defer e.leaveCall()
		callEnv := env.Child()
		for i, p := range c.Params {
			callEnv.Let(p, args[i])
		}
		return e.EvalStatement(c.Body, callEnv)
	case *objects.Symbol:
		return e.dispatchCommand(c.Name, args, env, span)
	default:
		return nil, errors.NotCallable(string(callee.GetType()), span)
	}
}

// dispatchCommand implements §4.6: launch an external process named by a
// symbol, with every argument's ToString() form as argv.
func (e *Evaluator) dispatchCommand(name string, args []objects.Value, env *scope.Environment, span lexer.Span) (objects.Value, error) {
	if err := e.checkInterrupted(span); err != nil {
		return nil, err
	}
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, name)
	for _, a := range args {
		argv = append(argv, a.ToString())
	}
	cwd, err := e.Host.CurrentDirectory()
	if err != nil {
		return nil, errors.HostError(err.Error(), span)
	}
	code, err := e.Host.Spawn(argv, cwd, nil)
	if err != nil {
		return nil, errors.CommandNotFound(name, span)
	}
	return &objects.Int{Value: int64(code)}, nil
}
