/*
File    : dune/eval/control.go
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

func (e *Evaluator) evalBlock(n *parser.Block, env *scope.Environment) (objects.Value, error) {
	child := env.Child()
	var result objects.Value = objects.TheNone
	for _, stmt := range n.Exprs {
		v, err := e.EvalStatement(stmt, child)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func (e *Evaluator) evalIf(n *parser.If, env *scope.Environment) (objects.Value, error) {
	cond, err := e.Eval(n.Cond, env)
	if err != nil {
		return nil, err
	}
	if objects.Truthy(cond) {
		return e.EvalStatement(n.Then, env)
	}
	if n.Else == nil {
		return objects.TheNone, nil
	}
	return e.EvalStatement(n.Else, env)
}

// evalFor iterates a list (elements), map (keys), or string (one-character
// strings), binding Name to a fresh child frame per iteration so a closure
// created inside the body captures that iteration's value (§4.4).
func (e *Evaluator) evalFor(n *parser.For, env *scope.Environment) (objects.Value, error) {
	iter, err := e.Eval(n.Iter, env)
	if err != nil {
		return nil, err
	}
	var items []objects.Value
	switch it := iter.(type) {
	case *objects.List:
		items = it.Elements
	case *objects.Map:
		items = it.Keys()
	case *objects.String:
		for _, r := range it.Value {
			items = append(items, &objects.String{Value: string(r)})
		}
	default:
		return nil, errors.TypeMismatch("for", []string{string(iter.GetType())}, n.Iter.Span())
	}
	var result objects.Value = objects.TheNone
	for _, item := range items {
		if err := e.checkInterrupted(n.Span()); err != nil {
			return nil, err
		}
		iterEnv := env.Child()
		iterEnv.Let(n.Name, item)
		v, err := e.EvalStatement(n.Body, iterEnv)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func (e *Evaluator) evalWhile(n *parser.While, env *scope.Environment) (objects.Value, error) {
	var result objects.Value = objects.TheNone
	for {
		if err := e.checkInterrupted(n.Span()); err != nil {
			return nil, err
		}
		cond, err := e.Eval(n.Cond, env)
		if err != nil {
			return nil, err
		}
		if !objects.Truthy(cond) {
			return result, nil
		}
		bodyEnv := env.Child()
		v, err := e.EvalStatement(n.Body, bodyEnv)
		if err != nil {
			return nil, err
		}
		result = v
	}
}

// evalLet implements `let name (= expr)?` and, when Body is non-nil, the
// `let name = expr in body` extension: the binding lives only in a fresh
// child scope covering Body, rather than the current frame.
func (e *Evaluator) evalLet(n *parser.Let, env *scope.Environment) (objects.Value, error) {
	target := env
	if n.Body != nil {
		target = env.Child()
	}
	var last objects.Value = objects.TheNone
	for i, name := range n.Names {
		var v objects.Value = objects.TheNone
		if i < len(n.Inits) {
			if self := bindSelfReferencing(target, name, n.Inits[i]); self != nil {
				v = self
			} else {
				val, err := e.Eval(n.Inits[i], env)
				if err != nil {
					return nil, err
				}
				v = val
				target.Let(name, v)
			}
		} else {
			target.Let(name, v)
		}
		last = v
	}
	if n.Body != nil {
		return e.EvalStatement(n.Body, target)
	}
	return last, nil
}

// bindSelfReferencing handles `let name = x -> ...` (or `macro ...`) so the
// function can call itself by name (§8 "Recursion safety"). A closure
// normally captures Copy() of its defining frame at the moment it is built
// (evaluator.go), which would snapshot target *before* name exists in it.
// Here the binding is made first, then the Lambda/Macro's own Env is filled
// in from that same now-updated frame, so its copy already contains name.
// Returns nil when init is not a bare lambda/macro literal, leaving the
// caller to fall back to ordinary evaluation.
func bindSelfReferencing(target *scope.Environment, name string, init parser.Node) objects.Value {
	switch lit := init.(type) {
	case *parser.Lambda:
		v := &function.Lambda{Params: lit.Params, Body: lit.Body}
		target.Let(name, v)
		v.Env = target.Copy()
		return v
	case *parser.Macro:
		v := &function.Macro{Params: lit.Params, Body: lit.Body}
		target.Let(name, v)
		v.Env = target.Copy()
		return v
	default:
		return nil
	}
}

func (e *Evaluator) evalAssign(n *parser.Assign, env *scope.Environment) (objects.Value, error) {
	// `name = x -> ...` reassigning a symbol to a lambda/macro literal gets
	// the same self-reference treatment as `let` above. This binds into env
	// directly rather than walking up to an existing binding the way a
	// plain value assignment does — the common case is reassigning a name
	// in the frame where it was just declared, not rebinding one captured
	// from an enclosing scope.
	if sym, ok := n.Target.(*parser.Symbol); ok {
		if self := bindSelfReferencing(env, sym.Name, n.Expr); self != nil {
			return self, nil
		}
	}
	val, err := e.Eval(n.Expr, env)
	if err != nil {
		return nil, err
	}
	switch target := n.Target.(type) {
	case *parser.Symbol:
		env.Assign(target.Name, val)
		return val, nil
	case *parser.Index:
		container, err := e.Eval(target.Container, env)
		if err != nil {
			return nil, err
		}
		key, err := e.Eval(target.Key, env)
		if err != nil {
			return nil, err
		}
		if err := assignIndex(container, key, val, target.Span()); err != nil {
			return nil, err
		}
		return val, nil
	case *parser.Field:
		container, err := e.Eval(target.Container, env)
		if err != nil {
			return nil, err
		}
		m, ok := container.(*objects.Map)
		if !ok {
			return nil, errors.TypeMismatch("@", []string{string(container.GetType())}, target.Span())
		}
		m.Set(&objects.String{Value: target.Name}, val)
		return val, nil
	default:
		return nil, errors.HostError("internal: invalid assignment target", n.Span())
	}
}

func assignIndex(container, key, val objects.Value, span lexer.Span) error {
	switch c := container.(type) {
	case *objects.List:
		idx, ok := key.(*objects.Int)
		if !ok {
			return errors.TypeMismatch("[]", []string{string(key.GetType())}, span)
		}
		i := int(idx.Value)
		if i < 0 || i >= len(c.Elements) {
			return errors.IndexOutOfRange(len(c.Elements), i, span)
		}
		c.Elements[i] = val
		return nil
	case *objects.Map:
		c.Set(key, val)
		return nil
	default:
		return errors.TypeMismatch("[]", []string{string(container.GetType())}, span)
	}
}
