/*
File    : dune/eval/evaluator.go
*/

// Package eval is Dune's tree-walking evaluator (spec §4.4): application,
// operator overloading, control forms, quoting, macro expansion, and
// symbol-as-command dispatch, all against package scope's Environment and
// package objects' value model.
package eval

import (
	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/function"
	"github.com/dune-shell/dune/host"
	"github.com/dune-shell/dune/lexer"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/parser"
	"github.com/dune-shell/dune/scope"
)

// DefaultRecursionLimit is the evaluator-visible frame bound named in
// spec §3 ("a runtime constant (default 500)").
const DefaultRecursionLimit = 500

// Evaluator holds the state that spans a whole evaluation session: the
// injected Host, the recursion-depth counter, and the interrupt flag the
// REPL driver sets from its Ctrl-C handler (§5).
type Evaluator struct {
	Host           host.Host
	RecursionLimit int
	depth          int
	Interrupted    func() bool
	root           *scope.Environment
}

// New returns an Evaluator with the default recursion limit.
func New(h host.Host) *Evaluator {
	return &Evaluator{Host: h, RecursionLimit: DefaultRecursionLimit}
}

func (e *Evaluator) checkInterrupted(span lexer.Span) error {
	if e.Interrupted != nil && e.Interrupted() {
		return errors.Interrupted()
	}
	return nil
}

// Eval evaluates node as an expression in env. It never applies the bare-
// symbol-as-zero-arg-command fallback (§4.6) — that only happens for a node
// appearing in statement position; use EvalStatement for those.
func (e *Evaluator) Eval(node parser.Node, env *scope.Environment) (objects.Value, error) {
	if err := e.checkInterrupted(node.Span()); err != nil {
		return nil, err
	}
	switch n := node.(type) {
	case *parser.Integer:
		return &objects.Int{Value: n.Value}, nil
	case *parser.Float:
		return &objects.Float{Value: n.Value}, nil
	case *parser.String:
		return &objects.String{Value: n.Value}, nil
	case *parser.Boolean:
		return &objects.Bool{Value: n.Value}, nil
	case *parser.None:
		return objects.TheNone, nil
	case *parser.Symbol:
		return e.evalSymbol(n, env), nil
	case *parser.List:
		return e.evalList(n, env)
	case *parser.Map:
		return e.evalMap(n, env)
	case *parser.Quote:
		return parser.ToValue(n.Expr), nil
	case *parser.Group:
		return e.Eval(n.Inner, env)
	case *parser.Lambda:
		return &function.Lambda{Params: n.Params, Body: n.Body, Env: env.Copy()}, nil
	case *parser.Macro:
		return &function.Macro{Params: n.Params, Body: n.Body, Env: env.Copy()}, nil
	case *parser.Apply:
		v, err := e.evalApply(n, env)
		if derr, ok := err.(*errors.Error); ok {
			derr.Trace = append(derr.Trace, n.Span())
		}
		return v, err
	case *parser.BinOp:
		return e.evalBinOp(n, env)
	case *parser.UnOp:
		return e.evalUnOp(n, env)
	case *parser.Index:
		return e.evalIndex(n, env)
	case *parser.Field:
		return e.evalField(n, env)
	case *parser.Let:
		return e.evalLet(n, env)
	case *parser.Assign:
		return e.evalAssign(n, env)
	case *parser.If:
		return e.evalIf(n, env)
	case *parser.For:
		return e.evalFor(n, env)
	case *parser.While:
		return e.evalWhile(n, env)
	case *parser.Block:
		return e.evalBlock(n, env)
	default:
		return nil, errors.HostError("internal: unhandled node type", node.Span())
	}
}

// EvalStatement evaluates node the way a top-level program line, a Block
// entry, or a control-form body does: a bare unbound Symbol dispatches as a
// zero-argument command (§4.6) instead of evaluating to itself.
func (e *Evaluator) EvalStatement(node parser.Node, env *scope.Environment) (objects.Value, error) {
	if sym, ok := node.(*parser.Symbol); ok {
		if _, bound := env.Lookup(sym.Name); !bound {
			return e.dispatchCommand(sym.Name, nil, env, sym.Span())
		}
	}
	return e.Eval(node, env)
}

// Run evaluates a full program (as produced by parser.Parse), one statement
// at a time, returning the value of the last one.
func (e *Evaluator) Run(stmts []parser.Node, env *scope.Environment) (objects.Value, error) {
	var result objects.Value = objects.TheNone
	for _, stmt := range stmts {
		v, err := e.EvalStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func (e *Evaluator) evalSymbol(n *parser.Symbol, env *scope.Environment) objects.Value {
	if v, ok := env.Lookup(n.Name); ok {
		return v
	}
	return &objects.Symbol{Name: n.Name}
}

func (e *Evaluator) evalList(n *parser.List, env *scope.Environment) (objects.Value, error) {
	elems := make([]objects.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := e.Eval(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &objects.List{Elements: elems}, nil
}

func (e *Evaluator) evalMap(n *parser.Map, env *scope.Environment) (objects.Value, error) {
	m := objects.NewMap()
	for _, entry := range n.Entries {
		k, err := e.Eval(entry.Key, env)
		if err != nil {
			return nil, err
		}
		v, err := e.Eval(entry.Value, env)
		if err != nil {
			return nil, err
		}
		if !m.Set(k, v) {
			return nil, errors.TypeMismatch("map key", []string{string(k.GetType())}, entry.Key.Span())
		}
	}
	return m, nil
}
