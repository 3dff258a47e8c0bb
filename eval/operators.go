/*
File    : dune/eval/operators.go
*/
package eval

import (
	"math"

	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/function"
	"github.com/dune-shell/dune/lexer"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/parser"
	"github.com/dune-shell/dune/scope"
)

// isUserOverride reports whether v is a binding that should take priority
// over the primitive implementation of an operator (§4.4): any lambda or
// macro the user bound to the operator's name. A Builtin under that name
// (none are registered by default) would also count as a primitive, not an
// override, since it is host-supplied rather than user-defined.
func isUserOverride(v objects.Value) bool {
	switch v.(type) {
	case *function.Lambda, *function.Macro:
		return true
	default:
		return false
	}
}

// evalBinOp implements operator overloading by environment lookup, falling
// back to the primitive per-operator dispatch below. && and || are special:
// when not overridden, they short-circuit without evaluating the right
// operand at all; overriding them trades that guarantee for the call (the
// override necessarily sees both sides already evaluated).
func (e *Evaluator) evalBinOp(n *parser.BinOp, env *scope.Environment) (objects.Value, error) {
	if n.Op == "|>" {
		if override, ok := env.Lookup(n.Op); ok && isUserOverride(override) {
			lhs, err := e.Eval(n.Lhs, env)
			if err != nil {
				return nil, err
			}
			rhs, err := e.Eval(n.Rhs, env)
			if err != nil {
				return nil, err
			}
			return e.applyValues(override, []objects.Value{lhs, rhs}, env, n.Span())
		}
		return e.evalPipe(n, env)
	}
	if n.Op == "&&" || n.Op == "||" {
		if override, ok := env.Lookup(n.Op); ok && isUserOverride(override) {
			lhs, err := e.Eval(n.Lhs, env)
			if err != nil {
				return nil, err
			}
			rhs, err := e.Eval(n.Rhs, env)
			if err != nil {
				return nil, err
			}
			return e.applyValues(override, []objects.Value{lhs, rhs}, env, n.Span())
		}
		return e.evalShortCircuit(n, env)
	}

	lhs, err := e.Eval(n.Lhs, env)
	if err != nil {
		return nil, err
	}
	rhs, err := e.Eval(n.Rhs, env)
	if err != nil {
		return nil, err
	}
	if override, ok := env.Lookup(n.Op); ok && isUserOverride(override) {
		return e.applyValues(override, []objects.Value{lhs, rhs}, env, n.Span())
	}
	return primitiveBinOp(n.Op, lhs, rhs, n.Span())
}

func (e *Evaluator) evalShortCircuit(n *parser.BinOp, env *scope.Environment) (objects.Value, error) {
	lhs, err := e.Eval(n.Lhs, env)
	if err != nil {
		return nil, err
	}
	if n.Op == "&&" && !objects.Truthy(lhs) {
		return &objects.Bool{Value: false}, nil
	}
	if n.Op == "||" && objects.Truthy(lhs) {
		return &objects.Bool{Value: true}, nil
	}
	rhs, err := e.Eval(n.Rhs, env)
	if err != nil {
		return nil, err
	}
	return &objects.Bool{Value: objects.Truthy(rhs)}, nil
}

func (e *Evaluator) evalUnOp(n *parser.UnOp, env *scope.Environment) (objects.Value, error) {
	operand, err := e.Eval(n.Operand, env)
	if err != nil {
		return nil, err
	}
	if override, ok := env.Lookup(n.Op); ok && isUserOverride(override) {
		return e.applyValues(override, []objects.Value{operand}, env, n.Span())
	}
	return primitiveUnOp(n.Op, operand, n.Span())
}

func numeric(v objects.Value) (float64, bool, bool) {
	switch n := v.(type) {
	case *objects.Int:
		return float64(n.Value), true, true
	case *objects.Float:
		return n.Value, false, true
	default:
		return 0, false, false
	}
}

func bothInt(a, b objects.Value) (int64, int64, bool) {
	ai, aok := a.(*objects.Int)
	bi, bok := b.(*objects.Int)
	if aok && bok {
		return ai.Value, bi.Value, true
	}
	return 0, 0, false
}

func primitiveBinOp(op string, a, b objects.Value, span lexer.Span) (objects.Value, error) {
	switch op {
	case "+":
		if ai, bi, ok := bothInt(a, b); ok {
			return &objects.Int{Value: ai + bi}, nil
		}
		if af, _, aok := numeric(a); aok {
			if bf, _, bok := numeric(b); bok {
				return &objects.Float{Value: af + bf}, nil
			}
		}
		if as, ok := a.(*objects.String); ok {
			if bs, ok := b.(*objects.String); ok {
				return &objects.String{Value: as.Value + bs.Value}, nil
			}
		}
		if al, ok := a.(*objects.List); ok {
			if bl, ok := b.(*objects.List); ok {
				out := make([]objects.Value, 0, len(al.Elements)+len(bl.Elements))
				out = append(out, al.Elements...)
				out = append(out, bl.Elements...)
				return &objects.List{Elements: out}, nil
			}
		}
		if am, ok := a.(*objects.Map); ok {
			if bm, ok := b.(*objects.Map); ok {
				merged := objects.NewMap()
				am.Each(func(k, v objects.Value) { merged.Set(k, v) })
				bm.Each(func(k, v objects.Value) { merged.Set(k, v) })
				return merged, nil
			}
		}
		return nil, typeMismatch(op, a, b, span)
	case "-":
		return numericBinOp(op, a, b, span, func(x, y float64) float64 { return x - y }, func(x, y int64) int64 { return x - y })
	case "*":
		return numericBinOp(op, a, b, span, func(x, y float64) float64 { return x * y }, func(x, y int64) int64 { return x * y })
	case "/":
		if ai, bi, ok := bothInt(a, b); ok {
			if bi == 0 {
				return nil, errors.DivideByZero(span)
			}
			return &objects.Int{Value: ai / bi}, nil
		}
		if af, _, aok := numeric(a); aok {
			if bf, _, bok := numeric(b); bok {
				if bf == 0 {
					return nil, errors.DivideByZero(span)
				}
				return &objects.Float{Value: af / bf}, nil
			}
		}
		return nil, typeMismatch(op, a, b, span)
	case "%":
		if ai, bi, ok := bothInt(a, b); ok {
			if bi == 0 {
				return nil, errors.DivideByZero(span)
			}
			return &objects.Int{Value: ai % bi}, nil
		}
		if af, _, aok := numeric(a); aok {
			if bf, _, bok := numeric(b); bok {
				if bf == 0 {
					return nil, errors.DivideByZero(span)
				}
				return &objects.Float{Value: math.Mod(af, bf)}, nil
			}
		}
		return nil, typeMismatch(op, a, b, span)
	case "==":
		return &objects.Bool{Value: objects.Equal(a, b)}, nil
	case "!=":
		return &objects.Bool{Value: !objects.Equal(a, b)}, nil
	case "<", "<=", ">", ">=":
		c, ok := objects.Compare(a, b)
		if !ok {
			return nil, typeMismatch(op, a, b, span)
		}
		switch op {
		case "<":
			return &objects.Bool{Value: c < 0}, nil
		case "<=":
			return &objects.Bool{Value: c <= 0}, nil
		case ">":
			return &objects.Bool{Value: c > 0}, nil
		default:
			return &objects.Bool{Value: c >= 0}, nil
		}
	default:
		return nil, errors.TypeMismatch(op, []string{string(a.GetType()), string(b.GetType())}, span)
	}
}

func numericBinOp(op string, a, b objects.Value, span lexer.Span, ff func(float64, float64) float64, fi func(int64, int64) int64) (objects.Value, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		return &objects.Int{Value: fi(ai, bi)}, nil
	}
	if af, _, aok := numeric(a); aok {
		if bf, _, bok := numeric(b); bok {
			return &objects.Float{Value: ff(af, bf)}, nil
		}
	}
	return nil, typeMismatch(op, a, b, span)
}

func typeMismatch(op string, a, b objects.Value, span lexer.Span) error {
	return errors.TypeMismatch(op, []string{string(a.GetType()), string(b.GetType())}, span)
}

func primitiveUnOp(op string, v objects.Value, span lexer.Span) (objects.Value, error) {
	switch op {
	case "-":
		switch n := v.(type) {
		case *objects.Int:
			return &objects.Int{Value: -n.Value}, nil
		case *objects.Float:
			return &objects.Float{Value: -n.Value}, nil
		}
		return nil, errors.TypeMismatch(op, []string{string(v.GetType())}, span)
	case "!":
		return &objects.Bool{Value: !objects.Truthy(v)}, nil
	default:
		return nil, errors.TypeMismatch(op, []string{string(v.GetType())}, span)
	}
}

// evalPipe implements `a |> f` as `f(a)`: the only operator whose primitive
// behavior is to apply its right operand rather than combine two values.
func (e *Evaluator) evalPipe(n *parser.BinOp, env *scope.Environment) (objects.Value, error) {
	lhs, err := e.Eval(n.Lhs, env)
	if err != nil {
		return nil, err
	}
	rhs, err := e.Eval(n.Rhs, env)
	if err != nil {
		return nil, err
	}
	return e.applyValues(rhs, []objects.Value{lhs}, env, n.Span())
}
