/*
File    : dune/std/math_module.go
*/

// math wraps the standard math package directly: there is no ecosystem
// library in the retrieved examples for elementary numeric functions, and
// math itself carries no allocation or I/O concerns worth abstracting
// behind Host — a deliberate stdlib exception, not an oversight.
package std

import (
	gomath "math"

	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/function"
	"github.com/dune-shell/dune/lexer"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/scope"
)

func numArg(v objects.Value) (float64, error) {
	switch t := v.(type) {
	case *objects.Int:
		return float64(t.Value), nil
	case *objects.Float:
		return t.Value, nil
	default:
		return 0, errors.TypeMismatch("math", []string{string(v.GetType())}, lexer.Span{})
	}
}

func unaryMath(name string, fn func(float64) float64) *function.Builtin {
	return &function.Builtin{Name: "math@" + name, Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		x, err := numArg(args[0])
		if err != nil {
			return nil, err
		}
		return &objects.Float{Value: fn(x)}, nil
	}}
}

func newMathModule() *objects.Map {
	abs := &function.Builtin{Name: "math@abs", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		if i, ok := args[0].(*objects.Int); ok {
			if i.Value < 0 {
				return &objects.Int{Value: -i.Value}, nil
			}
			return i, nil
		}
		x, err := numArg(args[0])
		if err != nil {
			return nil, err
		}
		return &objects.Float{Value: gomath.Abs(x)}, nil
	}}
	pow := &function.Builtin{Name: "math@pow", Arity: 2, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		x, err := numArg(args[0])
		if err != nil {
			return nil, err
		}
		y, err := numArg(args[1])
		if err != nil {
			return nil, err
		}
		return &objects.Float{Value: gomath.Pow(x, y)}, nil
	}}
	return builtinMap(
		"sqrt", unaryMath("sqrt", gomath.Sqrt),
		"floor", unaryMath("floor", gomath.Floor),
		"ceil", unaryMath("ceil", gomath.Ceil),
		"round", unaryMath("round", gomath.Round),
		"sin", unaryMath("sin", gomath.Sin),
		"cos", unaryMath("cos", gomath.Cos),
		"log", unaryMath("log", gomath.Log),
		"abs", abs,
		"pow", pow,
	)
}
