/*
File    : dune/std/parse_module.go
*/

// parse exposes the parser to user code as data: parse@expr quotes source
// text into the same AST value that the '(...) quote form produces
// (parser.ToValue), and parse@is_incomplete distinguishes "needs more
// input" from a genuine syntax error — the signal the REPL's multi-line
// continuation and §7's Incomplete error kind both rely on.
package std

import (
	"github.com/dune-shell/dune/errors"
	"github.com/dune-shell/dune/function"
	"github.com/dune-shell/dune/lexer"
	"github.com/dune-shell/dune/objects"
	"github.com/dune-shell/dune/parser"
	"github.com/dune-shell/dune/scope"
)

func newParseModule() *objects.Map {
	expr := &function.Builtin{Name: "parse@expr", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		src := args[0].ToString()
		stmts, err := parser.New(src).Parse()
		if err != nil {
			return nil, err
		}
		quoted := make([]objects.Value, len(stmts))
		for i, n := range stmts {
			quoted[i] = parser.ToValue(n)
		}
		if len(quoted) == 1 {
			return quoted[0], nil
		}
		return &objects.List{Elements: quoted}, nil
	}}
	isIncomplete := &function.Builtin{Name: "parse@is_incomplete", Arity: 1, Fn: func(args []objects.Value, env *scope.Environment) (objects.Value, error) {
		src := args[0].ToString()
		_, err := parser.New(src).Parse()
		if err == nil {
			return &objects.Bool{Value: false}, nil
		}
		derr, ok := err.(*errors.Error)
		if !ok {
			return nil, errors.TypeMismatch("parse@is_incomplete", []string{"unexpected error type"}, lexer.Span{})
		}
		return &objects.Bool{Value: derr.Kind == errors.KindIncomplete}, nil
	}}
	return builtinMap("expr", expr, "is_incomplete", isIncomplete)
}
